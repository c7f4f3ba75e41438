package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"
)

const (
	maxLLMAttempts    = 3
	retryBaseDelay    = time.Second
	classifyBatchSize = 3
)

// Classifier orchestrates the external classification capability and the
// deterministic priority engine into complete classification records.
type Classifier struct {
	cfg        Config
	tables     *KeywordTables
	cache      *responseCache
	complete   completionFunc
	baseDelay  time.Duration
	batchPause time.Duration

	mu    sync.Mutex
	usage LLMUsage
}

func NewClassifier(cfg Config, tables *KeywordTables) *Classifier {
	c := &Classifier{
		cfg:        cfg,
		tables:     tables,
		cache:      newResponseCache(cfg.CacheCapacity),
		baseDelay:  retryBaseDelay,
		batchPause: time.Duration(cfg.BatchPauseSeconds) * time.Second,
	}
	switch cfg.LLMProvider {
	case "openai":
		c.complete = callOpenAI
	default:
		c.complete = callAnthropic
	}
	return c
}

// ScorePriority exposes the priority engine as a standalone unit.
func (c *Classifier) ScorePriority(text string) (Priority, int) {
	return c.tables.ScorePriority(text)
}

// TotalUsage returns token usage accumulated across all calls so far.
func (c *Classifier) TotalUsage() LLMUsage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.usage
}

func (c *Classifier) addUsage(u LLMUsage) {
	c.mu.Lock()
	c.usage.Add(u)
	c.mu.Unlock()
}

// getResponse returns the model's raw text for a prompt, consulting the
// response cache first. Uncached calls are retried up to maxLLMAttempts:
// rate-limit failures back off exponentially with jitter, other failures
// wait a fixed base delay. Exhausting retries surfaces the last error.
func (c *Classifier) getResponse(prompt string) (string, error) {
	key := cacheKey(classifierSystemPrompt + "\n" + prompt)
	if cached, ok := c.cache.Get(key); ok {
		return cached, nil
	}

	var lastErr error
	for attempt := 0; attempt < maxLLMAttempts; attempt++ {
		text, usage, err := c.complete(c.cfg, classifierSystemPrompt, prompt)
		c.addUsage(usage)
		if err == nil {
			c.cache.Put(key, text)
			return text, nil
		}
		lastErr = err
		if attempt == maxLLMAttempts-1 {
			break
		}
		if isRateLimited(err) {
			delay := c.baseDelay*time.Duration(1<<attempt) + retryJitter(c.baseDelay)
			log.Printf("llm rate limited, retrying in %s (attempt %d/%d)", delay.Round(time.Millisecond), attempt+1, maxLLMAttempts)
			time.Sleep(delay)
		} else {
			log.Printf("llm error, retrying in %s: %v", c.baseDelay, err)
			time.Sleep(c.baseDelay)
		}
	}
	return "", fmt.Errorf("llm call failed after %d attempts: %w", maxLLMAttempts, lastErr)
}

// retryJitter returns a random delay in [base/2, 3*base/2).
func retryJitter(base time.Duration) time.Duration {
	return base/2 + time.Duration(rand.Int63n(int64(base)))
}

// Classify produces a complete classification for one ticket. Topics and
// sentiment come from two external calls and are normalized into the
// closed enums; priority is derived from the keyword score vector only.
// If either external call fails after retries, the whole classification
// fails: no partial record is returned.
func (c *Classifier) Classify(subject, body string) (ClassificationResult, error) {
	topicText, err := c.getResponse(buildTopicPrompt(subject, body))
	if err != nil {
		return ClassificationResult{}, fmt.Errorf("topic classification: %w", err)
	}
	sentimentText, err := c.getResponse(buildSentimentPrompt(subject, body))
	if err != nil {
		return ClassificationResult{}, fmt.Errorf("sentiment classification: %w", err)
	}

	topics := normalizeTopics(parseRawClassification(topicText))
	sentiment := normalizeSentiment(parseRawClassification(sentimentText).Sentiment)

	priority, final := c.tables.ScorePriority(subject + " " + body)

	// Confidence grows with distance from the ambiguous midpoint score.
	confidence := math.Min(0.95, 0.6+math.Abs(float64(final)-4.5)/10)

	return ClassificationResult{
		TopicTags:  topics,
		Sentiment:  sentiment,
		Priority:   priority,
		FinalScore: final,
		Confidence: confidence,
		Reasoning:  fmt.Sprintf("Topics: %s; Sentiment: %s; Priority: %s", joinTopics(topics), sentiment, priority),
	}, nil
}

// fallbackResult is the policy default substituted for a ticket whose
// classification failed permanently inside a batch.
func fallbackResult(err error) ClassificationResult {
	return ClassificationResult{
		TopicTags:  []Topic{TopicHowTo},
		Sentiment:  SentimentNeutral,
		Priority:   PriorityP2,
		Confidence: 0.1,
		Reasoning:  fmt.Sprintf("Classification failed: %v", err),
	}
}

// ClassifyBatch classifies tickets in groups of classifyBatchSize with a
// pause between groups to stay under upstream rate limits. A failed ticket
// does not abort the batch; it yields a fallback record with the error
// attached.
func (c *Classifier) ClassifyBatch(tickets []Ticket) []TicketClassification {
	results := make([]TicketClassification, 0, len(tickets))

	for start := 0; start < len(tickets); start += classifyBatchSize {
		end := start + classifyBatchSize
		if end > len(tickets) {
			end = len(tickets)
		}
		log.Printf("classify batch %d/%d size=%d", start/classifyBatchSize+1, (len(tickets)+classifyBatchSize-1)/classifyBatchSize, end-start)

		for _, ticket := range tickets[start:end] {
			result, err := c.Classify(ticket.Subject, ticket.Body)
			if err != nil {
				log.Printf("classify ticket=%s error: %v", ticket.ID, err)
				results = append(results, TicketClassification{Ticket: ticket, Result: fallbackResult(err), Err: err})
				continue
			}
			results = append(results, TicketClassification{Ticket: ticket, Result: result})
		}

		if end < len(tickets) && c.batchPause > 0 {
			time.Sleep(c.batchPause)
		}
	}
	return results
}
