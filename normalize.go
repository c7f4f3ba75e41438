package main

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"
)

// rawClassification is the untrusted shape the LLM is asked to return.
// Topic responses carry either a "topics" list or a "category" string;
// sentiment responses carry a "sentiment" string.
type rawClassification struct {
	Topics    json.RawMessage `json:"topics"`
	Category  string          `json:"category"`
	Sentiment string          `json:"sentiment"`
}

// Sentiment labels the model emits that map onto a valid value.
var sentimentSynonyms = map[string]Sentiment{
	"Concerned": SentimentConfused,
	"Worried":   SentimentConfused,
	"Annoyed":   SentimentFrustrated,
	"Upset":     SentimentFrustrated,
	"Irritated": SentimentFrustrated,
	"Hostile":   SentimentAngry,
	"Furious":   SentimentAngry,
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// repairJSONResponse cleans near-JSON model output: markdown code fences
// are stripped, everything outside the outermost braces is discarded, and
// runs of whitespace are collapsed. LLMs routinely emit all three defects.
func repairJSONResponse(raw string) string {
	s := strings.TrimSpace(raw)

	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+3:]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	}
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}

	return whitespaceRun.ReplaceAllString(s, " ")
}

// parseRawClassification repairs and parses one model response. If the
// response is unusable even after repair it returns the safe fallback
// (topics ["How-to"], no sentiment) rather than an error: a malformed
// response must never fail a classification.
func parseRawClassification(responseText string) rawClassification {
	cleaned := repairJSONResponse(responseText)
	var raw rawClassification
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		log.Printf("llm unparseable response, using fallback: %v (response: %.200s)", err, responseText)
		return rawClassification{Topics: json.RawMessage(`["How-to"]`)}
	}
	return raw
}

// normalizeTopics validates the topic field against the closed Topic set.
// Validation is all-or-nothing: a single unknown topic string discards the
// whole list in favor of [How-to]. An absent or empty list also falls back
// to [How-to]. The result is never empty.
func normalizeTopics(raw rawClassification) []Topic {
	var topics []string
	if len(raw.Topics) > 0 && string(raw.Topics) != "null" {
		if err := json.Unmarshal(raw.Topics, &topics); err != nil {
			// Some models emit {"topics": "Product"} instead of a list.
			var single string
			if err := json.Unmarshal(raw.Topics, &single); err == nil && single != "" {
				topics = []string{single}
			}
		}
	}
	if len(topics) == 0 && raw.Category != "" {
		topics = []string{raw.Category}
	}
	if len(topics) == 0 {
		return []Topic{TopicHowTo}
	}

	out := make([]Topic, 0, len(topics))
	for _, s := range topics {
		t := Topic(s)
		if !validTopics[t] {
			log.Printf("llm invalid topic %q, falling back to How-to", s)
			return []Topic{TopicHowTo}
		}
		out = append(out, t)
	}
	return out
}

// normalizeSentiment title-cases the label, applies the synonym map and
// validates against the closed Sentiment set, defaulting to Neutral.
func normalizeSentiment(label string) Sentiment {
	label = titleCase(strings.TrimSpace(label))
	if mapped, ok := sentimentSynonyms[label]; ok {
		return mapped
	}
	s := Sentiment(label)
	if !validSentiments[s] {
		if label != "" {
			log.Printf("llm invalid sentiment %q, defaulting to Neutral", label)
		}
		return SentimentNeutral
	}
	return s
}

// titleCase upper-cases the first letter and lower-cases the rest.
func titleCase(s string) string {
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
