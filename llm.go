package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250929"
const defaultOpenAIModel = "gpt-4o-mini"

const classifierSystemPrompt = "You are a ticket classifier. Respond with JSON only. No reasoning, no explanations, no additional text. Just the JSON object."

type LLMUsage struct {
	InputTokens              int64
	OutputTokens             int64
	CacheCreationInputTokens int64
	CacheReadInputTokens     int64
}

func (u LLMUsage) TotalTokens() int64 {
	return u.InputTokens + u.OutputTokens
}

func (u *LLMUsage) Add(other LLMUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.CacheCreationInputTokens += other.CacheCreationInputTokens
	u.CacheReadInputTokens += other.CacheReadInputTokens
}

// completionFunc is the external text-classification capability: one prompt
// in, raw model text out. Swappable so tests can stub the provider.
type completionFunc func(cfg Config, systemPrompt, userPrompt string) (string, LLMUsage, error)

func buildTopicPrompt(subject, body string) string {
	return fmt.Sprintf(`Classify this ticket into the most appropriate category. Consider the main focus and context of the user's request.

Categories:
- How-to: Questions about how to use features, step-by-step instructions, tutorials, or guidance on performing specific tasks
- Product: General product questions, feature requests, bug reports, or issues related to core product functionality
- Connector: Questions about connecting external data sources, database integrations, or third-party tool connections
- Lineage: Questions about data lineage, data flow, dependencies, or understanding how data moves through systems
- API/SDK: Questions about programmatic access, API usage, SDK implementation, or developer integrations
- SSO: Questions about single sign-on, authentication, user management, or security access controls
- Glossary: Questions about business glossary, data definitions, terminology, or metadata management
- Best practices: Questions about recommended approaches, governance, compliance, or optimization strategies
- Sensitive data: Questions about data privacy, PII handling, security classifications, or compliance requirements
- Other: Questions that don't fit into the above categories or are too general to classify

Subject: %s
Body: %s

Respond with JSON only:
{"topics": ["category_name"]}`, subject, body)
}

func buildSentimentPrompt(subject, body string) string {
	return fmt.Sprintf(`Analyze the sentiment of this customer support ticket. Consider the tone, urgency, and emotional state of the user.

Categories:
- Neutral: The ticket is written in a professional, objective, or matter-of-fact tone.
- Curious: The user is seeking to learn, explore, or understand something new.
- Confused: The user expresses uncertainty, lack of understanding, or is lost about a process, feature, or outcome.
- Frustrated: The user is annoyed, blocked, or experiencing repeated issues, without rising to anger or hostility.
- Angry: The user is openly hostile, very upset, or uses strong negative language.

Subject: %s
Body: %s

Respond with JSON only:
{"sentiment": "category"}`, subject, body)
}

// isRateLimited reports whether an external call failed on an explicit
// too-many-requests signal, which gets exponential backoff instead of the
// fixed retry delay.
func isRateLimited(err error) bool {
	s := err.Error()
	return strings.Contains(s, "rate_limit") || strings.Contains(s, "429")
}

// --- Anthropic ---

func callAnthropic(cfg Config, systemPrompt, userPrompt string) (string, LLMUsage, error) {
	client := anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey))

	model := cfg.LLMModel
	if model == "" {
		model = defaultAnthropicModel
	}

	message, err := client.Messages.New(context.Background(), anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 1000,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt, CacheControl: anthropic.NewCacheControlEphemeralParam()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		log.Printf("llm anthropic error: %v", err)
		return "", LLMUsage{}, fmt.Errorf("Anthropic API error: %w", err)
	}
	usage := LLMUsage{
		InputTokens:              message.Usage.InputTokens,
		OutputTokens:             message.Usage.OutputTokens,
		CacheCreationInputTokens: message.Usage.CacheCreationInputTokens,
		CacheReadInputTokens:     message.Usage.CacheReadInputTokens,
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			log.Printf("llm anthropic response size=%d tokens_in=%d tokens_out=%d cache_create=%d cache_read=%d", len(block.Text), usage.InputTokens, usage.OutputTokens, usage.CacheCreationInputTokens, usage.CacheReadInputTokens)
			return block.Text, usage, nil
		}
	}
	return "", usage, fmt.Errorf("no text content in Anthropic response")
}

// --- OpenAI ---

type openAIRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int64 `json:"prompt_tokens"`
		CompletionTokens int64 `json:"completion_tokens"`
		TotalTokens      int64 `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func callOpenAI(cfg Config, systemPrompt, userPrompt string) (string, LLMUsage, error) {
	model := cfg.LLMModel
	if model == "" {
		model = defaultOpenAIModel
	}

	reqBody := openAIRequest{
		Model: model,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", LLMUsage{}, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest("POST", "https://api.openai.com/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", LLMUsage{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.OpenAIAPIKey)

	resp, err := externalHTTPClient.Do(req)
	if err != nil {
		log.Printf("llm openai error: %v", err)
		return "", LLMUsage{}, fmt.Errorf("OpenAI API error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", LLMUsage{}, fmt.Errorf("reading response: %w", err)
	}

	var openAIResp openAIResponse
	if err := json.Unmarshal(respBody, &openAIResp); err != nil {
		return "", LLMUsage{}, fmt.Errorf("parsing OpenAI response: %w", err)
	}

	if openAIResp.Error != nil {
		log.Printf("llm openai api error: %s", openAIResp.Error.Message)
		return "", LLMUsage{}, fmt.Errorf("OpenAI API error: %s", openAIResp.Error.Message)
	}

	if len(openAIResp.Choices) == 0 {
		return "", LLMUsage{}, fmt.Errorf("no choices in OpenAI response")
	}
	usage := LLMUsage{}
	if openAIResp.Usage != nil {
		usage.InputTokens = openAIResp.Usage.PromptTokens
		usage.OutputTokens = openAIResp.Usage.CompletionTokens
	}

	log.Printf("llm openai response size=%d tokens_in=%d tokens_out=%d", len(openAIResp.Choices[0].Message.Content), usage.InputTokens, usage.OutputTokens)
	return openAIResp.Choices[0].Message.Content, usage, nil
}
