package main

import (
	"strings"
	"time"
)

// Topic is the closed set of categories a ticket can be about.
type Topic string

const (
	TopicHowTo         Topic = "How-to"
	TopicProduct       Topic = "Product"
	TopicConnector     Topic = "Connector"
	TopicLineage       Topic = "Lineage"
	TopicAPISDK        Topic = "API/SDK"
	TopicSSO           Topic = "SSO"
	TopicGlossary      Topic = "Glossary"
	TopicBestPractices Topic = "Best practices"
	TopicSensitiveData Topic = "Sensitive data"
	TopicOther         Topic = "Other"
)

var validTopics = map[Topic]bool{
	TopicHowTo:         true,
	TopicProduct:       true,
	TopicConnector:     true,
	TopicLineage:       true,
	TopicAPISDK:        true,
	TopicSSO:           true,
	TopicGlossary:      true,
	TopicBestPractices: true,
	TopicSensitiveData: true,
	TopicOther:         true,
}

// Sentiment is the closed set of emotional tones a ticket can carry.
type Sentiment string

const (
	SentimentFrustrated Sentiment = "Frustrated"
	SentimentCurious    Sentiment = "Curious"
	SentimentAngry      Sentiment = "Angry"
	SentimentNeutral    Sentiment = "Neutral"
	SentimentConfused   Sentiment = "Confused"
)

var validSentiments = map[Sentiment]bool{
	SentimentFrustrated: true,
	SentimentCurious:    true,
	SentimentAngry:      true,
	SentimentNeutral:    true,
	SentimentConfused:   true,
}

// Priority is the derived urgency tier. It is always computed from the
// keyword score vector, never assigned by the LLM.
type Priority string

const (
	PriorityP0 Priority = "P0 (High)"
	PriorityP1 Priority = "P1 (Medium)"
	PriorityP2 Priority = "P2 (Low)"
)

// Rank orders priorities for sorting; lower means more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityP0:
		return 0
	case PriorityP1:
		return 1
	default:
		return 2
	}
}

// Ticket is a customer support request. Immutable once ingested.
type Ticket struct {
	ID        string
	Subject   string
	Body      string
	Customer  string // contact email
	CreatedAt time.Time
}

// ScoreVector holds the six keyword-derived signal scores for one ticket.
// Computed per classification, never persisted.
type ScoreVector struct {
	Urgency        int
	BusinessImpact int
	Severity       int
	Compliance     int
	Deadline       int
	Frustration    int
}

// ClassificationResult is the complete classification of one ticket.
type ClassificationResult struct {
	TopicTags  []Topic
	Sentiment  Sentiment
	Priority   Priority
	FinalScore int
	Confidence float64
	Reasoning  string
}

// SearchScope names which documentation corpus an automated answer
// should search.
type SearchScope string

const (
	ScopeDocs   SearchScope = "docs"
	ScopeDevHub SearchScope = "devhub"
	ScopeBoth   SearchScope = "both"
)

// RoutingDecision is the outcome of the routing policy for one ticket:
// either an automated documentation-search answer with a search scope,
// or an escalation to a human team with a templated message.
type RoutingDecision struct {
	UseAutomatedAnswer bool
	SearchScope        SearchScope
	EscalationMessage  string
}

// TicketClassification pairs a ticket with its classification outcome in
// batch processing. Err is non-nil when the external calls failed and
// Result holds the policy fallback record instead.
type TicketClassification struct {
	Ticket Ticket
	Result ClassificationResult
	Err    error
}

// ClassificationRecord is the persisted form of a classification plus the
// routing outcome, as written to classification_history.
type ClassificationRecord struct {
	ID           int64
	TicketID     string
	TopicTags    []Topic
	Sentiment    Sentiment
	Priority     Priority
	FinalScore   int
	Confidence   float64
	Reasoning    string
	LLMProvider  string
	LLMModel     string
	Automated    bool
	SearchScope  SearchScope
	Escalation   string
	ClassifiedAt time.Time
}

func joinTopics(tags []Topic) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ", ")
}

func splitTopics(s string) []Topic {
	var out []Topic
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, Topic(part))
		}
	}
	return out
}
