package main

import (
	"fmt"
	"log"

	"github.com/slack-go/slack"
)

const escalationBodyPreview = 300

// PostEscalation notifies the escalation channel about a ticket routed to a
// human team. A nil client or empty channel means Slack is not configured;
// the escalation is still recorded in the database, only the notification
// is skipped.
func PostEscalation(api *slack.Client, channelID string, ticket Ticket, result ClassificationResult, decision RoutingDecision) {
	if api == nil || channelID == "" {
		return
	}

	body := ticket.Body
	if len(body) > escalationBodyPreview {
		body = body[:escalationBodyPreview] + "..."
	}

	text := fmt.Sprintf("*%s* — %s\n%s\nTopics: %s | Sentiment: %s | Confidence: %.2f\n%s",
		ticket.Subject, result.Priority, body,
		joinTopics(result.TopicTags), result.Sentiment, result.Confidence,
		decision.EscalationMessage)

	_, _, err := api.PostMessage(channelID, slack.MsgOptionText(text, false))
	if err != nil {
		log.Printf("escalation post ticket=%s error: %v", ticket.ID, err)
	}
}
