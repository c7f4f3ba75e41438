package main

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/slack-go/slack"
)

// TriageResult summarizes one sweep over pending tickets.
type TriageResult struct {
	Processed int
	Automated int
	Escalated int
	Failed    int
}

func (r TriageResult) Summary() string {
	return fmt.Sprintf("processed=%d automated=%d escalated=%d failed=%d",
		r.Processed, r.Automated, r.Escalated, r.Failed)
}

// RunTriageSweep classifies all pending tickets, records each result with
// its routing outcome, and posts escalations to Slack. It has no scheduler
// dependency so it can be called from the cron loop and the -once path.
func RunTriageSweep(cfg Config, db *sql.DB, classifier *Classifier, api *slack.Client) (TriageResult, error) {
	tickets, err := FetchPendingTickets(db, cfg.SweepLimit)
	if err != nil {
		return TriageResult{}, fmt.Errorf("fetch pending tickets: %w", err)
	}
	if len(tickets) == 0 {
		log.Println("triage sweep: no pending tickets")
		return TriageResult{}, nil
	}
	log.Printf("triage sweep start pending=%d", len(tickets))

	var result TriageResult
	for _, tc := range classifier.ClassifyBatch(tickets) {
		decision := Route(tc.Result)

		rec := ClassificationRecord{
			TicketID:    tc.Ticket.ID,
			TopicTags:   tc.Result.TopicTags,
			Sentiment:   tc.Result.Sentiment,
			Priority:    tc.Result.Priority,
			FinalScore:  tc.Result.FinalScore,
			Confidence:  tc.Result.Confidence,
			Reasoning:   tc.Result.Reasoning,
			LLMProvider: cfg.LLMProvider,
			LLMModel:    cfg.LLMModel,
			Automated:   decision.UseAutomatedAnswer,
			SearchScope: decision.SearchScope,
			Escalation:  decision.EscalationMessage,
		}
		if err := InsertClassification(db, rec); err != nil {
			return result, fmt.Errorf("record classification ticket=%s: %w", tc.Ticket.ID, err)
		}

		result.Processed++
		if tc.Err != nil {
			result.Failed++
		}
		if decision.UseAutomatedAnswer {
			result.Automated++
			log.Printf("triage ticket=%s priority=%s scope=%s", tc.Ticket.ID, tc.Result.Priority, decision.SearchScope)
		} else {
			result.Escalated++
			log.Printf("triage ticket=%s priority=%s escalated", tc.Ticket.ID, tc.Result.Priority)
			PostEscalation(api, cfg.EscalationChannelID, tc.Ticket, tc.Result, decision)
		}
	}

	usage := classifier.TotalUsage()
	log.Printf("triage sweep complete %s tokens_in=%d tokens_out=%d", result.Summary(), usage.InputTokens, usage.OutputTokens)
	return result, nil
}

// RunTriageScheduler runs triage sweeps on a cron schedule. Blocks forever.
// The schedule is a standard 5-field cron expression (minute hour
// day-of-month month day-of-week).
func RunTriageScheduler(cfg Config, db *sql.DB, classifier *Classifier, api *slack.Client) error {
	schedule := strings.TrimSpace(cfg.TriageSchedule)

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		return fmt.Errorf("invalid triage_schedule '%s': %w", schedule, err)
	}

	log.Printf("triage scheduled (cron: %s)", schedule)
	for {
		now := time.Now()
		next := sched.Next(now)
		wait := next.Sub(now)
		log.Printf("next triage sweep at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

		time.Sleep(wait)

		if _, err := RunTriageSweep(cfg, db, classifier, api); err != nil {
			log.Printf("triage sweep error: %v", err)
		}
	}
}
