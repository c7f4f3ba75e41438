package main

import (
	"flag"
	"log"

	"github.com/slack-go/slack"
)

func main() {
	ingestPath := flag.String("ingest", "", "path to a tickets JSON file to import before running")
	once := flag.Bool("once", false, "run a single triage sweep and exit")
	flag.Parse()

	cfg := LoadConfig()

	db, err := InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}
	defer db.Close()

	tables, err := LoadKeywordTables(cfg.KeywordTablesPath)
	if err != nil {
		log.Fatalf("Failed to load keyword tables: %v", err)
	}
	classifier := NewClassifier(cfg, tables)

	var api *slack.Client
	if cfg.SlackBotToken != "" {
		api = slack.New(cfg.SlackBotToken)
	}

	if *ingestPath != "" {
		result, err := IngestTicketFile(db, *ingestPath)
		if err != nil {
			log.Fatalf("Ingest error: %v", err)
		}
		log.Printf("Ingest complete: %s", result.Summary())
	}

	if *once {
		if _, err := RunTriageSweep(cfg, db, classifier, api); err != nil {
			log.Fatalf("Triage sweep error: %v", err)
		}
		if stats, err := LoadStats(db); err == nil {
			log.Printf("stats tickets=%d triaged=%d p0=%d p1=%d p2=%d automated=%d escalated=%d avg_confidence=%.2f",
				stats.TotalTickets, stats.TotalTriaged, stats.P0Count, stats.P1Count, stats.P2Count,
				stats.AutomatedCount, stats.EscalatedCount, stats.AvgConfidence)
		}
		return
	}

	log.Println("Starting Support Ticket Triage Bot...")
	if err := RunTriageScheduler(cfg, db, classifier, api); err != nil {
		log.Fatalf("Triage scheduler error: %v", err)
	}
}
