package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ingestTicket is one entry of a tickets JSON file.
type ingestTicket struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Customer  string `json:"customer_email"`
	CreatedAt string `json:"created_at"` // RFC 3339, optional
}

// IngestResult tracks separate counters for each skip reason.
type IngestResult struct {
	Total          int
	Inserted       int
	AlreadyTracked int
	SkippedEmpty   int
}

func (r IngestResult) Summary() string {
	return fmt.Sprintf("total=%d inserted=%d already_tracked=%d skipped_empty=%d",
		r.Total, r.Inserted, r.AlreadyTracked, r.SkippedEmpty)
}

// IngestTicketFile loads tickets from a JSON file and inserts the new ones.
// Tickets without an ID get a generated UUID; tickets whose ID is already
// tracked are skipped.
func IngestTicketFile(db *sql.DB, path string) (IngestResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return IngestResult{}, fmt.Errorf("read ticket file: %w", err)
	}

	var entries []ingestTicket
	if err := json.Unmarshal(data, &entries); err != nil {
		return IngestResult{}, fmt.Errorf("parse ticket file: %w", err)
	}

	result := IngestResult{Total: len(entries)}
	var newTickets []Ticket

	for _, entry := range entries {
		subject := strings.TrimSpace(entry.Subject)
		body := strings.TrimSpace(entry.Body)
		if subject == "" && body == "" {
			result.SkippedEmpty++
			continue
		}

		id := strings.TrimSpace(entry.ID)
		if id == "" {
			id = uuid.NewString()
		} else {
			exists, err := TicketExists(db, id)
			if err != nil {
				return result, fmt.Errorf("check ticket %s: %w", id, err)
			}
			if exists {
				result.AlreadyTracked++
				continue
			}
		}

		createdAt := time.Now()
		if entry.CreatedAt != "" {
			parsed, err := time.Parse(time.RFC3339, entry.CreatedAt)
			if err != nil {
				log.Printf("ingest ticket=%s invalid created_at %q, using now", id, entry.CreatedAt)
			} else {
				createdAt = parsed
			}
		}

		newTickets = append(newTickets, Ticket{
			ID:        id,
			Subject:   subject,
			Body:      body,
			Customer:  strings.TrimSpace(entry.Customer),
			CreatedAt: createdAt,
		})
	}

	inserted, err := InsertTickets(db, newTickets)
	result.Inserted = inserted
	if err != nil {
		return result, fmt.Errorf("insert tickets: %w", err)
	}
	return result, nil
}
