package main

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS tickets (
		id         TEXT PRIMARY KEY,
		subject    TEXT NOT NULL,
		body       TEXT NOT NULL DEFAULT '',
		customer   TEXT DEFAULT '',
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tickets_created_at ON tickets(created_at);

	CREATE TABLE IF NOT EXISTS classification_history (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		ticket_id          TEXT NOT NULL,
		topics             TEXT NOT NULL,
		sentiment          TEXT NOT NULL,
		priority           TEXT NOT NULL,
		final_score        INTEGER NOT NULL,
		confidence         REAL NOT NULL,
		reasoning          TEXT DEFAULT '',
		llm_provider       TEXT DEFAULT '',
		llm_model          TEXT DEFAULT '',
		automated          INTEGER NOT NULL DEFAULT 0,
		escalation_message TEXT DEFAULT '',
		classified_at      DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_ch_ticket ON classification_history(ticket_id);
	CREATE INDEX IF NOT EXISTS idx_ch_date ON classification_history(classified_at);
	`
	_, err = db.Exec(schema)
	if err != nil {
		return nil, err
	}

	// Migration: add search_scope column if missing.
	var colCount int
	_ = db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('classification_history') WHERE name = 'search_scope'`).Scan(&colCount)
	if colCount == 0 {
		_, _ = db.Exec(`ALTER TABLE classification_history ADD COLUMN search_scope TEXT DEFAULT ''`)
	}

	return db, nil
}

func InsertTicket(db *sql.DB, t Ticket) error {
	_, err := db.Exec(
		`INSERT INTO tickets (id, subject, body, customer, created_at) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Subject, t.Body, t.Customer, t.CreatedAt,
	)
	return err
}

func InsertTickets(db *sql.DB, tickets []Ticket) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO tickets (id, subject, body, customer, created_at) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, t := range tickets {
		if _, err := stmt.Exec(t.ID, t.Subject, t.Body, t.Customer, t.CreatedAt); err != nil {
			return inserted, err
		}
		inserted++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func TicketExists(db *sql.DB, id string) (bool, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM tickets WHERE id = ?`, id).Scan(&count)
	return count > 0, err
}

// FetchPendingTickets returns tickets with no classification yet, oldest
// first.
func FetchPendingTickets(db *sql.DB, limit int) ([]Ticket, error) {
	rows, err := db.Query(
		`SELECT t.id, t.subject, t.body, t.customer, t.created_at
		 FROM tickets t
		 LEFT JOIN classification_history ch ON ch.ticket_id = t.id
		 WHERE ch.id IS NULL
		 ORDER BY t.created_at
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []Ticket
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(&t.ID, &t.Subject, &t.Body, &t.Customer, &t.CreatedAt); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func InsertClassification(db *sql.DB, rec ClassificationRecord) error {
	_, err := db.Exec(
		`INSERT INTO classification_history
		 (ticket_id, topics, sentiment, priority, final_score, confidence, reasoning,
		  llm_provider, llm_model, automated, search_scope, escalation_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.TicketID, joinTopics(rec.TopicTags), string(rec.Sentiment), string(rec.Priority),
		rec.FinalScore, rec.Confidence, rec.Reasoning,
		rec.LLMProvider, rec.LLMModel, rec.Automated, string(rec.SearchScope), rec.Escalation,
	)
	return err
}

func FetchClassifications(db *sql.DB, ticketID string) ([]ClassificationRecord, error) {
	rows, err := db.Query(
		`SELECT id, ticket_id, topics, sentiment, priority, final_score, confidence, reasoning,
		        llm_provider, llm_model, automated, search_scope, escalation_message, classified_at
		 FROM classification_history
		 WHERE ticket_id = ?
		 ORDER BY classified_at`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []ClassificationRecord
	for rows.Next() {
		var rec ClassificationRecord
		var topics, sentiment, priority, scope string
		var classifiedAt time.Time
		if err := rows.Scan(&rec.ID, &rec.TicketID, &topics, &sentiment, &priority,
			&rec.FinalScore, &rec.Confidence, &rec.Reasoning,
			&rec.LLMProvider, &rec.LLMModel, &rec.Automated, &scope, &rec.Escalation, &classifiedAt); err != nil {
			return nil, err
		}
		rec.TopicTags = splitTopics(topics)
		rec.Sentiment = Sentiment(sentiment)
		rec.Priority = Priority(priority)
		rec.SearchScope = SearchScope(scope)
		rec.ClassifiedAt = classifiedAt
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// TriageStats aggregates classification outcomes for reporting.
type TriageStats struct {
	TotalTickets   int
	TotalTriaged   int
	P0Count        int
	P1Count        int
	P2Count        int
	EscalatedCount int
	AutomatedCount int
	AvgConfidence  float64
}

func LoadStats(db *sql.DB) (TriageStats, error) {
	var stats TriageStats

	if err := db.QueryRow(`SELECT COUNT(*) FROM tickets`).Scan(&stats.TotalTickets); err != nil {
		return stats, err
	}
	err := db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN priority = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN priority = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN priority = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN automated = 0 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN automated = 1 THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(confidence), 0)
		 FROM classification_history`,
		string(PriorityP0), string(PriorityP1), string(PriorityP2),
	).Scan(&stats.TotalTriaged, &stats.P0Count, &stats.P1Count, &stats.P2Count,
		&stats.EscalatedCount, &stats.AutomatedCount, &stats.AvgConfidence)
	return stats, err
}
