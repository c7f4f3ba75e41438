package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// KeywordTables holds the six signal tables used by the priority engine.
// Each maps a lower-case phrase to its signal score; the scorer takes the
// maximum score among matching phrases. Built once at startup and treated
// as immutable from then on.
type KeywordTables struct {
	Urgency        map[string]int `yaml:"urgency"`
	BusinessImpact map[string]int `yaml:"business_impact"`
	Severity       map[string]int `yaml:"severity"`
	Compliance     map[string]int `yaml:"compliance"`
	Deadline       map[string]int `yaml:"deadline"`
	Frustration    map[string]int `yaml:"frustration"`
}

// DefaultKeywordTables returns the built-in signal tables.
func DefaultKeywordTables() *KeywordTables {
	return &KeywordTables{
		// Urgency indicators (0-3).
		Urgency: map[string]int{
			"urgent": 3, "critical failure": 3, "emergency": 3, "asap": 3, "immediately": 3,
			"blocked": 3, "deadline approaching": 3, "down": 3, "broken": 3, "failed": 3,
			"not working": 3, "crash": 3, "unavailable": 3,

			"important": 2, "priority": 2, "soon": 2, "quickly": 2, "fast": 2,
			"issue": 2, "problem": 2, "error": 2, "bug": 2,

			"help": 1, "assistance": 1, "support": 1, "question": 1,

			"wondering": 0, "curious": 0, "learning": 0, "explore": 0, "understand": 0,
		},

		// Business impact indicators (0-3): org-wide down to individual.
		BusinessImpact: map[string]int{
			"entire organization": 3, "all users": 3, "everyone": 3, "company-wide": 3,
			"organization": 3, "enterprise": 3, "all teams": 3, "global": 3,

			"team": 2, "department": 2, "bi team": 2, "engineering": 2, "data team": 2,
			"analytics team": 2, "multiple users": 2, "several people": 2,

			"few users": 1, "small group": 1, "couple of people": 1, "some users": 1,

			"individual": 0, "personal": 0, "just me": 0, "myself": 0, "single user": 0,
		},

		// Severity indicators (0-3): production failure, then security or
		// setup/config trouble, then how-to/feature asks, then general info.
		Severity: map[string]int{
			"production": 3, "live": 3, "down": 3, "broken": 3, "failed": 3, "crash": 3,
			"not working": 3, "unavailable": 3, "outage": 3, "disruption": 3,

			"security": 2, "compliance": 2, "audit": 2, "pii": 2, "sensitive": 2,
			"rbac": 2, "dlp": 2, "sso": 2, "authentication": 2, "credentials": 2,
			"setup": 2, "configuration": 2, "config": 2, "install": 2, "deploy": 2,
			"integration": 2, "connector": 2, "api": 2, "permissions": 2,

			"how to": 1, "how-to": 1, "tutorial": 1, "guide": 1, "feature request": 1,
			"enhancement": 1, "improvement": 1, "suggestion": 1, "question": 1,

			"info": 0, "information": 0, "curious": 0, "wondering": 0, "learning": 0,
			"explore": 0, "understand": 0, "glossary": 0, "definition": 0,
		},

		// Compliance & security risk indicators (0-3).
		Compliance: map[string]int{
			"audit": 3, "compliance": 3, "regulatory": 3, "sox": 3, "gdpr": 3, "hipaa": 3,
			"pii": 3, "sensitive data": 3, "confidential": 3, "breach": 3, "leak": 3,
			"exposed": 3, "security breach": 3, "data loss": 3,

			"rbac": 2, "dlp": 2, "sso": 2, "authentication": 2, "credentials": 2,
			"permissions": 2, "access control": 2, "authorization": 2, "privacy": 2,

			"security": 1, "best practices": 1, "governance": 1, "policy": 1,

			"general": 0, "info": 0, "question": 0, "how to": 0, "tutorial": 0,
		},

		// Deadline sensitivity indicators (0-2).
		Deadline: map[string]int{
			"deadline": 2, "due": 2, "presentation": 2, "meeting": 2, "tomorrow": 2,
			"today": 2, "this week": 2, "next week": 2, "urgent": 2, "asap": 2,
			"immediately": 2, "critical": 2, "emergency": 2,

			"soon": 1, "quickly": 1, "priority": 1, "important": 1, "timely": 1,

			"whenever": 0, "no rush": 0, "curious": 0, "learning": 0, "explore": 0,
		},

		// Frustration indicators (0-2). Independent of the Sentiment enum:
		// this is a scoring signal, not the LLM-reported tone.
		Frustration: map[string]int{
			"angry": 2, "frustrated": 2, "annoyed": 2, "upset": 2, "irritated": 2,
			"mad": 2, "furious": 2, "exasperated": 2, "fed up": 2, "disappointed": 2,

			"concerned": 1, "worried": 1, "confused": 1, "stuck": 1, "struggling": 1,
			"difficult": 1, "challenging": 1, "problem": 1, "issue": 1,

			"neutral": 0, "curious": 0, "wondering": 0, "learning": 0, "explore": 0,
			"question": 0, "help": 0, "assistance": 0, "support": 0,
		},
	}
}

// LoadKeywordTables returns the built-in tables, with any table present in
// the optional yaml override file replacing its built-in counterpart
// wholesale. An empty path means no override.
func LoadKeywordTables(path string) (*KeywordTables, error) {
	tables := DefaultKeywordTables()
	if path == "" {
		return tables, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyword tables: %w", err)
	}
	var override KeywordTables
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse keyword tables yaml: %w", err)
	}

	if len(override.Urgency) > 0 {
		tables.Urgency = override.Urgency
	}
	if len(override.BusinessImpact) > 0 {
		tables.BusinessImpact = override.BusinessImpact
	}
	if len(override.Severity) > 0 {
		tables.Severity = override.Severity
	}
	if len(override.Compliance) > 0 {
		tables.Compliance = override.Compliance
	}
	if len(override.Deadline) > 0 {
		tables.Deadline = override.Deadline
	}
	if len(override.Frustration) > 0 {
		tables.Frustration = override.Frustration
	}
	return tables, nil
}
