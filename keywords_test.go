package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultKeywordTables(t *testing.T) {
	tables := DefaultKeywordTables()

	cases := []struct {
		table  map[string]int
		phrase string
		want   int
	}{
		{tables.Urgency, "urgent", 3},
		{tables.Urgency, "bug", 2},
		{tables.Urgency, "question", 1},
		{tables.Urgency, "curious", 0},
		{tables.BusinessImpact, "entire organization", 3},
		{tables.BusinessImpact, "team", 2},
		{tables.Severity, "production", 3},
		{tables.Severity, "setup", 2},
		{tables.Severity, "how to", 1},
		{tables.Compliance, "gdpr", 3},
		{tables.Compliance, "rbac", 2},
		{tables.Compliance, "governance", 1},
		{tables.Deadline, "deadline", 2},
		{tables.Deadline, "soon", 1},
		{tables.Deadline, "no rush", 0},
		{tables.Frustration, "angry", 2},
		{tables.Frustration, "confused", 1},
		{tables.Frustration, "curious", 0},
	}
	for _, tc := range cases {
		got, ok := tc.table[tc.phrase]
		if !ok {
			t.Fatalf("expected phrase %q in table", tc.phrase)
		}
		if got != tc.want {
			t.Fatalf("phrase %q: expected score %d, got %d", tc.phrase, tc.want, got)
		}
	}
}

func TestLoadKeywordTablesNoPath(t *testing.T) {
	tables, err := LoadKeywordTables("")
	if err != nil {
		t.Fatalf("LoadKeywordTables failed: %v", err)
	}
	if tables.Urgency["urgent"] != 3 {
		t.Fatalf("expected built-in tables without an override path")
	}
}

func TestLoadKeywordTablesOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	yaml := `urgency:
  "on fire": 3
  "sev1": 3
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write override file: %v", err)
	}

	tables, err := LoadKeywordTables(path)
	if err != nil {
		t.Fatalf("LoadKeywordTables failed: %v", err)
	}

	// Overridden table is replaced wholesale.
	if tables.Urgency["on fire"] != 3 {
		t.Fatalf("expected override phrase to score 3")
	}
	if _, ok := tables.Urgency["urgent"]; ok {
		t.Fatalf("expected built-in urgency table to be replaced, not merged")
	}
	// Untouched tables keep their defaults.
	if tables.Compliance["gdpr"] != 3 {
		t.Fatalf("expected non-overridden tables to keep defaults")
	}
}

func TestLoadKeywordTablesMissingFile(t *testing.T) {
	if _, err := LoadKeywordTables(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing override file")
	}
}
