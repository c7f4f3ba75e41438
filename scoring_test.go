package main

import "testing"

func TestScorePriorityDeterministic(t *testing.T) {
	tables := DefaultKeywordTables()
	text := "urgent production outage affecting the entire organization"

	firstPriority, firstScore := tables.ScorePriority(text)
	for i := 0; i < 10; i++ {
		priority, score := tables.ScorePriority(text)
		if priority != firstPriority || score != firstScore {
			t.Fatalf("ScorePriority not deterministic: got (%s, %d), want (%s, %d)", priority, score, firstPriority, firstScore)
		}
	}
}

func TestScorePriorityEmptyText(t *testing.T) {
	tables := DefaultKeywordTables()

	vector := tables.ScoreText("")
	if vector != (ScoreVector{}) {
		t.Fatalf("expected all-zero score vector for empty text, got %+v", vector)
	}

	priority, score := tables.ScorePriority("")
	if score != 0 {
		t.Fatalf("expected final score 0 for empty text, got %d", score)
	}
	if priority != PriorityP2 {
		t.Fatalf("expected P2 for empty text, got %s", priority)
	}
}

func TestScorePriorityWorstCaseExample(t *testing.T) {
	tables := DefaultKeywordTables()
	// urgency=3, impact=3, severity=3, compliance=3, deadline=2, frustration=2:
	// round(5.1+3.6+3.9+4.2+2.6+2.2) = round(21.6) = 22.
	text := "This is urgent: production is down for the entire organization, we have a gdpr deadline and everyone is angry."

	priority, score := tables.ScorePriority(text)
	if score != 22 {
		t.Fatalf("expected final score 22, got %d", score)
	}
	if priority != PriorityP0 {
		t.Fatalf("expected P0, got %s", priority)
	}
}

func TestScorePriorityTierBoundaries(t *testing.T) {
	tables := DefaultKeywordTables()

	cases := []struct {
		name      string
		text      string
		wantScore int
		wantTier  Priority
	}{
		// urgency 3 (5.1) + severity 1 (1.3) + deadline 2 (2.6) = 9.0
		{"exactly nine is P0", "urgent question", 9, PriorityP0},
		// urgency 3 (5.1) + deadline 2 (2.6) = 7.7 -> 8
		{"eight is P1", "urgent", 8, PriorityP1},
		// urgency 2 (3.4) + deadline 1 (1.3) + frustration 1 (1.1) = 5.8 -> 6
		{"exactly six is P1", "important stuck", 6, PriorityP1},
		// urgency 2 (3.4) + deadline 1 (1.3) = 4.7 -> 5
		{"five is P2", "important", 5, PriorityP2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			priority, score := tables.ScorePriority(tc.text)
			if score != tc.wantScore {
				t.Fatalf("text %q: expected score %d, got %d", tc.text, tc.wantScore, score)
			}
			if priority != tc.wantTier {
				t.Fatalf("text %q: expected %s, got %s", tc.text, tc.wantTier, priority)
			}
		})
	}
}

func TestScoreTextTakesMaxNotSum(t *testing.T) {
	tables := DefaultKeywordTables()

	// Three urgency-3 phrases must still score 3, never 9.
	vector := tables.ScoreText("down broken failed")
	if vector.Urgency != 3 {
		t.Fatalf("expected urgency max of 3, got %d", vector.Urgency)
	}
}

func TestScoreTextCaseInsensitive(t *testing.T) {
	tables := DefaultKeywordTables()

	_, lower := tables.ScorePriority("urgent question")
	_, upper := tables.ScorePriority("URGENT Question")
	if lower != upper {
		t.Fatalf("expected case-insensitive scoring, got %d vs %d", lower, upper)
	}
}

func TestScoreTextComponents(t *testing.T) {
	tables := DefaultKeywordTables()

	vector := tables.ScoreText("gdpr breach for the bi team, need it today, i am worried")
	want := ScoreVector{
		Urgency:        0,
		BusinessImpact: 2,
		Severity:       0,
		Compliance:     3,
		Deadline:       2,
		Frustration:    1,
	}
	if vector != want {
		t.Fatalf("unexpected score vector: got %+v, want %+v", vector, want)
	}
}

func TestPriorityRankOrdering(t *testing.T) {
	if !(PriorityP0.Rank() < PriorityP1.Rank() && PriorityP1.Rank() < PriorityP2.Rank()) {
		t.Fatalf("priority rank order broken: P0=%d P1=%d P2=%d", PriorityP0.Rank(), PriorityP1.Rank(), PriorityP2.Rank())
	}
}
