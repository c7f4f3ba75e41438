package main

import (
	"math"
	"strings"
)

// Weights of the six signal scores in the final priority score.
const (
	weightUrgency        = 1.7
	weightBusinessImpact = 1.2
	weightSeverity       = 1.3
	weightCompliance     = 1.4
	weightDeadline       = 1.3
	weightFrustration    = 1.1
)

// Tier thresholds on the rounded final score (inclusive lower bounds).
const (
	p0Threshold = 9
	p1Threshold = 6
)

// maxKeywordScore returns the highest configured score among all phrases
// present as substrings of text, or def when nothing matches. Worst signal
// wins: multiple matches never sum.
func maxKeywordScore(text string, table map[string]int, def int) int {
	max := def
	for phrase, score := range table {
		if strings.Contains(text, phrase) && score > max {
			max = score
		}
	}
	return max
}

// ScoreText computes the six signal scores for the given text.
// Matching is case-insensitive.
func (kt *KeywordTables) ScoreText(text string) ScoreVector {
	text = strings.ToLower(text)
	return ScoreVector{
		Urgency:        maxKeywordScore(text, kt.Urgency, 0),
		BusinessImpact: maxKeywordScore(text, kt.BusinessImpact, 0),
		Severity:       maxKeywordScore(text, kt.Severity, 0),
		Compliance:     maxKeywordScore(text, kt.Compliance, 0),
		Deadline:       maxKeywordScore(text, kt.Deadline, 0),
		Frustration:    maxKeywordScore(text, kt.Frustration, 0),
	}
}

// FinalScore applies the fixed linear combination and rounds the sum to the
// nearest integer. Rounding is math.Round, i.e. half away from zero, so a
// weighted sum of exactly x.5 rounds up.
func (v ScoreVector) FinalScore() int {
	sum := float64(v.Urgency)*weightUrgency +
		float64(v.BusinessImpact)*weightBusinessImpact +
		float64(v.Severity)*weightSeverity +
		float64(v.Compliance)*weightCompliance +
		float64(v.Deadline)*weightDeadline +
		float64(v.Frustration)*weightFrustration
	return int(math.Round(sum))
}

func priorityForScore(final int) Priority {
	switch {
	case final >= p0Threshold:
		return PriorityP0
	case final >= p1Threshold:
		return PriorityP1
	default:
		return PriorityP2
	}
}

// ScorePriority maps text to a priority tier and the rounded final score.
// Pure: identical text always yields the identical result, and empty text
// scores zero everywhere and lands in P2.
func (kt *KeywordTables) ScorePriority(text string) (Priority, int) {
	final := kt.ScoreText(text).FinalScore()
	return priorityForScore(final), final
}
