package ui

import (
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/josephgoksu/smarttask/internal/analysis"
)

// Tier is the visual priority bucket of a scored task.
type Tier string

const (
	TierHigh     Tier = "high"
	TierMedium   Tier = "medium"
	TierLow      Tier = "low"
	TierUnscored Tier = "unscored"
)

const (
	HighScoreThreshold   = 70.0
	MediumScoreThreshold = 40.0

	// MaxScoreMagnitude bounds displayable scores; larger ones cannot be shown as
	// an exact integer.
	MaxScoreMagnitude = 1 << 53
)

// usableScore reports whether s is present, finite and within MaxScoreMagnitude.
func usableScore(s analysis.Score) bool {
	return s.Valid && math.Abs(s.Value) <= MaxScoreMagnitude
}

// TierFor buckets a score: >= 70 high, [40, 70) medium, < 40 low. Scores are
// untrusted input, so an absent, non-finite or out-of-bounds score is TierUnscored.
func TierFor(s analysis.Score) Tier {
	if !usableScore(s) {
		return TierUnscored
	}
	switch {
	case s.Value >= HighScoreThreshold:
		return TierHigh
	case s.Value >= MediumScoreThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// Title returns the display name ("High", "Medium", ...).
func (t Tier) Title() string {
	// Casers are stateful, so one per call.
	return cases.Title(language.English).String(string(t))
}
