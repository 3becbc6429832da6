package dailyplan

import (
	"fmt"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/content"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/learner"
)

const (
	// Accuracy thresholds shifting session difficulty by one level.
	highAccuracy = 85.0
	lowAccuracy  = 60.0

	// Attention-span thresholds selecting the session length.
	shortAttention = 15
	longAttention  = 30

	shortSessionMinutes   = 10
	defaultSessionMinutes = 20
	longSessionMinutes    = 25
)

// planAdjustments is the personalization derived from profile thresholds
// before any sessions are packed.
type planAdjustments struct {
	// difficultyDelta is added to the grade-banded base difficulty.
	difficultyDelta int

	sessionMinutes int

	// breakCadence is "frequent", "standard", or "infrequent".
	breakCadence string

	// contentPrefs is the ordered content-type preference list for the
	// learner's style; session packing cycles through it.
	contentPrefs []content.Type

	// notes records each applied adjustment with its triggering value.
	notes []string
}

// deriveAdjustments applies the profile-threshold rules: accuracy shifts
// difficulty, attention span sets session length and break cadence, learning
// style orders content types.
func deriveAdjustments(p learner.Profile) planAdjustments {
	adj := planAdjustments{
		sessionMinutes: defaultSessionMinutes,
		breakCadence:   "standard",
		contentPrefs:   stylePreferences(p.LearningStyle),
	}

	switch {
	case p.Accuracy > highAccuracy:
		adj.difficultyDelta = 1
		adj.notes = append(adj.notes, fmt.Sprintf("raised difficulty one level (accuracy %.0f%% > %.0f%%)", p.Accuracy, highAccuracy))
	case p.Accuracy < lowAccuracy && p.Accuracy > 0:
		adj.difficultyDelta = -1
		adj.notes = append(adj.notes, fmt.Sprintf("lowered difficulty one level (accuracy %.0f%% < %.0f%%)", p.Accuracy, lowAccuracy))
	}

	switch {
	case p.AttentionSpanMinutes > 0 && p.AttentionSpanMinutes < shortAttention:
		adj.sessionMinutes = shortSessionMinutes
		adj.breakCadence = "frequent"
		adj.notes = append(adj.notes, fmt.Sprintf("short %d-minute sessions with frequent breaks (attention span %d min)", shortSessionMinutes, p.AttentionSpanMinutes))
	case p.AttentionSpanMinutes > longAttention:
		adj.sessionMinutes = longSessionMinutes
		adj.breakCadence = "infrequent"
		adj.notes = append(adj.notes, fmt.Sprintf("longer %d-minute sessions with infrequent breaks (attention span %d min)", longSessionMinutes, p.AttentionSpanMinutes))
	}

	adj.notes = append(adj.notes, fmt.Sprintf("content ordered for %s learning style", styleOrDefault(p.LearningStyle)))
	return adj
}

// stylePreferences returns the ordered content-type list for a learning
// style. Mixed and unknown styles get the reading order.
func stylePreferences(style learner.LearningStyle) []content.Type {
	switch style {
	case learner.StyleVisual:
		return []content.Type{content.TypeActivity, content.TypeGame, content.TypeQuestion}
	case learner.StyleKinesthetic:
		return []content.Type{content.TypeGame, content.TypeActivity, content.TypeQuestion}
	case learner.StyleAuditory:
		return []content.Type{content.TypeQuestion, content.TypeActivity, content.TypeGame}
	default:
		return []content.Type{content.TypeQuestion, content.TypeActivity, content.TypeGame}
	}
}

func styleOrDefault(style learner.LearningStyle) learner.LearningStyle {
	if style == "" {
		return learner.StyleMixed
	}
	return style
}

// baseDifficulty is the grade-banded starting difficulty on the 1-10 scale.
func baseDifficulty(grade int) int {
	switch {
	case grade <= 2:
		return 1
	case grade <= 4:
		return 2
	case grade <= 6:
		return 3
	case grade <= 8:
		return 4
	default:
		return 5
	}
}

func clampDifficulty(d int) int {
	if d < 1 {
		return 1
	}
	if d > 10 {
		return 10
	}
	return d
}
