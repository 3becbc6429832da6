package dailyplan

// DifficultyFeedback is the learner's self-reported difficulty signal for a
// completed session. Closed set; adjustment rules branch on exact values.
type DifficultyFeedback string

const (
	FeedbackTooEasy   DifficultyFeedback = "too_easy"
	FeedbackJustRight DifficultyFeedback = "just_right"
	FeedbackTooHard   DifficultyFeedback = "too_hard"
)

// Valid reports whether f is a member of the closed set.
func (f DifficultyFeedback) Valid() bool {
	switch f {
	case FeedbackTooEasy, FeedbackJustRight, FeedbackTooHard:
		return true
	}
	return false
}

// Performance is the observed outcome of one completed session.
type Performance struct {
	// Accuracy is on the 0-100 scale.
	Accuracy float64 `json:"accuracy"`

	TimeSpentMinutes int `json:"timeSpentMinutes"`

	// Engagement is a 0-100 self-report or derived signal.
	Engagement float64 `json:"engagement"`

	DifficultyFeedback DifficultyFeedback `json:"difficultyFeedback"`
}

// AdjustmentType identifies what an adaptive adjustment changes.
type AdjustmentType string

const (
	AdjustDifficultyIncrease AdjustmentType = "difficulty_increase"
	AdjustDifficultyDecrease AdjustmentType = "difficulty_decrease"
	AdjustPace               AdjustmentType = "pace_adjustment"
)

// Impact says when an adjustment takes effect.
type Impact string

const (
	// ImpactImmediate adjustments are applied synchronously to the
	// remaining sessions of the current plan.
	ImpactImmediate Impact = "immediate"

	// ImpactNextSession adjustments are recorded for future planning only.
	ImpactNextSession Impact = "next_session"
)

// AdaptiveAdjustment is a recorded, justified change to difficulty or pacing
// triggered by observed performance.
type AdaptiveAdjustment struct {
	Type   AdjustmentType `json:"type"`
	Reason string         `json:"reason"`
	Impact Impact         `json:"impact"`

	// NewValue is the adjusted quantity: the new difficulty level or the
	// new estimated minutes, depending on Type.
	NewValue float64 `json:"newValue"`
}
