// Package learner holds the per-user state the core reads and writes:
// concept mastery records and the behavioral learning profile. Both live
// behind store interfaces supplied by the host; internal/store ships GORM
// and in-memory implementations.
package learner

import (
	"context"
	"time"
)

// ConceptMastery is a normalized [0,1] competence estimate for one concept
// for one learner. Updated after every completed activity, never deleted.
type ConceptMastery struct {
	UserID      string
	ConceptName string

	// StandardID is an optional explicit tag linking the concept to a
	// curriculum standard. When set it takes precedence over the keyword
	// heuristic; it is empty on legacy records.
	StandardID string

	// MasteryLevel is clamped to [0,1].
	MasteryLevel float64

	PracticeCount  int
	LastPracticeAt time.Time
}

// Clamp01 bounds a mastery level to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// MasteryStore reads and writes concept mastery records.
type MasteryStore interface {
	// ListByUser returns all mastery records for a user.
	ListByUser(ctx context.Context, userID string) ([]ConceptMastery, error)

	// Upsert inserts or updates the record keyed by (userID, conceptName).
	Upsert(ctx context.Context, m ConceptMastery) error
}

// BlendMastery folds a new observation into an existing mastery level using
// an exponential moving average: 70% history, 30% observation. accuracy is
// on the 0-100 scale.
func BlendMastery(old, accuracy float64) float64 {
	return Clamp01(0.7*old + 0.3*accuracy/100)
}
