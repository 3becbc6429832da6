// Package dailyplan builds time-boxed daily learning plans: ranked focus
// areas from the learner profile, personalized adjustments from profile
// thresholds, and greedy session packing toward a minute target. Plans are
// created get-or-create keyed by (userID, date); at most one plan exists per
// key.
package dailyplan

import (
	"context"
	"time"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/content"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
)

// DateLayout is the canonical plan date format.
const DateLayout = "2006-01-02"

// PlanState is the lifecycle state of a daily plan.
type PlanState string

const (
	PlanNotStarted PlanState = "not_started"
	PlanInProgress PlanState = "in_progress"

	// PlanCompleted is terminal. Completing further activities on a
	// completed plan is an invalid-state error.
	PlanCompleted PlanState = "completed"
)

// SessionState is the lifecycle state of one session within a plan.
type SessionState string

const (
	SessionPending   SessionState = "pending"
	SessionCompleted SessionState = "completed"
)

// Session is one time-boxed unit of a daily plan.
type Session struct {
	ID        string             `json:"id"`
	Subject   curriculum.Subject `json:"subject"`
	SkillArea string             `json:"skillArea"`

	// DifficultyLevel is on the 1-10 scale, grade-banded then adjusted by
	// the learner's accuracy.
	DifficultyLevel  int          `json:"difficultyLevel"`
	EstimatedMinutes int          `json:"estimatedMinutes"`
	ContentType      content.Type `json:"contentType"`

	// StandardID links the session to a curriculum standard when one
	// matches the skill area; empty otherwise.
	StandardID string `json:"curriculumStandardId,omitempty"`

	State SessionState `json:"state"`

	// Performance is recorded when the session completes.
	Performance *Performance `json:"performance,omitempty"`

	// ContentFingerprintID is set once content has been served and tracked
	// for this session.
	ContentFingerprintID string `json:"contentFingerprintId,omitempty"`
}

// Plan is one learner's plan for one date.
type Plan struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	GradeLevel int    `json:"gradeLevel"`

	// Date is in DateLayout form. (UserID, Date) is the plan's natural key.
	Date string `json:"date"`

	// TotalMinutes is the sum of session estimates.
	TotalMinutes int       `json:"totalMinutes"`
	Sessions     []Session `json:"sessions"`

	// Adjustments records, in plain text, the personalizations applied at
	// build time and why.
	Adjustments []string `json:"adjustments"`

	State PlanState `json:"state"`

	// CurrentSessionIndex is the next session to run. Monotonically
	// non-decreasing, never exceeds len(Sessions).
	CurrentSessionIndex int `json:"currentSessionIndex"`

	// CompletedCount and AccuracyAverage aggregate over completed sessions
	// only.
	CompletedCount  int     `json:"completedCount"`
	AccuracyAverage float64 `json:"accuracyAverage"`

	// MasteryAchieved and StrugglingAreas collect skill areas tagged during
	// the day, flushed to the long-lived profile when the plan completes.
	MasteryAchieved []string `json:"masteryAchieved,omitempty"`
	StrugglingAreas []string `json:"strugglingAreas,omitempty"`

	// AdaptiveAdjustments records every adjustment derived from session
	// performance, immediate or deferred.
	AdaptiveAdjustments []AdaptiveAdjustment `json:"adaptiveAdjustments,omitempty"`

	// Version supports optimistic concurrency on saves.
	Version int64 `json:"version"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Completed reports whether the plan has reached its terminal state.
func (p *Plan) Completed() bool { return p.State == PlanCompleted }

// RemainingSessions returns the not-yet-completed sessions from the current
// index onward.
func (p *Plan) RemainingSessions() []*Session {
	var out []*Session
	for i := range p.Sessions {
		if i >= p.CurrentSessionIndex && p.Sessions[i].State != SessionCompleted {
			out = append(out, &p.Sessions[i])
		}
	}
	return out
}

// SessionByID returns the session with the given ID and its index, or
// (nil, -1).
func (p *Plan) SessionByID(id string) (*Session, int) {
	for i := range p.Sessions {
		if p.Sessions[i].ID == id {
			return &p.Sessions[i], i
		}
	}
	return nil, -1
}

// PlanRepo persists daily plans, one per (userID, date).
type PlanRepo interface {
	// GetByUserDate returns the plan for the key, or shared.ErrNotFound.
	GetByUserDate(ctx context.Context, userID, date string) (*Plan, error)

	// Create inserts a new plan. Returns shared.ErrAlreadyExists when a
	// plan already exists for (UserID, Date); the caller re-reads and
	// converges on the stored plan.
	Create(ctx context.Context, p *Plan) error

	// Save persists plan mutations. The write succeeds only when the
	// stored version still matches p.Version; on success p.Version is
	// incremented, otherwise shared.ErrVersionConflict is returned.
	Save(ctx context.Context, p *Plan) error
}
