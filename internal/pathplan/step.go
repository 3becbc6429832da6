// Package pathplan sequences curriculum standards into a personalized
// learning path: target-level selection, remediation/grade-level/advanced
// step pools, and prerequisite-aware ordering with a priority ready-queue.
package pathplan

import (
	"fmt"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/shared"
)

// Priority orders steps within the ready queue.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// rank maps priorities to sort order: high < medium < low.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// StepStatus is a learning step's lifecycle state.
type StepStatus string

const (
	StatusNotStarted  StepStatus = "not_started"
	StatusInProgress  StepStatus = "in_progress"
	StatusMastered    StepStatus = "mastered"
	StatusNeedsReview StepStatus = "needs_review"
)

// statusOrder encodes forward progress for the regression guard.
var statusOrder = map[StepStatus]int{
	StatusNotStarted:  0,
	StatusInProgress:  1,
	StatusNeedsReview: 2,
	StatusMastered:    3,
}

// Step is one unit of a learning path, created per path generation.
type Step struct {
	ID         string             `json:"id"`
	StandardID string             `json:"standardId"`
	Subject    curriculum.Subject `json:"subject"`
	SkillArea  string             `json:"skillArea"`
	Title      string             `json:"title"`

	PrerequisitesMet bool     `json:"prerequisitesMet"`
	EstimatedWeeks   float64  `json:"estimatedWeeks"`
	Priority         Priority `json:"priority"`

	Adaptations        []string `json:"adaptations,omitempty"`
	CompletionCriteria []string `json:"completionCriteria"`

	Status StepStatus `json:"status"`
}

// Transition moves the step to next. The only allowed regression is
// mastered to needs_review; any other backward move is an invalid state.
func (s *Step) Transition(next StepStatus) error {
	if s.Status == next {
		return nil
	}
	if s.Status == StatusMastered && next == StatusNeedsReview {
		s.Status = next
		return nil
	}
	if statusOrder[next] < statusOrder[s.Status] {
		return fmt.Errorf("step %s: %s -> %s: %w", s.ID, s.Status, next, shared.ErrInvalidState)
	}
	s.Status = next
	return nil
}
