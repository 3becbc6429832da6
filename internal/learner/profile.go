package learner

import (
	"context"
	"time"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
)

// LearningStyle is the learner's preferred modality. Closed set; daily-plan
// content-type selection branches on exact values.
type LearningStyle string

const (
	StyleVisual      LearningStyle = "visual"
	StyleAuditory    LearningStyle = "auditory"
	StyleKinesthetic LearningStyle = "kinesthetic"
	StyleReading     LearningStyle = "reading"
	StyleMixed       LearningStyle = "mixed"
)

// SkillRef names one skill area within a subject.
type SkillRef struct {
	Subject   curriculum.Subject `json:"subject"`
	SkillArea string             `json:"skillArea"`
}

// Profile is the long-lived behavioral profile of a learner.
type Profile struct {
	UserID string

	// Accuracy is the running answer accuracy on the 0-100 scale.
	Accuracy float64

	// AttentionSpanMinutes is the observed sustained-focus span.
	AttentionSpanMinutes int

	LearningStyle LearningStyle

	Strengths  []SkillRef
	Weaknesses []SkillRef

	// LearningGaps are skill areas flagged by earlier assessments as
	// missing groundwork, distinct from current weaknesses.
	LearningGaps []SkillRef

	// UnmetGoals are curriculum goals not yet reached for the current grade.
	UnmetGoals []SkillRef

	TotalLearningMinutes int
	SessionsCompleted    int
	LastSessionAt        time.Time
}

// ProfileStore reads and writes learning profiles.
type ProfileStore interface {
	// Get returns the profile for a user, or shared.ErrNotFound.
	Get(ctx context.Context, userID string) (Profile, error)

	// Save upserts the profile keyed by userID.
	Save(ctx context.Context, p Profile) error
}

// DefaultProfile is the documented degraded-mode fallback used when the
// profile store is unreachable or has no row: accuracy 0, attention span 20
// minutes, mixed style, no strengths or weaknesses. Plan generation always
// succeeds with it.
func DefaultProfile(userID string) Profile {
	return Profile{
		UserID:               userID,
		Accuracy:             0,
		AttentionSpanMinutes: 20,
		LearningStyle:        StyleMixed,
	}
}

// HasSkill reports whether refs contains the (subject, skillArea) pair.
func HasSkill(refs []SkillRef, subject curriculum.Subject, skillArea string) bool {
	for _, r := range refs {
		if r.Subject == subject && r.SkillArea == skillArea {
			return true
		}
	}
	return false
}

// AddSkill appends the pair if absent and returns the updated slice.
func AddSkill(refs []SkillRef, subject curriculum.Subject, skillArea string) []SkillRef {
	if HasSkill(refs, subject, skillArea) {
		return refs
	}
	return append(refs, SkillRef{Subject: subject, SkillArea: skillArea})
}

// RemoveSkill drops the pair if present and returns the updated slice.
func RemoveSkill(refs []SkillRef, subject curriculum.Subject, skillArea string) []SkillRef {
	out := refs[:0]
	for _, r := range refs {
		if r.Subject == subject && r.SkillArea == skillArea {
			continue
		}
		out = append(out, r)
	}
	return out
}
