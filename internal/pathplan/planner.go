package pathplan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/assess"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/learner"
)

// Path is a personalized learning path. Paths are append-only: a new level
// assessment produces a new path with a new ID, never a mutation of an old
// one.
type Path struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	GradeLevel int    `json:"gradeLevel"`

	CurrentLevel *assess.PersonalizedLevel `json:"currentLevel"`
	TargetLevel  TargetLevel               `json:"targetLevel"`

	Sequence []Step `json:"learningSequence"`

	// EstimatedWeeks is the sum of the step estimates.
	EstimatedWeeks float64 `json:"estimatedWeeks"`

	AdaptationReasons []string `json:"adaptationReasons"`

	// CycleStandardIDs lists standards excluded from ordered sequencing by
	// a prerequisite cycle. They still appear at the tail of Sequence.
	CycleStandardIDs []string `json:"cycleStandardIds,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Repo persists learning paths append-only.
type Repo interface {
	// Append stores a new path.
	Append(ctx context.Context, p *Path) error

	// LatestByUser returns the most recent path for a user, or
	// shared.ErrNotFound.
	LatestByUser(ctx context.Context, userID string) (*Path, error)
}

// Planner generates learning paths.
type Planner struct {
	catalog  curriculum.Catalog
	assessor *assess.Assessor
	mastery  learner.MasteryStore
	profiles learner.ProfileStore
	repo     Repo
	log      *zap.SugaredLogger
	now      func() time.Time
}

// New creates a Planner. repo may be nil for hosts that persist paths
// themselves.
func New(catalog curriculum.Catalog, assessor *assess.Assessor, mastery learner.MasteryStore, profiles learner.ProfileStore, repo Repo, log *zap.SugaredLogger) *Planner {
	return &Planner{
		catalog:  catalog,
		assessor: assessor,
		mastery:  mastery,
		profiles: profiles,
		repo:     repo,
		log:      log,
		now:      time.Now,
	}
}

// GeneratePath assesses the learner's current level and builds a sequenced
// path toward the selected target level. Store failures degrade to defaults;
// prerequisite cycles degrade to a partial ordered plan with the cycle
// members reported in metadata. The path always generates.
func (p *Planner) GeneratePath(ctx context.Context, userID string, grade int, subjects []curriculum.Subject) (*Path, error) {
	if len(subjects) == 0 {
		subjects = curriculum.AllSubjects()
	}

	level, err := p.assessor.AssessLevel(ctx, userID, grade, subjects)
	if err != nil {
		return nil, fmt.Errorf("assess level: %w", err)
	}

	records, err := p.mastery.ListByUser(ctx, userID)
	if err != nil {
		p.log.Warnw("mastery store unavailable, planning with empty records", "user_id", userID, "error", err)
		records = nil
	}
	profile, err := p.profiles.Get(ctx, userID)
	if err != nil {
		profile = learner.DefaultProfile(userID)
	}

	target, reasons := selectTarget(level)

	var steps []Step
	if remediation := buildRemediationSteps(p.catalog, records, grade, subjects, profile.LearningStyle); len(remediation) > 0 {
		steps = append(steps, remediation...)
		reasons = append(reasons, fmt.Sprintf(
			"%d remediation steps from grade %d (matched mastery < %.0f%%)",
			len(remediation), grade-1, remediationCutoff*100))
	}
	steps = append(steps, buildGradeLevelSteps(p.catalog, records, grade, subjects, profile.LearningStyle)...)
	if target.Strategy == StrategyAccelerate {
		advanced := buildAdvancedSteps(p.catalog, records, target.GradeLevel, subjects, profile.LearningStyle)
		steps = append(steps, advanced...)
		reasons = append(reasons, fmt.Sprintf(
			"%d grade-%d preview steps (difficulty <= %d, max %d per subject)",
			len(advanced), target.GradeLevel, advancedMaxDiff, advancedPerSubject))
	}
	if a := styleAdaptation(profile.LearningStyle); a != "" {
		reasons = append(reasons, fmt.Sprintf("differentiated for %s learning style: %s", profile.LearningStyle, a))
	}

	ordered, cycleIDs := sequenceSteps(p.catalog, steps)
	if len(cycleIDs) > 0 {
		p.log.Warnw("prerequisite cycle in path, members appended unsequenced",
			"user_id", userID, "standards", cycleIDs)
	}

	var totalWeeks float64
	for _, s := range ordered {
		totalWeeks += s.EstimatedWeeks
	}

	path := &Path{
		ID:                uuid.NewString(),
		UserID:            userID,
		GradeLevel:        grade,
		CurrentLevel:      level,
		TargetLevel:       target,
		Sequence:          ordered,
		EstimatedWeeks:    totalWeeks,
		AdaptationReasons: reasons,
		CycleStandardIDs:  cycleIDs,
		CreatedAt:         p.now(),
	}

	if p.repo != nil {
		if err := p.repo.Append(ctx, path); err != nil {
			return nil, fmt.Errorf("persist path: %w", err)
		}
	}
	return path, nil
}
