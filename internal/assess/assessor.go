// Package assess turns mastery records and the curriculum catalog into a
// current-level snapshot per learner: subject mastery percentages, strength
// and growth areas, and per-subject readiness indicators.
package assess

import (
	"context"

	"go.uber.org/zap"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/learner"
)

const (
	// StrengthThreshold is the subject mastery percentage at or above which
	// a subject counts as a strength area.
	StrengthThreshold = 80.0

	// GrowthThreshold is the subject mastery percentage below which a
	// subject counts as a growth area.
	GrowthThreshold = 60.0

	// readyAvgMastery and readyMaxWeak define the readiness rule: average
	// matched mastery at least 0.7 with at most two concepts below 0.6.
	readyAvgMastery = 0.7
	readyWeakCutoff = 0.6
	readyMaxWeak    = 2
)

// ReadinessIndicator reports whether a learner is ready to advance in one
// subject.
type ReadinessIndicator struct {
	Subject                curriculum.Subject `json:"subject"`
	Ready                  bool               `json:"ready"`
	AverageMastery         float64            `json:"averageMastery"`
	ConceptsBelowThreshold int                `json:"conceptsBelowThreshold"`
}

// PersonalizedLevel is the current-level snapshot for one learner and grade.
type PersonalizedLevel struct {
	UserID     string `json:"userId"`
	GradeLevel int    `json:"gradeLevel"`

	// MasteryPercentage is the mean of the per-subject percentages, in [0,100].
	MasteryPercentage float64 `json:"masteryPercentage"`

	// SubjectMastery maps each assessed subject to its percentage.
	SubjectMastery map[curriculum.Subject]float64 `json:"subjectMastery"`

	// StrengthAreas and GrowthAreas are disjoint subject lists.
	StrengthAreas []curriculum.Subject `json:"strengthAreas"`
	GrowthAreas   []curriculum.Subject `json:"growthAreas"`

	ReadinessIndicators []ReadinessIndicator `json:"readinessIndicators"`

	// Accuracy is the profile's running accuracy, 0 in degraded mode.
	Accuracy float64 `json:"accuracy"`
}

// Assessor builds PersonalizedLevel snapshots.
type Assessor struct {
	catalog  curriculum.Catalog
	mastery  learner.MasteryStore
	profiles learner.ProfileStore
	log      *zap.SugaredLogger
}

// New creates an Assessor.
func New(catalog curriculum.Catalog, mastery learner.MasteryStore, profiles learner.ProfileStore, log *zap.SugaredLogger) *Assessor {
	return &Assessor{catalog: catalog, mastery: mastery, profiles: profiles, log: log}
}

// AssessLevel assesses the learner's current level across the given subjects
// at the given grade. Store failures degrade to documented defaults (no
// mastery records, accuracy 0) rather than failing.
func (a *Assessor) AssessLevel(ctx context.Context, userID string, grade int, subjects []curriculum.Subject) (*PersonalizedLevel, error) {
	records, err := a.mastery.ListByUser(ctx, userID)
	if err != nil {
		a.log.Warnw("mastery store unavailable, assessing with empty records", "user_id", userID, "error", err)
		records = nil
	}

	profile, err := a.profiles.Get(ctx, userID)
	if err != nil {
		a.log.Debugw("profile unavailable, using defaults", "user_id", userID, "error", err)
		profile = learner.DefaultProfile(userID)
	}

	level := &PersonalizedLevel{
		UserID:         userID,
		GradeLevel:     grade,
		SubjectMastery: make(map[curriculum.Subject]float64, len(subjects)),
		Accuracy:       profile.Accuracy,
	}

	var pctSum float64
	for _, subject := range subjects {
		standards := a.catalog.ByGradeSubject(grade, subject)
		matched := matchRecords(records, standards)

		var sum float64
		var below int
		for _, m := range matched {
			sum += m.MasteryLevel
			if m.MasteryLevel < readyWeakCutoff {
				below++
			}
		}

		var avg float64
		if len(matched) > 0 {
			avg = sum / float64(len(matched))
		}
		pct := avg * 100
		level.SubjectMastery[subject] = pct
		pctSum += pct

		switch {
		case pct >= StrengthThreshold:
			level.StrengthAreas = append(level.StrengthAreas, subject)
		case pct < GrowthThreshold:
			level.GrowthAreas = append(level.GrowthAreas, subject)
		}

		level.ReadinessIndicators = append(level.ReadinessIndicators, ReadinessIndicator{
			Subject:                subject,
			Ready:                  avg >= readyAvgMastery && below <= readyMaxWeak,
			AverageMastery:         avg,
			ConceptsBelowThreshold: below,
		})
	}

	if len(subjects) > 0 {
		level.MasteryPercentage = pctSum / float64(len(subjects))
	}
	return level, nil
}

// matchRecords returns the mastery records relating to any of the given
// standards. An explicit StandardID tag wins; untagged records fall back to
// the keyword heuristic.
func matchRecords(records []learner.ConceptMastery, standards []curriculum.Standard) []learner.ConceptMastery {
	byID := make(map[string]bool, len(standards))
	for _, s := range standards {
		byID[s.ID] = true
	}

	var matched []learner.ConceptMastery
	for _, r := range records {
		if r.StandardID != "" {
			if byID[r.StandardID] {
				matched = append(matched, r)
			}
			continue
		}
		for _, s := range standards {
			if curriculum.RelatesTo(r.ConceptName, s) {
				matched = append(matched, r)
				break
			}
		}
	}
	return matched
}

// MatchedMastery returns the average mastery of the records relating to one
// standard and the number of matches. Used by path planning to derive step
// status and prerequisite satisfaction.
func MatchedMastery(records []learner.ConceptMastery, std curriculum.Standard) (avg float64, n int) {
	var sum float64
	for _, r := range records {
		related := false
		if r.StandardID != "" {
			related = r.StandardID == std.ID
		} else {
			related = curriculum.RelatesTo(r.ConceptName, std)
		}
		if related {
			sum += r.MasteryLevel
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}
