package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/content"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/dailyplan"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/fingerprint"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/learner"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/pathplan"
)

// planRow is the persisted shape of one daily plan. One row per
// (user_id, date), enforced by a unique index.
type planRow struct {
	ID                  string `gorm:"primaryKey"`
	UserID              string `gorm:"uniqueIndex:idx_plans_user_date"`
	Date                string `gorm:"uniqueIndex:idx_plans_user_date"`
	GradeLevel          int
	TotalMinutes        int
	State               string
	CurrentSessionIndex int
	CompletedCount      int
	AccuracyAverage     float64
	Sessions            datatypes.JSON
	Adjustments         datatypes.JSON
	MasteryAchieved     datatypes.JSON
	StrugglingAreas     datatypes.JSON
	AdaptiveAdjustments datatypes.JSON
	Version             int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (planRow) TableName() string { return "daily_plans" }

func planToRow(p *dailyplan.Plan) (*planRow, error) {
	row := &planRow{
		ID:                  p.ID,
		UserID:              p.UserID,
		Date:                p.Date,
		GradeLevel:          p.GradeLevel,
		TotalMinutes:        p.TotalMinutes,
		State:               string(p.State),
		CurrentSessionIndex: p.CurrentSessionIndex,
		CompletedCount:      p.CompletedCount,
		AccuracyAverage:     p.AccuracyAverage,
		Version:             p.Version,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
	for _, field := range []struct {
		dst *datatypes.JSON
		src any
	}{
		{&row.Sessions, p.Sessions},
		{&row.Adjustments, p.Adjustments},
		{&row.MasteryAchieved, p.MasteryAchieved},
		{&row.StrugglingAreas, p.StrugglingAreas},
		{&row.AdaptiveAdjustments, p.AdaptiveAdjustments},
	} {
		raw, err := json.Marshal(field.src)
		if err != nil {
			return nil, fmt.Errorf("encode plan %s: %w", p.ID, err)
		}
		*field.dst = datatypes.JSON(raw)
	}
	return row, nil
}

func rowToPlan(row *planRow) (*dailyplan.Plan, error) {
	p := &dailyplan.Plan{
		ID:                  row.ID,
		UserID:              row.UserID,
		Date:                row.Date,
		GradeLevel:          row.GradeLevel,
		TotalMinutes:        row.TotalMinutes,
		State:               dailyplan.PlanState(row.State),
		CurrentSessionIndex: row.CurrentSessionIndex,
		CompletedCount:      row.CompletedCount,
		AccuracyAverage:     row.AccuracyAverage,
		Version:             row.Version,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
	for _, field := range []struct {
		src datatypes.JSON
		dst any
	}{
		{row.Sessions, &p.Sessions},
		{row.Adjustments, &p.Adjustments},
		{row.MasteryAchieved, &p.MasteryAchieved},
		{row.StrugglingAreas, &p.StrugglingAreas},
		{row.AdaptiveAdjustments, &p.AdaptiveAdjustments},
	} {
		if len(field.src) == 0 {
			continue
		}
		if err := json.Unmarshal(field.src, field.dst); err != nil {
			return nil, fmt.Errorf("decode plan %s: %w", row.ID, err)
		}
	}
	return p, nil
}

// pathRow is the persisted shape of one learning path. Append-only.
type pathRow struct {
	ID                string `gorm:"primaryKey"`
	UserID            string `gorm:"index"`
	GradeLevel        int
	CurrentLevel      datatypes.JSON
	TargetLevel       datatypes.JSON
	Sequence          datatypes.JSON
	EstimatedWeeks    float64
	AdaptationReasons datatypes.JSON
	CycleStandardIDs  datatypes.JSON
	CreatedAt         time.Time
}

func (pathRow) TableName() string { return "learning_paths" }

func pathToRow(p *pathplan.Path) (*pathRow, error) {
	row := &pathRow{
		ID:             p.ID,
		UserID:         p.UserID,
		GradeLevel:     p.GradeLevel,
		EstimatedWeeks: p.EstimatedWeeks,
		CreatedAt:      p.CreatedAt,
	}
	for _, field := range []struct {
		dst *datatypes.JSON
		src any
	}{
		{&row.CurrentLevel, p.CurrentLevel},
		{&row.TargetLevel, p.TargetLevel},
		{&row.Sequence, p.Sequence},
		{&row.AdaptationReasons, p.AdaptationReasons},
		{&row.CycleStandardIDs, p.CycleStandardIDs},
	} {
		raw, err := json.Marshal(field.src)
		if err != nil {
			return nil, fmt.Errorf("encode path %s: %w", p.ID, err)
		}
		*field.dst = datatypes.JSON(raw)
	}
	return row, nil
}

func rowToPath(row *pathRow) (*pathplan.Path, error) {
	p := &pathplan.Path{
		ID:             row.ID,
		UserID:         row.UserID,
		GradeLevel:     row.GradeLevel,
		EstimatedWeeks: row.EstimatedWeeks,
		CreatedAt:      row.CreatedAt,
	}
	for _, field := range []struct {
		src datatypes.JSON
		dst any
	}{
		{row.CurrentLevel, &p.CurrentLevel},
		{row.TargetLevel, &p.TargetLevel},
		{row.Sequence, &p.Sequence},
		{row.AdaptationReasons, &p.AdaptationReasons},
		{row.CycleStandardIDs, &p.CycleStandardIDs},
	} {
		if len(field.src) == 0 {
			continue
		}
		if err := json.Unmarshal(field.src, field.dst); err != nil {
			return nil, fmt.Errorf("decode path %s: %w", row.ID, err)
		}
	}
	return p, nil
}

// fingerprintRow is the persisted shape of one content fingerprint. The
// unique (user_id, content_hash) index backs the check-then-insert race
// guard.
type fingerprintRow struct {
	ID                  string `gorm:"primaryKey"`
	UserID              string `gorm:"uniqueIndex:idx_fingerprints_user_hash;index:idx_fingerprints_scope"`
	ContentType         string `gorm:"index:idx_fingerprints_scope"`
	Subject             string `gorm:"index:idx_fingerprints_scope"`
	SkillArea           string
	GradeLevel          int
	ContentHash         string `gorm:"uniqueIndex:idx_fingerprints_user_hash"`
	SemanticFingerprint string
	KeyWords            datatypes.JSON
	Difficulty          int
	UsageCount          int
	LastUsedAt          time.Time `gorm:"index"`
	CreatedAt           time.Time
}

func (fingerprintRow) TableName() string { return "fingerprints" }

func fingerprintToRow(fp *fingerprint.Fingerprint) (*fingerprintRow, error) {
	keyWords, err := json.Marshal(fp.KeyWords)
	if err != nil {
		return nil, fmt.Errorf("encode fingerprint %s: %w", fp.ID, err)
	}
	return &fingerprintRow{
		ID:                  fp.ID,
		UserID:              fp.UserID,
		ContentType:         string(fp.ContentType),
		Subject:             string(fp.Subject),
		SkillArea:           fp.SkillArea,
		GradeLevel:          fp.GradeLevel,
		ContentHash:         fp.ContentHash,
		SemanticFingerprint: fp.SemanticFingerprint,
		KeyWords:            datatypes.JSON(keyWords),
		Difficulty:          fp.Difficulty,
		UsageCount:          fp.UsageCount,
		LastUsedAt:          fp.LastUsedAt,
		CreatedAt:           fp.CreatedAt,
	}, nil
}

func rowToFingerprint(row *fingerprintRow) (*fingerprint.Fingerprint, error) {
	fp := &fingerprint.Fingerprint{
		ID:                  row.ID,
		UserID:              row.UserID,
		ContentType:         content.Type(row.ContentType),
		Subject:             curriculum.Subject(row.Subject),
		SkillArea:           row.SkillArea,
		GradeLevel:          row.GradeLevel,
		ContentHash:         row.ContentHash,
		SemanticFingerprint: row.SemanticFingerprint,
		Difficulty:          row.Difficulty,
		UsageCount:          row.UsageCount,
		LastUsedAt:          row.LastUsedAt,
		CreatedAt:           row.CreatedAt,
	}
	if len(row.KeyWords) > 0 {
		if err := json.Unmarshal(row.KeyWords, &fp.KeyWords); err != nil {
			return nil, fmt.Errorf("decode fingerprint %s: %w", row.ID, err)
		}
	}
	return fp, nil
}

// masteryRow is the persisted shape of one concept mastery record, upserted
// by (user_id, concept_name).
type masteryRow struct {
	UserID         string `gorm:"primaryKey"`
	ConceptName    string `gorm:"primaryKey"`
	StandardID     string
	MasteryLevel   float64
	PracticeCount  int
	LastPracticeAt time.Time
}

func (masteryRow) TableName() string { return "concept_masteries" }

func masteryToRow(m learner.ConceptMastery) masteryRow {
	return masteryRow{
		UserID:         m.UserID,
		ConceptName:    m.ConceptName,
		StandardID:     m.StandardID,
		MasteryLevel:   learner.Clamp01(m.MasteryLevel),
		PracticeCount:  m.PracticeCount,
		LastPracticeAt: m.LastPracticeAt,
	}
}

func rowToMastery(row masteryRow) learner.ConceptMastery {
	return learner.ConceptMastery{
		UserID:         row.UserID,
		ConceptName:    row.ConceptName,
		StandardID:     row.StandardID,
		MasteryLevel:   row.MasteryLevel,
		PracticeCount:  row.PracticeCount,
		LastPracticeAt: row.LastPracticeAt,
	}
}

// profileRow is the persisted shape of one learning profile, upserted by
// user_id.
type profileRow struct {
	UserID               string `gorm:"primaryKey"`
	Accuracy             float64
	AttentionSpanMinutes int
	LearningStyle        string
	Strengths            datatypes.JSON
	Weaknesses           datatypes.JSON
	LearningGaps         datatypes.JSON
	UnmetGoals           datatypes.JSON
	TotalLearningMinutes int
	SessionsCompleted    int
	LastSessionAt        time.Time
	UpdatedAt            time.Time
}

func (profileRow) TableName() string { return "learner_profiles" }

func profileToRow(p learner.Profile) (*profileRow, error) {
	row := &profileRow{
		UserID:               p.UserID,
		Accuracy:             p.Accuracy,
		AttentionSpanMinutes: p.AttentionSpanMinutes,
		LearningStyle:        string(p.LearningStyle),
		TotalLearningMinutes: p.TotalLearningMinutes,
		SessionsCompleted:    p.SessionsCompleted,
		LastSessionAt:        p.LastSessionAt,
	}
	for _, field := range []struct {
		dst *datatypes.JSON
		src []learner.SkillRef
	}{
		{&row.Strengths, p.Strengths},
		{&row.Weaknesses, p.Weaknesses},
		{&row.LearningGaps, p.LearningGaps},
		{&row.UnmetGoals, p.UnmetGoals},
	} {
		raw, err := json.Marshal(field.src)
		if err != nil {
			return nil, fmt.Errorf("encode profile %s: %w", p.UserID, err)
		}
		*field.dst = datatypes.JSON(raw)
	}
	return row, nil
}

func rowToProfile(row *profileRow) (learner.Profile, error) {
	p := learner.Profile{
		UserID:               row.UserID,
		Accuracy:             row.Accuracy,
		AttentionSpanMinutes: row.AttentionSpanMinutes,
		LearningStyle:        learner.LearningStyle(row.LearningStyle),
		TotalLearningMinutes: row.TotalLearningMinutes,
		SessionsCompleted:    row.SessionsCompleted,
		LastSessionAt:        row.LastSessionAt,
	}
	for _, field := range []struct {
		src datatypes.JSON
		dst *[]learner.SkillRef
	}{
		{row.Strengths, &p.Strengths},
		{row.Weaknesses, &p.Weaknesses},
		{row.LearningGaps, &p.LearningGaps},
		{row.UnmetGoals, &p.UnmetGoals},
	} {
		if len(field.src) == 0 {
			continue
		}
		if err := json.Unmarshal(field.src, field.dst); err != nil {
			return learner.Profile{}, fmt.Errorf("decode profile %s: %w", row.UserID, err)
		}
	}
	return p, nil
}
