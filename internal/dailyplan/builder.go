package dailyplan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/learner"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/shared"
)

const (
	// targetMinutes is the packing target. Packing stops once accumulated
	// minutes reach it or maxSessions sessions exist; with session lengths
	// of at most 30 minutes the total always lands in [120,180].
	targetMinutes = 150
	maxSessions   = 15

	// staleFreshnessCutoff is the freshness score below which the content
	// format order is rotated to break repetition.
	staleFreshnessCutoff = 50.0

	freshnessLookbackDays = 30
)

// FreshnessScorer is the advisory view of the content fingerprint index the
// builder consults. It is optional; a nil scorer skips format rotation.
type FreshnessScorer interface {
	// FreshnessScore returns (distinct skill areas / total items) x 100
	// over the lookback window, or an error when no history exists.
	FreshnessScore(ctx context.Context, userID string, lookbackDays int) (float64, error)
}

// Builder creates daily plans via idempotent get-or-create.
type Builder struct {
	repo      PlanRepo
	profiles  learner.ProfileStore
	catalog   curriculum.Catalog
	freshness FreshnessScorer
	log       *zap.SugaredLogger
	now       func() time.Time
}

// NewBuilder creates a Builder. freshness may be nil.
func NewBuilder(repo PlanRepo, profiles learner.ProfileStore, catalog curriculum.Catalog, freshness FreshnessScorer, log *zap.SugaredLogger) *Builder {
	return &Builder{
		repo:      repo,
		profiles:  profiles,
		catalog:   catalog,
		freshness: freshness,
		log:       log,
		now:       time.Now,
	}
}

// GenerateDailyPlan returns the plan for (userID, date), building and
// persisting one if none exists. Repeated calls with the same key return the
// same plan unmodified; two concurrent calls converge on one stored plan via
// the repository's insert-if-absent.
func (b *Builder) GenerateDailyPlan(ctx context.Context, userID string, grade int, date string) (*Plan, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, fmt.Errorf("parse plan date %q: %w", date, err)
	}

	existing, err := b.repo.GetByUserDate(ctx, userID, date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("look up plan for %s/%s: %w", userID, date, err)
	}

	plan, err := b.build(ctx, userID, grade, date)
	if err != nil {
		return nil, err
	}

	if err := b.repo.Create(ctx, plan); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// Lost the creation race; the stored plan wins.
			return b.repo.GetByUserDate(ctx, userID, date)
		}
		return nil, fmt.Errorf("store plan for %s/%s: %w", userID, date, err)
	}
	b.log.Infow("daily plan created",
		"user_id", userID,
		"date", date,
		"sessions", len(plan.Sessions),
		"total_minutes", plan.TotalMinutes)
	return plan, nil
}

func (b *Builder) build(ctx context.Context, userID string, grade int, date string) (*Plan, error) {
	profile, err := b.profiles.Get(ctx, userID)
	if err != nil {
		b.log.Warnw("profile store unavailable, building plan with defaults", "user_id", userID, "error", err)
		profile = learner.DefaultProfile(userID)
	}

	adj := deriveAdjustments(profile)

	if b.freshness != nil {
		score, err := b.freshness.FreshnessScore(ctx, userID, freshnessLookbackDays)
		if err != nil {
			b.log.Debugw("freshness score unavailable", "user_id", userID, "error", err)
		} else if score < staleFreshnessCutoff && len(adj.contentPrefs) > 1 {
			adj.contentPrefs = append(adj.contentPrefs[1:], adj.contentPrefs[0])
			adj.notes = append(adj.notes, fmt.Sprintf("rotated content formats (freshness score %.0f)", score))
		}
	}

	focus := rankFocusAreas(profile, b.catalog, grade)
	if len(focus) == 0 {
		return nil, fmt.Errorf("no focus areas for %s at grade %d: %w", userID, grade, shared.ErrDataUnavailable)
	}

	difficulty := clampDifficulty(baseDifficulty(grade) + adj.difficultyDelta)

	var sessions []Session
	total := 0
	for total < targetMinutes && len(sessions) < maxSessions {
		fa := focus[len(sessions)%len(focus)]
		minutes := adj.sessionMinutes
		if remaining := targetMinutes - total; minutes > remaining {
			minutes = remaining
		}
		sessions = append(sessions, Session{
			ID:               uuid.NewString(),
			Subject:          fa.Subject,
			SkillArea:        fa.SkillArea,
			DifficultyLevel:  difficulty,
			EstimatedMinutes: minutes,
			ContentType:      adj.contentPrefs[len(sessions)%len(adj.contentPrefs)],
			StandardID:       standardFor(b.catalog, grade, fa),
			State:            SessionPending,
		})
		total += minutes
	}

	now := b.now()
	return &Plan{
		ID:           uuid.NewString(),
		UserID:       userID,
		GradeLevel:   grade,
		Date:         date,
		TotalMinutes: total,
		Sessions:     sessions,
		Adjustments:  adj.notes,
		State:        PlanNotStarted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
