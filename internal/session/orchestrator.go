// Package session owns the daily session state machine: starting a day's
// plan, completing activities with adaptive adjustment, and flushing
// day-level aggregates to the long-lived learner profile when the plan
// finishes. Completions for one (userID, date) plan are serialized with a
// keyed lock so concurrent calls cannot double-advance the session index.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/dailyplan"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/fingerprint"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/learner"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/shared"
)

// keyedMutex serializes work per string key.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = map[string]*sync.Mutex{}
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// Orchestrator runs the daily session state machine.
type Orchestrator struct {
	plans    dailyplan.PlanRepo
	builder  *dailyplan.Builder
	mastery  learner.MasteryStore
	profiles learner.ProfileStore
	index    *fingerprint.Index
	log      *zap.SugaredLogger
	now      func() time.Time

	planLocks keyedMutex
}

// New creates an Orchestrator. index may be nil when no fingerprinting is
// wired.
func New(plans dailyplan.PlanRepo, builder *dailyplan.Builder, mastery learner.MasteryStore, profiles learner.ProfileStore, index *fingerprint.Index, log *zap.SugaredLogger) *Orchestrator {
	return &Orchestrator{
		plans:    plans,
		builder:  builder,
		mastery:  mastery,
		profiles: profiles,
		index:    index,
		log:      log,
		now:      time.Now,
	}
}

func planKey(userID, date string) string { return userID + "|" + date }

// StartDailySession returns today's plan and its current session, creating
// the plan if the day has none yet. Starting moves a fresh plan to
// in_progress; starting an already-completed plan is an invalid-state error.
func (o *Orchestrator) StartDailySession(ctx context.Context, userID string, grade int) (*dailyplan.Plan, *dailyplan.Session, error) {
	date := o.now().Format(dailyplan.DateLayout)

	unlock := o.planLocks.lock(planKey(userID, date))
	defer unlock()

	plan, err := o.builder.GenerateDailyPlan(ctx, userID, grade, date)
	if err != nil {
		return nil, nil, err
	}
	if plan.Completed() {
		return plan, nil, fmt.Errorf("plan %s for %s is already completed: %w", plan.ID, date, shared.ErrInvalidState)
	}

	if plan.State == dailyplan.PlanNotStarted {
		plan.State = dailyplan.PlanInProgress
		plan.UpdatedAt = o.now()
		if err := o.plans.Save(ctx, plan); err != nil {
			return nil, nil, fmt.Errorf("start plan %s: %w", plan.ID, err)
		}
		o.log.Infow("daily session started", "user_id", userID, "date", date, "plan_id", plan.ID)
	}

	current := &plan.Sessions[plan.CurrentSessionIndex]
	return plan, current, nil
}

// CompleteActivity records the outcome of one session: performance, mastery
// and struggle tagging, adaptive adjustments, index advancement, and, when
// the last session finishes, a flush of the day's aggregates to the profile.
// Completing a finished plan or session, or naming an unknown session, is an
// invalid-state error.
func (o *Orchestrator) CompleteActivity(ctx context.Context, userID, date, sessionID string, perf dailyplan.Performance) (*dailyplan.Plan, error) {
	if !perf.DifficultyFeedback.Valid() {
		return nil, fmt.Errorf("unknown difficulty feedback %q: %w", perf.DifficultyFeedback, shared.ErrInvalidState)
	}

	unlock := o.planLocks.lock(planKey(userID, date))
	defer unlock()

	plan, err := o.plans.GetByUserDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("load plan for %s/%s: %w", userID, date, err)
	}
	if plan.Completed() {
		return nil, fmt.Errorf("plan %s is already completed: %w", plan.ID, shared.ErrInvalidState)
	}

	sess, idx := plan.SessionByID(sessionID)
	if sess == nil {
		return nil, fmt.Errorf("plan %s has no session %s: %w", plan.ID, sessionID, shared.ErrInvalidState)
	}
	if sess.State == dailyplan.SessionCompleted {
		return nil, fmt.Errorf("session %s is already completed: %w", sessionID, shared.ErrInvalidState)
	}

	sess.State = dailyplan.SessionCompleted
	p := perf
	sess.Performance = &p

	plan.CompletedCount++
	plan.AccuracyAverage += (perf.Accuracy - plan.AccuracyAverage) / float64(plan.CompletedCount)

	if perf.Accuracy >= 80 && perf.DifficultyFeedback == dailyplan.FeedbackJustRight {
		plan.MasteryAchieved = appendUnique(plan.MasteryAchieved, sess.SkillArea)
	}
	if perf.Accuracy < 60 || perf.DifficultyFeedback == dailyplan.FeedbackTooHard {
		plan.StrugglingAreas = appendUnique(plan.StrugglingAreas, sess.SkillArea)
	}

	adjustments := deriveAdjustments(sess, perf)
	plan.AdaptiveAdjustments = append(plan.AdaptiveAdjustments, adjustments...)
	applyImmediate(plan, sess, adjustments)

	o.updateMastery(ctx, userID, sess, perf)

	if idx >= plan.CurrentSessionIndex {
		next := plan.CurrentSessionIndex
		for next < len(plan.Sessions) && plan.Sessions[next].State == dailyplan.SessionCompleted {
			next++
		}
		plan.CurrentSessionIndex = next
	}

	if plan.CurrentSessionIndex >= len(plan.Sessions) {
		plan.State = dailyplan.PlanCompleted
		o.flushToProfile(ctx, userID, plan)
	} else if plan.State == dailyplan.PlanNotStarted {
		plan.State = dailyplan.PlanInProgress
	}

	plan.UpdatedAt = o.now()
	if err := o.plans.Save(ctx, plan); err != nil {
		return nil, fmt.Errorf("save plan %s: %w", plan.ID, err)
	}

	if o.index != nil && sess.ContentFingerprintID != "" {
		if _, err := o.index.TrackUsage(ctx, userID, sess.ContentFingerprintID); err != nil {
			o.log.Warnw("content usage tracking failed", "fingerprint_id", sess.ContentFingerprintID, "error", err)
		}
	}

	o.log.Infow("activity completed",
		"user_id", userID,
		"plan_id", plan.ID,
		"session_id", sessionID,
		"accuracy", perf.Accuracy,
		"plan_state", plan.State,
		"adjustments", len(adjustments))
	return plan, nil
}

// AttachContent records which fingerprinted content a pending session will
// serve, so the completion path can track its usage.
func (o *Orchestrator) AttachContent(ctx context.Context, userID, date, sessionID, fingerprintID string) error {
	unlock := o.planLocks.lock(planKey(userID, date))
	defer unlock()

	plan, err := o.plans.GetByUserDate(ctx, userID, date)
	if err != nil {
		return fmt.Errorf("load plan for %s/%s: %w", userID, date, err)
	}
	sess, _ := plan.SessionByID(sessionID)
	if sess == nil {
		return fmt.Errorf("plan %s has no session %s: %w", plan.ID, sessionID, shared.ErrInvalidState)
	}
	if sess.State == dailyplan.SessionCompleted {
		return fmt.Errorf("session %s is already completed: %w", sessionID, shared.ErrInvalidState)
	}
	sess.ContentFingerprintID = fingerprintID
	plan.UpdatedAt = o.now()
	if err := o.plans.Save(ctx, plan); err != nil {
		return fmt.Errorf("save plan %s: %w", plan.ID, err)
	}
	return nil
}

// updateMastery folds the observed accuracy into the learner's mastery
// record for the session's skill area. Store failures are logged, not
// surfaced; mastery tracking must not block plan progress.
func (o *Orchestrator) updateMastery(ctx context.Context, userID string, sess *dailyplan.Session, perf dailyplan.Performance) {
	records, err := o.mastery.ListByUser(ctx, userID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		o.log.Warnw("mastery store unavailable, skipping mastery update", "user_id", userID, "error", err)
		return
	}

	record := learner.ConceptMastery{
		UserID:      userID,
		ConceptName: sess.SkillArea,
		StandardID:  sess.StandardID,
	}
	for _, r := range records {
		if r.ConceptName == sess.SkillArea {
			record = r
			break
		}
	}
	record.MasteryLevel = learner.BlendMastery(record.MasteryLevel, perf.Accuracy)
	record.PracticeCount++
	record.LastPracticeAt = o.now()
	if record.StandardID == "" {
		record.StandardID = sess.StandardID
	}

	if err := o.mastery.Upsert(ctx, record); err != nil {
		o.log.Warnw("mastery upsert failed", "user_id", userID, "concept", sess.SkillArea, "error", err)
	}
}

// flushToProfile writes the completed plan's aggregates to the long-lived
// profile: mastered areas become strengths and stop being weaknesses,
// struggling areas become weaknesses, and accuracy and time roll forward.
func (o *Orchestrator) flushToProfile(ctx context.Context, userID string, plan *dailyplan.Plan) {
	profile, err := o.profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			o.log.Warnw("profile store unavailable, skipping aggregate flush", "user_id", userID, "error", err)
			return
		}
		profile = learner.DefaultProfile(userID)
	}

	subjectOf := map[string]*dailyplan.Session{}
	minutes := 0
	for i := range plan.Sessions {
		s := &plan.Sessions[i]
		subjectOf[s.SkillArea] = s
		if s.Performance != nil {
			minutes += s.Performance.TimeSpentMinutes
		}
	}
	for _, area := range plan.MasteryAchieved {
		if s, ok := subjectOf[area]; ok {
			profile.Strengths = learner.AddSkill(profile.Strengths, s.Subject, area)
			profile.Weaknesses = learner.RemoveSkill(profile.Weaknesses, s.Subject, area)
		}
	}
	for _, area := range plan.StrugglingAreas {
		if s, ok := subjectOf[area]; ok {
			profile.Weaknesses = learner.AddSkill(profile.Weaknesses, s.Subject, area)
		}
	}

	if profile.Accuracy == 0 {
		profile.Accuracy = plan.AccuracyAverage
	} else {
		profile.Accuracy = 0.7*profile.Accuracy + 0.3*plan.AccuracyAverage
	}
	profile.TotalLearningMinutes += minutes
	profile.SessionsCompleted += plan.CompletedCount
	profile.LastSessionAt = o.now()

	if err := o.profiles.Save(ctx, profile); err != nil {
		o.log.Warnw("profile flush failed", "user_id", userID, "error", err)
		return
	}
	o.log.Infow("plan aggregates flushed to profile",
		"user_id", userID,
		"plan_id", plan.ID,
		"mastered", len(plan.MasteryAchieved),
		"struggling", len(plan.StrugglingAreas))
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
