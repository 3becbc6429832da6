package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/content"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/dailyplan"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/learner"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/shared"
)

type fakePlanRepo struct {
	plans map[string]*dailyplan.Plan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[string]*dailyplan.Plan{}}
}

func (r *fakePlanRepo) GetByUserDate(_ context.Context, userID, date string) (*dailyplan.Plan, error) {
	p, ok := r.plans[userID+"|"+date]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakePlanRepo) Create(_ context.Context, p *dailyplan.Plan) error {
	key := p.UserID + "|" + p.Date
	if _, ok := r.plans[key]; ok {
		return shared.ErrAlreadyExists
	}
	r.plans[key] = p
	return nil
}

func (r *fakePlanRepo) Save(_ context.Context, p *dailyplan.Plan) error {
	key := p.UserID + "|" + p.Date
	stored, ok := r.plans[key]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != p.Version {
		return shared.ErrVersionConflict
	}
	p.Version++
	r.plans[key] = p
	return nil
}

type fakeProfileStore struct {
	profiles map[string]learner.Profile
}

func (s *fakeProfileStore) Get(_ context.Context, userID string) (learner.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return learner.Profile{}, shared.ErrNotFound
	}
	return p, nil
}

func (s *fakeProfileStore) Save(_ context.Context, p learner.Profile) error {
	if s.profiles == nil {
		s.profiles = map[string]learner.Profile{}
	}
	s.profiles[p.UserID] = p
	return nil
}

type fakeMasteryStore struct {
	records map[string]learner.ConceptMastery
}

func (s *fakeMasteryStore) ListByUser(_ context.Context, userID string) ([]learner.ConceptMastery, error) {
	var out []learner.ConceptMastery
	for _, r := range s.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeMasteryStore) Upsert(_ context.Context, m learner.ConceptMastery) error {
	if s.records == nil {
		s.records = map[string]learner.ConceptMastery{}
	}
	s.records[m.UserID+"|"+m.ConceptName] = m
	return nil
}

const testDate = "2026-08-29"

func seedPlan(repo *fakePlanRepo, userID string, skillAreas ...string) *dailyplan.Plan {
	plan := &dailyplan.Plan{
		ID:         "plan-1",
		UserID:     userID,
		GradeLevel: 4,
		Date:       testDate,
		State:      dailyplan.PlanInProgress,
	}
	for i, area := range skillAreas {
		plan.Sessions = append(plan.Sessions, dailyplan.Session{
			ID:               "s" + string(rune('1'+i)),
			Subject:          curriculum.SubjectMath,
			SkillArea:        area,
			DifficultyLevel:  3,
			EstimatedMinutes: 20,
			ContentType:      content.TypeQuestion,
			State:            dailyplan.SessionPending,
		})
		plan.TotalMinutes += 20
	}
	repo.plans[userID+"|"+testDate] = plan
	return plan
}

func newTestOrchestrator(repo *fakePlanRepo, profiles *fakeProfileStore, mastery *fakeMasteryStore) *Orchestrator {
	log := zap.NewNop().Sugar()
	builder := dailyplan.NewBuilder(repo, profiles, curriculum.DefaultCatalog(), nil, log)
	return New(repo, builder, mastery, profiles, nil, log)
}

func perf(accuracy float64, timeSpent int, feedback dailyplan.DifficultyFeedback) dailyplan.Performance {
	return dailyplan.Performance{
		Accuracy:           accuracy,
		TimeSpentMinutes:   timeSpent,
		Engagement:         70,
		DifficultyFeedback: feedback,
	}
}

func TestCompleteActivity_PaceAdjustment(t *testing.T) {
	repo := newFakePlanRepo()
	seedPlan(repo, "u1", "Fractions", "Geometry")
	o := newTestOrchestrator(repo, &fakeProfileStore{}, &fakeMasteryStore{})

	plan, err := o.CompleteActivity(context.Background(), "u1", testDate, "s1", perf(75, 35, dailyplan.FeedbackJustRight))
	if err != nil {
		t.Fatalf("CompleteActivity: %v", err)
	}

	var pace *dailyplan.AdaptiveAdjustment
	for i := range plan.AdaptiveAdjustments {
		if plan.AdaptiveAdjustments[i].Type == dailyplan.AdjustPace {
			pace = &plan.AdaptiveAdjustments[i]
		}
	}
	if pace == nil {
		t.Fatal("35 minutes against a 20-minute estimate must trigger a pace adjustment")
	}
	if pace.NewValue != 24 {
		t.Errorf("pace newValue %v, want ceil(1.2*20)=24", pace.NewValue)
	}
	if pace.Impact != dailyplan.ImpactNextSession {
		t.Errorf("pace impact %q, want next_session", pace.Impact)
	}
}

func TestCompleteActivity_IndexMonotonicAndPlanCompletes(t *testing.T) {
	repo := newFakePlanRepo()
	seedPlan(repo, "u1", "Fractions", "Geometry", "Decimals")
	profiles := &fakeProfileStore{}
	o := newTestOrchestrator(repo, profiles, &fakeMasteryStore{})
	ctx := context.Background()

	prev := 0
	for _, id := range []string{"s1", "s2", "s3"} {
		updated, err := o.CompleteActivity(ctx, "u1", testDate, id, perf(85, 18, dailyplan.FeedbackJustRight))
		if err != nil {
			t.Fatalf("complete %s: %v", id, err)
		}
		if updated.CurrentSessionIndex < prev {
			t.Errorf("index regressed from %d to %d", prev, updated.CurrentSessionIndex)
		}
		if updated.CurrentSessionIndex > len(updated.Sessions) {
			t.Errorf("index %d exceeds session count %d", updated.CurrentSessionIndex, len(updated.Sessions))
		}
		prev = updated.CurrentSessionIndex
	}

	final := repo.plans["u1|"+testDate]
	if final.State != dailyplan.PlanCompleted {
		t.Fatalf("plan state %q after all sessions, want completed", final.State)
	}
	if final.CompletedCount != 3 || final.AccuracyAverage != 85 {
		t.Errorf("aggregates count=%d avg=%v, want 3 / 85", final.CompletedCount, final.AccuracyAverage)
	}

	profile, err := profiles.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("profile must exist after flush: %v", err)
	}
	if profile.SessionsCompleted != 3 || profile.TotalLearningMinutes != 54 {
		t.Errorf("flushed sessions=%d minutes=%d, want 3 / 54", profile.SessionsCompleted, profile.TotalLearningMinutes)
	}
	if !learner.HasSkill(profile.Strengths, curriculum.SubjectMath, "Fractions") {
		t.Error("mastered skill areas must flush to profile strengths")
	}
}

func TestCompleteActivity_ImmediateDecreasePropagates(t *testing.T) {
	repo := newFakePlanRepo()
	seedPlan(repo, "u1", "Fractions", "Fractions", "Geometry")
	o := newTestOrchestrator(repo, &fakeProfileStore{}, &fakeMasteryStore{})

	plan, err := o.CompleteActivity(context.Background(), "u1", testDate, "s1", perf(40, 20, dailyplan.FeedbackTooHard))
	if err != nil {
		t.Fatalf("CompleteActivity: %v", err)
	}

	if got := plan.Sessions[1].DifficultyLevel; got != 2 {
		t.Errorf("pending same-skill session difficulty %d, want lowered to 2", got)
	}
	if got := plan.Sessions[2].DifficultyLevel; got != 3 {
		t.Errorf("other-skill session difficulty %d, must stay 3", got)
	}
	if len(plan.StrugglingAreas) != 1 || plan.StrugglingAreas[0] != "Fractions" {
		t.Errorf("struggling areas %v, want [Fractions]", plan.StrugglingAreas)
	}
}

func TestCompleteActivity_InvalidStates(t *testing.T) {
	repo := newFakePlanRepo()
	seedPlan(repo, "u1", "Fractions")
	o := newTestOrchestrator(repo, &fakeProfileStore{}, &fakeMasteryStore{})
	ctx := context.Background()
	ok := perf(85, 18, dailyplan.FeedbackJustRight)

	if _, err := o.CompleteActivity(ctx, "u1", testDate, "nope", ok); !errors.Is(err, shared.ErrInvalidState) {
		t.Errorf("unknown session: got %v, want ErrInvalidState", err)
	}
	if _, err := o.CompleteActivity(ctx, "u1", testDate, "s1", perf(85, 18, "impossible")); !errors.Is(err, shared.ErrInvalidState) {
		t.Errorf("bad feedback: got %v, want ErrInvalidState", err)
	}

	if _, err := o.CompleteActivity(ctx, "u1", testDate, "s1", ok); err != nil {
		t.Fatalf("first completion: %v", err)
	}
	if _, err := o.CompleteActivity(ctx, "u1", testDate, "s1", ok); !errors.Is(err, shared.ErrInvalidState) {
		t.Errorf("repeat completion: got %v, want ErrInvalidState", err)
	}
}

func TestCompleteActivity_UpdatesConceptMastery(t *testing.T) {
	repo := newFakePlanRepo()
	seedPlan(repo, "u1", "Fractions", "Geometry")
	mastery := &fakeMasteryStore{}
	o := newTestOrchestrator(repo, &fakeProfileStore{}, mastery)

	if _, err := o.CompleteActivity(context.Background(), "u1", testDate, "s1", perf(80, 20, dailyplan.FeedbackJustRight)); err != nil {
		t.Fatalf("CompleteActivity: %v", err)
	}

	record, ok := mastery.records["u1|Fractions"]
	if !ok {
		t.Fatal("completion must upsert a mastery record for the skill area")
	}
	if record.MasteryLevel != learner.BlendMastery(0, 80) {
		t.Errorf("mastery %v, want blend of 0 and 80%% accuracy", record.MasteryLevel)
	}
	if record.PracticeCount != 1 {
		t.Errorf("practice count %d, want 1", record.PracticeCount)
	}
}

func TestStartDailySession(t *testing.T) {
	repo := newFakePlanRepo()
	profiles := &fakeProfileStore{profiles: map[string]learner.Profile{
		"u1": learner.DefaultProfile("u1"),
	}}
	o := newTestOrchestrator(repo, profiles, &fakeMasteryStore{})
	o.now = func() time.Time { return time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC) }

	plan, current, err := o.StartDailySession(context.Background(), "u1", 4)
	if err != nil {
		t.Fatalf("StartDailySession: %v", err)
	}
	if plan.Date != testDate {
		t.Errorf("plan date %q, want %q", plan.Date, testDate)
	}
	if plan.State != dailyplan.PlanInProgress {
		t.Errorf("plan state %q, want in_progress after start", plan.State)
	}
	if current == nil || current.ID != plan.Sessions[0].ID {
		t.Error("start must return the first pending session")
	}

	// Starting again resumes the same plan.
	again, _, err := o.StartDailySession(context.Background(), "u1", 4)
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if again.ID != plan.ID {
		t.Errorf("second start returned plan %q, want %q", again.ID, plan.ID)
	}
}

func TestStartDailySession_CompletedPlanIsInvalidState(t *testing.T) {
	repo := newFakePlanRepo()
	plan := seedPlan(repo, "u1", "Fractions")
	plan.State = dailyplan.PlanCompleted
	plan.CurrentSessionIndex = 1
	o := newTestOrchestrator(repo, &fakeProfileStore{}, &fakeMasteryStore{})
	o.now = func() time.Time { return time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC) }

	if _, _, err := o.StartDailySession(context.Background(), "u1", 4); !errors.Is(err, shared.ErrInvalidState) {
		t.Errorf("got %v, want ErrInvalidState for a completed plan", err)
	}
}
