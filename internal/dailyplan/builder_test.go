package dailyplan

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/content"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/learner"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/shared"
)

type fakePlanRepo struct {
	plans   map[string]*Plan
	creates int
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[string]*Plan{}}
}

func planKey(userID, date string) string { return userID + "|" + date }

func (r *fakePlanRepo) GetByUserDate(_ context.Context, userID, date string) (*Plan, error) {
	p, ok := r.plans[planKey(userID, date)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakePlanRepo) Create(_ context.Context, p *Plan) error {
	key := planKey(p.UserID, p.Date)
	if _, ok := r.plans[key]; ok {
		return shared.ErrAlreadyExists
	}
	r.creates++
	r.plans[key] = p
	return nil
}

func (r *fakePlanRepo) Save(_ context.Context, p *Plan) error {
	key := planKey(p.UserID, p.Date)
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
	err      error
}

func (s *fakeProfileStore) Get(_ context.Context, userID string) (learner.Profile, error) {
	if s.err != nil {
		return learner.Profile{}, s.err
	}
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

type fakeFreshness struct {
	score float64
	err   error
}

func (f *fakeFreshness) FreshnessScore(context.Context, string, int) (float64, error) {
	return f.score, f.err
}

func testProfile(userID string) learner.Profile {
	p := learner.DefaultProfile(userID)
	p.Accuracy = 70
	return p
}

func newTestBuilder(t *testing.T, repo PlanRepo, profiles learner.ProfileStore, freshness FreshnessScorer) *Builder {
	t.Helper()
	return NewBuilder(repo, profiles, curriculum.DefaultCatalog(), freshness, zap.NewNop().Sugar())
}

func TestGenerateDailyPlan_Idempotent(t *testing.T) {
	repo := newFakePlanRepo()
	profiles := &fakeProfileStore{profiles: map[string]learner.Profile{"u1": testProfile("u1")}}
	b := newTestBuilder(t, repo, profiles, nil)
	ctx := context.Background()

	first, err := b.GenerateDailyPlan(ctx, "u1", 4, "2026-08-29")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := b.GenerateDailyPlan(ctx, "u1", 4, "2026-08-29")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("plan ids differ across calls: %q vs %q", first.ID, second.ID)
	}
	if repo.creates != 1 {
		t.Errorf("got %d creates, want 1", repo.creates)
	}
}

func TestGenerateDailyPlan_PackingBounds(t *testing.T) {
	repo := newFakePlanRepo()
	profiles := &fakeProfileStore{profiles: map[string]learner.Profile{"u1": testProfile("u1")}}
	b := newTestBuilder(t, repo, profiles, nil)

	plan, err := b.GenerateDailyPlan(context.Background(), "u1", 4, "2026-08-29")
	if err != nil {
		t.Fatalf("GenerateDailyPlan: %v", err)
	}

	if plan.TotalMinutes < 120 || plan.TotalMinutes > 180 {
		t.Errorf("total minutes %d outside [120,180]", plan.TotalMinutes)
	}
	if len(plan.Sessions) > maxSessions {
		t.Errorf("got %d sessions, want at most %d", len(plan.Sessions), maxSessions)
	}
	sum := 0
	for _, s := range plan.Sessions {
		sum += s.EstimatedMinutes
		if s.State != SessionPending {
			t.Errorf("session %s created in state %q, want pending", s.ID, s.State)
		}
		if s.DifficultyLevel != 2 {
			t.Errorf("session difficulty %d, want grade-4 base 2", s.DifficultyLevel)
		}
	}
	if sum != plan.TotalMinutes {
		t.Errorf("TotalMinutes %d does not match session sum %d", plan.TotalMinutes, sum)
	}
	if plan.State != PlanNotStarted || plan.CurrentSessionIndex != 0 {
		t.Errorf("new plan state %q index %d, want not_started/0", plan.State, plan.CurrentSessionIndex)
	}
}

func TestGenerateDailyPlan_ShortAttentionSpan(t *testing.T) {
	p := testProfile("u1")
	p.AttentionSpanMinutes = 10
	repo := newFakePlanRepo()
	b := newTestBuilder(t, repo, &fakeProfileStore{profiles: map[string]learner.Profile{"u1": p}}, nil)

	plan, err := b.GenerateDailyPlan(context.Background(), "u1", 4, "2026-08-29")
	if err != nil {
		t.Fatalf("GenerateDailyPlan: %v", err)
	}
	if len(plan.Sessions) != 15 {
		t.Fatalf("got %d sessions, want 15 ten-minute sessions", len(plan.Sessions))
	}
	for _, s := range plan.Sessions {
		if s.EstimatedMinutes != 10 {
			t.Errorf("session length %d, want 10", s.EstimatedMinutes)
		}
	}
	if !hasNoteContaining(plan.Adjustments, "frequent breaks") {
		t.Errorf("adjustments %v missing frequent-breaks note", plan.Adjustments)
	}
}

func TestGenerateDailyPlan_HighAccuracyRaisesDifficulty(t *testing.T) {
	p := testProfile("u1")
	p.Accuracy = 92
	repo := newFakePlanRepo()
	b := newTestBuilder(t, repo, &fakeProfileStore{profiles: map[string]learner.Profile{"u1": p}}, nil)

	plan, err := b.GenerateDailyPlan(context.Background(), "u1", 4, "2026-08-29")
	if err != nil {
		t.Fatalf("GenerateDailyPlan: %v", err)
	}
	if got := plan.Sessions[0].DifficultyLevel; got != 3 {
		t.Errorf("difficulty %d, want grade-4 base 2 raised to 3", got)
	}
	if !hasNoteContaining(plan.Adjustments, "raised difficulty") {
		t.Errorf("adjustments %v missing raised-difficulty note", plan.Adjustments)
	}
}

func TestGenerateDailyPlan_StyleOrdersContentTypes(t *testing.T) {
	p := testProfile("u1")
	p.LearningStyle = learner.StyleKinesthetic
	repo := newFakePlanRepo()
	b := newTestBuilder(t, repo, &fakeProfileStore{profiles: map[string]learner.Profile{"u1": p}}, nil)

	plan, err := b.GenerateDailyPlan(context.Background(), "u1", 4, "2026-08-29")
	if err != nil {
		t.Fatalf("GenerateDailyPlan: %v", err)
	}
	want := []content.Type{content.TypeGame, content.TypeActivity, content.TypeQuestion}
	for i := 0; i < 3 && i < len(plan.Sessions); i++ {
		if plan.Sessions[i].ContentType != want[i] {
			t.Errorf("session %d content type %q, want %q", i, plan.Sessions[i].ContentType, want[i])
		}
	}
}

func TestGenerateDailyPlan_WeaknessesRankFirst(t *testing.T) {
	p := testProfile("u1")
	p.UnmetGoals = []learner.SkillRef{{Subject: curriculum.SubjectScience, SkillArea: "Life Science"}}
	p.LearningGaps = []learner.SkillRef{{Subject: curriculum.SubjectEnglish, SkillArea: "Reading"}}
	p.Weaknesses = []learner.SkillRef{{Subject: curriculum.SubjectMath, SkillArea: "Fractions"}}
	repo := newFakePlanRepo()
	b := newTestBuilder(t, repo, &fakeProfileStore{profiles: map[string]learner.Profile{"u1": p}}, nil)

	plan, err := b.GenerateDailyPlan(context.Background(), "u1", 4, "2026-08-29")
	if err != nil {
		t.Fatalf("GenerateDailyPlan: %v", err)
	}
	first := plan.Sessions[0]
	if first.Subject != curriculum.SubjectMath || first.SkillArea != "Fractions" {
		t.Errorf("first session targets %s/%s, want the weakness mathematics/Fractions", first.Subject, first.SkillArea)
	}
	second := plan.Sessions[1]
	if second.Subject != curriculum.SubjectEnglish || second.SkillArea != "Reading" {
		t.Errorf("second session targets %s/%s, want the gap english/Reading", second.Subject, second.SkillArea)
	}
}

func TestGenerateDailyPlan_ConvergesAfterLostRace(t *testing.T) {
	repo := newFakePlanRepo()
	winner := &Plan{ID: "winner", UserID: "u1", Date: "2026-08-29"}
	losing := &racingRepo{inner: repo, winner: winner}
	b := newTestBuilder(t, losing, &fakeProfileStore{profiles: map[string]learner.Profile{"u1": testProfile("u1")}}, nil)

	plan, err := b.GenerateDailyPlan(context.Background(), "u1", 4, "2026-08-29")
	if err != nil {
		t.Fatalf("GenerateDailyPlan: %v", err)
	}
	if plan.ID != "winner" {
		t.Errorf("got plan %q, want the concurrently stored plan to win", plan.ID)
	}
}

// racingRepo simulates another caller inserting the plan between the initial
// lookup and the create.
type racingRepo struct {
	inner  *fakePlanRepo
	winner *Plan
	raced  bool
}

func (r *racingRepo) GetByUserDate(ctx context.Context, userID, date string) (*Plan, error) {
	if r.raced {
		return r.winner, nil
	}
	return r.inner.GetByUserDate(ctx, userID, date)
}

func (r *racingRepo) Create(context.Context, *Plan) error {
	r.raced = true
	return shared.ErrAlreadyExists
}

func (r *racingRepo) Save(ctx context.Context, p *Plan) error { return r.inner.Save(ctx, p) }

func TestGenerateDailyPlan_DegradedProfileStore(t *testing.T) {
	repo := newFakePlanRepo()
	b := newTestBuilder(t, repo, &fakeProfileStore{err: errors.New("store down")}, nil)

	plan, err := b.GenerateDailyPlan(context.Background(), "u1", 4, "2026-08-29")
	if err != nil {
		t.Fatalf("plan generation must succeed in degraded mode, got %v", err)
	}
	for _, s := range plan.Sessions {
		if s.EstimatedMinutes != 20 {
			t.Errorf("degraded session length %d, want default 20", s.EstimatedMinutes)
		}
	}
}

func TestGenerateDailyPlan_StaleContentRotatesFormats(t *testing.T) {
	repo := newFakePlanRepo()
	profiles := &fakeProfileStore{profiles: map[string]learner.Profile{"u1": testProfile("u1")}}
	b := newTestBuilder(t, repo, profiles, &fakeFreshness{score: 30})

	plan, err := b.GenerateDailyPlan(context.Background(), "u1", 4, "2026-08-29")
	if err != nil {
		t.Fatalf("GenerateDailyPlan: %v", err)
	}
	// Mixed style starts [question, activity, game]; rotation moves
	// question to the back.
	if got := plan.Sessions[0].ContentType; got != content.TypeActivity {
		t.Errorf("first content type %q, want activity after rotation", got)
	}
	if !hasNoteContaining(plan.Adjustments, "rotated content formats") {
		t.Errorf("adjustments %v missing rotation note", plan.Adjustments)
	}
}

func TestGenerateDailyPlan_RejectsBadDate(t *testing.T) {
	repo := newFakePlanRepo()
	b := newTestBuilder(t, repo, &fakeProfileStore{}, nil)

	if _, err := b.GenerateDailyPlan(context.Background(), "u1", 4, "29/08/2026"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func hasNoteContaining(notes []string, substr string) bool {
	for _, n := range notes {
		if strings.Contains(n, substr) {
			return true
		}
	}
	return false
}
