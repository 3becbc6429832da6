package assess

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/learner"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/shared"
)

type fakeMasteryStore struct {
	records []learner.ConceptMastery
	err     error
}

func (f *fakeMasteryStore) ListByUser(_ context.Context, _ string) ([]learner.ConceptMastery, error) {
	return f.records, f.err
}
func (f *fakeMasteryStore) Upsert(_ context.Context, _ learner.ConceptMastery) error { return nil }

type fakeProfileStore struct {
	profile learner.Profile
	err     error
}

func (f *fakeProfileStore) Get(_ context.Context, _ string) (learner.Profile, error) {
	return f.profile, f.err
}
func (f *fakeProfileStore) Save(_ context.Context, _ learner.Profile) error { return nil }

func newAssessor(records []learner.ConceptMastery, profile learner.Profile) *Assessor {
	return New(
		curriculum.DefaultCatalog(),
		&fakeMasteryStore{records: records},
		&fakeProfileStore{profile: profile},
		zap.NewNop().Sugar(),
	)
}

func TestAssessLevel_MixedMasteryIsNotAStrength(t *testing.T) {
	records := []learner.ConceptMastery{
		{UserID: "u1", ConceptName: "fractions", MasteryLevel: 0.9},
		{UserID: "u1", ConceptName: "geometry", MasteryLevel: 0.4},
	}
	a := newAssessor(records, learner.Profile{UserID: "u1", Accuracy: 75})

	level, err := a.AssessLevel(context.Background(), "u1", 3, []curriculum.Subject{curriculum.SubjectMath})
	if err != nil {
		t.Fatal(err)
	}

	if got := level.SubjectMastery[curriculum.SubjectMath]; math.Abs(got-65) > 1e-9 {
		t.Errorf("subject mastery: got %.2f, want 65", got)
	}
	if len(level.StrengthAreas) != 0 {
		t.Errorf("65%% must not be a strength, got %v", level.StrengthAreas)
	}
	if len(level.GrowthAreas) != 0 {
		t.Errorf("65%% must not be a growth area, got %v", level.GrowthAreas)
	}

	ri := level.ReadinessIndicators[0]
	if ri.Ready {
		t.Error("avg mastery 0.65 < 0.7 must not be ready")
	}
	if ri.ConceptsBelowThreshold != 1 {
		t.Errorf("got %d concepts below threshold, want 1 (geometry at 0.4)", ri.ConceptsBelowThreshold)
	}
}

func TestAssessLevel_StrengthAndGrowthDisjoint(t *testing.T) {
	records := []learner.ConceptMastery{
		{UserID: "u1", ConceptName: "fractions", MasteryLevel: 0.95},
		{UserID: "u1", ConceptName: "place value numbers", MasteryLevel: 0.9},
		{UserID: "u1", ConceptName: "reading comprehension", MasteryLevel: 0.2},
	}
	a := newAssessor(records, learner.Profile{UserID: "u1"})

	subjects := []curriculum.Subject{curriculum.SubjectMath, curriculum.SubjectEnglish}
	level, err := a.AssessLevel(context.Background(), "u1", 3, subjects)
	if err != nil {
		t.Fatal(err)
	}

	inBoth := map[curriculum.Subject]bool{}
	for _, s := range level.StrengthAreas {
		inBoth[s] = true
	}
	for _, s := range level.GrowthAreas {
		if inBoth[s] {
			t.Errorf("subject %q in both strength and growth areas", s)
		}
	}
	if level.MasteryPercentage < 0 || level.MasteryPercentage > 100 {
		t.Errorf("mastery percentage out of range: %.2f", level.MasteryPercentage)
	}
}

func TestAssessLevel_DegradedStores(t *testing.T) {
	a := New(
		curriculum.DefaultCatalog(),
		&fakeMasteryStore{err: errors.New("store down")},
		&fakeProfileStore{err: shared.ErrNotFound},
		zap.NewNop().Sugar(),
	)

	level, err := a.AssessLevel(context.Background(), "u1", 4, []curriculum.Subject{curriculum.SubjectMath})
	if err != nil {
		t.Fatalf("degraded assessment must still succeed, got %v", err)
	}
	if level.Accuracy != 0 {
		t.Errorf("degraded accuracy: got %.1f, want 0", level.Accuracy)
	}
	if level.MasteryPercentage != 0 {
		t.Errorf("degraded mastery: got %.1f, want 0", level.MasteryPercentage)
	}
	if len(level.GrowthAreas) != 1 {
		t.Errorf("subject with no data should be a growth area, got %v", level.GrowthAreas)
	}
}

func TestMatchedMastery_TaggedRecordWins(t *testing.T) {
	c := curriculum.DefaultCatalog()
	std, _ := c.Standard("math-3-frac")

	records := []learner.ConceptMastery{
		{ConceptName: "something unrelated", StandardID: "math-3-frac", MasteryLevel: 0.8},
		{ConceptName: "fractions", MasteryLevel: 0.4},
	}
	avg, n := MatchedMastery(records, std)
	if n != 2 {
		t.Fatalf("got %d matches, want 2", n)
	}
	if math.Abs(avg-0.6) > 1e-9 {
		t.Errorf("got avg %.2f, want 0.60", avg)
	}
}
