package session

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/content"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/dailyplan"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/fingerprint"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/shared"
)

type fakeFingerprintRepo struct {
	items map[string]*fingerprint.Fingerprint
}

func (r *fakeFingerprintRepo) ListRecent(context.Context, string, content.Type, curriculum.Subject, time.Time) ([]fingerprint.Fingerprint, error) {
	return nil, nil
}

func (r *fakeFingerprintRepo) ListByUserSince(context.Context, string, time.Time) ([]fingerprint.Fingerprint, error) {
	return nil, nil
}

func (r *fakeFingerprintRepo) Insert(_ context.Context, fp *fingerprint.Fingerprint) error {
	if r.items == nil {
		r.items = map[string]*fingerprint.Fingerprint{}
	}
	cp := *fp
	r.items[fp.ID] = &cp
	return nil
}

func (r *fakeFingerprintRepo) Get(_ context.Context, id string) (*fingerprint.Fingerprint, error) {
	fp, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *fp
	return &cp, nil
}

func (r *fakeFingerprintRepo) Update(_ context.Context, fp *fingerprint.Fingerprint) error {
	if _, ok := r.items[fp.ID]; !ok {
		return shared.ErrNotFound
	}
	cp := *fp
	r.items[fp.ID] = &cp
	return nil
}

func TestCompleteActivity_TracksContentUsage(t *testing.T) {
	repo := newFakePlanRepo()
	seedPlan(repo, "u1", "Fractions", "Geometry")

	fpRepo := &fakeFingerprintRepo{items: map[string]*fingerprint.Fingerprint{
		"fp-1": {ID: "fp-1", UserID: "u1", UsageCount: 1},
	}}
	log := zap.NewNop().Sugar()
	index := fingerprint.NewIndex(fpRepo, log)
	profiles := &fakeProfileStore{}
	builder := dailyplan.NewBuilder(repo, profiles, curriculum.DefaultCatalog(), index, log)
	o := New(repo, builder, &fakeMasteryStore{}, profiles, index, log)
	ctx := context.Background()

	if err := o.AttachContent(ctx, "u1", testDate, "s1", "fp-1"); err != nil {
		t.Fatalf("AttachContent: %v", err)
	}
	if _, err := o.CompleteActivity(ctx, "u1", testDate, "s1", perf(85, 18, dailyplan.FeedbackJustRight)); err != nil {
		t.Fatalf("CompleteActivity: %v", err)
	}

	stored, err := fpRepo.Get(ctx, "fp-1")
	if err != nil {
		t.Fatalf("fingerprint lookup: %v", err)
	}
	if stored.UsageCount != 2 {
		t.Errorf("usage count %d after completion, want 2", stored.UsageCount)
	}
}
