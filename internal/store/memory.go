package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/content"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/dailyplan"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/fingerprint"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/learner"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/pathplan"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/shared"
)

// Memory bundles in-memory implementations of every repository interface.
// Used for tests and runs without a database; all state is lost on exit.
type Memory struct {
	Plans        *MemoryPlanRepo
	Paths        *MemoryPathRepo
	Fingerprints *MemoryFingerprintRepo
	Mastery      *MemoryMasteryStore
	Profiles     *MemoryProfileStore
}

// NewMemory creates the in-memory repository bundle.
func NewMemory() *Memory {
	return &Memory{
		Plans:        &MemoryPlanRepo{plans: map[string]*dailyplan.Plan{}},
		Paths:        &MemoryPathRepo{},
		Fingerprints: &MemoryFingerprintRepo{items: map[string]*fingerprint.Fingerprint{}},
		Mastery:      &MemoryMasteryStore{records: map[string]learner.ConceptMastery{}},
		Profiles:     &MemoryProfileStore{profiles: map[string]learner.Profile{}},
	}
}

// MemoryPlanRepo is an in-memory dailyplan.PlanRepo.
type MemoryPlanRepo struct {
	mu    sync.Mutex
	plans map[string]*dailyplan.Plan
}

func memPlanKey(userID, date string) string { return userID + "|" + date }

func (r *MemoryPlanRepo) GetByUserDate(_ context.Context, userID, date string) (*dailyplan.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[memPlanKey(userID, date)]
	if !ok {
		return nil, fmt.Errorf("plan for %s/%s: %w", userID, date, shared.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *MemoryPlanRepo) Create(_ context.Context, p *dailyplan.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := memPlanKey(p.UserID, p.Date)
	if _, ok := r.plans[key]; ok {
		return fmt.Errorf("plan for %s/%s: %w", p.UserID, p.Date, shared.ErrAlreadyExists)
	}
	cp := *p
	r.plans[key] = &cp
	return nil
}

func (r *MemoryPlanRepo) Save(_ context.Context, p *dailyplan.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := memPlanKey(p.UserID, p.Date)
	stored, ok := r.plans[key]
	if !ok {
		return fmt.Errorf("plan for %s/%s: %w", p.UserID, p.Date, shared.ErrNotFound)
	}
	if stored.Version != p.Version {
		return fmt.Errorf("plan %s at version %d: %w", p.ID, p.Version, shared.ErrVersionConflict)
	}
	p.Version++
	cp := *p
	r.plans[key] = &cp
	return nil
}

// MemoryPathRepo is an in-memory pathplan.Repo.
type MemoryPathRepo struct {
	mu    sync.Mutex
	paths []*pathplan.Path
}

func (r *MemoryPathRepo) Append(_ context.Context, p *pathplan.Path) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.paths = append(r.paths, &cp)
	return nil
}

func (r *MemoryPathRepo) LatestByUser(_ context.Context, userID string) (*pathplan.Path, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *pathplan.Path
	for _, p := range r.paths {
		if p.UserID != userID {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("path for %s: %w", userID, shared.ErrNotFound)
	}
	cp := *latest
	return &cp, nil
}

// MemoryFingerprintRepo is an in-memory fingerprint.Repo.
type MemoryFingerprintRepo struct {
	mu    sync.Mutex
	items map[string]*fingerprint.Fingerprint
}

func (r *MemoryFingerprintRepo) ListRecent(_ context.Context, userID string, ct content.Type, subject curriculum.Subject, since time.Time) ([]fingerprint.Fingerprint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []fingerprint.Fingerprint
	for _, fp := range r.items {
		if fp.UserID == userID && fp.ContentType == ct && fp.Subject == subject && fp.LastUsedAt.After(since) {
			out = append(out, *fp)
		}
	}
	sortFingerprints(out)
	return out, nil
}

func (r *MemoryFingerprintRepo) ListByUserSince(_ context.Context, userID string, since time.Time) ([]fingerprint.Fingerprint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []fingerprint.Fingerprint
	for _, fp := range r.items {
		if fp.UserID == userID && fp.LastUsedAt.After(since) {
			out = append(out, *fp)
		}
	}
	sortFingerprints(out)
	return out, nil
}

func (r *MemoryFingerprintRepo) Insert(_ context.Context, fp *fingerprint.Fingerprint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.UserID == fp.UserID && existing.ContentHash == fp.ContentHash {
			return fmt.Errorf("fingerprint hash for %s: %w", fp.UserID, shared.ErrAlreadyExists)
		}
	}
	cp := *fp
	r.items[fp.ID] = &cp
	return nil
}

func (r *MemoryFingerprintRepo) Get(_ context.Context, id string) (*fingerprint.Fingerprint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fp, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("fingerprint %s: %w", id, shared.ErrNotFound)
	}
	cp := *fp
	return &cp, nil
}

func (r *MemoryFingerprintRepo) Update(_ context.Context, fp *fingerprint.Fingerprint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[fp.ID]; !ok {
		return fmt.Errorf("fingerprint %s: %w", fp.ID, shared.ErrNotFound)
	}
	cp := *fp
	r.items[fp.ID] = &cp
	return nil
}

func sortFingerprints(fps []fingerprint.Fingerprint) {
	sort.Slice(fps, func(i, j int) bool {
		return fps[i].LastUsedAt.After(fps[j].LastUsedAt)
	})
}

// MemoryMasteryStore is an in-memory learner.MasteryStore.
type MemoryMasteryStore struct {
	mu      sync.Mutex
	records map[string]learner.ConceptMastery
}

func (s *MemoryMasteryStore) ListByUser(_ context.Context, userID string) ([]learner.ConceptMastery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []learner.ConceptMastery
	for _, r := range s.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ConceptName < out[j].ConceptName })
	return out, nil
}

func (s *MemoryMasteryStore) Upsert(_ context.Context, m learner.ConceptMastery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.MasteryLevel = learner.Clamp01(m.MasteryLevel)
	s.records[m.UserID+"|"+m.ConceptName] = m
	return nil
}

// MemoryProfileStore is an in-memory learner.ProfileStore.
type MemoryProfileStore struct {
	mu       sync.Mutex
	profiles map[string]learner.Profile
}

func (s *MemoryProfileStore) Get(_ context.Context, userID string) (learner.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return learner.Profile{}, fmt.Errorf("profile for %s: %w", userID, shared.ErrNotFound)
	}
	return p, nil
}

func (s *MemoryProfileStore) Save(_ context.Context, p learner.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.UserID] = p
	return nil
}
