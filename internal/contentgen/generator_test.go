package contentgen

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/content"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/fingerprint"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/shared"
)

type memFingerprintRepo struct {
	items map[string]*fingerprint.Fingerprint
}

func newMemFingerprintRepo() *memFingerprintRepo {
	return &memFingerprintRepo{items: map[string]*fingerprint.Fingerprint{}}
}

func (r *memFingerprintRepo) ListRecent(_ context.Context, userID string, ct content.Type, subject curriculum.Subject, since time.Time) ([]fingerprint.Fingerprint, error) {
	var out []fingerprint.Fingerprint
	for _, fp := range r.items {
		if fp.UserID == userID && fp.ContentType == ct && fp.Subject == subject && fp.LastUsedAt.After(since) {
			out = append(out, *fp)
		}
	}
	return out, nil
}

func (r *memFingerprintRepo) ListByUserSince(_ context.Context, userID string, since time.Time) ([]fingerprint.Fingerprint, error) {
	var out []fingerprint.Fingerprint
	for _, fp := range r.items {
		if fp.UserID == userID && fp.LastUsedAt.After(since) {
			out = append(out, *fp)
		}
	}
	return out, nil
}

func (r *memFingerprintRepo) Insert(_ context.Context, fp *fingerprint.Fingerprint) error {
	for _, existing := range r.items {
		if existing.UserID == fp.UserID && existing.ContentHash == fp.ContentHash {
			return shared.ErrAlreadyExists
		}
	}
	cp := *fp
	r.items[fp.ID] = &cp
	return nil
}

func (r *memFingerprintRepo) Get(_ context.Context, id string) (*fingerprint.Fingerprint, error) {
	fp, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *fp
	return &cp, nil
}

func (r *memFingerprintRepo) Update(_ context.Context, fp *fingerprint.Fingerprint) error {
	cp := *fp
	r.items[fp.ID] = &cp
	return nil
}

func activityJSON(prompt string) json.RawMessage {
	out := activityOutput{
		Title:       "Practice",
		Prompt:      prompt,
		Answer:      "10",
		Choices:     []string{},
		Explanation: "4 plus 6 makes 10.",
		Hint:        "Count up from 4.",
		Difficulty:  2,
	}
	raw, _ := json.Marshal(out)
	return raw
}

func testInput() GenerateInput {
	return GenerateInput{
		UserID:      "u1",
		Subject:     curriculum.SubjectMath,
		SkillArea:   "Arithmetic",
		GradeLevel:  3,
		Difficulty:  2,
		ContentType: content.TypeQuestion,
	}
}

func TestGenerate_UniqueFirstAttempt(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: activityJSON("What is 4+6?")})
	index := fingerprint.NewIndex(newMemFingerprintRepo(), zap.NewNop().Sugar())
	g := NewGenerator(mock, index, DefaultConfig(), zap.NewNop().Sugar())

	got, err := g.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !got.Unique || got.FingerprintID == "" {
		t.Errorf("fresh content must be unique with a fingerprint, got %+v", got)
	}
	if got.Activity.Prompt != "What is 4+6?" {
		t.Errorf("prompt %q, want the generated text", got.Activity.Prompt)
	}
	if got.Activity.Type != content.TypeQuestion {
		t.Errorf("activity type %q, want question", got.Activity.Type)
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider called %d times, want 1", mock.CallCount())
	}
}

func TestGenerate_RetriesDuplicateWithVariationHints(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: activityJSON("What is 4+6?")},
		MockResponse{Content: activityJSON("A baker sells 4 rolls and then 6 more. How many rolls sold?")},
	)
	repo := newMemFingerprintRepo()
	index := fingerprint.NewIndex(repo, zap.NewNop().Sugar())
	g := NewGenerator(mock, index, DefaultConfig(), zap.NewNop().Sugar())
	ctx := context.Background()

	// Seed the exact question as already served.
	if _, err := index.CheckUniqueness(ctx, fingerprint.CheckRequest{
		UserID:      "u1",
		ContentType: content.TypeQuestion,
		RawContent:  "What is 4+6?",
		Subject:     curriculum.SubjectMath,
		SkillArea:   "Arithmetic",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := g.Generate(ctx, testInput())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !got.Unique {
		t.Fatalf("second attempt must be unique, got %+v", got)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("provider called %d times, want 2", mock.CallCount())
	}

	retryMsg := mock.Calls[1].Messages[0].Content
	if !strings.Contains(retryMsg, "What is 4+6?") {
		t.Error("retry prompt must list the duplicate content to avoid")
	}
	if !strings.Contains(retryMsg, "Apply these changes") {
		t.Error("retry prompt must carry the variation hints")
	}
}

func TestGenerate_ServesLastDuplicateWhenExhausted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UniqueAttempts = 2
	mock := NewMockProvider(
		MockResponse{Content: activityJSON("What is 4+6?")},
		MockResponse{Content: activityJSON("What is 4+6?")},
	)
	index := fingerprint.NewIndex(newMemFingerprintRepo(), zap.NewNop().Sugar())
	g := NewGenerator(mock, index, cfg, zap.NewNop().Sugar())
	ctx := context.Background()

	if _, err := index.CheckUniqueness(ctx, fingerprint.CheckRequest{
		UserID:      "u1",
		ContentType: content.TypeQuestion,
		RawContent:  "What is 4+6?",
		Subject:     curriculum.SubjectMath,
		SkillArea:   "Arithmetic",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := g.Generate(ctx, testInput())
	if err != nil {
		t.Fatalf("the learner must still get content, got %v", err)
	}
	if got.Unique || got.FingerprintID != "" {
		t.Errorf("exhausted result must be marked non-unique, got %+v", got)
	}
	if got.Activity.Prompt == "" {
		t.Error("exhausted result must still carry an activity")
	}
}

func TestGenerate_NoIndexSkipsUniqueness(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: activityJSON("What is 4+6?")})
	g := NewGenerator(mock, nil, DefaultConfig(), zap.NewNop().Sugar())

	got, err := g.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got.Unique || got.FingerprintID != "" {
		t.Errorf("without an index no fingerprint is recorded, got %+v", got)
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider called %d times, want 1", mock.CallCount())
	}
}

func TestGenerate_ProviderFailureSurfaces(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &UnavailableError{}})
	g := NewGenerator(mock, nil, DefaultConfig(), zap.NewNop().Sugar())

	if _, err := g.Generate(context.Background(), testInput()); err == nil {
		t.Fatal("provider failure must surface")
	}
}
