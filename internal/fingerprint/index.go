package fingerprint

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/content"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/shared"
)

const (
	// historyWindowDays is how far back uniqueness checks look.
	historyWindowDays = 30

	// overuseCount and overuseWindowDays flag content served at least
	// three times with a use in the last week.
	overuseCount      = 3
	overuseWindowDays = 7

	// semanticOverlapCutoff is the keyword Jaccard overlap above which
	// content with an equal semantic fingerprint counts as a duplicate.
	semanticOverlapCutoff = 0.85
)

// CheckRequest describes one piece of candidate content.
type CheckRequest struct {
	UserID      string
	ContentType content.Type
	RawContent  string
	Subject     curriculum.Subject
	SkillArea   string
	GradeLevel  int
	Difficulty  int
}

// CheckResult is the outcome of a uniqueness check. A negative outcome is a
// normal result, not an error; Recommendations tell the caller how to
// regenerate the item.
type CheckResult struct {
	IsUnique        bool     `json:"isUnique"`
	SimilarityScore float64  `json:"similarityScore"`
	DuplicateID     string   `json:"duplicateId,omitempty"`
	Reason          string   `json:"reason"`
	Recommendations []string `json:"recommendations,omitempty"`

	// FingerprintID is the stored fingerprint for unique content.
	FingerprintID string `json:"fingerprintId,omitempty"`
}

// Index checks content uniqueness and tracks usage per learner.
type Index struct {
	repo Repo
	log  *zap.SugaredLogger
	now  func() time.Time
}

// NewIndex creates an Index.
func NewIndex(repo Repo, log *zap.SugaredLogger) *Index {
	return &Index{repo: repo, log: log, now: time.Now}
}

// CheckUniqueness decides whether candidate content is new for the learner.
// Against the user's 30-day history for the same (contentType, subject) it
// applies, in order: exact hash match, semantic-fingerprint match with high
// keyword overlap, and overuse. Content passing all three is persisted as a
// new fingerprint.
func (x *Index) CheckUniqueness(ctx context.Context, req CheckRequest) (*CheckResult, error) {
	hash := HashContent(req.RawContent)
	semantic := SemanticFingerprintOf(req.RawContent)
	keyWords := ExtractKeywords(req.RawContent)

	now := x.now()
	since := now.AddDate(0, 0, -historyWindowDays)
	history, err := x.repo.ListRecent(ctx, req.UserID, req.ContentType, req.Subject, since)
	if err != nil {
		return nil, fmt.Errorf("load fingerprint history for %s: %w", req.UserID, err)
	}

	for i := range history {
		fp := &history[i]
		if fp.ContentHash == hash {
			return duplicateResult(fp, 1.0, "exact match"), nil
		}
	}
	for i := range history {
		fp := &history[i]
		if fp.SemanticFingerprint != semantic {
			continue
		}
		if overlap := jaccard(keyWords, fp.KeyWords); overlap > semanticOverlapCutoff {
			return duplicateResult(fp, overlap, "high semantic similarity"), nil
		}
	}
	for i := range history {
		fp := &history[i]
		if fp.UsageCount >= overuseCount && now.Sub(fp.LastUsedAt) <= overuseWindowDays*24*time.Hour {
			res := duplicateResult(fp, 0.5, "overused")
			waitDays := overuseWindowDays - int(now.Sub(fp.LastUsedAt).Hours()/24)
			if waitDays < 1 {
				waitDays = 1
			}
			res.Recommendations = []string{
				fmt.Sprintf("wait %d days before reusing this item", waitDays),
				"switch to a different content format for this skill area",
			}
			return res, nil
		}
	}

	fp := &Fingerprint{
		ID:                  uuid.NewString(),
		UserID:              req.UserID,
		ContentType:         req.ContentType,
		Subject:             req.Subject,
		SkillArea:           req.SkillArea,
		GradeLevel:          req.GradeLevel,
		ContentHash:         hash,
		SemanticFingerprint: semantic,
		KeyWords:            keyWords,
		Difficulty:          req.Difficulty,
		UsageCount:          1,
		LastUsedAt:          now,
		CreatedAt:           now,
	}
	if err := x.repo.Insert(ctx, fp); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// A concurrent check inserted the same hash first.
			return &CheckResult{
				SimilarityScore: 1.0,
				Reason:          "exact match",
				Recommendations: regenerateRecommendations(),
			}, nil
		}
		return nil, fmt.Errorf("store fingerprint for %s: %w", req.UserID, err)
	}
	return &CheckResult{
		IsUnique:      true,
		Reason:        "unique",
		FingerprintID: fp.ID,
	}, nil
}

func duplicateResult(fp *Fingerprint, similarity float64, reason string) *CheckResult {
	return &CheckResult{
		SimilarityScore: similarity,
		DuplicateID:     fp.ID,
		Reason:          reason,
		Recommendations: regenerateRecommendations(),
	}
}

func regenerateRecommendations() []string {
	return []string{
		"vary the numbers or quantities in the item",
		"change the context or scenario while keeping the skill",
	}
}

// TrackUsage records another serving of already-fingerprinted content:
// usage count up one, last-used timestamp refreshed.
func (x *Index) TrackUsage(ctx context.Context, userID, fingerprintID string) (*Fingerprint, error) {
	fp, err := x.repo.Get(ctx, fingerprintID)
	if err != nil {
		return nil, fmt.Errorf("load fingerprint %s: %w", fingerprintID, err)
	}
	if fp.UserID != userID {
		return nil, fmt.Errorf("fingerprint %s does not belong to %s: %w", fingerprintID, userID, shared.ErrNotFound)
	}
	fp.UsageCount++
	fp.LastUsedAt = x.now()
	if err := x.repo.Update(ctx, fp); err != nil {
		return nil, fmt.Errorf("update fingerprint %s: %w", fingerprintID, err)
	}
	return fp, nil
}

// FreshnessScore reports how varied the learner's recent content has been:
// (distinct skill areas / total items) x 100 over the lookback window. An
// empty history is fully fresh.
func (x *Index) FreshnessScore(ctx context.Context, userID string, lookbackDays int) (float64, error) {
	items, err := x.repo.ListByUserSince(ctx, userID, x.now().AddDate(0, 0, -lookbackDays))
	if err != nil {
		return 0, fmt.Errorf("load fingerprints for %s: %w", userID, err)
	}
	if len(items) == 0 {
		return 100, nil
	}
	areas := map[string]bool{}
	for _, fp := range items {
		areas[fp.SkillArea] = true
	}
	return float64(len(areas)) / float64(len(items)) * 100, nil
}

// DiversityReport is the advisory diversity summary for one learner.
type DiversityReport struct {
	// Score is the mean of the topic, format, and difficulty uniqueness
	// ratios, scaled to [0,100].
	Score float64 `json:"score"`

	TopicRatio      float64 `json:"topicRatio"`
	FormatRatio     float64 `json:"formatRatio"`
	DifficultyRatio float64 `json:"difficultyRatio"`

	Recommendations []string `json:"recommendations,omitempty"`
}

// DiversifiedRecommendations scores how varied recent content has been along
// topic, format, and difficulty, with suggestions for the weakest axes. An
// advisory signal, not a hard gate.
func (x *Index) DiversifiedRecommendations(ctx context.Context, userID string, lookbackDays int) (*DiversityReport, error) {
	items, err := x.repo.ListByUserSince(ctx, userID, x.now().AddDate(0, 0, -lookbackDays))
	if err != nil {
		return nil, fmt.Errorf("load fingerprints for %s: %w", userID, err)
	}
	if len(items) == 0 {
		return &DiversityReport{Score: 100, TopicRatio: 1, FormatRatio: 1, DifficultyRatio: 1}, nil
	}

	topics := map[string]bool{}
	formats := map[content.Type]bool{}
	difficulties := map[int]bool{}
	for _, fp := range items {
		topics[fp.SkillArea] = true
		formats[fp.ContentType] = true
		difficulties[fp.Difficulty] = true
	}
	n := float64(len(items))
	report := &DiversityReport{
		TopicRatio:      float64(len(topics)) / n,
		FormatRatio:     float64(len(formats)) / n,
		DifficultyRatio: float64(len(difficulties)) / n,
	}
	report.Score = math.Round((report.TopicRatio + report.FormatRatio + report.DifficultyRatio) / 3 * 100)

	const lowRatio = 0.3
	if report.TopicRatio < lowRatio {
		report.Recommendations = append(report.Recommendations, "introduce new skill areas; recent content repeats the same topics")
	}
	if report.FormatRatio < lowRatio {
		report.Recommendations = append(report.Recommendations, "mix in other content formats (questions, games, activities)")
	}
	if report.DifficultyRatio < lowRatio {
		report.Recommendations = append(report.Recommendations, "vary difficulty levels to keep sessions challenging")
	}
	return report, nil
}
