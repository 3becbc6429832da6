// Package fingerprint detects repeated and stale learning content per
// learner. Every served item is reduced to a content hash, a semantic
// fingerprint, and a keyword set; uniqueness checks compare new content
// against the learner's recent history, and advisory freshness and diversity
// scores summarize how repetitive that history has become.
package fingerprint

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/content"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/keywords"
)

// Fingerprint is the stored identity of one piece of content served to one
// learner.
type Fingerprint struct {
	ID          string             `json:"id"`
	UserID      string             `json:"userId"`
	ContentType content.Type       `json:"contentType"`
	Subject     curriculum.Subject `json:"subject"`
	SkillArea   string             `json:"skillArea"`
	GradeLevel  int                `json:"gradeLevel"`

	// ContentHash is a stable hash over the normalized raw text. Equal
	// hashes mean the exact same content.
	ContentHash string `json:"contentHash"`

	// SemanticFingerprint hashes the sorted top distinctive words, so
	// rewordings with the same vocabulary collide.
	SemanticFingerprint string `json:"semanticFingerprint"`

	KeyWords   []string `json:"keyWords"`
	Difficulty int      `json:"difficulty"`

	UsageCount int       `json:"usageCount"`
	LastUsedAt time.Time `json:"lastUsedAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

const (
	semanticWordCount = 10
	keywordCount      = 5
)

// HashContent returns the stable content hash: sha256 over the lowercased,
// whitespace-normalized text.
func HashContent(raw string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// SemanticFingerprintOf hashes the sorted top-10 distinctive content words,
// so content with the same vocabulary but reordered phrasing collides.
func SemanticFingerprintOf(raw string) string {
	words := keywords.TopByFrequency(keywords.ContentWords(raw), semanticWordCount)
	sort.Strings(words)
	sum := sha256.Sum256([]byte(strings.Join(words, " ")))
	return hex.EncodeToString(sum[:])
}

// ExtractKeywords returns the top-5 content words of raw by frequency.
func ExtractKeywords(raw string) []string {
	return keywords.TopByFrequency(keywords.ContentWords(raw), keywordCount)
}

// jaccard is the overlap between two keyword sets: |intersection| / |union|.
// Two empty sets overlap fully.
func jaccard(a, b []string) float64 {
	set := map[string]bool{}
	for _, w := range a {
		set[w] = true
	}
	union := map[string]bool{}
	inter := 0
	for _, w := range a {
		union[w] = true
	}
	for _, w := range b {
		if set[w] {
			inter++
		}
		union[w] = true
	}
	if len(union) == 0 {
		return 1
	}
	return float64(inter) / float64(len(union))
}

// Repo persists fingerprints per learner.
type Repo interface {
	// ListRecent returns the user's fingerprints for (contentType,
	// subject) used or created within the window, newest first.
	ListRecent(ctx context.Context, userID string, ct content.Type, subject curriculum.Subject, since time.Time) ([]Fingerprint, error)

	// ListByUserSince returns all of the user's fingerprints touched
	// within the window, regardless of type or subject.
	ListByUserSince(ctx context.Context, userID string, since time.Time) ([]Fingerprint, error)

	// Insert stores a new fingerprint. Returns shared.ErrAlreadyExists
	// when the (userID, contentHash) pair is already present.
	Insert(ctx context.Context, fp *Fingerprint) error

	// Get returns a fingerprint by ID, or shared.ErrNotFound.
	Get(ctx context.Context, id string) (*Fingerprint, error)

	// Update persists usage-count and timestamp mutations.
	Update(ctx context.Context, fp *Fingerprint) error
}
