package contentgen

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/content"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/dailyplan"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/fingerprint"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/learner"
)

// GenerateInput describes the slot an activity is generated for.
type GenerateInput struct {
	UserID      string
	Subject     curriculum.Subject
	SkillArea   string
	GradeLevel  int
	Difficulty  int
	ContentType content.Type

	LearningStyle learner.LearningStyle
	Objectives    []string

	// Avoid lists recently served content the model must not repeat.
	Avoid []string

	// VariationHints carries the fingerprint index's recommendations after
	// a failed uniqueness check.
	VariationHints []string
}

// Generated is one produced activity together with its fingerprint.
type Generated struct {
	Activity content.Activity

	// FingerprintID is the stored fingerprint for unique content. Empty
	// when every attempt came back as a duplicate and the last one was
	// served anyway.
	FingerprintID string

	// Unique reports whether the served activity passed the uniqueness
	// check.
	Unique bool
}

// Generator produces activities and keeps them unique per learner.
type Generator struct {
	provider Provider
	index    *fingerprint.Index
	cfg      Config
	log      *zap.SugaredLogger
}

// NewGenerator creates a Generator. index may be nil to skip uniqueness
// checking.
func NewGenerator(provider Provider, index *fingerprint.Index, cfg Config, log *zap.SugaredLogger) *Generator {
	return &Generator{provider: provider, index: index, cfg: cfg, log: log}
}

// activityOutput is the raw model response before conversion.
type activityOutput struct {
	Title       string   `json:"title"`
	Prompt      string   `json:"prompt"`
	Answer      string   `json:"answer"`
	Choices     []string `json:"choices"`
	Explanation string   `json:"explanation"`
	Hint        string   `json:"hint"`
	Difficulty  int      `json:"difficulty"`
}

// Generate produces one activity for the input. Duplicates are regenerated
// with the index's variation hints up to UniqueAttempts times; a learner is
// never left without content, so the last attempt is served even when it
// stayed a duplicate.
func (g *Generator) Generate(ctx context.Context, in GenerateInput) (*Generated, error) {
	in.ContentType = typeLabel(in.ContentType)

	attempts := g.cfg.UniqueAttempts
	if attempts < 1 || g.index == nil {
		attempts = 1
	}

	var last *Generated
	for attempt := 0; attempt < attempts; attempt++ {
		activity, err := g.generateOnce(ctx, in)
		if err != nil {
			return nil, err
		}
		last = &Generated{Activity: *activity}

		if g.index == nil {
			return last, nil
		}

		check, err := g.index.CheckUniqueness(ctx, fingerprint.CheckRequest{
			UserID:      in.UserID,
			ContentType: in.ContentType,
			RawContent:  activity.Prompt,
			Subject:     in.Subject,
			SkillArea:   in.SkillArea,
			GradeLevel:  in.GradeLevel,
			Difficulty:  activity.Difficulty,
		})
		if err != nil {
			return nil, fmt.Errorf("uniqueness check: %w", err)
		}
		if check.IsUnique {
			last.FingerprintID = check.FingerprintID
			last.Unique = true
			return last, nil
		}

		g.log.Infow("generated activity was a duplicate, retrying with variation hints",
			"user_id", in.UserID,
			"skill_area", in.SkillArea,
			"reason", check.Reason,
			"similarity", check.SimilarityScore,
			"attempt", attempt+1)
		in.Avoid = append(in.Avoid, activity.Prompt)
		in.VariationHints = check.Recommendations
	}

	g.log.Warnw("serving duplicate activity after exhausting unique attempts",
		"user_id", in.UserID,
		"skill_area", in.SkillArea,
		"attempts", attempts)
	return last, nil
}

// GenerateForSession generates an activity for one daily-plan session slot.
func (g *Generator) GenerateForSession(ctx context.Context, userID string, grade int, style learner.LearningStyle, sess *dailyplan.Session) (*Generated, error) {
	return g.Generate(ctx, GenerateInput{
		UserID:        userID,
		Subject:       sess.Subject,
		SkillArea:     sess.SkillArea,
		GradeLevel:    grade,
		Difficulty:    sess.DifficultyLevel,
		ContentType:   sess.ContentType,
		LearningStyle: style,
	})
}

func (g *Generator) generateOnce(ctx context.Context, in GenerateInput) (*content.Activity, error) {
	req := Request{
		System: systemPrompt,
		Messages: []Message{
			{Role: RoleUser, Content: buildUserMessage(in)},
		},
		Schema:      ActivitySchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate activity: %w", err)
	}

	var raw activityOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse activity response: %w", err)
	}

	return &content.Activity{
		Title:       raw.Title,
		Prompt:      raw.Prompt,
		Answer:      raw.Answer,
		Choices:     raw.Choices,
		Explanation: raw.Explanation,
		Hint:        raw.Hint,
		Type:        in.ContentType,
		Difficulty:  raw.Difficulty,
	}, nil
}
