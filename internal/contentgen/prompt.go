package contentgen

import (
	"fmt"
	"strings"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/content"
)

const systemPrompt = `You are a tutor creating learning activities for school children.

Rules:
- Generate a single activity appropriate for the given subject, skill area, grade, and difficulty level.
- Use plain ASCII text. No LaTeX, no Unicode symbols. Use / for fractions and standard operators for math.
- The prompt must be clear, self-contained, and age-appropriate for the grade.
- A "question" is a direct problem the learner answers. A "game" wraps the skill in a playful scenario with a concrete goal. An "activity" is a short hands-on task with observable steps.
- The answer must be correct and in simplest form. Leave it empty only for open-ended activities.
- When you provide choices, provide exactly 4 where exactly one is correct; distractors should reflect common mistakes.
- The explanation shows the solution step by step, suitable for a child at this grade.
- Do not repeat or lightly reword anything in the "recently served" list.`

// buildUserMessage assembles the generation request for one session slot,
// including recent content to avoid and any variation hints from a failed
// uniqueness check.
func buildUserMessage(in GenerateInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s\n", in.Subject)
	fmt.Fprintf(&b, "Skill area: %s\n", in.SkillArea)
	fmt.Fprintf(&b, "Grade: %d\n", in.GradeLevel)
	fmt.Fprintf(&b, "Difficulty: %d of 10\n", in.Difficulty)
	fmt.Fprintf(&b, "Content type: %s\n", in.ContentType)
	if in.LearningStyle != "" {
		fmt.Fprintf(&b, "Preferred learning style: %s\n", in.LearningStyle)
	}
	if len(in.Objectives) > 0 {
		fmt.Fprintf(&b, "Learning objectives: %s\n", strings.Join(in.Objectives, "; "))
	}

	b.WriteString("\nRecently served to this learner:\n")
	b.WriteString(numberedList(in.Avoid))

	if len(in.VariationHints) > 0 {
		b.WriteString("\nThe previous attempt was too similar to served content. Apply these changes:\n")
		b.WriteString(numberedList(in.VariationHints))
	}

	return b.String()
}

// numberedList formats entries one per line, or "None" when empty.
func numberedList(entries []string) string {
	if len(entries) == 0 {
		return "None"
	}
	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. %s\n", i+1, e)
	}
	return strings.TrimRight(b.String(), "\n")
}

// typeLabel folds unknown content types to question for prompt purposes.
func typeLabel(t content.Type) content.Type {
	if t.Valid() {
		return t
	}
	return content.TypeQuestion
}
