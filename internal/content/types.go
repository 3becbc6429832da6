// Package content defines the shared vocabulary for served learning content:
// the closed set of content types and the Activity struct produced by the
// external content generator. Downstream logic branches on exact type values,
// so they are modeled as a closed enum rather than free strings.
package content

// Type identifies the kind of learning content served in a session.
type Type string

const (
	TypeQuestion Type = "question"
	TypeGame     Type = "game"
	TypeActivity Type = "activity"
)

// AllTypes returns the closed set of content types.
func AllTypes() []Type {
	return []Type{TypeQuestion, TypeGame, TypeActivity}
}

// Valid reports whether t is a member of the closed set.
func (t Type) Valid() bool {
	switch t {
	case TypeQuestion, TypeGame, TypeActivity:
		return true
	}
	return false
}

// Activity is a single piece of generated learning content, received from
// the content-generation collaborator ready for display.
type Activity struct {
	// Title is a short label for the activity.
	Title string

	// Prompt is the text presented to the learner.
	Prompt string

	// Answer is the canonical correct answer. Empty for open-ended activities.
	Answer string

	// Choices holds multiple-choice options when applicable, one matching Answer.
	Choices []string

	// Explanation is a brief worked solution shown after the learner responds.
	Explanation string

	// Hint is an optional short hint the learner can request.
	Hint string

	// Type is the content type this activity realizes.
	Type Type

	// Difficulty is the generator's self-assessed difficulty on the 1-10 scale.
	Difficulty int
}
