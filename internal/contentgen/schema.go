package contentgen

// ActivitySchema is the JSON schema every generated activity must satisfy.
var ActivitySchema = &Schema{
	Name:        "learning-activity",
	Description: "A single learning activity with answer and explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short label for the activity, a few words",
			},
			"prompt": map[string]any{
				"type":        "string",
				"description": "The text presented to the learner, plain ASCII, self-contained and age-appropriate",
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "The correct answer in simplest form. Empty string for open-ended activities.",
			},
			"choices": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Exactly 4 options when the activity is multiple choice, one matching the answer. Empty array otherwise.",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Step-by-step worked solution suitable for the learner's grade",
			},
			"hint": map[string]any{
				"type":        "string",
				"description": "A short scaffolding hint the learner can request. May be empty.",
			},
			"difficulty": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     10,
				"description": "Self-assessed difficulty from 1 (easy) to 10 (hard)",
			},
		},
		"required":             []any{"title", "prompt", "answer", "choices", "explanation", "hint", "difficulty"},
		"additionalProperties": false,
	},
}
