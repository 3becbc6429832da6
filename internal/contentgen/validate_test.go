package contentgen

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestValidateOutput_ValidActivity(t *testing.T) {
	raw := activityJSON("What is 4+6?")
	if err := validateOutput(ActivitySchema, raw); err != nil {
		t.Fatalf("valid activity rejected: %v", err)
	}
}

func TestValidateOutput_MissingRequiredField(t *testing.T) {
	raw := json.RawMessage(`{"title":"Practice","prompt":"What is 4+6?"}`)
	err := validateOutput(ActivitySchema, raw)
	var invalid *InvalidOutputError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidOutputError for missing fields", err)
	}
}

func TestValidateOutput_MalformedJSON(t *testing.T) {
	err := validateOutput(ActivitySchema, json.RawMessage(`{"title": `))
	var invalid *InvalidOutputError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidOutputError for malformed JSON", err)
	}
	if !strings.Contains(invalid.Err.Error(), "invalid JSON") {
		t.Errorf("error %v should name the JSON parse failure", invalid.Err)
	}
}

func TestValidateOutput_NilSchemaPasses(t *testing.T) {
	if err := validateOutput(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("nil schema must pass everything, got %v", err)
	}
}

func TestValidateOutput_DifficultyOutOfRange(t *testing.T) {
	out := activityOutput{
		Title: "Practice", Prompt: "p", Answer: "a",
		Choices: []string{}, Explanation: "e", Hint: "h",
		Difficulty: 11,
	}
	raw, _ := json.Marshal(out)
	err := validateOutput(ActivitySchema, raw)
	var invalid *InvalidOutputError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidOutputError for difficulty 11", err)
	}
}
