// Package contentgen generates learning activities through an LLM provider.
// The core treats generation as a collaborator: it sends a session slot
// (subject, skill area, grade, difficulty, content type) and receives a
// structured activity back, checked against the learner's content
// fingerprints so repeated items get regenerated with variation hints.
package contentgen

import (
	"context"
	"encoding/json"
)

// Provider is the LLM abstraction activity generation runs on.
type Provider interface {
	// Generate sends a prompt and returns structured output. When the
	// request carries a Schema the returned Content is JSON validated
	// against it; otherwise Content is the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Activity generation sends a single
	// user message.
	Messages []Message

	// Schema, when set, selects the provider's native structured-output
	// mechanism and is enforced on the response.
	Schema *Schema

	MaxTokens int

	// Temperature in [0,1]; zero means deterministic.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the response must conform to.
type Schema struct {
	// Name identifies the schema to the provider, kebab-case.
	Name string

	Description string

	// Definition is the JSON Schema as a map.
	Definition map[string]any
}

// Response is the provider's output.
type Response struct {
	// Content is validated JSON when the request had a Schema.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage reports token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
