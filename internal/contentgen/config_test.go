package contentgen

import (
	"strings"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("anthropic provider without an API key must fail validation")
	}

	cfg.Anthropic.APIKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Errorf("configured provider failed validation: %v", err)
	}

	cfg.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock provider needs no key, got %v", err)
	}

	cfg.Provider = "carrier-pigeon"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "unknown") {
		t.Errorf("got %v, want unknown-provider error", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("APP_CONTENT_PROVIDER", "openrouter")
	t.Setenv("APP_OPENROUTER_API_KEY", "or-key")
	t.Setenv("APP_OPENROUTER_MODEL", "meta-llama/llama-3-8b")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openrouter" {
		t.Errorf("provider %q, want openrouter", cfg.Provider)
	}
	if cfg.OpenRouter.APIKey != "or-key" || cfg.OpenRouter.Model != "meta-llama/llama-3-8b" {
		t.Errorf("openrouter config not read from env: %+v", cfg.OpenRouter)
	}
	if cfg.MaxTokens != DefaultConfig().MaxTokens {
		t.Errorf("unset values must keep defaults")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("env config failed validation: %v", err)
	}
}

func TestBuildUserMessage(t *testing.T) {
	in := testInput()
	in.Avoid = []string{"What is 4+6?"}
	in.VariationHints = []string{"vary the numbers or quantities in the item"}

	msg := buildUserMessage(in)
	for _, want := range []string{
		"Subject: mathematics",
		"Skill area: Arithmetic",
		"Grade: 3",
		"What is 4+6?",
		"vary the numbers",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("user message missing %q:\n%s", want, msg)
		}
	}
}
