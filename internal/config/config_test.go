package config_test

import (
	"testing"

	"commitgen/internal/config"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	creds := config.Load()
	if creds.GeminiAPIKey != "gem-key" {
		t.Errorf("GeminiAPIKey = %q, want %q", creds.GeminiAPIKey, "gem-key")
	}
	if !creds.Configured() {
		t.Error("Configured() = false with a key set")
	}
}

func TestConfiguredEmpty(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	if (config.Credentials{}).Configured() {
		t.Error("Configured() = true for empty credentials")
	}
}
