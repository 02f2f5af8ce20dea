package llm_test

import (
	"errors"
	"testing"

	"commitgen/internal/config"
	"commitgen/internal/llm"
)

func TestNewProviderSelection(t *testing.T) {
	tests := []struct {
		name  string
		creds config.Credentials
		want  string
	}{
		{
			name:  "gemini preferred",
			creds: config.Credentials{GeminiAPIKey: "g", AnthropicAPIKey: "a", OpenAIAPIKey: "o"},
			want:  "gemini",
		},
		{
			name:  "anthropic next",
			creds: config.Credentials{AnthropicAPIKey: "a", OpenAIAPIKey: "o"},
			want:  "anthropic",
		},
		{
			name:  "openai last",
			creds: config.Credentials{OpenAIAPIKey: "o"},
			want:  "openai",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := llm.NewProvider(tt.creds)
			if err != nil {
				t.Fatalf("NewProvider() error = %v", err)
			}
			if provider.Name() != tt.want {
				t.Errorf("NewProvider() = %s, want %s", provider.Name(), tt.want)
			}
		})
	}
}

func TestNewProviderNoKey(t *testing.T) {
	_, err := llm.NewProvider(config.Credentials{})
	if !errors.Is(err, llm.ErrNoAPIKey) {
		t.Fatalf("NewProvider() error = %v, want ErrNoAPIKey", err)
	}
}
