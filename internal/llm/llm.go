// Package llm selects and constructs the generation provider.
package llm

import (
	"errors"

	"commitgen/internal/config"
	"commitgen/internal/core"
	"commitgen/internal/llm/anthropic"
	"commitgen/internal/llm/gemini"
	"commitgen/internal/llm/openai"
)

// ErrNoAPIKey reports that no provider credential is configured.
var ErrNoAPIKey = errors.New("no API key found: set GEMINI_API_KEY, ANTHROPIC_API_KEY or OPENAI_API_KEY")

// NewProvider picks the provider for the first configured credential.
// Gemini wins over Anthropic, Anthropic over OpenAI.
func NewProvider(creds config.Credentials) (core.Provider, error) {
	switch {
	case creds.GeminiAPIKey != "":
		return gemini.NewGeminiClient(creds.GeminiAPIKey), nil
	case creds.AnthropicAPIKey != "":
		return anthropic.NewAnthropicClient(creds.AnthropicAPIKey), nil
	case creds.OpenAIAPIKey != "":
		return openai.NewOpenAIClient(creds.OpenAIAPIKey), nil
	default:
		return nil, ErrNoAPIKey
	}
}
