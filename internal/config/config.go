package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Credentials holds the provider API keys. Loaded once and passed
// explicitly into the client layer so tests can inject fakes.
type Credentials struct {
	GeminiAPIKey    string
	AnthropicAPIKey string
	OpenAIAPIKey    string
}

// Load reads a .env file when present, then pulls the API keys from the
// environment. A missing .env file is not an error.
func Load() Credentials {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("Loaded credentials from .env file")
	}
	return Credentials{
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
	}
}

// Configured reports whether any provider credential is set.
func (c Credentials) Configured() bool {
	return c.GeminiAPIKey != "" || c.AnthropicAPIKey != "" || c.OpenAIAPIKey != ""
}
