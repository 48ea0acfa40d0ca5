package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the configuration for the application.
//
// API keys are deliberately optional: the app is a local-first tool and must
// stay usable with no network credentials at all. The suggestion pipeline
// reports missing credentials itself when it is actually asked to work.
type Config struct {
	// DatabasePath is where the SQLite database lives.
	DatabasePath string

	// GeminiAPIKey enables the Gemini text and image clients.
	GeminiAPIKey string

	// OpenRouterAPIKey enables the OpenRouter text client, used as the
	// text-generation fallback when no Gemini key is configured.
	OpenRouterAPIKey string

	// OpenRouterModel overrides the default OpenRouter model.
	OpenRouterModel string
}

const defaultDatabasePath = "data/chefmate.db"

// NewFromEnv creates a new Config object from environment variables.
// A .env file in the working directory is loaded first if present.
func NewFromEnv() *Config {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	dbPath := os.Getenv("CHEFMATE_DB_PATH")
	if dbPath == "" {
		dbPath = defaultDatabasePath
	}

	return &Config{
		DatabasePath:     dbPath,
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		OpenRouterAPIKey: os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:  os.Getenv("OPENROUTER_MODEL"),
	}
}

// HasTextCredentials reports whether any text-generation provider is configured.
func (c *Config) HasTextCredentials() bool {
	return c.GeminiAPIKey != "" || c.OpenRouterAPIKey != ""
}
