package config

import (
	"os"
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		os.Unsetenv("CHEFMATE_DB_PATH")
		os.Unsetenv("GEMINI_API_KEY")
		os.Unsetenv("OPENROUTER_API_KEY")
		os.Unsetenv("OPENROUTER_MODEL")

		cfg := NewFromEnv()
		if cfg.DatabasePath != "data/chefmate.db" {
			t.Errorf("Expected default database path 'data/chefmate.db', got '%s'", cfg.DatabasePath)
		}
		if cfg.HasTextCredentials() {
			t.Error("Expected no text credentials with empty environment")
		}
	})

	t.Run("AllSet", func(t *testing.T) {
		t.Setenv("CHEFMATE_DB_PATH", "/tmp/chefmate-test.db")
		t.Setenv("GEMINI_API_KEY", "gemini_key")
		t.Setenv("OPENROUTER_API_KEY", "or_key")
		t.Setenv("OPENROUTER_MODEL", "meta-llama/llama-3.3-70b-instruct")

		cfg := NewFromEnv()
		if cfg.DatabasePath != "/tmp/chefmate-test.db" {
			t.Errorf("Expected DatabasePath '/tmp/chefmate-test.db', got '%s'", cfg.DatabasePath)
		}
		if cfg.GeminiAPIKey != "gemini_key" {
			t.Errorf("Expected GeminiAPIKey 'gemini_key', got '%s'", cfg.GeminiAPIKey)
		}
		if cfg.OpenRouterAPIKey != "or_key" {
			t.Errorf("Expected OpenRouterAPIKey 'or_key', got '%s'", cfg.OpenRouterAPIKey)
		}
		if cfg.OpenRouterModel != "meta-llama/llama-3.3-70b-instruct" {
			t.Errorf("Expected OpenRouterModel to round-trip, got '%s'", cfg.OpenRouterModel)
		}
		if !cfg.HasTextCredentials() {
			t.Error("Expected text credentials to be detected")
		}
	})

	t.Run("OpenRouterOnly", func(t *testing.T) {
		os.Unsetenv("GEMINI_API_KEY")
		t.Setenv("OPENROUTER_API_KEY", "or_key")

		cfg := NewFromEnv()
		if !cfg.HasTextCredentials() {
			t.Error("Expected OpenRouter key alone to count as text credentials")
		}
	})
}
