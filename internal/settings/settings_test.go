package settings_test

import (
	"context"
	"path/filepath"
	"testing"

	"chefmate/internal/database"
	"chefmate/internal/settings"

	"go.uber.org/zap"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer db.Close()

	repo := settings.NewRepository(db.SQL)

	t.Run("MissingKeyIsEmpty", func(t *testing.T) {
		got, err := repo.Get(ctx, settings.KeyUsername)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != "" {
			t.Errorf("Expected empty value for an unset key, got %q", got)
		}
	})

	t.Run("SetAndGet", func(t *testing.T) {
		if err := repo.Set(ctx, settings.KeyUsername, "Sam"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, err := repo.Get(ctx, settings.KeyUsername)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != "Sam" {
			t.Errorf("Expected Sam, got %q", got)
		}
	})

	t.Run("SetReplaces", func(t *testing.T) {
		if err := repo.Set(ctx, settings.KeyTheme, settings.ThemeLight); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := repo.Set(ctx, settings.KeyTheme, settings.ThemeDark); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, _ := repo.Get(ctx, settings.KeyTheme)
		if got != settings.ThemeDark {
			t.Errorf("Expected dark after overwrite, got %q", got)
		}
	})
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := settings.NewMemoryRepository()

	if got, _ := repo.Get(ctx, "missing"); got != "" {
		t.Errorf("Expected empty value for an unset key, got %q", got)
	}
	if err := repo.Set(ctx, settings.KeyTheme, settings.ThemeLight); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, _ := repo.Get(ctx, settings.KeyTheme); got != settings.ThemeLight {
		t.Errorf("Expected light, got %q", got)
	}
}
