package notes_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"chefmate/internal/database"
	"chefmate/internal/notes"

	"go.uber.org/zap"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer db.Close()

	repo := notes.NewRepository(db.SQL)

	older := notes.New("check the pantry", time.UnixMilli(1000))
	newer := notes.New("buy saffron", time.UnixMilli(2000))

	t.Run("SaveAndList", func(t *testing.T) {
		if err := repo.Save(ctx, older); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := repo.Save(ctx, newer); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		list, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("Expected 2 notes, got %d", len(list))
		}
		if list[0].ID != newer.ID || list[1].ID != older.ID {
			t.Errorf("Expected newest first, got [%s %s]", list[0].ID, list[1].ID)
		}
	})

	t.Run("ToggleRoundTrip", func(t *testing.T) {
		toggled := older
		toggled.Completed = true
		if err := repo.Save(ctx, toggled); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		list, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		for _, n := range list {
			if n.ID == older.ID && !n.Completed {
				t.Errorf("Expected note %s to persist as completed", n.ID)
			}
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := repo.Delete(ctx, newer.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		list, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(list) != 1 || list[0].ID != older.ID {
			t.Errorf("Expected only %s left, got %d notes", older.ID, len(list))
		}
	})
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := notes.NewMemoryRepository()

	a := notes.New("first", time.UnixMilli(100))
	b := notes.New("second", time.UnixMilli(200))
	if err := repo.Save(ctx, a); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := repo.Save(ctx, b); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != b.ID {
		t.Errorf("Expected newest first from memory repository")
	}

	if err := repo.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	list, _ = repo.List(ctx)
	if len(list) != 1 {
		t.Errorf("Expected 1 note after delete, got %d", len(list))
	}
}
