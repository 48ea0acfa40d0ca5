package settings

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// Well-known setting keys.
const (
	KeyUsername = "username"
	KeyTheme    = "theme"
)

// Theme values.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Repository persists small user preferences as key/value pairs.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the value for key, or "" if it was never set.
func (r *Repository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// Set stores the value for key, replacing any previous value.
func (r *Repository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// MemoryRepository is the in-memory stand-in used when local storage is
// unavailable.
type MemoryRepository struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{values: make(map[string]string)}
}

// Get returns the value for key, or "" if it was never set.
func (m *MemoryRepository) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

// Set stores the value for key.
func (m *MemoryRepository) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
