package plan

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// The weekly plan is a singleton document replaced wholesale on every
// mutation; there is no per-slot persistence granularity.
const singletonKey = "currentWeek"

// Repository is a database-backed repository for the weekly plan.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save stores the full plan document under the fixed key.
func (r *Repository) Save(ctx context.Context, p WeeklyPlan) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal plan to JSON: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO plan (key, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		singletonKey, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

// Load retrieves the saved plan. A missing plan returns (nil, nil).
func (r *Repository) Load(ctx context.Context) (WeeklyPlan, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM plan WHERE key = ?`, singletonKey).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}

	var p WeeklyPlan
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan JSON: %w", err)
	}
	return p, nil
}

// MemoryRepository is the in-memory stand-in used when local storage is
// unavailable.
type MemoryRepository struct {
	mu   sync.Mutex
	plan WeeklyPlan
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Save stores the plan.
func (m *MemoryRepository) Save(_ context.Context, p WeeklyPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plan = p
	return nil
}

// Load retrieves the stored plan, or (nil, nil) if none was saved.
func (m *MemoryRepository) Load(_ context.Context) (WeeklyPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.plan, nil
}
