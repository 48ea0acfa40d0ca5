package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Repository is a database-backed repository for notes.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts or replaces a note by ID.
func (r *Repository) Save(ctx context.Context, n Note) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal note to JSON: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO notes (id, data, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
		n.ID, string(data), time.UnixMilli(n.CreatedAt).UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save note %s: %w", n.ID, err)
	}
	return nil
}

// List retrieves all notes, newest first.
func (r *Repository) List(ctx context.Context) ([]Note, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM notes`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var list []Note
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		var n Note
		if err := json.Unmarshal([]byte(data), &n); err != nil {
			return nil, fmt.Errorf("failed to unmarshal note JSON: %w", err)
		}
		list = append(list, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate note rows: %w", err)
	}

	SortForDisplay(list)
	return list, nil
}

// Delete removes a note by ID. Deleting a missing note is not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete note %s: %w", id, err)
	}
	return nil
}

// MemoryRepository is the in-memory stand-in used when local storage is
// unavailable.
type MemoryRepository struct {
	mu      sync.Mutex
	records map[string]Note
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]Note)}
}

// Save inserts or replaces a note by ID.
func (m *MemoryRepository) Save(_ context.Context, n Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[n.ID] = n
	return nil
}

// List retrieves all notes, newest first.
func (m *MemoryRepository) List(_ context.Context) ([]Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]Note, 0, len(m.records))
	for _, n := range m.records {
		list = append(list, n)
	}
	SortForDisplay(list)
	return list, nil
}

// Delete removes a note by ID.
func (m *MemoryRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}
