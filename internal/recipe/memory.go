package recipe

import (
	"context"
	"sync"
)

// MemoryRepository is the in-memory stand-in used when local storage is
// unavailable. It satisfies the same contract as Repository; everything is
// lost when the process exits.
type MemoryRepository struct {
	mu      sync.Mutex
	order   []string
	records map[string]Recipe
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]Recipe)}
}

// Save inserts or replaces a recipe by ID.
func (m *MemoryRepository) Save(_ context.Context, rec Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[rec.ID]; !ok {
		m.order = append(m.order, rec.ID)
	}
	m.records[rec.ID] = rec
	return nil
}

// Get retrieves a recipe by its ID. A missing recipe returns (nil, nil).
func (m *MemoryRepository) Get(_ context.Context, id string) (*Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// List retrieves all recipes in insertion order.
func (m *MemoryRepository) List(_ context.Context) ([]Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	recipes := make([]Recipe, 0, len(m.order))
	for _, id := range m.order {
		recipes = append(recipes, m.records[id])
	}
	return recipes, nil
}

// Delete removes a recipe by ID.
func (m *MemoryRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return nil
	}
	delete(m.records, id)
	for i, x := range m.order {
		if x == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of stored recipes.
func (m *MemoryRepository) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records), nil
}
