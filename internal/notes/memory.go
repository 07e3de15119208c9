package notes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-process Repository used for local development
// (STORE_BACKEND=memory) and handler tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	store []*Note
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Insert(ctx context.Context, n *Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *n
	m.store = append(m.store, &cp)
	return nil
}

func (m *MemoryRepository) List(ctx context.Context) ([]*Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Note, 0, len(m.store))
	for _, n := range m.store {
		cp := *n
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (m *MemoryRepository) Get(ctx context.Context, id string) (*Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, n := range m.store {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.store {
		if n.ID == id {
			m.store = append(m.store[:i], m.store[i+1:]...)
			return nil
		}
	}
	return nil
}
