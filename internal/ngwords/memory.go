package ngwords

import (
	"context"
	"sync"
)

// MemoryRepository is an in-process Repository with the same uniqueness rule as the Mongo index.
type MemoryRepository struct {
	mu    sync.RWMutex
	words []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Insert(ctx context.Context, word string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.words {
		if w == word {
			return ErrDuplicateWord
		}
	}
	m.words = append(m.words, word)
	return nil
}

func (m *MemoryRepository) List(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string{}, m.words...), nil
}

func (m *MemoryRepository) Delete(ctx context.Context, word string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, w := range m.words {
		if w == word {
			m.words = append(m.words[:i], m.words[i+1:]...)
			return nil
		}
	}
	return nil
}
