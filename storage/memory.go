package storage

import (
	"context"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]string),
	}
}

func (m *MemoryStore) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, found := m.items[key]
	return value, found, nil
}

func (m *MemoryStore) SetItem(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = value
	return nil
}

func (m *MemoryStore) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}
