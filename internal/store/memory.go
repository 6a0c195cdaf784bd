package store

import (
	"sync"

	"github.com/neuralchat/backend/internal/model/chat"
)

// MemoryStore implements Snapshot without touching disk. It backs
// tests and ephemeral runs where durability does not matter.
type MemoryStore struct {
	mu       sync.Mutex
	sessions chat.Collection
	saves    int
}

// NewMemoryStore returns an empty in-memory snapshot.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the last saved collection.
func (m *MemoryStore) Load() chat.Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions.Clone()
}

// Save replaces the held collection.
func (m *MemoryStore) Save(sessions chat.Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = sessions.Clone()
	m.saves++
	return nil
}

// SaveCount reports how many times Save has been called.
func (m *MemoryStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
