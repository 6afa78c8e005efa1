package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process implementation used when SQLite is not configured.
type MemoryStore struct {
	mu      sync.RWMutex
	uploads map[string]*Upload
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{uploads: make(map[string]*Upload), now: time.Now}
}

func (m *MemoryStore) Put(_ context.Context, name string, data []byte) (*Upload, error) {
	u := &Upload{ID: ContentID(data), Name: name, Data: data, CreatedAt: m.now()}
	m.mu.Lock()
	m.uploads[u.ID] = u
	m.mu.Unlock()
	return u, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Upload, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.uploads[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *MemoryStore) Purge(_ context.Context, olderThan time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, u := range m.uploads {
		if u.CreatedAt.Before(olderThan) {
			delete(m.uploads, id)
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) Close() error { return nil }
