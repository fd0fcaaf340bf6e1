package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps records in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Entry
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]Entry)}
}

func (m *MemoryStore) Put(_ context.Context, collection, id string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	coll, ok := m.collections[collection]
	if !ok {
		coll = make(map[string]Entry)
		m.collections[collection] = coll
	}
	coll[id] = Entry{
		ID:        id,
		Data:      append([]byte(nil), data...),
		UpdatedAt: time.Now().UTC(),
	}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, collection, id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.collections[collection][id]
	if !ok {
		return nil, notFound(collection, id)
	}
	return append([]byte(nil), entry.Data...), nil
}

func (m *MemoryStore) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	coll := m.collections[collection]
	if _, ok := coll[id]; !ok {
		return notFound(collection, id)
	}
	delete(coll, id)
	return nil
}

func (m *MemoryStore) List(_ context.Context, collection string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	coll := m.collections[collection]
	entries := make([]Entry, 0, len(coll))
	for _, entry := range coll {
		entry.Data = append([]byte(nil), entry.Data...)
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
