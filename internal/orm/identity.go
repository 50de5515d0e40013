package orm

import (
	"sort"
	"sync"
)

// IdentityMap caches the in-memory instance for each persisted primary key.
// It is filled on save and load, emptied on delete, and never refreshed
// from the store on its own.
type IdentityMap[E any] struct {
	mu    sync.RWMutex
	items map[int64]E
}

// NewIdentityMap returns an empty map.
func NewIdentityMap[E any]() *IdentityMap[E] {
	return &IdentityMap[E]{items: make(map[int64]E)}
}

// Get returns the cached instance for id.
func (m *IdentityMap[E]) Get(id int64) (E, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.items[id]
	return e, ok
}

// Put registers e under id, replacing any previous entry.
func (m *IdentityMap[E]) Put(id int64, e E) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = e
}

// Remove evicts id.
func (m *IdentityMap[E]) Remove(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
}

// Len returns the number of cached instances.
func (m *IdentityMap[E]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// IDs returns the cached primary keys in ascending order.
func (m *IdentityMap[E]) IDs() []int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]int64, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clear drops every entry.
func (m *IdentityMap[E]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[int64]E)
}
