package storage

import "sync"

// MemoryBests is an in-memory bests store for play without a database.
// State is lost when the process exits.
type MemoryBests struct {
	mu     sync.RWMutex
	values map[string]int
}

// NewMemoryBests constructs an empty in-memory bests store.
func NewMemoryBests() *MemoryBests {
	return &MemoryBests{values: make(map[string]int)}
}

// Get returns the stored value, or 0 if the key was never set.
func (m *MemoryBests) Get(key string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

// Set stores value under key.
func (m *MemoryBests) Set(key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
