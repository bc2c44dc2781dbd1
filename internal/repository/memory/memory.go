package memory

import (
	"context"
	"sync"
)

// Store is an in-memory record store. It backs tests and the
// STORE_DRIVER=memory mode for running without a database; contents vanish
// on process exit.
type Store struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{records: make(map[string][]byte)}
}

// Get returns the stored value, or (nil, nil) for unknown keys.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores a copy of value under key.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.records[key] = stored
	return nil
}

// Close is a no-op.
func (s *Store) Close(context.Context) error { return nil }
