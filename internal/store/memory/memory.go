// Package memory provides an in-process record store, used in tests and for
// running the server without external infrastructure.
package memory

import (
	"context"
	"sync"

	"ecoride/internal/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]byte
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{collections: make(map[string][]byte)}
}

// Read returns the serialized contents of a collection.
func (s *Store) Read(ctx context.Context, collection string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.collections[collection]
	if !ok {
		return nil, store.ErrNoCollection
	}
	// Return a copy to avoid mutation issues.
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write replaces the serialized contents of a collection.
func (s *Store) Write(ctx context.Context, collection string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.collections[collection] = stored
	return nil
}

// Delete removes a collection entirely.
func (s *Store) Delete(ctx context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, collection)
	return nil
}
