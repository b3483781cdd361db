// Package memory provides an in-memory key/value store used by tests
// and by the ephemeral "memory" backend. Values are round-tripped
// through JSON so callers observe the same shapes as with the durable
// backend.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type Store struct {
	mu   sync.Mutex
	data map[string][]byte
}

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get decodes the stored document for key into out, reporting whether
// the key was present.
func (s *Store) Get(_ context.Context, key string, out any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under key as a JSON document.
func (s *Store) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return nil
}

// Len returns the number of stored keys. Test helper.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
