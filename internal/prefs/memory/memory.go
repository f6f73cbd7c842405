package memory

import (
	"context"
	"sync"
)

// Store keeps preferences in process memory. Nothing survives a restart.
type Store struct {
	mu     sync.Mutex
	values map[string]map[string]string
}

func New() *Store {
	return &Store{values: map[string]map[string]string{}}
}

func (s *Store) GetString(_ context.Context, namespace, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[namespace][key]
	return v, ok, nil
}

func (s *Store) PutString(_ context.Context, namespace, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.values[namespace]
	if !ok {
		ns = map[string]string{}
		s.values[namespace] = ns
	}
	ns[key] = value
	return nil
}
