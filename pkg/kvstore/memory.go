package kvstore

import (
	"sort"
	"sync"
)

// MemoryStore is a Store held in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns a store seeded with values. Seed keys are
// canonicalised; invalid ones are dropped.
func NewMemoryStore(values map[string]string) *MemoryStore {
	s := &MemoryStore{values: map[string]string{}}
	for k, v := range values {
		if key, err := Canonical(k); err == nil {
			s.values[key] = v
		}
	}
	return s
}

func (s *MemoryStore) GetString(key string) (string, error) {
	key, err := Canonical(key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) SetString(key, value string) error {
	key, err := Canonical(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	key, err := Canonical(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return ErrNotFound
	}
	delete(s.values, key)
	return nil
}

// Entries returns matching entries sorted by name.
func (s *MemoryStore) Entries(pattern string) ([]Entry, error) {
	s.mu.RLock()
	entries := make([]Entry, 0, len(s.values))
	for k, v := range s.values {
		entries = append(entries, Entry{Name: k, Value: v})
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return Filter(entries, pattern)
}

// Snapshot returns a copy of every key and value.
func (s *MemoryStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
