package store

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	// ErrNotFound reports an identifier with no record.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateIdentifier reports an identifier that is already taken.
	ErrDuplicateIdentifier = errors.New("store: duplicate identifier")
)

// KeyFunc extracts the identifier of a record.
type KeyFunc[K comparable, R any] func(R) K

// Mutator edits a record in place. Returning an error aborts the write.
type Mutator[R any] func(*R) error

// Store is an ordered, identifier-indexed collection of records.
type Store[K comparable, R any] struct {
	mu      sync.RWMutex
	key     KeyFunc[K, R]
	records []R
	index   map[K]int
}

// New creates a store seeded with records in order. Seeding fails on repeated
// identifiers.
func New[K comparable, R any](key KeyFunc[K, R], records ...R) (*Store[K, R], error) {
	if key == nil {
		return nil, fmt.Errorf("store: key func is required")
	}
	s := &Store[K, R]{
		key:     key,
		records: make([]R, 0, len(records)),
		index:   make(map[K]int, len(records)),
	}
	for _, record := range records {
		if err := s.Append(record); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Find returns the record stored under id.
func (s *Store[K, R]) Find(id K) (R, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		var zero R
		return zero, fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	return s.records[i], nil
}

// Contains reports whether id has a record.
func (s *Store[K, R]) Contains(id K) bool {
	s.mu.RLock()
	_, ok := s.index[id]
	s.mu.RUnlock()
	return ok
}

// Update replaces the record that has the same identifier as record.
func (s *Store[K, R]) Update(record R) error {
	id := s.key(record)
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	s.records[i] = record
	return nil
}

// Append adds record at the end of the order.
func (s *Store[K, R]) Append(record R) error {
	id := s.key(record)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.index[id]; exists {
		return fmt.Errorf("%w: %v", ErrDuplicateIdentifier, id)
	}
	s.index[id] = len(s.records)
	s.records = append(s.records, record)
	return nil
}

// Remove deletes the record stored under id.
func (s *Store[K, R]) Remove(id K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	s.records = slices.Delete(s.records, i, i+1)
	delete(s.index, id)
	for j := i; j < len(s.records); j++ {
		s.index[s.key(s.records[j])] = j
	}
	return nil
}

// Mutate runs fn on a copy of the record stored under id and writes the copy
// back when fn succeeds. Changing the identifier inside fn is rejected.
func (s *Store[K, R]) Mutate(id K, fn Mutator[R]) (R, error) {
	var zero R
	if fn == nil {
		return zero, fmt.Errorf("store: mutator is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return zero, fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	record := s.records[i]
	if err := fn(&record); err != nil {
		return zero, err
	}
	if s.key(record) != id {
		return zero, fmt.Errorf("store: mutator changed identifier %v", id)
	}
	s.records[i] = record
	return record, nil
}

// All returns the records in order.
func (s *Store[K, R]) All() []R {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// IDs returns the identifiers in order.
func (s *Store[K, R]) IDs() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]K, len(s.records))
	for i, record := range s.records {
		ids[i] = s.key(record)
	}
	return ids
}

// Len returns the number of records.
func (s *Store[K, R]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
