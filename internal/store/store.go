// Package store holds the in-memory transaction collection for the
// session. It is the single source of truth between persistence
// flushes; every mutation goes through the transaction service, which
// syncs the store back to the persistence adapter.
package store

import (
	"errors"
	"sync"

	"kas/internal/core"
)

var (
	ErrNotFound    = errors.New("transaction not found")
	ErrDuplicateID = errors.New("duplicate transaction id")
)

// Store is an ordered collection of transactions. The order carries no
// meaning; display ordering is computed on demand.
type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

func New() *Store {
	return &Store{}
}

// Replace swaps the whole collection, used when loading a session from
// the persistence adapter.
func (s *Store) Replace(items []core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.Transaction(nil), items...)
}

// Add appends one record. A record with the same ID must not already
// exist.
func (s *Store) Add(t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(t.ID) >= 0 {
		return ErrDuplicateID
	}
	s.items = append(s.items, t)
	return nil
}

// Get returns the record with the given ID.
func (s *Store) Get(id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return core.Transaction{}, ErrNotFound
	}
	return s.items[i], nil
}

// Put replaces the record whose ID matches t.ID.
func (s *Store) Put(t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(t.ID)
	if i < 0 {
		return ErrNotFound
	}
	s.items[i] = t
	return nil
}

// Remove deletes the record with the given ID.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

// All returns a copy of the current collection.
func (s *Store) All() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...)
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.items {
		if t.ID == id {
			return i
		}
	}
	return -1
}
