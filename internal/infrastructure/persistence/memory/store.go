// Package memory implements the copy-on-write entity store backing every
// application service. Writers mutate a private clone of the state and
// publish it with a pointer swap, so a multi-step transition either lands
// whole or not at all, and readers are never blocked by a writer.
package memory

import (
	"sync"
)

// Store owns the current published State and serializes writes to it.
type Store struct {
	mu      sync.RWMutex
	state   *State
	version uint64
}

// Snapshot is an immutable view of the store at a single point in time.
type Snapshot struct {
	State   *State
	Version uint64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{state: newState()}
}

// Update applies fn to a deep clone of the current state. If fn returns nil
// the clone becomes the new published state and the version advances; if fn
// returns an error the clone is discarded and the store is untouched, no
// matter how much fn mutated before failing.
func (s *Store) Update(fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	if err := fn(next); err != nil {
		return err
	}
	s.state = next
	s.version++
	return nil
}

// Snapshot returns the current published state. The returned State is never
// mutated after publication, so callers may read it without holding any lock
// for as long as they like; later writes produce new states instead.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{State: s.state, Version: s.version}
}

// Version returns the number of successful updates applied so far
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
