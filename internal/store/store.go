package store

import (
	"sync"

	"github.com/ferrarinobrakes/oddsboard/internal/domain"
)

// Store owns one board's state and serializes every transition through a
// single dispatch path. Readers always receive value snapshots; the periodic
// scheduler and user-triggered actions go through the same mutex, so no
// further locking exists anywhere.
type Store struct {
	mu    sync.RWMutex
	state State
}

func New(sport string, window domain.TimeWindow, pageSize int) *Store {
	return &Store{state: NewState(sport, window, pageSize)}
}

// Dispatch applies the action and returns the post-transition snapshot.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
	return s.state.cloneMaps()
}

// Snapshot returns the current state. Maps are cloned; the match slice is
// shared because matches are immutable once fetched.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.cloneMaps()
}
