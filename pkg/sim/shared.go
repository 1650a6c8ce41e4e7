package sim

import (
	"errors"
	"sync"
)

// ErrDisplayPoisoned is returned once a holder of the display lock has
// panicked. The slot cannot be trusted afterwards.
var ErrDisplayPoisoned = errors.New("shared display poisoned")

// SharedDisplay is the single-slot handoff between the simulation loop and
// the interactive consumer. Neither side ever waits on the lock.
type SharedDisplay struct {
	mu       sync.Mutex
	pending  *BoardDisplay
	poisoned bool
}

// NewSharedDisplay returns an empty slot.
func NewSharedDisplay() *SharedDisplay { return &SharedDisplay{} }

// Offer stores the snapshot produced by build if the lock is free and the
// slot is empty. build is not called otherwise. It reports whether a snapshot
// was stored.
func (s *SharedDisplay) Offer(build func() BoardDisplay) (bool, error) {
	if !s.mu.TryLock() {
		return false, nil
	}
	defer s.mu.Unlock()
	if s.poisoned {
		return false, ErrDisplayPoisoned
	}
	if s.pending != nil {
		return false, nil
	}
	s.guard(func() {
		d := build()
		s.pending = &d
	})
	return true, nil
}

// Take removes the pending snapshot. The bool is false when the lock is busy
// or nothing is pending; the caller keeps rendering its cached copy.
func (s *SharedDisplay) Take() (BoardDisplay, bool, error) {
	if !s.mu.TryLock() {
		return BoardDisplay{}, false, nil
	}
	defer s.mu.Unlock()
	if s.poisoned {
		return BoardDisplay{}, false, ErrDisplayPoisoned
	}
	if s.pending == nil {
		return BoardDisplay{}, false, nil
	}
	d := *s.pending
	s.pending = nil
	return d, true, nil
}

// guard runs fn while holding the lock and marks the slot poisoned if fn
// panics. The panic continues unwinding.
func (s *SharedDisplay) guard(fn func()) {
	ok := false
	defer func() {
		if !ok {
			s.poisoned = true
		}
	}()
	fn()
	ok = true
}
