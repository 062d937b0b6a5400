// Package scheduler provides cancellable delayed tasks for debouncing.
//
// Three implementations are available. Timer runs callbacks on timer
// goroutines. Loop only posts a Fired token from the timer goroutine and runs
// the callback when the owning event loop hands the token back, keeping every
// callback on the owner's goroutine. Manual is driven by an explicit clock
// for tests.
package scheduler

import (
	"sync"
	"time"
)

// Handle identifies a scheduled task. The zero Handle is never issued.
type Handle uint64

// Scheduler runs a function once after a delay unless cancelled first.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Handle
	Cancel(h Handle)
}

// Timer schedules with time.AfterFunc.
type Timer struct {
	mu      sync.Mutex
	next    Handle
	pending map[Handle]*time.Timer
}

var _ Scheduler = (*Timer)(nil)

// NewTimer creates a Timer scheduler.
func NewTimer() *Timer {
	return &Timer{pending: make(map[Handle]*time.Timer)}
}

// Schedule runs fn on its own goroutine after delay.
func (s *Timer) Schedule(delay time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	h := s.next
	s.pending[h] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		_, ok := s.pending[h]
		delete(s.pending, h)
		s.mu.Unlock()
		if ok {
			fn()
		}
	})
	return h
}

// Cancel stops h if it has not fired yet.
func (s *Timer) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.pending[h]; ok {
		t.Stop()
		delete(s.pending, h)
	}
}

// Pending returns the number of tasks that have not fired or been cancelled.
func (s *Timer) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop cancels every pending task.
func (s *Timer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for h, t := range s.pending {
		t.Stop()
		delete(s.pending, h)
	}
}
