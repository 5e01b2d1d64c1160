package editor

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before the preview is recomputed.
const DefaultDebounce = 300 * time.Millisecond

// Scheduler is a trailing-edge debouncer. Every Touch restarts one timer; the
// callback runs once the touches stop for the full interval.
type Scheduler struct {
	mu       sync.Mutex
	interval time.Duration
	fn       func()
	timer    *time.Timer
	pending  bool
	closed   bool
}

// NewScheduler returns a scheduler that calls fn after interval of quiet.
// A non-positive interval uses DefaultDebounce.
func NewScheduler(interval time.Duration, fn func()) *Scheduler {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	return &Scheduler{interval: interval, fn: fn}
}

// Interval returns the debounce period.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Touch records an edit and pushes the pending run back by one interval.
func (s *Scheduler) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.pending = true
	if s.timer == nil {
		s.timer = time.AfterFunc(s.interval, s.fire)
		return
	}
	s.timer.Reset(s.interval)
}

// Pending reports whether a run is scheduled.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Flush cancels the pending run and calls the callback now.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = false
	s.mu.Unlock()

	s.fn()
}

// Close stops the timer. Later touches are ignored.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.pending = false
	if s.timer != nil {
		s.timer.Stop()
	}
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	if s.closed || !s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = false
	s.mu.Unlock()

	s.fn()
}
