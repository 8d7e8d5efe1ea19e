// Package clock abstracts monotonic elapsed-time measurement so the
// timeslice engine's time-budgeted batching can be tested with a fake
// clock instead of real sleeps.
package clock

import (
	"sync"
	"time"
)

// Clock provides the current time and elapsed-time measurement. The engine
// only ever compares durations between two readings taken within a single
// batch, so implementations must be monotonic between those readings.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Since returns the time elapsed since t.
	Since(t time.Time) time.Duration
}

// System is a Clock backed by the runtime clock. time.Now carries a
// monotonic reading, so Since is safe against wall-clock adjustments.
type System struct{}

// Now implements the Clock interface.
func (System) Now() time.Time { return time.Now() }

// Since implements the Clock interface.
func (System) Since(t time.Time) time.Duration { return time.Since(t) }

// Fake is a Clock that only moves when Advance is called. It is intended
// for tests that need exact control over elapsed time.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake creates a Fake clock reading start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now implements the Clock interface.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Since implements the Clock interface.
func (f *Fake) Since(t time.Time) time.Duration {
	return f.Now().Sub(t)
}

// Advance moves the clock forward by d. Negative durations are ignored.
func (f *Fake) Advance(d time.Duration) {
	if d <= 0 {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
