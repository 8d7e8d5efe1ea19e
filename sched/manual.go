package sched

import "sync"

// Manual is a Scheduler for deterministic tests. Deferred callbacks
// accumulate in a FIFO queue and only run when the test calls Step or
// RunAll, on the test's own goroutine. One Step is one "turn" of the
// cooperative scheduler.
//
// The zero value is ready to use.
type Manual struct {
	mu    sync.Mutex
	queue []func()
}

// Defer implements the Scheduler interface.
func (m *Manual) Defer(fn func()) {
	if fn == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, fn)
}

// Step runs the oldest queued callback on the caller's goroutine and
// reports whether a callback ran. Callbacks deferred while the callback
// runs are queued behind any that were already waiting.
func (m *Manual) Step() bool {
	m.mu.Lock()
	if len(m.queue) == 0 {
		m.mu.Unlock()
		return false
	}
	fn := m.queue[0]
	m.queue = m.queue[1:]
	m.mu.Unlock()

	fn()
	return true
}

// RunAll keeps stepping until the queue is empty and returns the number of
// callbacks that ran. A callback chain that re-arms itself forever will
// make RunAll spin forever, so it should only be used with tasks that
// reach a terminal state.
func (m *Manual) RunAll() int {
	turns := 0
	for m.Step() {
		turns++
	}
	return turns
}

// Len returns the number of callbacks currently queued.
func (m *Manual) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
