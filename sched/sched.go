package sched

import "sync"

// Scheduler schedules a callback to run after the current synchronous work
// has finished. Callbacks scheduled on the same Scheduler run in FIFO order
// relative to each other, and never concurrently.
//
// The timeslice engine uses a Scheduler to yield control between batches:
// each batch re-arms the next one with Defer instead of looping in place.
type Scheduler interface {
	// Defer queues fn to run after all previously deferred callbacks.
	// A nil fn is ignored.
	Defer(fn func())
}

// Loop is a Scheduler backed by a single goroutine draining a FIFO queue.
// All deferred callbacks run on that one goroutine, one at a time, in the
// order they were queued. This is the "single logical thread" the engine's
// concurrency model assumes: callbacks may freely touch state shared with
// other callbacks on the same Loop without locking.
//
// Create one with NewLoop. The zero value is not usable.
type Loop struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	stopped bool
	done    chan struct{}
}

// NewLoop creates a Loop and starts its goroutine. The caller should call
// Stop when the loop is no longer needed.
func NewLoop() *Loop {
	l := &Loop{
		done: make(chan struct{}),
	}
	l.cond = sync.NewCond(&l.mu)
	go l.run()
	return l
}

// Defer implements the Scheduler interface. It queues fn behind any
// callbacks already waiting. Defer is safe to call from any goroutine,
// including from inside a callback running on the Loop itself.
//
// After Stop has been called, Defer silently drops the callback.
func (l *Loop) Defer(fn func()) {
	if fn == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return
	}
	l.queue = append(l.queue, fn)
	l.cond.Signal()
}

// Stop asks the loop goroutine to exit. The callback currently running (if
// any) finishes; callbacks still queued are abandoned. Stop is idempotent
// and returns without waiting; use Done to wait for the goroutine to exit.
//
// Stop must not be awaited from inside a callback running on the Loop,
// since the goroutine cannot exit while the callback is still running.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return
	}
	l.stopped = true
	l.cond.Signal()
}

// Done returns a channel that is closed once the loop goroutine has exited.
//
//	loop.Stop()
//	<-loop.Done()
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) run() {
	defer close(l.done)

	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.stopped {
			l.cond.Wait()
		}
		if l.stopped {
			l.mu.Unlock()
			return
		}
		fn := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		fn()
	}
}
