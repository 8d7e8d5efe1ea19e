package timeslice

import "sync"

// Completion is the single-resolution signal through which a task reports
// its terminal outcome. It settles exactly once: with a nil error when the
// task completes (all elements processed, or the process function returned
// the stop sentinel), or with ErrCanceled when the task is canceled first.
//
// Any number of listeners may wait on Done; listeners that attach after
// the signal has settled observe the outcome immediately, since Done
// returns a closed channel from then on. An outcome nobody reads is simply
// dropped, so an unobserved cancellation never surfaces anywhere else.
type Completion struct {
	mu      sync.Mutex
	done    chan struct{}
	err     error
	settled bool
}

func newCompletion() *Completion {
	return &Completion{
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the signal settles.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Err returns the settled outcome: nil for success, ErrCanceled for
// cancellation. Until the signal settles, Err returns nil; wait on Done
// (or check Settled) before interpreting the result.
func (c *Completion) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Settled reports whether the signal has settled.
func (c *Completion) Settled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settled
}

// settle records the outcome and closes the done channel. Only the first
// call wins; later calls report false and change nothing.
func (c *Completion) settle(err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.settled {
		return false
	}
	c.settled = true
	c.err = err
	close(c.done)
	return true
}
