// Package sched contains the deferred-execution collaborators used by the
// timeslice engine. A task never drives itself with its own goroutine;
// instead it asks a Scheduler to run each batch after the current
// synchronous work has finished, so other callbacks queued on the same
// scheduler get a chance to run between batches.
//
// Two implementations are provided. Loop is the production scheduler: a
// single goroutine that drains a FIFO queue of callbacks, giving the
// single-threaded cooperative execution model the engine expects. Manual
// is a deterministic scheduler for tests, where each call to Step runs
// exactly one queued callback on the caller's goroutine.
package sched
