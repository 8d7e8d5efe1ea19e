package timeslice

import "errors"

var (
	// ErrCanceled settles a task's completion signal when Cancel is called
	// before the task finishes naturally. Test for it with errors.Is.
	ErrCanceled = errors.New("timeslice: task canceled")

	// ErrNilScheduler is returned by New when no scheduler is provided.
	ErrNilScheduler = errors.New("timeslice: scheduler cannot be nil")

	// ErrNilProcess is returned by New when no process function is provided.
	ErrNilProcess = errors.New("timeslice: process function cannot be nil")

	// ErrInvalidStrategy is returned, possibly wrapped with detail, when a
	// batching strategy has an unknown budget or a non-positive amount.
	ErrInvalidStrategy = errors.New("timeslice: invalid strategy")
)
