package timeslice

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/timeslice-go/timeslice/clock"
	"github.com/timeslice-go/timeslice/sched"
)

// Status is the lifecycle state of a Task.
type Status int

const (
	// StatusRunning means the task has batches left to run or schedule.
	StatusRunning Status = iota

	// StatusCanceled means Cancel stopped the task before it finished.
	// Terminal.
	StatusCanceled

	// StatusCompleted means the task processed all values or the process
	// function returned the stop sentinel. Terminal.
	StatusCompleted
)

// String returns the name of the status.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusCanceled:
		return "canceled"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ProcessFunc handles one element of the task's value sequence. Returning
// false is the stop sentinel: the task completes early, as a success, with
// the current element counted as processed. Any other outcome (returning
// true) lets the task continue with the next element.
//
// The function runs on the scheduler's goroutine. A panic is not recovered
// by the task: it unwinds the scheduler turn, and the task stays in
// StatusRunning forever with its completion signal never settling.
type ProcessFunc[T any] func(v T) bool

// Task applies a process function to each element of a fixed value
// sequence without monopolizing its scheduler. Work is sliced into batches
// bounded by the task's Strategy, and between batches the task yields by
// deferring the next batch, so other callbacks queued on the same
// scheduler run in between.
//
// Create a Task with New or NewWithOptions. Construction schedules the
// first batch; no element is ever processed synchronously inside the
// constructor, so the caller always holds the handle before processing
// starts. Elements are processed strictly in sequence order.
//
// The cursor and the value slice are touched only from scheduler turns.
// Status and the completion signal are safe to observe from any goroutine.
type Task[T any] struct {
	id        string
	values    []T
	process   ProcessFunc[T]
	strategy  Strategy
	scheduler sched.Scheduler
	clk       clock.Clock
	logger    Logger
	stats     StatsCollector

	onProgress ProgressFunc
	progress   *Progress

	completion *Completion

	// cursor is the index of the next element to process. It never exceeds
	// len(values) and is only read or written during scheduler turns.
	cursor  int
	batches uint64

	mu              sync.Mutex
	status          Status
	cancelRequested bool
}

// New creates a task over values and schedules its first batch on s. It
// returns immediately; processing begins on the scheduler's next turn.
//
// The strategy must be one of Iterations or Milliseconds with a positive
// amount. An empty value slice is fine: the task completes on its first
// scheduled turn without calling process.
func New[T any](s sched.Scheduler, values []T, process ProcessFunc[T], strategy Strategy) (*Task[T], error) {
	return NewWithOptions(s, values, process, strategy, nil)
}

// NewWithOptions is New with optional collaborators: a logger, a stats
// collector, a clock (used by the milliseconds budget) and a progress
// callback. A nil opts, or any nil field, falls back to the defaults
// described on Options.
func NewWithOptions[T any](
	s sched.Scheduler,
	values []T,
	process ProcessFunc[T],
	strategy Strategy,
	opts *Options,
) (*Task[T], error) {
	if s == nil {
		return nil, ErrNilScheduler
	}
	if process == nil {
		return nil, ErrNilProcess
	}
	if err := strategy.validate(); err != nil {
		return nil, err
	}

	opts = opts.WithDefaults()

	t := &Task[T]{
		id:         ulid.Make().String(),
		values:     values,
		process:    process,
		strategy:   strategy,
		scheduler:  s,
		clk:        opts.Clock,
		logger:     opts.Logger,
		stats:      opts.Stats,
		onProgress: opts.OnProgress,
		completion: newCompletion(),
		status:     StatusRunning,
	}
	if t.onProgress != nil {
		t.progress = NewProgress(len(values))
	}

	t.logger.Debug("task %s: created with %d value(s), strategy %s", t.id, len(values), strategy)
	s.Defer(t.runBatch)

	return t, nil
}

// ID returns the task's ULID, used to correlate log lines.
func (t *Task[T]) ID() string {
	return t.id
}

// Status returns a snapshot of the task's lifecycle state.
func (t *Task[T]) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// IsCanceled reports whether the task was canceled before completing.
func (t *Task[T]) IsCanceled() bool {
	return t.Status() == StatusCanceled
}

// IsCompleted reports whether the task finished naturally.
func (t *Task[T]) IsCompleted() bool {
	return t.Status() == StatusCompleted
}

// Completion returns the task's single-resolution completion signal.
func (t *Task[T]) Completion() *Completion {
	return t.completion
}

// Done returns a channel that is closed once the task reaches a terminal
// state. See Completion for the full semantics.
func (t *Task[T]) Done() <-chan struct{} {
	return t.completion.Done()
}

// Err returns nil after natural completion and ErrCanceled after
// cancellation. Before the task settles it returns nil, so wait on Done
// first.
func (t *Task[T]) Err() error {
	return t.completion.Err()
}

// Wait blocks until the task settles or ctx is done, whichever comes
// first, and returns the corresponding error.
func (t *Task[T]) Wait(ctx context.Context) error {
	select {
	case <-t.completion.Done():
		return t.completion.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cancel requests that the task stop processing. It is idempotent, never
// fails, and is safe to call from any goroutine at any point in the task's
// life.
//
// If the task is still running, its status becomes StatusCanceled and the
// completion signal settles with ErrCanceled. A batch turn that is already
// queued will observe the canceled status when it wakes up and stop
// without processing anything. Cancel does not interrupt a batch that is
// executing right now; it takes effect at the next batch boundary.
//
// Canceling a task that has already completed records the request but
// changes neither the status nor the settled signal.
func (t *Task[T]) Cancel() {
	t.mu.Lock()
	t.cancelRequested = true
	if t.status != StatusRunning {
		status := t.status
		t.mu.Unlock()
		t.stats.RecordCancelRequest()
		t.logger.Debug("task %s: cancel requested after reaching %s", t.id, status)
		return
	}
	t.status = StatusCanceled
	t.mu.Unlock()

	t.stats.RecordCancelRequest()
	t.completion.settle(ErrCanceled)
	t.logger.Info("task %s: canceled", t.id)
}

// stepResult is the outcome of one per-element processing step.
type stepResult int

const (
	stepAdvanced  stepResult = iota // element processed, task continues
	stepStopped                     // element processed, stop sentinel returned
	stepExhausted                   // no element left to process
)

func (t *Task[T]) step() stepResult {
	if t.cursor >= len(t.values) {
		return stepExhausted
	}

	keepGoing := t.process(t.values[t.cursor])
	t.cursor++
	if !keepGoing {
		return stepStopped
	}
	return stepAdvanced
}

// runBatch runs one batch of processing steps and, unless the task reached
// a terminal state, re-arms itself on the scheduler. Each invocation is an
// independent scheduler turn, so chained batches never grow the call
// stack.
func (t *Task[T]) runBatch() {
	// The cancel check happens once per batch, not once per element.
	if status := t.Status(); status != StatusRunning {
		t.logger.Debug("task %s: skipping batch, status %s", t.id, status)
		return
	}

	t.batches++
	t.stats.RecordBatchStart()

	var (
		processed int
		result    stepResult
		start     = t.clk.Now()
	)

	switch t.strategy.budget {
	case BudgetIterations:
		for n := 0; n < t.strategy.iterations; n++ {
			result = t.step()
			if result != stepExhausted {
				processed++
			}
			if result != stepAdvanced {
				break
			}
		}

	case BudgetMilliseconds:
		for {
			result = t.step()
			if result != stepExhausted {
				processed++
			}
			if result != stepAdvanced {
				break
			}
			// The budget only bounds where the next element may start; an
			// element that overruns it still finishes before this check.
			if t.clk.Since(start) >= t.strategy.interval {
				break
			}
		}
	}

	// A batch whose budget ran out exactly at the end of the sequence is
	// the last one; completing here avoids scheduling an empty turn.
	if result == stepAdvanced && t.cursor >= len(t.values) {
		result = stepExhausted
	}

	t.finishBatch(processed, result, t.clk.Since(start))
}

func (t *Task[T]) finishBatch(processed int, result stepResult, elapsed time.Duration) {
	t.stats.RecordBatchComplete(processed, elapsed)
	t.stats.RecordItemsProcessed(processed)
	if t.progress != nil {
		t.progress.AddProcessed(processed)
		t.onProgress(t.progress.Snapshot())
	}

	switch result {
	case stepAdvanced:
		t.logger.Debug("task %s: batch %d processed %d value(s) in %v, %d remaining",
			t.id, t.batches, processed, elapsed, len(t.values)-t.cursor)
		t.scheduler.Defer(t.runBatch)

	case stepStopped:
		t.stats.RecordEarlyStop()
		t.complete("stopped by process function")

	case stepExhausted:
		t.complete("all values processed")
	}
}

// complete moves the task to StatusCompleted and settles the signal with
// success, unless a cancel won the race to a terminal state first.
func (t *Task[T]) complete(reason string) {
	t.mu.Lock()
	if t.status != StatusRunning {
		t.mu.Unlock()
		return
	}
	t.status = StatusCompleted
	t.mu.Unlock()

	t.completion.settle(nil)
	t.logger.Info("task %s: completed (%s), %d value(s) in %d batch(es)",
		t.id, reason, t.cursor, t.batches)
}
