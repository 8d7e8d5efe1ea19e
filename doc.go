// Package timeslice provides a cooperative batch-processing task. A Task
// applies a process function to each element of a fixed value sequence,
// but instead of walking the whole sequence in one uninterrupted pass, it
// slices the work into bounded batches and yields control back to a
// scheduler between batches. Other callbacks queued on the same scheduler
// run in the gaps, so a long sequence never monopolizes the thread that
// drives it.
//
// A batch is bounded by one of two strategies chosen at construction:
//
//   - Iterations(n): each batch processes at most n elements.
//   - Milliseconds(d): each batch keeps processing while the elapsed time
//     since the batch started is strictly less than d. The check happens
//     between elements, so a slow element can overrun the budget by its
//     own processing time, but never gets preempted mid-element.
//
// Construction never processes anything synchronously; the first batch is
// deferred like every other, so the caller always has the handle before
// the first element runs:
//
//	loop := sched.NewLoop()
//	defer loop.Stop()
//
//	task, err := timeslice.New(loop, values, func(v int) bool {
//		handle(v)
//		return true // false stops the task early, as a success
//	}, timeslice.Iterations(100))
//	if err != nil {
//		return err
//	}
//
//	if err := task.Wait(ctx); err != nil {
//		// ErrCanceled if someone called task.Cancel first
//	}
//
// The task's outcome is a single-resolution completion signal: it settles
// exactly once, either with success (sequence exhausted or stop sentinel)
// or with ErrCanceled. Cancel is idempotent, takes effect at the next
// batch boundary, and is a no-op on the signal once the task completed.
//
// Elements are always processed strictly in sequence order. All
// processing happens on the scheduler's goroutine; only Status, Cancel and
// the completion signal are meant to be touched from elsewhere.
package timeslice
