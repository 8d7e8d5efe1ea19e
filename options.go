package timeslice

import "github.com/timeslice-go/timeslice/clock"

// Options contains the optional collaborators for creating a Task with
// NewWithOptions. The zero value (or a nil *Options) selects all defaults.
type Options struct {
	// Logger receives the task's log output.
	// If nil, no logging occurs (NoOpLogger).
	Logger Logger

	// Stats collects batch and item metrics.
	// If nil, no statistics are collected (NoOpStatsCollector).
	Stats StatsCollector

	// Clock measures elapsed time for the milliseconds budget.
	// If nil, the system clock is used.
	Clock clock.Clock

	// OnProgress, if set, is called at the end of every batch with a
	// snapshot of the task's progress. It runs on the scheduler's
	// goroutine, so it should return quickly.
	OnProgress ProgressFunc
}

// WithDefaults returns Options with default values where not specified.
func (o *Options) WithDefaults() *Options {
	if o == nil {
		o = &Options{}
	}

	if o.Logger == nil {
		o.Logger = &NoOpLogger{}
	}
	if o.Stats == nil {
		o.Stats = &NoOpStatsCollector{}
	}
	if o.Clock == nil {
		o.Clock = clock.System{}
	}

	return o
}
