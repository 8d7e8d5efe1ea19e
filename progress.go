package timeslice

import (
	"sync"
	"time"
)

// percentMultiplier converts a ratio to a percentage (0-100).
const percentMultiplier = 100

// ProgressFunc is called at the end of every batch with a snapshot of the
// task's progress. It runs on the scheduler's goroutine.
type ProgressFunc func(p ProgressSnapshot)

// Progress tracks how far a task has advanced through its value sequence.
// All methods are thread-safe, so progress can be read for UI updates
// while the task runs.
type Progress struct {
	mu sync.RWMutex

	totalItems     int
	processedItems int
	batches        int
	startTime      time.Time
	lastUpdateTime time.Time
}

// NewProgress creates a progress tracker for totalItems elements.
func NewProgress(totalItems int) *Progress {
	now := time.Now()
	return &Progress{
		totalItems:     totalItems,
		startTime:      now,
		lastUpdateTime: now,
	}
}

// AddProcessed records that one more batch processed itemsProcessed
// elements.
func (p *Progress) AddProcessed(itemsProcessed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processedItems += itemsProcessed
	p.batches++
	p.lastUpdateTime = time.Now()
}

// PercentComplete returns the completion percentage (0-100).
func (p *Progress) PercentComplete() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.percentCompleteLocked()
}

// IsComplete reports whether every element has been processed. A task that
// stops early via the stop sentinel can finish without IsComplete ever
// becoming true.
func (p *Progress) IsComplete() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.processedItems >= p.totalItems
}

// Snapshot returns an immutable copy of the current progress state.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return ProgressSnapshot{
		TotalItems:      p.totalItems,
		ProcessedItems:  p.processedItems,
		Batches:         p.batches,
		PercentComplete: p.percentCompleteLocked(),
		StartTime:       p.startTime,
		LastUpdateTime:  p.lastUpdateTime,
		Elapsed:         time.Since(p.startTime),
	}
}

// percentCompleteLocked must be called with the lock held.
func (p *Progress) percentCompleteLocked() float64 {
	if p.totalItems == 0 {
		return 0
	}
	return float64(p.processedItems) / float64(p.totalItems) * percentMultiplier
}

// ProgressSnapshot is an immutable snapshot of a task's progress.
type ProgressSnapshot struct {
	TotalItems      int
	ProcessedItems  int
	Batches         int
	PercentComplete float64
	StartTime       time.Time
	LastUpdateTime  time.Time
	Elapsed         time.Duration
}
