package timeslice

import (
	"sync"
	"sync/atomic"
	"time"
)

// StatsCollector collects metrics about a task's batches. Implementations
// can keep them in memory or forward them to a monitoring system. The
// collector is optional; if none is provided, nothing is collected.
//
// A collector may be shared between tasks to aggregate their metrics.
type StatsCollector interface {
	// RecordBatchStart is called at the top of every batch that actually
	// runs (a batch skipped because the task was canceled is not counted).
	RecordBatchStart()

	// RecordBatchComplete is called when a batch finishes its element
	// steps. itemCount is the number of elements the batch processed and
	// duration the elapsed time measured by the task's clock.
	RecordBatchComplete(itemCount int, duration time.Duration)

	// RecordItemsProcessed is called once per batch with the number of
	// elements it processed.
	RecordItemsProcessed(count int)

	// RecordEarlyStop is called when the process function returns the stop
	// sentinel.
	RecordEarlyStop()

	// RecordCancelRequest is called for every Cancel call, including
	// redundant ones and ones arriving after the task completed.
	RecordCancelRequest()

	// GetStats returns a snapshot of the current statistics.
	GetStats() Stats
}

// Stats holds aggregated statistics about task processing.
type Stats struct {
	// BatchesStarted is the number of batches that started running.
	BatchesStarted uint64

	// BatchesCompleted is the number of batches that finished.
	BatchesCompleted uint64

	// ItemsProcessed is the number of elements the process function saw.
	ItemsProcessed uint64

	// EarlyStops is the number of stop-sentinel returns recorded.
	EarlyStops uint64

	// CancelRequests is the number of Cancel calls recorded.
	CancelRequests uint64

	// TotalBatchTime is the cumulative elapsed time of all batches.
	TotalBatchTime time.Duration

	// MinBatchTime is the shortest batch elapsed time.
	MinBatchTime time.Duration

	// MaxBatchTime is the longest batch elapsed time.
	MaxBatchTime time.Duration

	// MinBatchSize is the smallest number of elements a batch processed.
	MinBatchSize int

	// MaxBatchSize is the largest number of elements a batch processed.
	MaxBatchSize int

	// StartTime is when statistics collection began.
	StartTime time.Time

	// LastUpdateTime is when statistics were last updated.
	LastUpdateTime time.Time
}

// AverageBatchTime returns the average elapsed time per completed batch,
// or 0 if no batch has completed.
func (s *Stats) AverageBatchTime() time.Duration {
	if s.BatchesCompleted == 0 {
		return 0
	}
	return s.TotalBatchTime / time.Duration(s.BatchesCompleted)
}

// AverageBatchSize returns the average number of elements per completed
// batch, or 0 if no batch has completed.
func (s *Stats) AverageBatchSize() float64 {
	if s.BatchesCompleted == 0 {
		return 0
	}
	return float64(s.ItemsProcessed) / float64(s.BatchesCompleted)
}

// NoOpStatsCollector discards all metrics. It is the default when no
// collector is specified.
type NoOpStatsCollector struct{}

// RecordBatchStart implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordBatchStart() {}

// RecordBatchComplete implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordBatchComplete(itemCount int, duration time.Duration) {}

// RecordItemsProcessed implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordItemsProcessed(count int) {}

// RecordEarlyStop implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordEarlyStop() {}

// RecordCancelRequest implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordCancelRequest() {}

// GetStats implements the StatsCollector interface.
func (n *NoOpStatsCollector) GetStats() Stats {
	return Stats{}
}

// BasicStatsCollector is a simple in-memory StatsCollector. All operations
// are thread-safe, so one collector can aggregate several tasks.
type BasicStatsCollector struct {
	mu    sync.RWMutex
	stats Stats

	// Atomic counters for lock-free updates
	batchesStarted   uint64
	batchesCompleted uint64
	itemsProcessed   uint64
	earlyStops       uint64
	cancelRequests   uint64
}

// NewBasicStatsCollector creates a new BasicStatsCollector.
func NewBasicStatsCollector() *BasicStatsCollector {
	now := time.Now()
	return &BasicStatsCollector{
		stats: Stats{
			StartTime:      now,
			LastUpdateTime: now,
			MinBatchTime:   time.Duration(1<<63 - 1), // max duration until a batch completes
		},
	}
}

// RecordBatchStart implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordBatchStart() {
	atomic.AddUint64(&b.batchesStarted, 1)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.LastUpdateTime = time.Now()
}

// RecordBatchComplete implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordBatchComplete(itemCount int, duration time.Duration) {
	atomic.AddUint64(&b.batchesCompleted, 1)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.stats.LastUpdateTime = time.Now()
	b.stats.TotalBatchTime += duration

	if duration < b.stats.MinBatchTime {
		b.stats.MinBatchTime = duration
	}
	if duration > b.stats.MaxBatchTime {
		b.stats.MaxBatchTime = duration
	}
	if itemCount < b.stats.MinBatchSize || b.stats.MinBatchSize == 0 {
		b.stats.MinBatchSize = itemCount
	}
	if itemCount > b.stats.MaxBatchSize {
		b.stats.MaxBatchSize = itemCount
	}
}

// RecordItemsProcessed implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordItemsProcessed(count int) {
	if count < 0 {
		return
	}
	atomic.AddUint64(&b.itemsProcessed, uint64(count))
}

// RecordEarlyStop implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordEarlyStop() {
	atomic.AddUint64(&b.earlyStops, 1)
}

// RecordCancelRequest implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordCancelRequest() {
	atomic.AddUint64(&b.cancelRequests, 1)
}

// GetStats implements the StatsCollector interface.
func (b *BasicStatsCollector) GetStats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stats := b.stats
	stats.BatchesStarted = atomic.LoadUint64(&b.batchesStarted)
	stats.BatchesCompleted = atomic.LoadUint64(&b.batchesCompleted)
	stats.ItemsProcessed = atomic.LoadUint64(&b.itemsProcessed)
	stats.EarlyStops = atomic.LoadUint64(&b.earlyStops)
	stats.CancelRequests = atomic.LoadUint64(&b.cancelRequests)

	if stats.BatchesCompleted == 0 {
		stats.MinBatchTime = 0
	}

	return stats
}
