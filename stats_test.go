package timeslice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicStatsCollector(t *testing.T) {
	c := NewBasicStatsCollector()

	c.RecordBatchStart()
	c.RecordBatchComplete(3, 10*time.Millisecond)
	c.RecordItemsProcessed(3)

	c.RecordBatchStart()
	c.RecordBatchComplete(1, 30*time.Millisecond)
	c.RecordItemsProcessed(1)

	c.RecordEarlyStop()
	c.RecordCancelRequest()
	c.RecordCancelRequest()

	s := c.GetStats()
	assert.Equal(t, uint64(2), s.BatchesStarted)
	assert.Equal(t, uint64(2), s.BatchesCompleted)
	assert.Equal(t, uint64(4), s.ItemsProcessed)
	assert.Equal(t, uint64(1), s.EarlyStops)
	assert.Equal(t, uint64(2), s.CancelRequests)
	assert.Equal(t, 40*time.Millisecond, s.TotalBatchTime)
	assert.Equal(t, 10*time.Millisecond, s.MinBatchTime)
	assert.Equal(t, 30*time.Millisecond, s.MaxBatchTime)
	assert.Equal(t, 1, s.MinBatchSize)
	assert.Equal(t, 3, s.MaxBatchSize)
	assert.Equal(t, 20*time.Millisecond, s.AverageBatchTime())
	assert.InDelta(t, 2.0, s.AverageBatchSize(), 0.001)
}

func TestBasicStatsCollector_Empty(t *testing.T) {
	c := NewBasicStatsCollector()

	s := c.GetStats()
	assert.Equal(t, uint64(0), s.BatchesCompleted)
	assert.Equal(t, time.Duration(0), s.MinBatchTime)
	assert.Equal(t, time.Duration(0), s.AverageBatchTime())
	assert.Equal(t, 0.0, s.AverageBatchSize())
}

func TestNoOpStatsCollector(t *testing.T) {
	c := &NoOpStatsCollector{}
	c.RecordBatchStart()
	c.RecordBatchComplete(5, time.Second)
	c.RecordItemsProcessed(5)
	c.RecordEarlyStop()
	c.RecordCancelRequest()
	assert.Equal(t, Stats{}, c.GetStats())
}
