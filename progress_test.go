package timeslice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	p := NewProgress(10)

	assert.Equal(t, 0.0, p.PercentComplete())
	assert.False(t, p.IsComplete())

	p.AddProcessed(4)
	assert.InDelta(t, 40.0, p.PercentComplete(), 0.001)
	assert.False(t, p.IsComplete())

	p.AddProcessed(6)
	assert.InDelta(t, 100.0, p.PercentComplete(), 0.001)
	assert.True(t, p.IsComplete())

	snap := p.Snapshot()
	assert.Equal(t, 10, snap.TotalItems)
	assert.Equal(t, 10, snap.ProcessedItems)
	assert.Equal(t, 2, snap.Batches)
	assert.InDelta(t, 100.0, snap.PercentComplete, 0.001)
}

func TestProgress_EmptySequence(t *testing.T) {
	p := NewProgress(0)

	// Zero totals never divide; percent stays 0 by convention.
	assert.Equal(t, 0.0, p.PercentComplete())
	assert.True(t, p.IsComplete())
}
