package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystem(t *testing.T) {
	c := System{}
	start := c.Now()
	assert.GreaterOrEqual(t, c.Since(start), time.Duration(0))
}

func TestFake(t *testing.T) {
	start := time.Unix(0, 0)
	f := NewFake(start)

	assert.Equal(t, start, f.Now())
	assert.Equal(t, time.Duration(0), f.Since(start))

	f.Advance(10 * time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, f.Since(start))

	f.Advance(15 * time.Millisecond)
	assert.Equal(t, 25*time.Millisecond, f.Since(start))

	// Negative and zero advances are ignored.
	f.Advance(-time.Hour)
	f.Advance(0)
	assert.Equal(t, 25*time.Millisecond, f.Since(start))
}
