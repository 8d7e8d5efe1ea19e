package timeslice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion_SettlesOnce(t *testing.T) {
	c := newCompletion()

	assert.False(t, c.Settled())
	assert.NoError(t, c.Err())
	select {
	case <-c.Done():
		t.Fatal("done channel closed before settling")
	default:
	}

	require.True(t, c.settle(ErrCanceled))
	assert.True(t, c.Settled())
	assert.ErrorIs(t, c.Err(), ErrCanceled)

	// Only the first settle wins.
	assert.False(t, c.settle(nil))
	assert.ErrorIs(t, c.Err(), ErrCanceled)

	select {
	case <-c.Done():
	default:
		t.Fatal("done channel should be closed")
	}
}

func TestCompletion_LateListener(t *testing.T) {
	c := newCompletion()
	require.True(t, c.settle(nil))

	// A listener attaching after resolution observes the outcome
	// immediately.
	select {
	case <-c.Done():
	default:
		t.Fatal("late listener should see a closed channel")
	}
	assert.NoError(t, c.Err())
	assert.True(t, c.Settled())
}
