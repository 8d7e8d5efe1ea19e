package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_RunsCallbacksFIFO(t *testing.T) {
	loop := NewLoop()
	defer loop.Stop()

	// order is only touched by loop callbacks, which never run
	// concurrently; reading it after done is ordered by the channel.
	var order []int
	done := make(chan struct{})

	for i := 1; i <= 50; i++ {
		i := i
		loop.Defer(func() { order = append(order, i) })
	}
	loop.Defer(func() { close(done) })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callbacks")
	}

	require.Len(t, order, 50)
	for i, got := range order {
		assert.Equal(t, i+1, got)
	}
}

func TestLoop_DeferFromCallback(t *testing.T) {
	loop := NewLoop()
	defer loop.Stop()

	var order []int
	done := make(chan struct{})

	loop.Defer(func() {
		order = append(order, 1)
		loop.Defer(func() {
			order = append(order, 3)
			close(done)
		})
	})
	loop.Defer(func() { order = append(order, 2) })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callbacks")
	}

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestLoop_Stop(t *testing.T) {
	loop := NewLoop()

	loop.Stop()
	select {
	case <-loop.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("loop goroutine did not exit")
	}

	// Defer after Stop is dropped rather than queued forever.
	ran := make(chan struct{})
	loop.Defer(func() { close(ran) })
	select {
	case <-ran:
		t.Fatal("callback ran after Stop")
	case <-time.After(50 * time.Millisecond):
	}

	// Stop is idempotent.
	loop.Stop()
}
