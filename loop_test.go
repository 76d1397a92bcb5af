package numbercard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xevion/go-ha-number-card/render"
)

type countingUpdater struct {
	updates int
}

func (u *countingUpdater) Update() *render.Node {
	u.updates++
	return nil
}

func TestLoopScheduleDedups(t *testing.T) {
	loop := NewLoop()
	a, b := &countingUpdater{}, &countingUpdater{}

	loop.Schedule(a)
	loop.Schedule(b)
	loop.Schedule(a)
	assert.Equal(t, 2, loop.Pending())

	assert.Equal(t, 2, loop.Flush())
	assert.Equal(t, 1, a.updates)
	assert.Equal(t, 1, b.updates)
	assert.Equal(t, 0, loop.Flush())
}

func TestLoopRunPendingInOrder(t *testing.T) {
	loop := NewLoop()
	var order []int
	for i := range 3 {
		require.NoError(t, loop.Post(func() { order = append(order, i) }))
	}

	assert.Equal(t, 3, loop.RunPending())
	assert.Equal(t, []int{0, 1, 2}, order)
	assert.Equal(t, 0, loop.RunPending())
}

func TestLoopTaskPanicIsContained(t *testing.T) {
	loop := NewLoop()
	ran := false
	require.NoError(t, loop.Post(func() { panic("boom") }))
	require.NoError(t, loop.Post(func() { ran = true }))

	assert.NotPanics(t, func() { loop.RunPending() })
	assert.True(t, ran)
}

func TestLoopTick(t *testing.T) {
	loop := NewLoop()
	u := &countingUpdater{}
	require.NoError(t, loop.Post(func() { loop.Schedule(u) }))

	loop.Tick()
	assert.Equal(t, 1, u.updates)
}

func TestLoopPostAfterClose(t *testing.T) {
	loop := NewLoop()
	loop.Close()
	loop.Close()
	assert.ErrorIs(t, loop.Post(func() {}), ErrLoopClosed)
}

func TestLoopRun(t *testing.T) {
	loop := NewLoop()
	u := &countingUpdater{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	ran := make(chan struct{})
	require.NoError(t, loop.Post(func() {
		loop.Schedule(u)
		close(ran)
	}))

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
	assert.Equal(t, 1, u.updates)
}

type signalUpdater chan struct{}

func (u signalUpdater) Update() *render.Node {
	u <- struct{}{}
	return nil
}

func TestLoopRunFlushesIdleRenders(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	// No task follows, so only the idle flush can pick it up.
	u := make(signalUpdater, 1)
	loop.Schedule(u)

	select {
	case <-u:
	case <-time.After(2 * time.Second):
		t.Fatal("render scheduled outside a task was never flushed")
	}

	cancel()
	<-done
}
