package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolDo(t *testing.T) {
	pool := NewPool(&Config{MaxWorkers: 2, QueueSize: 4, TaskTimeout: time.Second})
	pool.Start()
	defer pool.Stop(context.Background())

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		err := pool.Do(context.Background(), func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(10), ran.Load())
	assert.Equal(t, int64(10), pool.GetMetrics()["completed_tasks"])
}

func TestPoolDoReturnsTaskError(t *testing.T) {
	pool := NewPool(nil)
	pool.Start()
	defer pool.Stop(context.Background())

	boom := errors.New("boom")
	err := pool.Do(context.Background(), func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)

	err = pool.Do(context.Background(), func(context.Context) error { panic("bad") })
	assert.ErrorContains(t, err, "panicked")
	assert.Equal(t, int64(2), pool.GetMetrics()["failed_tasks"])
}

func TestPoolTaskTimeout(t *testing.T) {
	pool := NewPool(&Config{MaxWorkers: 1, QueueSize: 1, TaskTimeout: 20 * time.Millisecond})
	pool.Start()
	defer pool.Stop(context.Background())

	err := pool.Do(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPoolQueueFull(t *testing.T) {
	pool := NewPool(&Config{MaxWorkers: 1, QueueSize: 1})
	// not started: nothing drains the queue
	require.NoError(t, pool.Submit(func(context.Context) error { return nil }))
	assert.ErrorIs(t, pool.Submit(func(context.Context) error { return nil }), ErrQueueFull)
	assert.True(t, pool.IsBusy())
}

func TestPoolStopped(t *testing.T) {
	pool := NewPool(nil)
	pool.Start()
	pool.Stop(context.Background())
	pool.Stop(context.Background())

	assert.ErrorIs(t, pool.Submit(func(context.Context) error { return nil }), ErrPoolStopped)
	assert.True(t, pool.IsIdle())
}

func TestPoolCallerCancel(t *testing.T) {
	pool := NewPool(&Config{MaxWorkers: 1, QueueSize: 2})
	pool.Start()
	defer pool.Stop(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := pool.Do(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		close(release)
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)
	<-release
}
