package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrQueueFull   = errors.New("task queue is full")
	ErrPoolStopped = errors.New("worker pool is stopped")
)

// Config represents pool configuration
type Config struct {
	MaxWorkers  int           // maximum number of workers
	QueueSize   int           // task queue size
	TaskTimeout time.Duration // timeout for single task, 0 disables it
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		MaxWorkers:  4,
		QueueSize:   64,
		TaskTimeout: 30 * time.Second,
	}
}

// Validate validates configuration
func (cfg *Config) Validate() error {
	if cfg.MaxWorkers < 1 {
		return errors.New("max workers must be greater than 0")
	}
	if cfg.QueueSize < 1 {
		return errors.New("queue size must be greater than 0")
	}
	if cfg.TaskTimeout < 0 {
		return errors.New("task timeout must be greater than or equal to 0")
	}
	return nil
}

// Task is a unit of work. The context is cancelled on task timeout or pool stop.
type Task func(ctx context.Context) error

type job struct {
	ctx  context.Context
	fn   Task
	done chan error
}

// Metrics tracks pool's operational metrics
type Metrics struct {
	ActiveWorkers  atomic.Int64
	PendingTasks   atomic.Int64
	CompletedTasks atomic.Int64
	FailedTasks    atomic.Int64
	ProcessingTime atomic.Int64 // nanoseconds
}

// Reset resets all metrics to zero
func (m *Metrics) Reset() {
	m.ActiveWorkers.Store(0)
	m.PendingTasks.Store(0)
	m.CompletedTasks.Store(0)
	m.FailedTasks.Store(0)
	m.ProcessingTime.Store(0)
}

// Pool runs tasks on a fixed set of goroutines behind a bounded queue.
//
// Usage:
//
//	pool := worker.NewPool(&worker.Config{MaxWorkers: 4, QueueSize: 64, TaskTimeout: 30 * time.Second})
//	pool.Start()
//	defer pool.Stop(context.Background())
//
//	err := pool.Do(ctx, func(ctx context.Context) error {
//	    return render(ctx)
//	})
type Pool struct {
	maxWorkers  int
	queueSize   int
	taskTimeout time.Duration

	tasks  chan *job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.RWMutex
	stopped bool

	metrics *Metrics
}

// NewPool creates a new worker pool
func NewPool(cfg *Config) *Pool {
	if cfg == nil || cfg.Validate() != nil {
		cfg = DefaultConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		maxWorkers:  cfg.MaxWorkers,
		queueSize:   cfg.QueueSize,
		taskTimeout: cfg.TaskTimeout,
		tasks:       make(chan *job, cfg.QueueSize),
		ctx:         ctx,
		cancel:      cancel,
		metrics:     &Metrics{},
	}
}

// Start starts the worker pool
func (p *Pool) Start() {
	for i := 0; i < p.maxWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// Stop stops accepting tasks, cancels running ones and waits for workers until ctx is done.
func (p *Pool) Stop(ctx context.Context) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	p.cancel()
	close(p.tasks)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Submit queues a task without waiting for it.
func (p *Pool) Submit(fn Task) error {
	_, err := p.enqueue(context.Background(), fn)
	return err
}

// Do queues a task and waits for its result or for ctx to be done.
func (p *Pool) Do(ctx context.Context, fn Task) error {
	j, err := p.enqueue(ctx, fn)
	if err != nil {
		return err
	}
	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) enqueue(ctx context.Context, fn Task) (*job, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return nil, ErrPoolStopped
	}

	j := &job{ctx: ctx, fn: fn, done: make(chan error, 1)}
	select {
	case p.tasks <- j:
		p.metrics.PendingTasks.Add(1)
		return j, nil
	default:
		return nil, ErrQueueFull
	}
}

// worker represents a worker goroutine
func (p *Pool) worker() {
	defer p.wg.Done()

	for j := range p.tasks {
		p.processTask(j)
	}
}

// processTask processes a single task
func (p *Pool) processTask(j *job) {
	start := time.Now()
	p.metrics.ActiveWorkers.Add(1)
	p.metrics.PendingTasks.Add(-1)

	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
		p.metrics.ActiveWorkers.Add(-1)
		p.metrics.ProcessingTime.Add(time.Since(start).Nanoseconds())
		if err != nil {
			p.metrics.FailedTasks.Add(1)
		} else {
			p.metrics.CompletedTasks.Add(1)
		}
		j.done <- err
	}()

	if err = p.ctx.Err(); err != nil {
		return
	}
	if err = j.ctx.Err(); err != nil {
		return
	}

	taskCtx, cancel := mergeContext(p.ctx, j.ctx)
	defer cancel()
	if p.taskTimeout > 0 {
		var tcancel context.CancelFunc
		taskCtx, tcancel = context.WithTimeout(taskCtx, p.taskTimeout)
		defer tcancel()
	}

	err = j.fn(taskCtx)
	if err == nil && taskCtx.Err() != nil {
		err = taskCtx.Err()
	}
}

// mergeContext derives from the caller context and is also cancelled with the pool.
func mergeContext(pool, caller context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(caller)
	stop := context.AfterFunc(pool, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// GetMetrics returns the current metrics
func (p *Pool) GetMetrics() map[string]int64 {
	return map[string]int64{
		"active_workers":  p.metrics.ActiveWorkers.Load(),
		"pending_tasks":   p.metrics.PendingTasks.Load(),
		"completed_tasks": p.metrics.CompletedTasks.Load(),
		"failed_tasks":    p.metrics.FailedTasks.Load(),
		"processing_time": p.metrics.ProcessingTime.Load(),
	}
}

// IsBusy returns whether the pool is busy
func (p *Pool) IsBusy() bool {
	return p.metrics.ActiveWorkers.Load() >= int64(p.maxWorkers) ||
		p.metrics.PendingTasks.Load() >= int64(p.queueSize)
}

// IsIdle returns whether the pool is idle
func (p *Pool) IsIdle() bool {
	return p.metrics.ActiveWorkers.Load() == 0
}
