// Package dispatch runs fire-and-forget background tasks with their own
// error boundary. Task failure never propagates to the request that
// scheduled it.
package dispatch

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type task struct {
	name string
	fn   func(ctx context.Context) error
}

// Dispatcher owns a bounded queue and a single worker goroutine. Submit
// never blocks the request path: when the queue is full the task is dropped
// and logged.
type Dispatcher struct {
	queue   chan task
	log     *zap.Logger
	timeout time.Duration

	wg   sync.WaitGroup
	once sync.Once
}

// New starts a dispatcher with the given queue capacity. Each task runs
// with its own timeout so a stuck task cannot wedge the worker.
func New(capacity int, taskTimeout time.Duration, log *zap.Logger) *Dispatcher {
	if capacity <= 0 {
		capacity = 64
	}
	d := &Dispatcher{
		queue:   make(chan task, capacity),
		log:     log,
		timeout: taskTimeout,
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Submit schedules fn to run in the background. Returns false when the
// queue is full or the dispatcher is closed.
func (d *Dispatcher) Submit(name string, fn func(ctx context.Context) error) bool {
	defer func() {
		// Submit after Close sends on a closed channel.
		if r := recover(); r != nil {
			d.log.Warn("task submitted after shutdown", zap.String("task", name))
		}
	}()
	select {
	case d.queue <- task{name: name, fn: fn}:
		return true
	default:
		d.log.Warn("task queue full, dropping", zap.String("task", name))
		return false
	}
}

// Close stops accepting tasks and waits for queued ones to drain.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.queue) })
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for t := range d.queue {
		d.runOne(t)
	}
}

func (d *Dispatcher) runOne(t task) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("background task panic", zap.String("task", t.name), zap.Any("reason", r))
		}
	}()
	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	if err := t.fn(ctx); err != nil {
		d.log.Error("background task failed", zap.String("task", t.name), zap.Error(err))
	}
}
