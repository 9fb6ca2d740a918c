// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package batch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/hacs/hacs/constant"
	"github.com/hacs/hacs/metrics"
	"github.com/hacs/hacs/workflow"
)

// NewSemaphore returns the request budget shared by every executor of the
// process.
func NewSemaphore() *semaphore.Weighted {
	return semaphore.NewWeighted(constant.MaxConcurrentRequests)
}

// Operation is one member of a batch.
type Operation struct {
	Name string
	Run  func(ctx context.Context) error
}

// Workflow wraps a workflow run by executor as an operation.
func Workflow(executor workflow.Executor, name string, wf workflow.Workflow) Operation {
	return Operation{
		Name: name,
		Run: func(ctx context.Context) error {
			return executor.Execute(ctx, wf)
		},
	}
}

// Stats describes a finished batch.
type Stats struct {
	Count   int
	Failed  int
	Elapsed time.Duration
}

type Config struct {
	// Semaphore bounds in-flight operations. Share the one from NewSemaphore.
	Semaphore *semaphore.Weighted
	// Delay is held after each operation, constant.RequestDelay when zero.
	Delay time.Duration
	// Sleep waits out the delay. Defaults to a context aware timer.
	Sleep  func(ctx context.Context, d time.Duration)
	Logger *zap.Logger
}

func New(config Config) *Executor {
	e := &Executor{
		semaphore: config.Semaphore,
		delay:     config.Delay,
		sleep:     config.Sleep,
		logger:    config.Logger,
	}
	if e.semaphore == nil {
		e.semaphore = NewSemaphore()
	}
	if e.delay == 0 {
		e.delay = constant.RequestDelay
	}
	if e.sleep == nil {
		e.sleep = sleep
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e
}

// Executor runs queued operations concurrently under the shared semaphore.
// A failing operation is logged and never affects its siblings.
type Executor struct {
	semaphore *semaphore.Weighted
	delay     time.Duration
	sleep     func(ctx context.Context, d time.Duration)
	logger    *zap.Logger

	lock  sync.Mutex
	queue []Operation
}

func (e *Executor) Add(operations ...Operation) {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.queue = append(e.queue, operations...)
}

// Len is the number of queued operations.
func (e *Executor) Len() int {
	e.lock.Lock()
	defer e.lock.Unlock()

	return len(e.queue)
}

// Execute runs and clears the queue. It returns once every operation has
// completed.
func (e *Executor) Execute(ctx context.Context) Stats {
	e.lock.Lock()
	queue := e.queue
	e.queue = nil
	e.lock.Unlock()

	if len(queue) == 0 {
		e.logger.Debug("no operations in batch")
		return Stats{}
	}

	start := time.Now()
	var (
		failed int64
		wg     sync.WaitGroup
	)
	for _, operation := range queue {
		wg.Add(1)
		go func(operation Operation) {
			defer wg.Done()
			if err := e.run(ctx, operation); err != nil {
				atomic.AddInt64(&failed, 1)
			}
		}(operation)
	}
	wg.Wait()

	stats := Stats{
		Count:   len(queue),
		Failed:  int(failed),
		Elapsed: time.Since(start),
	}
	metrics.BatchDuration.Observe(stats.Elapsed.Seconds())
	e.logger.Info("batch done",
		zap.Int("count", stats.Count),
		zap.Int("failed", stats.Failed),
		zap.Duration("elapsed", stats.Elapsed),
	)
	return stats
}

func (e *Executor) run(ctx context.Context, operation Operation) error {
	if err := e.semaphore.Acquire(ctx, 1); err != nil {
		e.logger.Warn("operation not started",
			zap.String("operation", operation.Name),
			zap.Error(err),
		)
		metrics.BatchOperationsTotal.WithLabelValues(metrics.OutcomeSkipped).Inc()
		return err
	}
	defer e.semaphore.Release(1)

	metrics.BatchInFlight.Inc()
	defer metrics.BatchInFlight.Dec()

	err := operation.Run(ctx)
	metrics.BatchOperationsTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		e.logger.Error("operation failed",
			zap.String("operation", operation.Name),
			zap.Error(err),
		)
	}

	// the slot stays taken while pacing
	e.sleep(ctx, e.delay)
	return err
}

func sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
