package pool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkerPool is a generic, fixed-size worker pool. It provides
// concurrent task processing with configurable worker count, context
// support, and a bounded join wait.
//
// Type parameters:
//   - T: The input task type
//   - R: The result type
type WorkerPool[T any, R any] struct {
	conf *config
}

// NewWorkerPool creates a new worker pool with the given options.
//
// Default configuration:
//   - workerCount: runtime.GOMAXPROCS(0)
//   - taskBuffer: equal to workerCount
//   - waitTimeout: 0 (wait forever)
//   - continueOnError: false
func NewWorkerPool[T any, R any](opts ...Option) *WorkerPool[T, R] {
	cfg := &config{
		workerCount: runtime.GOMAXPROCS(0),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.taskBuffer == 0 {
		cfg.taskBuffer = cfg.workerCount
	}

	return &WorkerPool[T, R]{conf: cfg}
}

// Process executes a batch of tasks concurrently and returns when all
// of them have finished, the wait timeout elapses, or the context is
// cancelled. Results are indexed by the task's position in the input
// slice; positions whose task never completed hold the zero value.
//
// The returned slice is always usable, even alongside a non-nil error:
// on ErrWaitTimeout or context cancellation it holds whatever subset
// of tasks completed before the cut-off.
func (wp *WorkerPool[T, R]) Process(
	ctx context.Context,
	tasks []T,
	processFn ProcessFunc[T, R],
) ([]R, error) {
	if len(tasks) == 0 {
		return []R{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	taskChan := make(chan indexedTask[T], wp.conf.taskBuffer)
	sink := newIndexedSink[R](len(tasks))

	numWorkers := min(wp.conf.workerCount, len(tasks))
	for range numWorkers {
		g.Go(func() error {
			return wp.worker(gctx, taskChan, sink.put, processFn)
		})
	}

	g.Go(func() error {
		defer close(taskChan)
		for idx, task := range tasks {
			select {
			case taskChan <- indexedTask[T]{index: idx, task: task}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	waitErr, timedOut := wp.join(ctx, cancel, g)
	results, firstErr := sink.snapshot()

	switch {
	case timedOut:
		return results, ErrWaitTimeout
	case waitErr != nil:
		return results, waitErr
	default:
		return results, firstErr
	}
}

// ProcessMap executes a batch of keyed tasks concurrently and returns
// a map of results with the same keys. Only tasks that actually
// completed appear in the result map, so after a wait timeout or
// cancellation the map holds exactly the subset that finished.
func (wp *WorkerPool[T, R]) ProcessMap(
	ctx context.Context,
	tasks map[string]T,
	processFn ProcessFunc[T, R],
) (map[string]R, error) {
	if len(tasks) == 0 {
		return map[string]R{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	taskChan := make(chan keyedTask[T], wp.conf.taskBuffer)
	sink := newKeyedSink[R](len(tasks))

	numWorkers := min(wp.conf.workerCount, len(tasks))
	for range numWorkers {
		g.Go(func() error {
			return wp.mapWorker(gctx, taskChan, sink.put, processFn)
		})
	}

	g.Go(func() error {
		defer close(taskChan)
		for key, task := range tasks {
			select {
			case taskChan <- keyedTask[T]{key: key, task: task}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	waitErr, timedOut := wp.join(ctx, cancel, g)
	results, firstErr := sink.snapshot()

	switch {
	case timedOut:
		return results, ErrWaitTimeout
	case waitErr != nil:
		return results, waitErr
	default:
		return results, firstErr
	}
}

// join blocks on the worker group, bounded by the configured wait
// timeout. On expiry it force-cancels the pool context and gives the
// workers a grace period to unwind and release whatever they hold.
// All completed task writes happen-before join returns.
func (wp *WorkerPool[T, R]) join(ctx context.Context, cancel context.CancelFunc, g *errgroup.Group) (waitErr error, timedOut bool) {
	done := make(chan struct{})
	go func() {
		waitErr = g.Wait()
		close(done)
	}()

	if err := waitUntil(done, wp.conf.waitTimeout); err != nil {
		cancel()
		_ = waitUntil(done, cancelGrace)
		return nil, true
	}

	if waitErr == nil {
		// Workers that drained the closed task channel exit nil even
		// when the caller's context was cancelled mid-run; the caller
		// must still observe the interruption.
		waitErr = ctx.Err()
	}
	return waitErr, false
}
