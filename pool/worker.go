package pool

import (
	"context"
	"fmt"
	"runtime"
)

// worker processes indexed tasks from the task channel until it is
// closed or the context is cancelled.
func (wp *WorkerPool[T, R]) worker(
	ctx context.Context,
	taskChan <-chan indexedTask[T],
	record func(index int, value R, err error),
	processFn ProcessFunc[T, R],
) error {
	for {
		select {
		case t, ok := <-taskChan:
			if !ok {
				return nil
			}
			if err := wp.gate(ctx); err != nil {
				return err
			}
			result, err := processWithRecovery(ctx, t.task, processFn)
			record(t.index, result, err)
			if err != nil && !wp.conf.continueOnError {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// mapWorker is the keyed counterpart of worker.
func (wp *WorkerPool[T, R]) mapWorker(
	ctx context.Context,
	taskChan <-chan keyedTask[T],
	record func(key string, value R, err error),
	processFn ProcessFunc[T, R],
) error {
	for {
		select {
		case t, ok := <-taskChan:
			if !ok {
				return nil
			}
			if err := wp.gate(ctx); err != nil {
				return err
			}
			result, err := processWithRecovery(ctx, t.task, processFn)
			record(t.key, result, err)
			if err != nil && !wp.conf.continueOnError {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// gate blocks on the rate limiter, if one is configured.
func (wp *WorkerPool[T, R]) gate(ctx context.Context) error {
	if wp.conf.rateLimiter == nil {
		return nil
	}
	return wp.conf.rateLimiter.Wait(ctx)
}

// processWithRecovery executes a task with panic recovery. If a panic
// occurs it is converted to an error to prevent crashing the worker.
func processWithRecovery[T, R any](
	ctx context.Context,
	task T,
	processFn ProcessFunc[T, R],
) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("worker panic: %v\nstack trace:\n%s", r, buf[:n])
		}
	}()

	return processFn(ctx, task)
}
