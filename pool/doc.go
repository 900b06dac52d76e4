// Package pool provides a small, generic worker pool for bounded
// concurrent task processing.
//
// The primary type is WorkerPool[T, R], a fixed-size pool of workers
// which process tasks of type T and return results of type R. The pool
// supports context-aware processing, panic recovery, optional rate
// limiting, and a bounded join wait, all configured via functional
// options.
//
// # Basic Usage
//
//	ctx := context.Background()
//	tasks := []int{1, 2, 3, 4}
//	pool := NewWorkerPool[int, int](WithWorkerCount(4))
//	results, err := pool.Process(ctx, tasks, func(ctx context.Context, t int) (int, error) {
//	    return t * 2, nil
//	})
//
// # Processing Modes
//
//   - Process: processes a slice of tasks and returns results in the
//     same order
//   - ProcessMap: processes a map of tasks and returns a map of results
//     with matching keys; only tasks that actually completed appear in
//     the result map
//
// # Bounded Join Wait
//
// By default Process blocks until every submitted task has finished.
// WithWaitTimeout bounds that wait:
//
//	pool := NewWorkerPool[string, Stats](
//	    WithWorkerCount(8),
//	    WithWaitTimeout(60*time.Second),
//	)
//
// When the bound elapses the pool force-cancels its context, gives the
// workers a short grace period to release whatever they hold, and
// returns the results collected so far together with ErrWaitTimeout.
// The partial results are safe to read: they are snapshotted under the
// collection lock after cancellation.
//
// # Error Handling
//
// The default semantics are fail-fast: the first task error cancels
// the remaining workers and is returned. WithContinueOnError switches
// to record-and-continue: every task runs, the first error is returned
// alongside the full result set, and errored tasks simply contribute
// no value. Panic recovery is built-in, converting panics to task
// errors with stack traces so a single bad task cannot crash a worker.
//
// External context cancellation always propagates to every worker and
// is returned from Process, with whatever results completed before it.
package pool
