package pool

import "context"

// ProcessFunc defines how individual tasks are processed in the worker
// pool. It takes a context for cancellation control and a task of type
// T, returning a result of type R. A returned error is collected by
// the pool; whether it stops the remaining workers depends on the
// continue-on-error setting.
type ProcessFunc[T any, R any] func(ctx context.Context, task T) (R, error)

// indexedTask pairs a task with its position in the input slice so
// results can be written back in order.
type indexedTask[T any] struct {
	task  T
	index int
}

// keyedTask pairs a task with its map key.
type keyedTask[T any] struct {
	task T
	key  string
}
