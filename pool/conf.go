package pool

import (
	"time"

	"golang.org/x/time/rate"
)

// Option is a functional option for configuring the worker pool.
type Option func(*config)

type config struct {
	workerCount     int
	taskBuffer      int
	waitTimeout     time.Duration
	rateLimiter     *rate.Limiter
	continueOnError bool
}

// WithWorkerCount sets the number of concurrent workers.
// If not specified, defaults to runtime.GOMAXPROCS(0).
func WithWorkerCount(count int) Option {
	return func(cfg *config) {
		if count > 0 {
			cfg.workerCount = count
		}
	}
}

// WithTaskBuffer sets the buffer size for the task channel.
// A larger buffer can improve throughput but uses more memory.
// If not specified, defaults to the number of workers.
func WithTaskBuffer(size int) Option {
	return func(cfg *config) {
		if size >= 0 {
			cfg.taskBuffer = size
		}
	}
}

// WithWaitTimeout bounds how long Process and ProcessMap wait for all
// submitted tasks to finish. When the bound elapses, outstanding tasks
// are force-cancelled and the partial results are returned together
// with ErrWaitTimeout. If not specified (or zero), the wait is
// unbounded.
func WithWaitTimeout(d time.Duration) Option {
	return func(cfg *config) {
		if d > 0 {
			cfg.waitTimeout = d
		}
	}
}

// WithContinueOnError makes the pool run every task even when some of
// them fail. Task errors are still surfaced: the first one is returned
// from Process alongside the complete result set. Without this option
// the first task error cancels the remaining workers.
func WithContinueOnError() Option {
	return func(cfg *config) {
		cfg.continueOnError = true
	}
}

// WithRateLimit sets a rate limiter for controlling task throughput.
// tasksPerSecond specifies the maximum number of tasks to start per
// second; burst specifies how many tasks may start back-to-back.
// This is useful for keeping a lid on how fast the pool hits a shared
// backend. If not specified, no rate limiting is applied.
//
// Example:
//
//	WithRateLimit(10, 5) // allow 10 tasks/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) Option {
	return func(cfg *config) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}
