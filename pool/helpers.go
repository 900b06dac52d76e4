package pool

import (
	"errors"
	"time"
)

// ErrWaitTimeout is returned by Process and ProcessMap when the join
// wait exceeds the bound set with WithWaitTimeout. The results
// returned alongside it hold whatever subset of tasks completed.
var ErrWaitTimeout = errors.New("worker pool: wait timeout reached")

// cancelGrace is how long the pool waits for workers to unwind after a
// forced cancellation. Workers blocked in uninterruptible I/O may
// outlive it; the result snapshot is lock-protected either way.
const cancelGrace = time.Second

// waitUntil blocks until either the done channel is closed or the
// timeout is reached. A timeout <= 0 means wait forever.
func waitUntil(d <-chan struct{}, timeout time.Duration) error {
	if timeout <= 0 {
		<-d
		return nil
	}

	select {
	case <-d:
		return nil
	case <-time.After(timeout):
		return ErrWaitTimeout
	}
}
