package collect

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/filegather/filegather/internal/textio"
	"github.com/filegather/filegather/pool"
)

// DefaultWaitTimeout bounds how long Process waits for all file tasks
// before force-cancelling the stragglers.
const DefaultWaitTimeout = 60 * time.Second

// Transform maps one raw line to its collected form.
type Transform func(string) string

// Collector reads named resources concurrently and accumulates their
// transformed lines. A Collector is safe for concurrent use; each
// Process call owns its accumulation.
type Collector struct {
	src         Source
	workers     int
	waitTimeout time.Duration
	transform   Transform
	ratePerSec  float64
	rateBurst   int
	onFileDone  func(name string, status FileStatus)
}

// Option configures a Collector.
type Option func(*Collector)

// WithWorkers sets how many files are read concurrently.
// If not specified, defaults to runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithWaitTimeout bounds the wait for all file tasks. On expiry the
// remaining tasks are force-cancelled and Process reports what
// completed. Defaults to DefaultWaitTimeout.
func WithWaitTimeout(d time.Duration) Option {
	return func(c *Collector) {
		if d > 0 {
			c.waitTimeout = d
		}
	}
}

// WithTransform replaces the line transform. The transform must be a
// pure function; it is called concurrently from all workers. Defaults
// to strings.ToUpper.
func WithTransform(fn Transform) Option {
	return func(c *Collector) {
		if fn != nil {
			c.transform = fn
		}
	}
}

// WithRateLimit caps how many file tasks start per second. Useful when
// the source sits on a shared or remote backend. Disabled by default.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Collector) {
		if perSecond > 0 && burst > 0 {
			c.ratePerSec = perSecond
			c.rateBurst = burst
		}
	}
}

// WithOnFileDone registers a hook invoked after each file task reaches
// a terminal status, from the worker that ran it. Handy for progress
// reporting; the hook must be safe for concurrent use.
func WithOnFileDone(fn func(name string, status FileStatus)) Option {
	return func(c *Collector) {
		c.onFileDone = fn
	}
}

// New creates a Collector reading from src.
func New(src Source, opts ...Option) *Collector {
	c := &Collector{
		src:         src,
		workers:     runtime.GOMAXPROCS(0),
		waitTimeout: DefaultWaitTimeout,
		transform:   strings.ToUpper,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// fileTally is one task's private accumulation. Workers never share
// it; tallies are merged only after the join barrier.
type fileTally struct {
	status FileStatus
	lines  []string
}

// Process reads every named resource through the worker pool and
// merges the per-file accumulations once all tasks have finished (or
// the wait timeout force-cancelled the stragglers).
//
// The returned Result is never nil. A non-nil error is either
// pool.ErrWaitTimeout or the context's error; in both cases the Result
// holds the subset of files that completed. Per-file failures are
// status entries, not errors. Duplicate names are processed once.
func (c *Collector) Process(ctx context.Context, names []string) (*Result, error) {
	start := time.Now()

	res := &Result{Statuses: make(map[string]FileStatus, len(names))}
	if len(names) == 0 {
		return res, nil
	}

	tasks := make(map[string]string, len(names))
	for _, name := range names {
		tasks[name] = name
	}

	opts := []pool.Option{
		pool.WithWorkerCount(c.workers),
		pool.WithWaitTimeout(c.waitTimeout),
		pool.WithContinueOnError(),
	}
	if c.ratePerSec > 0 {
		opts = append(opts, pool.WithRateLimit(c.ratePerSec, c.rateBurst))
	}

	wp := pool.NewWorkerPool[string, fileTally](opts...)
	tallies, err := wp.ProcessMap(ctx, tasks, c.processFile)

	// Merge after the join barrier: within one file the order follows
	// the file, across files it follows the input. Duplicates and
	// never-ran tasks contribute nothing.
	for _, name := range names {
		if _, seen := res.Statuses[name]; seen {
			continue
		}
		tally, ok := tallies[name]
		if !ok {
			continue
		}
		res.Statuses[name] = tally.status
		res.Lines = append(res.Lines, tally.lines...)
	}

	res.Elapsed = time.Since(start)
	return res, err
}

// processFile runs one file task to its terminal status. It never
// returns an error: failures are encoded in the tally's status so the
// pool keeps its siblings running.
func (c *Collector) processFile(ctx context.Context, name string) (fileTally, error) {
	tally := c.read(ctx, name)
	if c.onFileDone != nil {
		c.onFileDone(name, tally.status)
	}
	return tally, nil
}

func (c *Collector) read(ctx context.Context, name string) fileTally {
	if !c.src.Exists(name) {
		return fileTally{status: FileStatus{Outcome: OutcomeNotFound}}
	}

	rc, err := c.src.Open(name)
	if err != nil {
		return fileTally{status: FileStatus{
			Outcome: OutcomeReadError,
			Err:     err.Error(),
		}}
	}
	defer rc.Close()

	var tally fileTally
	err = textio.EachLine(ctx, rc, func(line string) {
		tally.lines = append(tally.lines, c.transform(line))
	})

	tally.status.Lines = len(tally.lines)
	if err != nil {
		// Partial lines stand; a mid-stream failure is a status, not a
		// retraction.
		tally.status.Outcome = OutcomeReadError
		tally.status.Err = err.Error()
		return tally
	}

	tally.status.Outcome = OutcomeSuccess
	return tally
}
