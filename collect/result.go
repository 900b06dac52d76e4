package collect

import "time"

// Result is the outcome of one Process invocation. Ownership passes to
// the caller when Process returns; the collector keeps no reference.
type Result struct {
	// Statuses maps each processed file name to its terminal status.
	// Files whose task never ran (wait timeout, cancellation) have no
	// entry.
	Statuses map[string]FileStatus

	// Lines holds every transformed line. Order within one file's
	// contribution follows the file; order across files is an
	// implementation detail callers must not rely on.
	Lines []string

	// Elapsed is the wall-clock duration of the whole run.
	Elapsed time.Duration
}

// TotalLines reports how many lines were collected across all files,
// partial contributions included.
func (r *Result) TotalLines() int {
	return len(r.Lines)
}

// FirstLines returns up to k collected lines for report previews.
func (r *Result) FirstLines(k int) []string {
	if k < 0 {
		k = 0
	}
	if k > len(r.Lines) {
		k = len(r.Lines)
	}
	return r.Lines[:k]
}
