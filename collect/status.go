package collect

import "fmt"

// Outcome classifies the terminal state of a single file task.
//
// A task moves Pending -> {NotFound | Reading -> {Success |
// ReadError}} and never transitions back.
type Outcome int

const (
	// OutcomePending is the zero value. It never appears in a Result:
	// only tasks that actually ran record a status.
	OutcomePending Outcome = iota

	// OutcomeSuccess means the resource was read to the end.
	OutcomeSuccess

	// OutcomeNotFound means the resource did not exist when the task
	// ran. The task had no other side effects.
	OutcomeNotFound

	// OutcomeReadError means reading failed mid-stream. Lines appended
	// before the failure are kept.
	OutcomeReadError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNotFound:
		return "not found"
	case OutcomeReadError:
		return "read error"
	default:
		return "pending"
	}
}

// FileStatus is the outcome descriptor recorded for one file task.
type FileStatus struct {
	Outcome Outcome
	Lines   int    // lines contributed, including partial reads
	Err     string // failure reason for OutcomeReadError
}

func (s FileStatus) String() string {
	switch s.Outcome {
	case OutcomeSuccess:
		return fmt.Sprintf("success (%d lines)", s.Lines)
	case OutcomeNotFound:
		return "not found"
	case OutcomeReadError:
		return fmt.Sprintf("read error: %s", s.Err)
	default:
		return "pending"
	}
}
