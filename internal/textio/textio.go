// Package textio provides small helpers for line-oriented readers.
package textio

import (
	"bufio"
	"context"
	"io"
)

const (
	initialBufferSize = 64 * 1024
	// maxLineSize bounds a single line so one pathological file cannot
	// exhaust memory.
	maxLineSize = 1024 * 1024
)

// EachLine reads r line by line, invoking fn for every complete line
// until end of stream, a read error, or context cancellation. Lines
// are delivered without their trailing newline. It returns nil on a
// clean end of stream and the terminating error otherwise; lines
// already delivered before the error stand.
//
// Cancellation is cooperative: a read already blocked in r.Read is not
// interrupted, the context is checked between lines.
func EachLine(ctx context.Context, r io.Reader, fn func(line string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialBufferSize), maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(scanner.Text())
	}
	return scanner.Err()
}
