// Package report renders a collection Result for human consumption:
// a per-file status table, the total line count, and a preview of the
// first collected lines.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/filegather/filegather/collect"
)

// DefaultFirstLines is how many collected lines the report previews,
// matching the classic "show the first 5" report.
const DefaultFirstLines = 5

var (
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

// Write renders res to w. firstK caps the line preview; values <= 0
// fall back to DefaultFirstLines. File rows are sorted by name for
// stable presentation only, the underlying status map carries no
// ordering guarantee.
func Write(w io.Writer, res *collect.Result, firstK int) error {
	_, _ = bold.Fprintln(w, "===== Processing Report =====")

	table := tablewriter.NewWriter(w)
	table.Header("File", "Status")
	for _, name := range sortedNames(res.Statuses) {
		_ = table.Append(name, statusCell(res.Statuses[name]))
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render status table: %w", err)
	}

	_, _ = fmt.Fprintf(w, "Total lines processed: %d\n", res.TotalLines())

	if firstK <= 0 {
		firstK = DefaultFirstLines
	}
	first := res.FirstLines(firstK)
	if len(first) > 0 {
		_, _ = fmt.Fprintln(w, "First lines:")
		for _, line := range first {
			_, _ = fmt.Fprintln(w, line)
		}
	}

	return nil
}

func statusCell(s collect.FileStatus) string {
	switch s.Outcome {
	case collect.OutcomeSuccess:
		return green.Sprint(s.String())
	case collect.OutcomeNotFound:
		return yellow.Sprint(s.String())
	default:
		return red.Sprint(s.String())
	}
}

func sortedNames(statuses map[string]collect.FileStatus) []string {
	names := make([]string, 0, len(statuses))
	for name := range statuses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
