package collect

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"reflect"
	"sort"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/filegather/filegather/pool"
)

// fakeFile is an in-memory resource with optional fault and latency
// injection.
type fakeFile struct {
	content string
	failAt  int           // byte offset to fail at, -1 for none
	delay   time.Duration // sleep before every read
}

func lines(ls ...string) fakeFile {
	return fakeFile{content: strings.Join(ls, "\n") + "\n", failAt: -1}
}

type fakeSource struct {
	files  map[string]fakeFile
	opens  atomic.Int32
	closes atomic.Int32
}

func (s *fakeSource) Exists(name string) bool {
	_, ok := s.files[name]
	return ok
}

func (s *fakeSource) Open(name string) (io.ReadCloser, error) {
	f, ok := s.files[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	s.opens.Add(1)
	return &fakeReader{file: f, src: s}, nil
}

type fakeReader struct {
	file fakeFile
	src  *fakeSource
	off  int
}

var errDiskRead = errors.New("disk read failed")

func (r *fakeReader) Read(p []byte) (int, error) {
	if r.file.delay > 0 {
		time.Sleep(r.file.delay)
	}

	end := len(r.file.content)
	if r.file.failAt >= 0 && r.file.failAt < end {
		end = r.file.failAt
	}

	if r.off >= end {
		if r.file.failAt >= 0 {
			return 0, errDiskRead
		}
		return 0, io.EOF
	}

	n := copy(p, r.file.content[r.off:end])
	r.off += n
	return n, nil
}

func (r *fakeReader) Close() error {
	r.src.closes.Add(1)
	return nil
}

func sortedLines(res *Result) []string {
	out := append([]string(nil), res.Lines...)
	sort.Strings(out)
	return out
}

func TestCollector_Process_Scenario(t *testing.T) {
	// 3 identifiers: A has ["a","b"], B is missing, C has ["x"].
	src := &fakeSource{files: map[string]fakeFile{
		"a.txt": lines("a", "b"),
		"c.txt": lines("x"),
	}}

	c := New(src, WithWorkers(2))
	res, err := c.Process(context.Background(), []string{"a.txt", "b.txt", "c.txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStatuses := map[string]FileStatus{
		"a.txt": {Outcome: OutcomeSuccess, Lines: 2},
		"b.txt": {Outcome: OutcomeNotFound},
		"c.txt": {Outcome: OutcomeSuccess, Lines: 1},
	}
	if !reflect.DeepEqual(res.Statuses, wantStatuses) {
		t.Errorf("statuses mismatch:\n got %v\nwant %v", res.Statuses, wantStatuses)
	}

	if res.TotalLines() != 3 {
		t.Errorf("expected 3 total lines, got %d", res.TotalLines())
	}

	want := []string{"A", "B", "X"}
	if got := sortedLines(res); !reflect.DeepEqual(got, want) {
		t.Errorf("expected lines %v, got %v", want, got)
	}
}

func TestCollector_Process_SuccessCounts(t *testing.T) {
	src := &fakeSource{files: map[string]fakeFile{
		"one.txt":   lines("l1"),
		"three.txt": lines("l1", "l2", "l3"),
	}}

	c := New(src, WithWorkers(4))
	res, err := c.Process(context.Background(), []string{"one.txt", "three.txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, want := range map[string]int{"one.txt": 1, "three.txt": 3} {
		st := res.Statuses[name]
		if st.Outcome != OutcomeSuccess {
			t.Errorf("%s: expected success, got %v", name, st.Outcome)
		}
		if st.Lines != want {
			t.Errorf("%s: expected %d lines, got %d", name, want, st.Lines)
		}
	}

	if res.TotalLines() != 4 {
		t.Errorf("expected total of 4, got %d", res.TotalLines())
	}
}

func TestCollector_Process_NotFound(t *testing.T) {
	src := &fakeSource{files: map[string]fakeFile{}}

	c := New(src, WithWorkers(2))
	res, err := c.Process(context.Background(), []string{"ghost.txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st := res.Statuses["ghost.txt"]
	if st.Outcome != OutcomeNotFound {
		t.Fatalf("expected not found, got %v", st)
	}
	if res.TotalLines() != 0 {
		t.Errorf("missing file must contribute zero lines, got %d", res.TotalLines())
	}
	if got := src.opens.Load(); got != 0 {
		t.Errorf("missing file must not be opened, got %d opens", got)
	}
}

func TestCollector_Process_ReadErrorKeepsPartialLines(t *testing.T) {
	// Fails after "l1\nl2\n": the first two lines stand, the third is
	// never delivered.
	src := &fakeSource{files: map[string]fakeFile{
		"broken.txt": {content: "l1\nl2\nl3\n", failAt: 6},
	}}

	c := New(src, WithWorkers(1))
	res, err := c.Process(context.Background(), []string{"broken.txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st := res.Statuses["broken.txt"]
	if st.Outcome != OutcomeReadError {
		t.Fatalf("expected read error, got %v", st)
	}
	if !strings.Contains(st.Err, "disk read failed") {
		t.Errorf("expected failure reason in status, got %q", st.Err)
	}
	if st.Lines != 2 {
		t.Errorf("expected 2 partial lines in status, got %d", st.Lines)
	}

	want := []string{"L1", "L2"}
	if !reflect.DeepEqual(res.Lines, want) {
		t.Errorf("expected partial lines %v, got %v", want, res.Lines)
	}

	if src.closes.Load() != src.opens.Load() {
		t.Errorf("reader leaked: %d opens, %d closes", src.opens.Load(), src.closes.Load())
	}
}

func TestCollector_Process_WorkerCountInvariance(t *testing.T) {
	files := map[string]fakeFile{
		"a.txt": lines("alpha", "beta"),
		"b.txt": lines("gamma"),
		"d.txt": lines("delta", "epsilon", "zeta"),
	}
	names := []string{"a.txt", "b.txt", "c.txt", "d.txt"}

	var baseline *Result
	for _, workers := range []int{1, 5, 50} {
		src := &fakeSource{files: files}
		c := New(src, WithWorkers(workers))

		res, err := c.Process(context.Background(), names)
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}

		if baseline == nil {
			baseline = res
			continue
		}

		if res.TotalLines() != baseline.TotalLines() {
			t.Errorf("workers=%d: total %d differs from baseline %d",
				workers, res.TotalLines(), baseline.TotalLines())
		}
		if !reflect.DeepEqual(res.Statuses, baseline.Statuses) {
			t.Errorf("workers=%d: statuses differ from baseline:\n got %v\nwant %v",
				workers, res.Statuses, baseline.Statuses)
		}
		if !reflect.DeepEqual(sortedLines(res), sortedLines(baseline)) {
			t.Errorf("workers=%d: line set differs from baseline", workers)
		}
	}
}

func TestCollector_Process_TransformIsPure(t *testing.T) {
	files := map[string]fakeFile{"a.txt": lines("MiXeD", "case")}

	first := ""
	for i := 0; i < 2; i++ {
		src := &fakeSource{files: files}
		c := New(src, WithWorkers(2))

		res, err := c.Process(context.Background(), []string{"a.txt"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		joined := strings.Join(res.Lines, "|")
		if first == "" {
			first = joined
			continue
		}
		if joined != first {
			t.Errorf("reprocessing produced different lines: %q vs %q", joined, first)
		}
	}

	if first != "MIXED|CASE" {
		t.Errorf("expected uppercase transform, got %q", first)
	}
}

func TestCollector_Process_CustomTransform(t *testing.T) {
	src := &fakeSource{files: map[string]fakeFile{"a.txt": lines("hello")}}

	c := New(src,
		WithWorkers(1),
		WithTransform(func(line string) string { return line + "!" }),
	)
	res, err := c.Process(context.Background(), []string{"a.txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Lines) != 1 || res.Lines[0] != "hello!" {
		t.Errorf("custom transform not applied: %v", res.Lines)
	}
}

func TestCollector_Process_WaitTimeout(t *testing.T) {
	src := &fakeSource{files: map[string]fakeFile{
		"fast.txt": lines("quick"),
		"slow.txt": {content: "never\n", failAt: -1, delay: 300 * time.Millisecond},
	}}

	c := New(src, WithWorkers(2), WithWaitTimeout(50*time.Millisecond))

	start := time.Now()
	res, err := c.Process(context.Background(), []string{"fast.txt", "slow.txt"})
	elapsed := time.Since(start)

	if !errors.Is(err, pool.ErrWaitTimeout) {
		t.Fatalf("expected pool.ErrWaitTimeout, got %v", err)
	}
	if elapsed >= 5*time.Second {
		t.Fatalf("collector hung past the wait timeout: %v", elapsed)
	}

	st, ok := res.Statuses["fast.txt"]
	if !ok || st.Outcome != OutcomeSuccess || st.Lines != 1 {
		t.Errorf("expected fast file to complete before the timeout, got %v", res.Statuses)
	}

	// The slow reader wakes from its injected delay, observes the
	// cancelled context, and releases its handle.
	deadline := time.Now().Add(2 * time.Second)
	for src.closes.Load() != src.opens.Load() {
		if time.Now().After(deadline) {
			t.Fatalf("reader leaked after forced cancellation: %d opens, %d closes",
				src.opens.Load(), src.closes.Load())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCollector_Process_ExternalCancellation(t *testing.T) {
	src := &fakeSource{files: map[string]fakeFile{
		"slow.txt": {content: "never\n", failAt: -1, delay: 200 * time.Millisecond},
	}}

	c := New(src, WithWorkers(1))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	res, err := c.Process(ctx, []string{"slow.txt"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if res == nil {
		t.Fatal("result must be non-nil even after cancellation")
	}
}

func TestCollector_Process_DuplicateNamesCountOnce(t *testing.T) {
	src := &fakeSource{files: map[string]fakeFile{"a.txt": lines("x", "y")}}

	c := New(src, WithWorkers(4))
	res, err := c.Process(context.Background(), []string{"a.txt", "a.txt", "a.txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Statuses) != 1 {
		t.Errorf("expected a single status entry, got %d", len(res.Statuses))
	}
	if res.TotalLines() != 2 {
		t.Errorf("duplicate input must contribute once, got %d lines", res.TotalLines())
	}
	if got := src.opens.Load(); got != 1 {
		t.Errorf("expected a single open, got %d", got)
	}
}

func TestCollector_Process_EmptyInput(t *testing.T) {
	c := New(&fakeSource{}, WithWorkers(2))

	res, err := c.Process(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalLines() != 0 || len(res.Statuses) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestCollector_Process_OnFileDoneHook(t *testing.T) {
	src := &fakeSource{files: map[string]fakeFile{
		"a.txt": lines("1"),
		"b.txt": lines("2"),
	}}

	var doneCount atomic.Int32
	c := New(src,
		WithWorkers(2),
		WithOnFileDone(func(name string, status FileStatus) {
			doneCount.Add(1)
		}),
	)

	names := []string{"a.txt", "b.txt", "missing.txt"}
	if _, err := c.Process(context.Background(), names); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := doneCount.Load(); got != int32(len(names)) {
		t.Errorf("expected %d hook calls, got %d", len(names), got)
	}
}

func TestResult_FirstLines(t *testing.T) {
	res := &Result{Lines: []string{"A", "B", "C"}}

	cases := []struct {
		k    int
		want int
	}{
		{k: 0, want: 0},
		{k: 2, want: 2},
		{k: 3, want: 3},
		{k: 10, want: 3},
		{k: -1, want: 0},
	}

	for _, tc := range cases {
		if got := len(res.FirstLines(tc.k)); got != tc.want {
			t.Errorf("FirstLines(%d): expected %d lines, got %d", tc.k, tc.want, got)
		}
	}
}
