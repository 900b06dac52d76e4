// Package collect implements a parallel line collector: it reads a set
// of named text resources concurrently through a bounded worker pool,
// transforms every line, and merges the per-file accumulations into a
// single Result once all tasks have finished.
//
// The collector owns no global state. Each call to Process gets its
// own accumulation, and the returned Result belongs to the caller.
//
//	src := collect.DirSource{Root: "testdata"}
//	c := collect.New(src, collect.WithWorkers(5))
//	res, err := c.Process(ctx, []string{"a.txt", "b.txt"})
//
// Per-file failures never abort sibling files: a missing resource or a
// mid-stream read error becomes that file's status entry, nothing
// more. Lines read before a mid-stream failure are kept. Only a join
// wait timeout or external cancellation surfaces as the error returned
// from Process, and even then the Result holds whatever completed.
package collect
