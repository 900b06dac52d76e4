package pool

import "sync"

// indexedSink collects task results by input position. Writes from any
// worker are safe; snapshot copies the state under the same lock, so a
// snapshot taken after forced cancellation never races with a
// straggling worker.
type indexedSink[R any] struct {
	mu       sync.Mutex
	results  []R
	firstErr error
}

func newIndexedSink[R any](n int) *indexedSink[R] {
	return &indexedSink[R]{results: make([]R, n)}
}

func (s *indexedSink[R]) put(index int, value R, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if s.firstErr == nil {
			s.firstErr = err
		}
		return
	}
	if index >= 0 && index < len(s.results) {
		s.results[index] = value
	}
}

func (s *indexedSink[R]) snapshot() ([]R, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]R, len(s.results))
	copy(out, s.results)
	return out, s.firstErr
}

// keyedSink collects task results by map key. Only successful tasks
// record a value, so the final map holds exactly the keys that
// completed.
type keyedSink[R any] struct {
	mu       sync.Mutex
	results  map[string]R
	firstErr error
}

func newKeyedSink[R any](n int) *keyedSink[R] {
	return &keyedSink[R]{results: make(map[string]R, n)}
}

func (s *keyedSink[R]) put(key string, value R, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if s.firstErr == nil {
			s.firstErr = err
		}
		return
	}
	s.results[key] = value
}

func (s *keyedSink[R]) snapshot() (map[string]R, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]R, len(s.results))
	for k, v := range s.results {
		out[k] = v
	}
	return out, s.firstErr
}
