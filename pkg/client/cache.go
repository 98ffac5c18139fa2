package client

import "sync"

// snapshot caches the result of the last completed fetch of one
// collection.  Concurrent first loads collapse into a single call: the
// mutex is held across the load, so later callers block and then read
// the freshly stored value.  There is no expiry and no per-key
// granularity; Invalidate discards the whole snapshot.
type snapshot[T any] struct {
	mu     sync.Mutex
	loaded bool
	val    T
}

// Get returns the cached value, loading it through fetch on a miss.
// A failed fetch leaves the snapshot empty so the next call retries.
func (s *snapshot[T]) Get(fetch func() (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.val, nil
	}
	v, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}
	s.val = v
	s.loaded = true
	return v, nil
}

// Invalidate discards the snapshot.  The next Get fetches again.
func (s *snapshot[T]) Invalidate() {
	s.mu.Lock()
	var zero T
	s.val = zero
	s.loaded = false
	s.mu.Unlock()
}
