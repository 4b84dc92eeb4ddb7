package registry

import "sync"

// store is the process-lifetime pool of erased records. It is append-only
// while open and becomes immutable once sealed at bootstrap. Appends may
// arrive from multiple goroutines when registration sites run concurrently,
// so every mutation holds the mutex.
type store struct {
	mu      sync.Mutex
	sealed  bool
	records []record
}

// append adds an erased record. Appending to a sealed store is fatal: a
// registration that lands after bootstrap would be silently invisible to
// every view, and a partial registry defeats the point of having one.
func (s *store) append(rec record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sealed {
		panic("registry: registration after bootstrap; all registrations must run before Bootstrap is called")
	}
	s.records = append(s.records, rec)
}

// seal closes the store and returns the final snapshot, in append order.
// Idempotent; every caller sees the same slice.
func (s *store) seal() []record {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sealed = true
	return s.records
}
