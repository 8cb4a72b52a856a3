package settings

import "sync"

// Loader loads settings from snapshots with single-flight caching per
// identical snapshot. The cache holds the last successful load keyed by the
// snapshot fingerprint; a changed snapshot always rebuilds from scratch, and
// Invalidate forces the next load to rebuild even for an unchanged snapshot.
//
// The zero-value cache state is empty; construct with NewLoader. All methods
// are safe for concurrent use, though the validation itself is synchronous
// and single-shot per invocation.
type Loader struct {
	mu     sync.Mutex
	key    string
	cached *Settings

	hits   uint64
	misses uint64
}

// NewLoader creates an empty Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load returns a validated Settings for the snapshot. If the snapshot's
// fingerprint matches the previously cached load, the cached instance is
// returned without revalidation; otherwise the settings are rebuilt from
// scratch. Failed loads are never cached.
func (l *Loader) Load(snap Snapshot) (*Settings, error) {
	key := snap.Fingerprint()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil && l.key == key {
		l.hits++
		return l.cached, nil
	}

	l.misses++
	s, err := Load(snap)
	if err != nil {
		return nil, err
	}

	l.key = key
	l.cached = s
	return s, nil
}

// Invalidate drops the cached instance so the next Load rebuilds and
// revalidates even if the snapshot is unchanged. Needed after mutating
// process-wide state the cached instance may have observed.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.key = ""
	l.cached = nil
}

// Stats returns the number of cache hits and misses since construction.
func (l *Loader) Stats() (hits, misses uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hits, l.misses
}
