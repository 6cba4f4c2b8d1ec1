package manifest

import (
	"sync"
	"sync/atomic"
)

// Store holds the current manifest of a compilation process. Clients create
// one store per process (or per test) and hand it to the compile-time layer
// and to the resolvers; there is no global store.
//
// Writers are serialized; readers get consistent snapshots without locking
// and never observe a partial update.
type Store struct {
	mu      sync.Mutex // serializes writers
	current atomic.Pointer[Manifest]
}

// NewStore creates a store holding an empty manifest.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(&Manifest{})
	return s
}

// Read returns a consistent snapshot of the manifest.
func (s *Store) Read() *Manifest {
	if m := s.current.Load(); m != nil {
		return m
	}
	return &Manifest{}
}

// Update applies fn to the current manifest and publishes the result
// atomically with respect to other updates. If fn returns the manifest it
// has been handed (or nil), no write takes place.
// Update reports whether a new manifest has been published.
//
// Published manifests have strictly increasing generations: a manifest not
// derived from the current one (e.g., a freshly loaded one) is re-stamped.
func (s *Store) Update(fn func(*Manifest) *Manifest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.Read()
	m := fn(old)
	if m == nil || m == old {
		return false
	}
	if m.generation <= old.generation {
		m = m.stamped(old.generation + 1)
	}
	s.current.Store(m)
	return true
}

// Put stores entry under (kind, key). Storing an entry equal to the present
// one is a no-op. Put reports whether a write took place.
func (s *Store) Put(kind Kind, key Key, entry Entry) bool {
	return s.Update(func(m *Manifest) *Manifest {
		return m.Put(kind, key, entry)
	})
}

// Get looks up an entry in the current manifest.
func (s *Store) Get(kind Kind, key Key) (Entry, bool) {
	return s.Read().Get(kind, key)
}

// Merge puts all entries of a manifest, e.g. one loaded from a previous
// compilation run, into the store. It reports whether a write took place.
func (s *Store) Merge(other *Manifest) bool {
	return s.Update(func(m *Manifest) *Manifest {
		return m.Merge(other)
	})
}
