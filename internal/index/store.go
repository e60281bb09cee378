package index

import "sync/atomic"

// Store holds the current published snapshot. Reads are lock-free and
// always return a complete snapshot: the scan pipeline builds a new
// snapshot off to the side and swaps it in with Publish, so readers see
// either the previous snapshot or the new one, never a mixture.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store holding an empty snapshot.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(EmptySnapshot())
	return s
}

// Read returns the current snapshot. Never blocks, never returns nil.
func (s *Store) Read() *Snapshot {
	return s.current.Load()
}

// Publish atomically replaces the current snapshot. Called only by the
// scan orchestrator after all extractions have completed.
func (s *Store) Publish(snap *Snapshot) {
	if snap == nil {
		snap = EmptySnapshot()
	}
	s.current.Store(snap)
}
