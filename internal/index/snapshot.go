package index

// Snapshot is a complete, deduplicated collection of definitions produced
// by one scan. It is built once and never mutated after publication, so
// readers never need a lock.
type Snapshot struct {
	defs []Definition
	seen map[string]struct{}
}

// NewSnapshot builds a snapshot from raw extraction output, deduplicating
// by class name. The first occurrence of a name wins; insertion order is
// preserved so completion results are deterministic.
func NewSnapshot(defs []Definition) *Snapshot {
	s := &Snapshot{
		defs: make([]Definition, 0, len(defs)),
		seen: make(map[string]struct{}, len(defs)),
	}
	for _, d := range defs {
		if _, ok := s.seen[d.ClassName]; ok {
			continue
		}
		s.seen[d.ClassName] = struct{}{}
		s.defs = append(s.defs, d)
	}
	return s
}

// EmptySnapshot returns a snapshot with no definitions.
func EmptySnapshot() *Snapshot {
	return NewSnapshot(nil)
}

// Definitions returns the deduplicated definitions in insertion order.
// Callers must not modify the returned slice.
func (s *Snapshot) Definitions() []Definition {
	return s.defs
}

// Contains reports whether a class name is present in the snapshot.
func (s *Snapshot) Contains(className string) bool {
	_, ok := s.seen[className]
	return ok
}

// Len returns the number of unique definitions.
func (s *Snapshot) Len() int {
	return len(s.defs)
}
