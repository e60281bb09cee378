// Package scan implements the full re-scan pipeline: discovery, bounded
// concurrent extraction, aggregation, deduplication and atomic snapshot
// publication.
package scan

import "time"

// FileFailure records one file whose extraction failed. Failures are
// isolated: they are counted and reported in aggregate, never aborting
// the scan.
type FileFailure struct {
	Path string
	Err  error
}

// Stats summarizes one completed scan.
type Stats struct {
	ScanID            string
	FilesDiscovered   int
	DefinitionsFound  int // pre-dedup
	UniqueDefinitions int
	Failures          []FileFailure
	Duration          time.Duration
}

// FailedPaths returns the paths of all failed files, for diagnostics.
func (s Stats) FailedPaths() []string {
	paths := make([]string, 0, len(s.Failures))
	for _, f := range s.Failures {
		paths = append(paths, f.Path)
	}
	return paths
}
