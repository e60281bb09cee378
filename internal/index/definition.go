// Package index holds the class-name definition model and the published
// snapshot that the completion path reads.
package index

// Source identifies where a class name was discovered.
type Source struct {
	Path   string // project-relative file path
	Format string // extractor format, e.g. "markup", "stylesheet"
}

// Definition is one discovered class-name occurrence. It is immutable once
// created. Two definitions with the same ClassName are considered equal
// regardless of provenance.
type Definition struct {
	ClassName string
	Source    Source
}
