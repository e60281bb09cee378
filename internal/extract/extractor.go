// Package extract turns raw file content into class-name definitions.
//
// Each supported source format has one Extractor built on lightweight
// regular expressions. The extractors are intentionally shallow — they do
// not parse the host language, they only recognize the places class names
// are declared (class attributes, className props, class selectors).
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/classdex/classdex/internal/index"
)

// Extractor is the per-format extraction capability. Implementations must
// be safe for concurrent use: Extract is called from many goroutines at
// once during a scan and must not share mutable state across calls.
//
// Zero matches is a valid empty result, not an error. A non-nil error is
// always a *ParseError.
type Extractor interface {
	// Format returns a short identifier used in definition provenance.
	Format() string

	// Extract returns every class-name definition declared in content.
	Extract(path string, content []byte) ([]index.Definition, error)
}

// ParseError reports that a single file could not be extracted, either
// because its content is malformed or because it could not be read.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// classToken matches a single well-formed CSS class identifier.
var classToken = regexp.MustCompile(`^-?[_a-zA-Z][\w-]*$`)

// splitClassList splits an attribute value into validated class tokens.
// Malformed tokens (template expressions, interpolations) are dropped
// rather than failing the file.
func splitClassList(path, format, value string) []index.Definition {
	var defs []index.Definition
	for _, tok := range strings.Fields(value) {
		if !classToken.MatchString(tok) {
			continue
		}
		defs = append(defs, index.Definition{
			ClassName: tok,
			Source:    index.Source{Path: path, Format: format},
		})
	}
	return defs
}
