package extract

import (
	"regexp"

	"github.com/classdex/classdex/internal/index"
)

var stylesheetSelector = regexp.MustCompile(`\.(-?[_a-zA-Z][\w-]*)`)

// StylesheetExtractor extracts class selectors from CSS, SCSS, Sass and
// Less sources.
type StylesheetExtractor struct{}

func (StylesheetExtractor) Format() string { return "stylesheet" }

func (StylesheetExtractor) Extract(path string, content []byte) ([]index.Definition, error) {
	defs := []index.Definition{}
	for _, loc := range stylesheetSelector.FindAllSubmatchIndex(content, -1) {
		if !selectorBoundary(content, loc[0]) {
			continue
		}
		defs = append(defs, index.Definition{
			ClassName: string(content[loc[2]:loc[3]]),
			Source:    index.Source{Path: path, Format: "stylesheet"},
		})
	}
	return defs, nil
}

// selectorBoundary reports whether the dot at offset starts a class
// selector rather than a file extension or decimal. A dot preceded by an
// identifier is still a selector when that identifier is itself part of a
// selector chain (".btn.active") or an element selector ("div.wide" after
// whitespace or a combinator).
func selectorBoundary(content []byte, offset int) bool {
	i := offset - 1
	for i >= 0 && isIdentByte(content[i]) {
		i--
	}
	if i == offset-1 {
		// Not preceded by an identifier: boundary unless it looks like a
		// quoted path segment ("a/b.css") or another dot ("..").
		return i < 0 || (content[i] != '.' && content[i] != '/')
	}
	// Preceded by an identifier: selector only when the identifier itself
	// follows a selector-position byte.
	if i < 0 {
		return true
	}
	switch content[i] {
	case '.', '#', ' ', '\t', '\n', '\r', ',', '{', '}', '>', '~', '+', '(', '[':
		return true
	}
	return false
}

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
