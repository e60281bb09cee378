package extract

import (
	"regexp"

	"github.com/classdex/classdex/internal/index"
)

// class="foo bar" or class='foo bar'
var markupClassAttr = regexp.MustCompile(`\bclass\s*=\s*("([^"]*)"|'([^']*)')`)

// MarkupExtractor extracts class attributes from HTML and HTML-flavored
// template dialects (Vue SFCs, ERB, Twig, PHP, Handlebars, ...). The same
// attribute grammar covers all of them.
type MarkupExtractor struct{}

func (MarkupExtractor) Format() string { return "markup" }

func (MarkupExtractor) Extract(path string, content []byte) ([]index.Definition, error) {
	defs := []index.Definition{}
	for _, m := range markupClassAttr.FindAllSubmatch(content, -1) {
		value := m[2]
		if len(value) == 0 {
			value = m[3]
		}
		defs = append(defs, splitClassList(path, "markup", string(value))...)
	}
	return defs, nil
}
