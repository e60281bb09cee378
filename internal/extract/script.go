package extract

import (
	"regexp"

	"github.com/classdex/classdex/internal/index"
)

// className="foo bar" (JSX) and class="foo bar" (web components, lit
// templates, frameworks that keep the HTML attribute name).
var scriptClassAttr = regexp.MustCompile(`\b(?:className|class)\s*=\s*(?:\{?\s*)("([^"]*)"|'([^']*)'|` + "`([^`$]*)`" + `)`)

// ScriptExtractor extracts class attributes from JavaScript and TypeScript
// component sources, including JSX/TSX.
type ScriptExtractor struct{}

func (ScriptExtractor) Format() string { return "script" }

func (ScriptExtractor) Extract(path string, content []byte) ([]index.Definition, error) {
	defs := []index.Definition{}
	for _, m := range scriptClassAttr.FindAllSubmatch(content, -1) {
		value := m[2]
		if len(value) == 0 {
			value = m[3]
		}
		if len(value) == 0 {
			value = m[4]
		}
		defs = append(defs, splitClassList(path, "script", string(value))...)
	}
	return defs, nil
}
