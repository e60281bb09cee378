// Package complete serves class-name completion from the published
// snapshot. It never waits on an in-flight scan: every request reads
// whatever snapshot is current.
package complete

import (
	"regexp"
	"strings"

	"github.com/classdex/classdex/internal/index"
)

// TriggerCharacters are the keystrokes a host should register for class
// completion, in addition to normal identifier typing.
var TriggerCharacters = []string{`"`, `'`, " "}

// Unterminated class attribute immediately before the cursor. The capture
// is the in-progress attribute value, possibly empty right after the
// opening quote.
var (
	markupAttrPattern = regexp.MustCompile(`\bclass\s*=\s*["']([^"'>]*)$`)
	scriptAttrPattern = regexp.MustCompile(`\bclassName\s*=\s*["']([^"'>]*)$`)
)

// markupLanguages route to the HTML-style class attribute pattern;
// scriptLanguages route to the JSX-style className pattern. Everything
// else gets no completions.
var (
	markupLanguages = map[string]bool{
		"html": true, "vue": true, "svelte": true, "php": true,
		"erb": true, "twig": true, "handlebars": true, "jinja": true,
		"nunjucks": true, "markdown": true,
	}
	scriptLanguages = map[string]bool{
		"javascript": true, "javascriptreact": true,
		"typescript": true, "typescriptreact": true,
	}
)

// Item is one completion candidate. The class name serves as both the
// label and the inserted text.
type Item struct {
	Label      string `json:"label"`
	InsertText string `json:"insertText"`
}

// Engine answers completion requests from the current snapshot.
type Engine struct {
	store *index.Store
}

// NewEngine creates a completion engine reading from the given store.
func NewEngine(store *index.Store) *Engine {
	return &Engine{store: store}
}

// Provide returns completion candidates for a cursor position, given the
// editor language and the text of the current line up to the cursor.
//
// When the cursor is not inside an unterminated class attribute it
// returns nil; that is the common case on most keystrokes and costs one
// regexp probe. Otherwise it returns every known class name not already
// typed in the attribute value, in snapshot order.
func (e *Engine) Provide(languageID, textBeforeCursor string) []Item {
	pattern := patternFor(languageID)
	if pattern == nil {
		return nil
	}

	m := pattern.FindStringSubmatch(textBeforeCursor)
	if m == nil {
		return nil
	}

	typed := make(map[string]bool)
	for _, tok := range strings.Fields(m[1]) {
		typed[tok] = true
	}

	snapshot := e.store.Read()
	items := make([]Item, 0, snapshot.Len())
	for _, def := range snapshot.Definitions() {
		if typed[def.ClassName] {
			continue
		}
		items = append(items, Item{Label: def.ClassName, InsertText: def.ClassName})
	}
	return items
}

// patternFor selects the attribute pattern for a language identifier.
func patternFor(languageID string) *regexp.Regexp {
	id := strings.ToLower(languageID)
	switch {
	case markupLanguages[id]:
		return markupAttrPattern
	case scriptLanguages[id]:
		return scriptAttrPattern
	default:
		return nil
	}
}
