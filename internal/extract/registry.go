package extract

import (
	"path/filepath"
	"sort"
	"strings"
)

// Registry is the static routing table from file extension (and, for
// editor requests, language identifier) to the extractor responsible for
// that format. Discovery pre-filters against Extensions, so adding a new
// format is one Register call plus one Extractor — the scan pipeline
// never changes.
type Registry struct {
	byExtension map[string]Extractor
	byLanguage  map[string]Extractor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byExtension: make(map[string]Extractor),
		byLanguage:  make(map[string]Extractor),
	}
}

// DefaultRegistry returns the registry with every shipped extractor
// registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(MarkupExtractor{},
		[]string{".html", ".htm", ".xhtml", ".vue", ".svelte", ".php", ".erb", ".ejs", ".twig", ".hbs", ".handlebars", ".jinja", ".njk"},
		[]string{"html", "vue", "svelte", "php", "erb", "twig", "handlebars", "jinja", "nunjucks"})

	r.Register(ScriptExtractor{},
		[]string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"},
		[]string{"javascript", "javascriptreact", "typescript", "typescriptreact"})

	r.Register(StylesheetExtractor{},
		[]string{".css", ".scss", ".sass", ".less"},
		[]string{"css", "scss", "sass", "less"})

	return r
}

// Register routes the given extensions (with leading dot) and language
// identifiers to an extractor. Later registrations win on conflict.
func (r *Registry) Register(e Extractor, extensions, languages []string) {
	for _, ext := range extensions {
		r.byExtension[strings.ToLower(ext)] = e
	}
	for _, lang := range languages {
		r.byLanguage[strings.ToLower(lang)] = e
	}
}

// Resolve maps a file path to its extractor. The second result is false
// for unsupported formats.
func (r *Registry) Resolve(path string) (Extractor, bool) {
	e, ok := r.byExtension[strings.ToLower(filepath.Ext(path))]
	return e, ok
}

// ResolveLanguage maps an editor language identifier to its extractor.
func (r *Registry) ResolveLanguage(languageID string) (Extractor, bool) {
	e, ok := r.byLanguage[strings.ToLower(languageID)]
	return e, ok
}

// Extensions returns every registered extension, sorted, for discovery
// pre-filtering.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Supports reports whether the file's extension has a registered
// extractor.
func (r *Registry) Supports(path string) bool {
	_, ok := r.Resolve(path)
	return ok
}
