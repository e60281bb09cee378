package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/classdex/classdex/internal/extract"
)

// alwaysIgnored are dependency-manager and VCS directories skipped
// regardless of configuration.
var alwaysIgnored = []string{".git", "node_modules", "bower_components", "vendor", ".classdex"}

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery enumerates candidate files under the workspace roots,
// applying ignore rules and format-support filtering.
type Discovery struct {
	roots          []string
	registry       *extract.Registry
	ignorePatterns []compiledPattern
}

// NewDiscovery creates a discovery instance for the given workspace roots.
// Ignore patterns use glob syntax with '/' as the separator and are
// matched against root-relative paths.
func NewDiscovery(roots []string, registry *extract.Registry, ignorePatterns []string) (*Discovery, error) {
	d := &Discovery{
		roots:    roots,
		registry: registry,
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return d, nil
}

// FindParseableDocuments walks the workspace roots and returns every file
// whose extension has a registered extractor. No open workspace root is a
// normal outcome and yields nil, nil.
func (d *Discovery) FindParseableDocuments() ([]string, error) {
	if len(d.roots) == 0 {
		return nil, nil
	}

	var files []string
	for _, root := range d.roots {
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			relPath, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			relPath = filepath.ToSlash(relPath)

			if info.IsDir() {
				if relPath != "." && d.shouldIgnore(relPath) {
					return filepath.SkipDir
				}
				return nil
			}

			if d.shouldIgnore(relPath) {
				return nil
			}

			if d.registry.Supports(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// shouldIgnore checks a root-relative path against the built-in directory
// exclusions and the configured ignore patterns.
func (d *Discovery) shouldIgnore(relPath string) bool {
	base := relPath
	if i := strings.LastIndex(relPath, "/"); i >= 0 {
		base = relPath[i+1:]
	}
	for _, dir := range alwaysIgnored {
		if base == dir {
			return true
		}
		if strings.HasPrefix(relPath, dir+"/") || strings.Contains(relPath, "/"+dir+"/") {
			return true
		}
	}

	if d.matchesAnyPattern(relPath) {
		return true
	}

	// A directory named "coverage" should match the pattern "coverage/**".
	return d.matchesAnyPattern(relPath + "/**")
}

// matchesAnyPattern checks if a path matches any configured ignore
// pattern.
func (d *Discovery) matchesAnyPattern(path string) bool {
	for _, cp := range d.ignorePatterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Patterns written as "**/*.min.css" should also match files in the
	// root directory, where there is no leading path segment.
	if !strings.Contains(path, "/") {
		for _, cp := range d.ignorePatterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(path) {
					return true
				}
			}
		}
	}

	return false
}
