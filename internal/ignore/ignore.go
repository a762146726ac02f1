// Package ignore exempts paths from hiding through gitignore-style
// exclusion patterns.
package ignore

import (
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// Config configures a Matcher.
type Config struct {
	// Roots are the directories patterns are evaluated relative to.
	Roots []string

	// Patterns is a list of gitignore-style patterns, for example
	// "*.bak", "node_modules/" or "/exactly/this".
	Patterns []string
}

// Matcher evaluates exclusion patterns against paths. A nil Matcher,
// and one compiled from no patterns, matches nothing.
type Matcher struct {
	roots []string
	gi    *gitignore.GitIgnore
}

// New compiles cfg.Patterns into a Matcher.
func New(cfg Config) *Matcher {
	m := &Matcher{roots: append([]string(nil), cfg.Roots...)}
	if len(cfg.Patterns) > 0 {
		m.gi = gitignore.CompileIgnoreLines(cfg.Patterns...)
	}
	return m
}

// Match reports whether path is excluded. Paths are evaluated relative
// to the first root that contains them, so anchored patterns refer to
// locations under a configured root. The roots themselves are never
// excluded.
func (m *Matcher) Match(path string) bool {
	if m == nil || m.gi == nil {
		return false
	}
	rel, ok := m.rel(path)
	if !ok {
		return false
	}
	return m.gi.MatchesPath(rel)
}

func (m *Matcher) rel(path string) (string, bool) {
	sep := string(filepath.Separator)
	for _, root := range m.roots {
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+sep) {
			continue
		}
		if rel == "." {
			return "", false
		}
		return filepath.ToSlash(rel), true
	}
	return filepath.ToSlash(path), true
}
