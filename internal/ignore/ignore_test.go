package ignore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcher_BasenameGlobs(t *testing.T) {
	m := New(Config{
		Roots:    []string{filepath.FromSlash("/srv/data")},
		Patterns: []string{"*.bak"},
	})

	assert.True(t, m.Match(filepath.FromSlash("/srv/data/old.bak")))
	assert.True(t, m.Match(filepath.FromSlash("/srv/data/deep/nested/old.bak")))
	assert.False(t, m.Match(filepath.FromSlash("/srv/data/current.txt")))
}

func TestMatcher_DirectoryPatternsCoverDescendants(t *testing.T) {
	m := New(Config{
		Roots:    []string{filepath.FromSlash("/srv/data")},
		Patterns: []string{"node_modules"},
	})

	assert.True(t, m.Match(filepath.FromSlash("/srv/data/node_modules")))
	assert.True(t, m.Match(filepath.FromSlash("/srv/data/node_modules/pkg/index.js")))
	assert.False(t, m.Match(filepath.FromSlash("/srv/data/src/main.go")))
}

func TestMatcher_AnchoredPatternsBindToRoot(t *testing.T) {
	m := New(Config{
		Roots:    []string{filepath.FromSlash("/srv/data")},
		Patterns: []string{"/secret.txt"},
	})

	assert.True(t, m.Match(filepath.FromSlash("/srv/data/secret.txt")))
	assert.False(t, m.Match(filepath.FromSlash("/srv/data/deep/secret.txt")))
}

func TestMatcher_NegationReinstatesPaths(t *testing.T) {
	m := New(Config{
		Roots:    []string{filepath.FromSlash("/srv/data")},
		Patterns: []string{"*.log", "!keep.log"},
	})

	assert.True(t, m.Match(filepath.FromSlash("/srv/data/debug.log")))
	assert.False(t, m.Match(filepath.FromSlash("/srv/data/keep.log")))
}

func TestMatcher_SecondRootRelativizes(t *testing.T) {
	m := New(Config{
		Roots:    []string{filepath.FromSlash("/srv/one"), filepath.FromSlash("/srv/two")},
		Patterns: []string{"/top.txt"},
	})

	assert.True(t, m.Match(filepath.FromSlash("/srv/two/top.txt")))
	assert.False(t, m.Match(filepath.FromSlash("/srv/two/sub/top.txt")))
}

func TestMatcher_PathOutsideRootsFallsBackToBasename(t *testing.T) {
	m := New(Config{
		Roots:    []string{filepath.FromSlash("/srv/data")},
		Patterns: []string{"*.bak"},
	})

	assert.True(t, m.Match(filepath.FromSlash("/elsewhere/old.bak")))
}

func TestMatcher_NoPatternsMatchesNothing(t *testing.T) {
	m := New(Config{Roots: []string{filepath.FromSlash("/srv/data")}})

	assert.False(t, m.Match(filepath.FromSlash("/srv/data/anything.txt")))

	var nilMatcher *Matcher
	assert.False(t, nilMatcher.Match(filepath.FromSlash("/srv/data/anything.txt")))
}

func TestMatcher_RootItselfIsNeverExcluded(t *testing.T) {
	m := New(Config{
		Roots:    []string{filepath.FromSlash("/srv/data")},
		Patterns: []string{"data"},
	})

	assert.False(t, m.Match(filepath.FromSlash("/srv/data")))
}
