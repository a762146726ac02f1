// Package rules decides which filesystem entries should be hidden.
package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	hideerrors "github.com/hidewatch/hidewatch/internal/errors"
)

// Options configures a Ruleset.
type Options struct {
	// Names are the entry names to hide, matched exactly against the
	// base name of files and directories.
	Names []string

	// Extensions are the file extensions to hide, without the leading
	// dot. A single leading dot is tolerated and stripped.
	Extensions []string

	// CaseSensitive controls whether name and extension comparison
	// distinguishes case.
	CaseSensitive bool

	// HideFiles enables hiding of regular files.
	HideFiles bool

	// HideDirs enables hiding of directories.
	HideDirs bool
}

// Ruleset matches filesystem entries against configured name and
// extension filters. Filters are canonicalized once at construction;
// entry metadata is fetched fresh on every check because the entry can
// change between discovery and action.
type Ruleset struct {
	names         map[string]struct{}
	extensions    map[string]struct{}
	caseSensitive bool
	hideFiles     bool
	hideDirs      bool
}

// NewRuleset builds a Ruleset from the given options.
// When case-insensitive, filter values are folded to lower case here so
// each check only folds the observed name.
func NewRuleset(opts Options) *Ruleset {
	r := &Ruleset{
		names:         make(map[string]struct{}, len(opts.Names)),
		extensions:    make(map[string]struct{}, len(opts.Extensions)),
		caseSensitive: opts.CaseSensitive,
		hideFiles:     opts.HideFiles,
		hideDirs:      opts.HideDirs,
	}

	for _, name := range opts.Names {
		r.names[r.fold(name)] = struct{}{}
	}
	for _, ext := range opts.Extensions {
		ext = strings.TrimPrefix(ext, ".")
		r.extensions[r.fold(ext)] = struct{}{}
	}

	return r
}

// Empty reports whether no name and no extension filters are configured.
// An empty ruleset hides everything it is shown.
func (r *Ruleset) Empty() bool {
	return len(r.names) == 0 && len(r.extensions) == 0
}

// ShouldHide reports whether the entry at path should be hidden.
//
// With no filters configured every entry matches, without touching the
// filesystem. Otherwise files are matched by exact name first and
// extension second, directories by name only, and kinds whose hiding is
// disabled never match. A file that has no extension and did not match
// by name is an error, not a miss.
func (r *Ruleset) ShouldHide(path string) (bool, error) {
	if r.Empty() {
		return true, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, hideerrors.EntryError(hideerrors.ErrCodeStatFailed, path, err)
	}

	name := r.fold(filepath.Base(path))

	switch {
	case info.Mode().IsRegular() && r.hideFiles:
		if _, ok := r.names[name]; ok {
			return true, nil
		}
		ext, ok := extensionOf(name)
		if !ok {
			return false, hideerrors.New(hideerrors.ErrCodeNoExtension,
				fmt.Sprintf("no extension to match for %s", path), nil).
				WithDetail("path", path)
		}
		_, ok = r.extensions[ext]
		return ok, nil

	case info.IsDir() && r.hideDirs:
		// Directories never match against extensions.
		_, ok := r.names[name]
		return ok, nil

	default:
		return false, nil
	}
}

// fold canonicalizes s for comparison under the configured case policy.
func (r *Ruleset) fold(s string) string {
	if r.caseSensitive {
		return s
	}
	return strings.ToLower(s)
}

// extensionOf returns the extension of a base name without the leading
// dot. Names with no dot, and names whose only dot leads (".gitignore"),
// have no extension.
func extensionOf(name string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return "", false
	}
	return name[i+1:], true
}
