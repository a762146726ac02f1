package hider

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	hideerrors "github.com/hidewatch/hidewatch/internal/errors"
)

// renameHider hides entries by prefixing their name with a dot.
type renameHider struct {
	fs afero.Fs
}

// NewRenameHider returns a Hider that renames entries to a dotted name
// on the given filesystem.
func NewRenameHider(fs afero.Fs) Hider {
	return &renameHider{fs: fs}
}

func (h *renameHider) Hide(path string) (string, error) {
	name := filepath.Base(path)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", hideerrors.EntryError(hideerrors.ErrCodeHideFailed, path,
			errors.New("path has no name component"))
	}
	if strings.HasPrefix(name, ".") {
		return path, nil
	}

	hidden := filepath.Join(filepath.Dir(path), "."+name)

	// Renaming over an existing entry would silently replace it.
	if ok, _ := afero.Exists(h.fs, hidden); ok {
		return "", hideerrors.EntryError(hideerrors.ErrCodeHideFailed, path,
			fmt.Errorf("%s already exists", hidden))
	}

	if err := h.fs.Rename(path, hidden); err != nil {
		return "", hideerrors.EntryError(hideerrors.ErrCodeHideFailed, path, err)
	}
	return hidden, nil
}
