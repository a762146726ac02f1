//go:build !windows

package hider

import "github.com/spf13/afero"

// New returns the Hider for this platform.
func New() Hider {
	return NewRenameHider(afero.NewOsFs())
}
