// Package hider applies the platform's hidden convention to filesystem
// entries. On Windows that means setting the hidden file attribute; on
// Unix-like systems it means renaming the entry to a dot-prefixed name.
package hider

// Hider hides a single filesystem entry.
type Hider interface {
	// Hide hides the entry at path and reports where the entry lives
	// afterwards. The result differs from the input only when hiding
	// renamed the entry. Hiding an already hidden entry is a no-op.
	Hide(path string) (string, error)
}

// NewDryRun returns a Hider that reports every path unchanged without
// touching the filesystem.
func NewDryRun() Hider {
	return dryRunHider{}
}

type dryRunHider struct{}

func (dryRunHider) Hide(path string) (string, error) {
	return path, nil
}
