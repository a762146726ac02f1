//go:build windows

package hider

// New returns the Hider for this platform.
func New() Hider {
	return NewAttributeHider()
}
