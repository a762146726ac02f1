//go:build windows

package hider

import (
	"golang.org/x/sys/windows"

	hideerrors "github.com/hidewatch/hidewatch/internal/errors"
)

// attributeHider hides entries by setting the hidden file attribute,
// leaving the name untouched.
type attributeHider struct{}

// NewAttributeHider returns a Hider that marks entries hidden through
// their file attributes.
func NewAttributeHider() Hider {
	return attributeHider{}
}

func (attributeHider) Hide(path string) (string, error) {
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return "", hideerrors.EntryError(hideerrors.ErrCodeHideFailed, path, err)
	}

	attrs, err := windows.GetFileAttributes(ptr)
	if err != nil {
		return "", hideerrors.EntryError(hideerrors.ErrCodeHideFailed, path, err)
	}
	if attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0 {
		return path, nil
	}

	if err := windows.SetFileAttributes(ptr, attrs|windows.FILE_ATTRIBUTE_HIDDEN); err != nil {
		return "", hideerrors.EntryError(hideerrors.ErrCodeHideFailed, path, err)
	}
	return path, nil
}
