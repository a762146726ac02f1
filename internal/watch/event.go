// Package watch delivers and classifies filesystem notification events.
package watch

import (
	hideerrors "github.com/hidewatch/hidewatch/internal/errors"
)

// Kind tags a notification event.
type Kind int

const (
	// KindCreate signals a new entry appearing under a watched root.
	KindCreate Kind = iota
	// KindWrite signals a content modification.
	KindWrite
	// KindRemove signals an entry disappearing.
	KindRemove
	// KindChmod signals a metadata-only change.
	KindChmod
	// KindRenameFrom is the old-name half of a rename. It names an entry
	// that no longer exists and is never acted on.
	KindRenameFrom
	// KindRenameTo is the destination half of a rename, or a
	// self-contained rename carrying both names.
	KindRenameTo
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "create"
	case KindWrite:
		return "write"
	case KindRemove:
		return "remove"
	case KindChmod:
		return "chmod"
	case KindRenameFrom:
		return "rename-from"
	case KindRenameTo:
		return "rename-to"
	default:
		return "unknown"
	}
}

// Event is one raw notification as delivered by the OS watch mechanism.
// It carries one path, or two for a self-contained rename (old name
// first, destination second). Events are consumed once by Classify and
// discarded.
type Event struct {
	Kind  Kind
	Paths []string
}

// Classify decides whether an event represents new presence of content
// worth evaluating, and extracts the single relevant path.
//
// Creations are always relevant. Rename destinations are relevant: with
// two paths the second is the destination, with one path that path is
// the destination. The old-name half of a rename, writes, removals, and
// metadata changes are not relevant. An event missing its expected path
// is malformed and reported as a per-event error.
func Classify(ev Event) (string, bool, error) {
	switch ev.Kind {
	case KindCreate:
		if len(ev.Paths) == 0 {
			return "", false, hideerrors.EventError("create event carries no path", nil)
		}
		return ev.Paths[0], true, nil

	case KindRenameTo:
		if len(ev.Paths) >= 2 {
			return ev.Paths[1], true, nil
		}
		if len(ev.Paths) == 1 {
			return ev.Paths[0], true, nil
		}
		return "", false, hideerrors.EventError("rename event carries no path", nil)

	case KindRenameFrom, KindWrite, KindRemove, KindChmod:
		return "", false, nil

	default:
		return "", false, nil
	}
}
