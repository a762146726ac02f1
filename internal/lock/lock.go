// Package lock keeps hidewatch instances from acting on the same root
// at the same time. Each root gets a cross-process file lock named
// after the hash of its absolute path, kept outside the watched tree
// so the lock file can never be hidden by its own process.
package lock

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	hideerrors "github.com/hidewatch/hidewatch/internal/errors"
)

// Guard holds one lock per root.
type Guard struct {
	dir   string
	locks []*flock.Flock
}

// DefaultDir returns the directory lock files live in.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".hidewatch", "locks")
	}
	return filepath.Join(home, ".hidewatch", "locks")
}

// New returns a Guard keeping its lock files under dir, or under
// DefaultDir when dir is empty.
func New(dir string) *Guard {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Guard{dir: dir}
}

// Acquire takes a non-blocking exclusive lock for every root. A root
// held by another process fails the whole acquisition, and any locks
// taken so far are released again.
func (g *Guard) Acquire(roots []string) error {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return hideerrors.New(hideerrors.ErrCodeLockHeld,
			fmt.Sprintf("failed to prepare lock directory %s", g.dir), err)
	}

	seen := make(map[string]struct{}, len(roots))
	for _, root := range roots {
		path, err := g.lockPath(root)
		if err != nil {
			g.Release()
			return err
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}

		fl := flock.New(path)
		ok, err := fl.TryLock()
		if err != nil {
			g.Release()
			return hideerrors.New(hideerrors.ErrCodeLockHeld,
				fmt.Sprintf("failed to lock root %s", root), err).
				WithDetail("lock_file", path)
		}
		if !ok {
			g.Release()
			return hideerrors.New(hideerrors.ErrCodeLockHeld,
				fmt.Sprintf("root %s is already being watched by another process", root), nil).
				WithDetail("lock_file", path).
				WithSuggestion("Stop the other hidewatch instance or remove the stale lock file.")
		}
		g.locks = append(g.locks, fl)
	}
	return nil
}

// Release drops every held lock. Safe to call more than once.
func (g *Guard) Release() {
	for _, fl := range g.locks {
		_ = fl.Unlock()
	}
	g.locks = nil
}

func (g *Guard) lockPath(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", hideerrors.New(hideerrors.ErrCodeLockHeld,
			fmt.Sprintf("failed to resolve root %s", root), err)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(g.dir, hex.EncodeToString(sum[:8])+".lock"), nil
}
