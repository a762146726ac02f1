package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	hideerrors "github.com/hidewatch/hidewatch/internal/errors"
)

// Options configures the watcher behavior.
type Options struct {
	// Recursive watches the whole tree under each root instead of
	// only the root itself.
	Recursive bool

	// EventBufferSize is the size of the event channel buffer.
	// Default: 1000
	EventBufferSize int
}

// DefaultOptions returns the default watcher options.
func DefaultOptions() Options {
	return Options{
		EventBufferSize: 1000,
	}
}

// WithDefaults returns options with defaults applied for zero values.
func (o Options) WithDefaults() Options {
	defaults := DefaultOptions()
	if o.EventBufferSize == 0 {
		o.EventBufferSize = defaults.EventBufferSize
	}
	return o
}

// FSWatcher translates OS filesystem notifications into Events on a
// single channel. A background pump goroutine collects raw
// notifications; the consumer blocks on Events and treats its closure
// as a broken notification source.
type FSWatcher struct {
	fw        *fsnotify.Watcher
	events    chan Event
	errors    chan error
	stopCh    chan struct{}
	recursive bool
	mu        sync.Mutex
	stopped   bool
	dropped   atomic.Uint64
}

var _ Source = (*FSWatcher)(nil)

// NewFSWatcher creates a watcher with the given options.
func NewFSWatcher(opts Options) (*FSWatcher, error) {
	opts = opts.WithDefaults()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, hideerrors.WatchError(hideerrors.ErrCodeRegisterFailed,
			"failed to create filesystem watcher", err)
	}

	return &FSWatcher{
		fw:        fw,
		events:    make(chan Event, opts.EventBufferSize),
		errors:    make(chan error, 10),
		stopCh:    make(chan struct{}),
		recursive: opts.Recursive,
	}, nil
}

// AddRoots registers all roots with the OS notification mechanism.
// Recursive registration walks each tree and registers every directory;
// the roots are walked in parallel. Any registration failure is fatal.
func (w *FSWatcher) AddRoots(ctx context.Context, roots []string) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, root := range roots {
		root := root // Capture loop variable
		g.Go(func() error {
			return w.addRoot(gctx, root)
		})
	}

	if err := g.Wait(); err != nil {
		return hideerrors.WatchError(hideerrors.ErrCodeRegisterFailed,
			"failed to register watch roots", err)
	}
	return nil
}

// addRoot registers a single root, walking its subtree when recursive.
// Unreadable subtrees are skipped; a failure on the root itself or on
// registering a readable directory aborts.
func (w *FSWatcher) addRoot(ctx context.Context, root string) error {
	if !w.recursive {
		return w.fw.Add(root)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil // Skip directories we can't access
		}
		if !d.IsDir() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		return w.fw.Add(path)
	})
}

// Start launches the background pump. Call after AddRoots.
func (w *FSWatcher) Start(ctx context.Context) {
	go w.pump(ctx)
}

// pump collects raw notifications until the source closes or the
// watcher stops. It is the only closer of the output channels.
func (w *FSWatcher) pump(ctx context.Context) {
	defer close(w.errors)
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handleNotification(event)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.emitError(err)
		}
	}
}

// handleNotification converts one fsnotify event into an Event.
// The old-name half of a rename arrives as fsnotify.Rename; the new
// name arrives separately as a creation.
func (w *FSWatcher) handleNotification(event fsnotify.Event) {
	var kind Kind
	switch {
	case event.Op&fsnotify.Create != 0:
		kind = KindCreate
		// Watch new directories as they appear
		if w.recursive {
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := w.fw.Add(event.Name); err != nil {
					w.emitError(err)
				}
			}
		}
	case event.Op&fsnotify.Write != 0:
		kind = KindWrite
	case event.Op&fsnotify.Remove != 0:
		kind = KindRemove
	case event.Op&fsnotify.Rename != 0:
		kind = KindRenameFrom
	case event.Op&fsnotify.Chmod != 0:
		kind = KindChmod
	default:
		return
	}

	w.emit(Event{Kind: kind, Paths: []string{event.Name}})
}

// emit sends an event to the output channel, dropping when the
// consumer has fallen a full buffer behind.
func (w *FSWatcher) emit(ev Event) {
	select {
	case w.events <- ev:
	default:
		count := w.dropped.Add(1)
		slog.Warn("event buffer full, dropping event",
			slog.String("kind", ev.Kind.String()),
			slog.Uint64("total_dropped", count),
		)
	}
}

// emitError sends an error to the error channel.
func (w *FSWatcher) emitError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}

// Dropped returns the number of events dropped due to buffer overflow.
func (w *FSWatcher) Dropped() uint64 {
	return w.dropped.Load()
}

// Stop stops the watcher and releases resources.
// Safe to call multiple times.
func (w *FSWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopCh)

	return w.fw.Close()
}

// Events returns the channel of translated events.
// The channel is closed when the notification source breaks or the
// watcher stops.
func (w *FSWatcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of non-fatal watcher errors.
func (w *FSWatcher) Errors() <-chan error {
	return w.errors
}
