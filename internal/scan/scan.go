// Package scan performs the one-shot hiding pass over the configured
// roots.
package scan

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	hideerrors "github.com/hidewatch/hidewatch/internal/errors"
)

// Summary tallies what one root's pass touched.
type Summary struct {
	Root    string
	Entries int
	Matched int
	Errors  int
}

// Options configures a Scanner.
type Options struct {
	// Recursive descends into subdirectories. When false only the
	// direct children of each root are considered, not the root itself.
	Recursive bool

	// Logger receives per-root debug output. Defaults to slog.Default.
	Logger *slog.Logger
}

// Scanner walks the configured roots once, feeding every discovered
// entry to a Processor.
type Scanner struct {
	proc      *Processor
	reporter  Reporter
	recursive bool
	logger    *slog.Logger
}

// New returns a Scanner over the given pipeline.
func New(proc *Processor, reporter Reporter, opts Options) *Scanner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		proc:      proc,
		reporter:  reporter,
		recursive: opts.Recursive,
		logger:    logger,
	}
}

// Run processes each root in turn and returns one Summary per root.
// Traversal and entry failures are reported and counted, never fatal;
// only context cancellation aborts the pass.
func (s *Scanner) Run(ctx context.Context, roots []string) ([]Summary, error) {
	summaries := make([]Summary, 0, len(roots))
	for _, root := range roots {
		sum, err := s.runRoot(ctx, root)
		summaries = append(summaries, sum)
		if err != nil {
			return summaries, err
		}
	}
	return summaries, nil
}

func (s *Scanner) runRoot(ctx context.Context, root string) (Summary, error) {
	sum := Summary{Root: root}
	s.logger.Debug("scanning root",
		slog.String("root", root),
		slog.Bool("recursive", s.recursive))

	if !s.recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			sum.Errors++
			s.reporter.Failed(root, hideerrors.EntryError(hideerrors.ErrCodeWalkFailed, root, err))
			return sum, nil
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return sum, err
			}
			s.processEntry(filepath.Join(root, entry.Name()), &sum)
		}
		return sum, nil
	}

	// The recursive walk starts at the root entry itself.
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			sum.Errors++
			s.reporter.Failed(path, hideerrors.EntryError(hideerrors.ErrCodeWalkFailed, path, walkErr))
			return nil
		}

		moved := s.processEntry(path, &sum)
		if moved && d.IsDir() {
			// The subtree now lives under the hidden name. Walking the
			// old path would only produce spurious errors.
			return filepath.SkipDir
		}
		return nil
	})
	return sum, err
}

// processEntry feeds one entry to the pipeline and reports whether the
// entry was moved somewhere else.
func (s *Scanner) processEntry(path string, sum *Summary) bool {
	sum.Entries++

	result, matched, err := s.proc.Process(path)
	if err != nil {
		sum.Errors++
		s.reporter.Failed(path, err)
		return false
	}
	if matched {
		sum.Matched++
	}
	return matched && result != path
}
