package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hidewatch/hidewatch/internal/config"
	hideerrors "github.com/hidewatch/hidewatch/internal/errors"
	"github.com/hidewatch/hidewatch/internal/hider"
	"github.com/hidewatch/hidewatch/internal/ignore"
	"github.com/hidewatch/hidewatch/internal/lock"
	"github.com/hidewatch/hidewatch/internal/logging"
	"github.com/hidewatch/hidewatch/internal/output"
	"github.com/hidewatch/hidewatch/internal/rules"
	"github.com/hidewatch/hidewatch/internal/scan"
	"github.com/hidewatch/hidewatch/internal/watch"
)

// run executes a validated configuration: the immediate pass first when
// enabled, then the watch loop. A signal ends either mode cleanly.
func run(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logCfg.FilePath = cfg.Log.File

	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return err
	}
	defer cleanup()
	slog.SetDefault(logger)

	reporter := output.New(cmd.OutOrStdout(), output.Options{
		DryRun: cfg.DryRun,
		ErrOut: cmd.ErrOrStderr(),
	})

	if cfg.DryRun {
		reporter.Noticef("Dry run enabled. No files will be hidden.")
	}

	ruleset := rules.NewRuleset(rules.Options{
		Names:         cfg.Names,
		Extensions:    cfg.Extensions,
		CaseSensitive: cfg.CaseSensitive,
		HideFiles:     cfg.HidesFiles(),
		HideDirs:      cfg.HidesDirectories(),
	})

	excludes := ignore.New(ignore.Config{
		Roots:    cfg.Roots,
		Patterns: cfg.Exclude,
	})

	h := hider.New()
	if cfg.DryRun {
		h = hider.NewDryRun()
	}

	proc := scan.NewProcessor(ruleset, h, reporter, scan.WithExcludes(excludes))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Claim the roots before touching anything so a second watcher on
	// the same tree is refused up front. One-shot runs do not lock.
	if cfg.Watch {
		guard := lock.New("")
		if err := guard.Acquire(cfg.Roots); err != nil {
			return err
		}
		defer guard.Release()
	}

	if cfg.Immediate {
		if err := runImmediate(ctx, cfg, proc, reporter, logger); err != nil {
			return err
		}
	}

	if cfg.Watch && ctx.Err() == nil {
		return runWatch(ctx, cfg, proc, reporter, logger)
	}
	return nil
}

// runImmediate walks every root once. Per-entry failures are already
// reported and counted by the scanner; only a signal stops the pass.
func runImmediate(ctx context.Context, cfg *config.Config, proc *scan.Processor, reporter *output.Reporter, logger *slog.Logger) error {
	if cfg.DryRun {
		reporter.Noticef("Running immediate mode...")
	}

	scanner := scan.New(proc, reporter, scan.Options{
		Recursive: cfg.Recursive,
		Logger:    logger,
	})

	summaries, err := scanner.Run(ctx, cfg.Roots)
	reporter.Summary(summaries)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

// runWatch registers the roots and blocks on the watch loop until a
// signal or a fatal watch condition.
func runWatch(ctx context.Context, cfg *config.Config, proc *scan.Processor, reporter *output.Reporter, logger *slog.Logger) error {
	w, err := watch.NewFSWatcher(watch.Options{Recursive: cfg.Recursive})
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	if err := w.AddRoots(ctx, cfg.Roots); err != nil {
		return err
	}
	w.Start(ctx)

	if cfg.DryRun {
		reporter.Noticef("Running watch mode...")
	}
	logger.Info("watch mode started",
		slog.Int("roots", len(cfg.Roots)),
		slog.Bool("recursive", cfg.Recursive))

	breaker := hideerrors.NewBreaker(
		hideerrors.WithLimit(cfg.ErrorLimit),
		hideerrors.WithWindow(cfg.ErrorWindowValue()),
	)

	handle := func(path string) (string, error) {
		result, _, err := proc.Process(path)
		return result, err
	}

	session := watch.NewSession(w, handle,
		watch.WithBreaker(breaker),
		watch.WithLogger(logger),
	)

	if err := session.Run(ctx); err != nil {
		return err
	}

	logger.Info("watch mode stopped")
	return nil
}
