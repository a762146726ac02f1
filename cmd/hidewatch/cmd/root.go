// Package cmd provides the CLI commands for hidewatch.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hidewatch/hidewatch/internal/config"
	hideerrors "github.com/hidewatch/hidewatch/internal/errors"
	"github.com/hidewatch/hidewatch/internal/logging"
	"github.com/hidewatch/hidewatch/pkg/version"
)

// rootFlags holds the command-line values before they are layered onto
// the file and environment configuration.
type rootFlags struct {
	configFile string

	names      []string
	extensions []string
	kinds      []string
	exclude    []string

	recursive     bool
	caseSensitive bool
	dryRun        bool
	watch         bool
	immediate     bool

	errorLimit  int
	errorWindow time.Duration

	logLevel  string
	logFormat string
	logFile   string
	debug     bool
}

// NewRootCmd creates the root command for the hidewatch CLI.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "hidewatch [directory]...",
		Short: "Hide files and directories that match name or extension filters",
		Long: `Hidewatch marks matching files and directories as hidden, either in a
single pass over the given directories (--immediate), continuously as
they appear (--watch), or both.

On Windows entries are hidden by setting the hidden file attribute; on
other systems they are renamed to a dot-prefixed name in place. Entries
that are already hidden are left alone.

Directories, filters and modes can also come from a .hidewatch.yaml
file in the working directory and from HIDEWATCH_* environment
variables; command-line flags win.`,
		Example: `  # Hide every node_modules directory under the current tree, once
  hidewatch --immediate --recursive --names node_modules .

  # Keep hiding new .log and .tmp files in /var/data as they appear
  hidewatch --watch --extensions log,tmp /var/data

  # Show what a full pass would do without touching anything
  hidewatch -i -r --dry-run -x log /var/data`,
		Version:       version.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, args, flags)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd, cfg)
		},
	}

	// Set version template
	cmd.SetVersionTemplate("hidewatch version {{.Version}}\n")

	registerFlags(cmd, flags)
	registerProfileFlags(cmd)

	// Add subcommands
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func registerFlags(cmd *cobra.Command, flags *rootFlags) {
	f := cmd.Flags()

	// Filter flags
	f.StringSliceVarP(&flags.names, "names", "n", nil, "Entry names to hide (repeatable)")
	f.StringSliceVarP(&flags.extensions, "extensions", "x", nil, "File extensions to hide, with or without the leading dot (repeatable)")
	f.StringSliceVarP(&flags.kinds, "types", "t", []string{config.KindFile, config.KindDirectory}, "Entry kinds to hide: file, directory")
	f.StringArrayVar(&flags.exclude, "exclude", nil, "Gitignore-style pattern for entries that must never be hidden (repeatable)")

	// Mode flags
	f.BoolVarP(&flags.recursive, "recursive", "r", false, "Process whole directory trees instead of direct children only")
	f.BoolVarP(&flags.caseSensitive, "case-sensitive", "c", false, "Match names and extensions case-sensitively")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Report what would be hidden without hiding anything")
	f.BoolVarP(&flags.watch, "watch", "w", false, "Keep watching the directories and hide matches as they appear")
	f.BoolVarP(&flags.immediate, "immediate", "i", false, "Hide existing matches in one pass before anything else")

	// Watch-loop error budget
	f.IntVar(&flags.errorLimit, "error-limit", hideerrors.DefaultErrorLimit, "Watch errors inside one window before giving up")
	f.DurationVar(&flags.errorWindow, "error-window", hideerrors.DefaultErrorWindow, "Length of the sliding error window")

	// Config and logging flags
	f.StringVar(&flags.configFile, "config", "", "Config file to load (default: .hidewatch.yaml in the working directory)")
	f.StringVar(&flags.logLevel, "log-level", "", "Minimum log level: debug, info, warn, error")
	f.StringVar(&flags.logFormat, "log-format", "", "Log encoding: auto, text, json")
	f.StringVar(&flags.logFile, "log-file", "", "Also write logs to this file")
	f.BoolVar(&flags.debug, "debug", false, "Log everything, including a copy to "+logging.DefaultLogDir())
}

// buildConfig layers the flags the user actually set on top of the file
// and environment configuration, then validates the result.
func buildConfig(cmd *cobra.Command, args []string, flags *rootFlags) (*config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}

	cfg, err := config.Load(dir, flags.configFile)
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.Roots = args
	}

	set := cmd.Flags()
	if set.Changed("names") {
		cfg.Names = flags.names
	}
	if set.Changed("extensions") {
		cfg.Extensions = flags.extensions
	}
	if set.Changed("types") {
		cfg.Kinds = flags.kinds
	}
	if set.Changed("exclude") {
		cfg.Exclude = flags.exclude
	}
	if set.Changed("recursive") {
		cfg.Recursive = flags.recursive
	}
	if set.Changed("case-sensitive") {
		cfg.CaseSensitive = flags.caseSensitive
	}
	if set.Changed("dry-run") {
		cfg.DryRun = flags.dryRun
	}
	if set.Changed("watch") {
		cfg.Watch = flags.watch
	}
	if set.Changed("immediate") {
		cfg.Immediate = flags.immediate
	}
	if set.Changed("error-limit") {
		cfg.ErrorLimit = flags.errorLimit
	}
	if set.Changed("error-window") {
		cfg.ErrorWindow = flags.errorWindow.String()
	}
	if set.Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if set.Changed("log-format") {
		cfg.Log.Format = flags.logFormat
	}
	if set.Changed("log-file") {
		cfg.Log.File = flags.logFile
	}

	// --debug is shorthand for debug level plus the default log file.
	if flags.debug {
		cfg.Log.Level = "debug"
		if cfg.Log.File == "" {
			cfg.Log.File = logging.DefaultLogPath()
		}
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute runs the root command. Fatal errors are printed in their CLI
// form; the caller only needs the exit decision.
func Execute() error {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, hideerrors.FormatForCLI(err))
		return err
	}
	return nil
}
