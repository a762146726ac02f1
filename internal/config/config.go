package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	hideerrors "github.com/hidewatch/hidewatch/internal/errors"
)

// Entry kinds the matcher may act on.
const (
	KindFile      = "file"
	KindDirectory = "directory"
)

// Config is the complete hidewatch runtime configuration.
// It is assembled in order of increasing precedence:
//  1. Hardcoded defaults
//  2. Config file (.hidewatch.yaml in the working directory, or --config)
//  3. Environment variables (HIDEWATCH_*)
//  4. Command-line flags (applied by the command layer)
type Config struct {
	// Roots are the directories to process.
	Roots []string `yaml:"roots"`

	// Names are entry names to hide, matched against base names.
	Names []string `yaml:"names"`

	// Extensions are file extensions to hide. Both "txt" and ".txt"
	// are accepted.
	Extensions []string `yaml:"extensions"`

	// Kinds selects which entry kinds are hidden: file, directory.
	Kinds []string `yaml:"kinds"`

	Recursive     bool `yaml:"recursive"`
	CaseSensitive bool `yaml:"case_sensitive"`
	DryRun        bool `yaml:"dry_run"`
	Watch         bool `yaml:"watch"`
	Immediate     bool `yaml:"immediate"`

	// Exclude holds gitignore-style patterns for entries that must
	// never be hidden.
	Exclude []string `yaml:"exclude"`

	// ErrorLimit and ErrorWindow tune the watch-mode error breaker.
	// The window is a duration string such as "5s".
	ErrorLimit  int    `yaml:"error_limit"`
	ErrorWindow string `yaml:"error_window"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures the logging setup.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns a Config with built-in defaults.
func Default() *Config {
	return &Config{
		Kinds:       []string{KindFile, KindDirectory},
		ErrorLimit:  hideerrors.DefaultErrorLimit,
		ErrorWindow: hideerrors.DefaultErrorWindow.String(),
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file
// and environment variables. When file is empty, .hidewatch.yaml and
// .hidewatch.yml in dir are tried; a missing candidate is fine, a
// missing explicit file is not. Flag handling happens in the command
// layer on top of the result.
func Load(dir, file string) (*Config, error) {
	cfg := Default()

	if file != "" {
		if err := cfg.loadYAML(file); err != nil {
			return nil, err
		}
	} else {
		for _, name := range []string{".hidewatch.yaml", ".hidewatch.yml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if err := cfg.loadYAML(candidate); err != nil {
				return nil, err
			}
			break
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// loadYAML merges the values from a YAML file over c.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return hideerrors.New(hideerrors.ErrCodeConfigFile,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return hideerrors.New(hideerrors.ErrCodeConfigFile,
			fmt.Sprintf("failed to parse config file %s", path), err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c. Booleans can
// only be switched on by a file, never off; all of them default off.
func (c *Config) mergeWith(other *Config) {
	if len(other.Roots) > 0 {
		c.Roots = other.Roots
	}
	if len(other.Names) > 0 {
		c.Names = other.Names
	}
	if len(other.Extensions) > 0 {
		c.Extensions = other.Extensions
	}
	if len(other.Kinds) > 0 {
		c.Kinds = other.Kinds
	}
	if other.Recursive {
		c.Recursive = true
	}
	if other.CaseSensitive {
		c.CaseSensitive = true
	}
	if other.DryRun {
		c.DryRun = true
	}
	if other.Watch {
		c.Watch = true
	}
	if other.Immediate {
		c.Immediate = true
	}
	if len(other.Exclude) > 0 {
		c.Exclude = other.Exclude
	}
	if other.ErrorLimit != 0 {
		c.ErrorLimit = other.ErrorLimit
	}
	if other.ErrorWindow != "" {
		c.ErrorWindow = other.ErrorWindow
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}
	if other.Log.File != "" {
		c.Log.File = other.Log.File
	}
}

// applyEnvOverrides applies HIDEWATCH_* environment variable
// overrides. List values are comma-separated. Values that do not
// parse are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("HIDEWATCH_ROOTS"); v != "" {
		c.Roots = splitList(v)
	}
	if v := os.Getenv("HIDEWATCH_NAMES"); v != "" {
		c.Names = splitList(v)
	}
	if v := os.Getenv("HIDEWATCH_EXTENSIONS"); v != "" {
		c.Extensions = splitList(v)
	}
	if v := os.Getenv("HIDEWATCH_KINDS"); v != "" {
		c.Kinds = splitList(v)
	}
	if v := os.Getenv("HIDEWATCH_EXCLUDE"); v != "" {
		c.Exclude = splitList(v)
	}
	if v := os.Getenv("HIDEWATCH_RECURSIVE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Recursive = b
		}
	}
	if v := os.Getenv("HIDEWATCH_CASE_SENSITIVE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.CaseSensitive = b
		}
	}
	if v := os.Getenv("HIDEWATCH_DRY_RUN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.DryRun = b
		}
	}
	if v := os.Getenv("HIDEWATCH_WATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Watch = b
		}
	}
	if v := os.Getenv("HIDEWATCH_IMMEDIATE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Immediate = b
		}
	}
	if v := os.Getenv("HIDEWATCH_ERROR_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.ErrorLimit = n
		}
	}
	if v := os.Getenv("HIDEWATCH_ERROR_WINDOW"); v != "" {
		if _, err := time.ParseDuration(v); err == nil {
			c.ErrorWindow = v
		}
	}
	if v := os.Getenv("HIDEWATCH_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("HIDEWATCH_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("HIDEWATCH_LOG_FILE"); v != "" {
		c.Log.File = v
	}
}

// Normalize dedupes roots and canonicalizes kinds. Called once after
// all layers have been applied.
func (c *Config) Normalize() {
	c.Roots = dedupe(c.Roots)

	kinds := make([]string, 0, len(c.Kinds))
	for _, kind := range c.Kinds {
		kind = strings.ToLower(strings.TrimSpace(kind))
		if kind != "" {
			kinds = append(kinds, kind)
		}
	}
	c.Kinds = dedupe(kinds)
}

// Validate checks the assembled configuration. The first problem found
// is returned as a fatal configuration error.
func (c *Config) Validate() error {
	if len(c.Roots) == 0 {
		return hideerrors.New(hideerrors.ErrCodeConfigInvalid,
			"no directories to process", nil).
			WithSuggestion("Pass at least one directory as an argument.")
	}

	for _, root := range c.Roots {
		info, err := os.Stat(root)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return hideerrors.New(hideerrors.ErrCodeRootNotFound,
				fmt.Sprintf("directory %s does not exist", root), err)
		case err != nil:
			return hideerrors.New(hideerrors.ErrCodeRootNotFound,
				fmt.Sprintf("failed to check directory %s", root), err)
		case !info.IsDir():
			return hideerrors.New(hideerrors.ErrCodeRootNotDir,
				fmt.Sprintf("%s is not a directory", root), nil)
		}
	}

	if !c.Watch && !c.Immediate {
		return hideerrors.New(hideerrors.ErrCodeNoMode,
			"neither watch nor immediate mode is enabled", nil).
			WithSuggestion("Pass --watch, --immediate or both.")
	}

	if len(c.Kinds) == 0 {
		return hideerrors.New(hideerrors.ErrCodeConfigInvalid,
			"no entry kinds to hide", nil).
			WithSuggestion(`Use --types with "file", "directory" or both.`)
	}
	for _, kind := range c.Kinds {
		switch strings.ToLower(kind) {
		case KindFile, KindDirectory:
		default:
			return hideerrors.New(hideerrors.ErrCodeConfigInvalid,
				fmt.Sprintf("unknown entry kind %q", kind), nil).
				WithSuggestion(`Entry kinds are "file" and "directory".`)
		}
	}

	if c.ErrorLimit <= 0 {
		return hideerrors.New(hideerrors.ErrCodeConfigInvalid,
			"error limit must be positive", nil)
	}
	if d, err := time.ParseDuration(c.ErrorWindow); err != nil || d <= 0 {
		return hideerrors.New(hideerrors.ErrCodeConfigInvalid,
			fmt.Sprintf("invalid error window %q", c.ErrorWindow), err)
	}

	return nil
}

// HidesFiles reports whether regular files are in scope.
func (c *Config) HidesFiles() bool {
	return c.hasKind(KindFile)
}

// HidesDirectories reports whether directories are in scope.
func (c *Config) HidesDirectories() bool {
	return c.hasKind(KindDirectory)
}

func (c *Config) hasKind(kind string) bool {
	for _, k := range c.Kinds {
		if strings.EqualFold(k, kind) {
			return true
		}
	}
	return false
}

// ErrorWindowValue returns the parsed breaker window. An empty or
// invalid value falls back to the built-in default; Validate rejects
// invalid values before this is ever relied upon.
func (c *Config) ErrorWindowValue() time.Duration {
	d, err := time.ParseDuration(c.ErrorWindow)
	if err != nil || d <= 0 {
		return hideerrors.DefaultErrorWindow
	}
	return d
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
