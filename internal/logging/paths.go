package logging

import (
	"os"
	"path/filepath"
)

// DefaultLogDir returns the default log directory (~/.hidewatch/logs/).
// Falls back to the temp directory if the home directory is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".hidewatch", "logs")
	}
	return filepath.Join(home, ".hidewatch", "logs")
}

// DefaultLogPath returns the log path used when file logging is
// requested without an explicit location.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "hidewatch.log")
}
