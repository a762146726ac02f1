// Package logging configures structured logging for hidewatch.
//
// Logs go to stderr, as text when stderr is a terminal and JSON
// otherwise. For long watch runs an additional size-rotated log file
// can be enabled, so the file keeps a bounded history while stderr
// stays readable.
package logging
