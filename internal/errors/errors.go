package errors

import (
	"fmt"
)

// HideError is the structured error type for hidewatch.
// It provides context for error handling, logging, and user presentation.
type HideError struct {
	// Code is the unique error code (e.g., "ERR_201_STAT_FAILED").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Entry, Event, Watch).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *HideError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *HideError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with HideError.
func (e *HideError) Is(target error) bool {
	if t, ok := target.(*HideError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *HideError) WithDetail(key, value string) *HideError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *HideError) WithSuggestion(suggestion string) *HideError {
	e.Suggestion = suggestion
	return e
}

// New creates a new HideError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *HideError {
	return &HideError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a HideError from an existing error.
// The error's message becomes the HideError message.
func Wrap(code string, err error) *HideError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
// Configuration errors are fatal and abort before any processing.
func ConfigError(message string, cause error) *HideError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// EntryError creates an error scoped to a single filesystem entry.
// The offending path is recorded as a detail.
func EntryError(code string, path string, cause error) *HideError {
	return New(code, fmt.Sprintf("%s: %s", path, messageOf(cause)), cause).
		WithDetail("path", path)
}

// EventError creates an error scoped to a single notification event.
// Event errors count toward the error breaker.
func EventError(message string, cause error) *HideError {
	return New(ErrCodeEventMalformed, message, cause)
}

// WatchError creates a fatal watch-loop error.
func WatchError(code string, message string, cause error) *HideError {
	return New(code, message, cause)
}

// messageOf returns the error message or a placeholder for nil causes.
func messageOf(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// IsFatal checks if an error has fatal severity.
// Fatal errors abort the current run.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if he, ok := err.(*HideError); ok {
		return he.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from a HideError.
// Returns empty string if not a HideError.
func GetCode(err error) string {
	if he, ok := err.(*HideError); ok {
		return he.Code
	}
	return ""
}

// GetCategory extracts the category from a HideError.
// Returns empty string if not a HideError.
func GetCategory(err error) Category {
	if he, ok := err.(*HideError); ok {
		return he.Category
	}
	return ""
}
