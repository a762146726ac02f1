// Package errors provides structured error handling for hidewatch.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors (fatal, reported before any processing)
//   - 2XX: Per-entry errors (non-fatal, entry is skipped)
//   - 3XX: Per-event errors (non-fatal, counted toward the breaker)
//   - 4XX: Watch errors (fatal, terminate the watch loop)
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryEntry indicates errors scoped to a single filesystem entry.
	CategoryEntry Category = "ENTRY"
	// CategoryEvent indicates errors scoped to a single notification event.
	CategoryEvent Category = "EVENT"
	// CategoryWatch indicates fatal watch-loop errors.
	CategoryWatch Category = "WATCH"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but processing continues.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeRootNotFound  = "ERR_101_ROOT_NOT_FOUND"
	ErrCodeRootNotDir    = "ERR_102_ROOT_NOT_DIR"
	ErrCodeNoMode        = "ERR_103_NO_MODE"
	ErrCodeConfigInvalid = "ERR_104_CONFIG_INVALID"
	ErrCodeConfigFile    = "ERR_105_CONFIG_FILE"
	ErrCodeLockHeld      = "ERR_106_LOCK_HELD"

	// Entry errors (200-299)
	ErrCodeStatFailed  = "ERR_201_STAT_FAILED"
	ErrCodeNoExtension = "ERR_202_NO_EXTENSION"
	ErrCodeHideFailed  = "ERR_203_HIDE_FAILED"
	ErrCodeWalkFailed  = "ERR_204_WALK_FAILED"

	// Event errors (300-399)
	ErrCodeEventMalformed = "ERR_301_EVENT_MALFORMED"
	ErrCodeNotifyFailed   = "ERR_302_NOTIFY_FAILED"

	// Watch errors (400-499)
	ErrCodeChannelClosed  = "ERR_401_CHANNEL_CLOSED"
	ErrCodeBreakerTripped = "ERR_402_BREAKER_TRIPPED"
	ErrCodeRegisterFailed = "ERR_403_REGISTER_FAILED"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Extract numeric portion (e.g., "101" from "ERR_101_ROOT_NOT_FOUND")
	numStr := code[4:7]
	if len(numStr) < 1 {
		return CategoryInternal
	}

	switch numStr[0] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryEntry
	case '3':
		return CategoryEvent
	case '4':
		return CategoryWatch
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
// Configuration and watch errors abort the process; entry and event
// errors are reported and skipped.
func severityFromCode(code string) Severity {
	switch categoryFromCode(code) {
	case CategoryConfig, CategoryWatch:
		return SeverityFatal
	default:
		return SeverityError
	}
}
