package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatForCLI_IncludesMessageAndCode(t *testing.T) {
	// Given: a structured error
	err := New(ErrCodeRootNotFound, "directory /tmp/nope does not exist", nil)

	// When: formatting for CLI
	out := FormatForCLI(err)

	// Then: message and code are present
	assert.Contains(t, out, "Error: directory /tmp/nope does not exist")
	assert.Contains(t, out, "Code: ERR_101_ROOT_NOT_FOUND")
}

func TestFormatForCLI_IncludesSuggestionWhenSet(t *testing.T) {
	err := New(ErrCodeNoMode, "no run mode enabled", nil).
		WithSuggestion("Enable --watch or --immediate")

	out := FormatForCLI(err)

	assert.Contains(t, out, "Hint: Enable --watch or --immediate")
}

func TestFormatForCLI_WrapsStandardErrors(t *testing.T) {
	out := FormatForCLI(errors.New("plain failure"))

	assert.Contains(t, out, "Error: plain failure")
	assert.Contains(t, out, ErrCodeInternal)
}

func TestFormatForCLI_NilReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", FormatForCLI(nil))
}

func TestFormatForLog_ProducesStructuredAttributes(t *testing.T) {
	// Given: an entry error with a path detail and a cause
	cause := errors.New("permission denied")
	err := EntryError(ErrCodeHideFailed, "/data/secret.txt", cause)

	// When: formatting for logging
	attrs := FormatForLog(err)

	// Then: code, category, severity, cause, and details are attributes
	assert.Equal(t, ErrCodeHideFailed, attrs["error_code"])
	assert.Equal(t, "ENTRY", attrs["category"])
	assert.Equal(t, "ERROR", attrs["severity"])
	assert.Equal(t, "permission denied", attrs["cause"])
	assert.Equal(t, "/data/secret.txt", attrs["detail_path"])
}

func TestFormatForLog_StandardErrorFallsBack(t *testing.T) {
	attrs := FormatForLog(errors.New("plain failure"))

	assert.Equal(t, "plain failure", attrs["error"])
}

func TestFormatForLog_NilReturnsNil(t *testing.T) {
	assert.Nil(t, FormatForLog(nil))
}
