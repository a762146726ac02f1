package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHideError_Unwrap_PreservesOriginalError(t *testing.T) {
	// Given: an original error
	originalErr := errors.New("original error")

	// When: wrapping with HideError
	hideErr := New(ErrCodeStatFailed, "stat failed: test.txt", originalErr)

	// Then: unwrapping returns original error
	require.NotNil(t, hideErr)
	assert.Equal(t, originalErr, errors.Unwrap(hideErr))
	assert.True(t, errors.Is(hideErr, originalErr))
}

func TestHideError_Error_ReturnsFormattedMessage(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		message  string
		expected string
	}{
		{
			name:     "config error",
			code:     ErrCodeRootNotFound,
			message:  "directory does not exist",
			expected: "[ERR_101_ROOT_NOT_FOUND] directory does not exist",
		},
		{
			name:     "entry error",
			code:     ErrCodeHideFailed,
			message:  "cannot rename secret.txt",
			expected: "[ERR_203_HIDE_FAILED] cannot rename secret.txt",
		},
		{
			name:     "watch error",
			code:     ErrCodeBreakerTripped,
			message:  "too many errors",
			expected: "[ERR_402_BREAKER_TRIPPED] too many errors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, nil)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestHideError_Is_MatchesByCode(t *testing.T) {
	// Given: two errors with same code
	err1 := New(ErrCodeStatFailed, "stat A failed", nil)
	err2 := New(ErrCodeStatFailed, "stat B failed", nil)

	// Then: they match by code
	assert.True(t, errors.Is(err1, err2))
}

func TestHideError_Is_DoesNotMatchDifferentCodes(t *testing.T) {
	// Given: two errors with different codes
	err1 := New(ErrCodeStatFailed, "stat failed", nil)
	err2 := New(ErrCodeRootNotFound, "root not found", nil)

	// Then: they don't match
	assert.False(t, errors.Is(err1, err2))
}

func TestHideError_WithDetails_AddsContext(t *testing.T) {
	// Given: a base error
	err := New(ErrCodeHideFailed, "hide failed", nil)

	// When: adding details
	err = err.WithDetail("path", "/foo/bar.txt")
	err = err.WithDetail("kind", "file")

	// Then: details are available
	assert.Equal(t, "/foo/bar.txt", err.Details["path"])
	assert.Equal(t, "file", err.Details["kind"])
}

func TestHideError_WithSuggestion_AddsSuggestion(t *testing.T) {
	// Given: a config error
	err := New(ErrCodeNoMode, "no run mode enabled", nil)

	// When: adding suggestion
	err = err.WithSuggestion("Enable --watch or --immediate")

	// Then: suggestion is available
	assert.Equal(t, "Enable --watch or --immediate", err.Suggestion)
}

func TestHideError_CategoryFromCode(t *testing.T) {
	tests := []struct {
		code         string
		wantCategory Category
	}{
		{ErrCodeRootNotFound, CategoryConfig},
		{ErrCodeRootNotDir, CategoryConfig},
		{ErrCodeNoMode, CategoryConfig},
		{ErrCodeLockHeld, CategoryConfig},
		{ErrCodeStatFailed, CategoryEntry},
		{ErrCodeNoExtension, CategoryEntry},
		{ErrCodeHideFailed, CategoryEntry},
		{ErrCodeEventMalformed, CategoryEvent},
		{ErrCodeNotifyFailed, CategoryEvent},
		{ErrCodeChannelClosed, CategoryWatch},
		{ErrCodeBreakerTripped, CategoryWatch},
		{ErrCodeInternal, CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "test message", nil)
			assert.Equal(t, tt.wantCategory, err.Category)
		})
	}
}

func TestHideError_SeverityFromCode(t *testing.T) {
	tests := []struct {
		code         string
		wantSeverity Severity
	}{
		{ErrCodeRootNotFound, SeverityFatal},
		{ErrCodeNoMode, SeverityFatal},
		{ErrCodeChannelClosed, SeverityFatal},
		{ErrCodeBreakerTripped, SeverityFatal},
		{ErrCodeStatFailed, SeverityError},
		{ErrCodeHideFailed, SeverityError},
		{ErrCodeEventMalformed, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "test message", nil)
			assert.Equal(t, tt.wantSeverity, err.Severity)
		})
	}
}

func TestWrap_CreatesHideErrorFromError(t *testing.T) {
	// Given: a standard error
	originalErr := errors.New("something went wrong")

	// When: wrapping with a code
	hideErr := Wrap(ErrCodeInternal, originalErr)

	// Then: creates proper HideError
	require.NotNil(t, hideErr)
	assert.Equal(t, ErrCodeInternal, hideErr.Code)
	assert.Equal(t, "something went wrong", hideErr.Message)
	assert.Equal(t, originalErr, hideErr.Cause)
}

func TestWrap_NilErrorReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestConfigError_CreatesFatalConfigError(t *testing.T) {
	err := ConfigError("invalid yaml syntax", nil)

	assert.Equal(t, CategoryConfig, err.Category)
	assert.Equal(t, SeverityFatal, err.Severity)
	assert.Contains(t, err.Code, "CONFIG")
}

func TestEntryError_CarriesOffendingPath(t *testing.T) {
	// Given: a failure on one entry
	cause := errors.New("permission denied")

	// When: creating an entry error
	err := EntryError(ErrCodeHideFailed, "/srv/data/secret.txt", cause)

	// Then: the path is in message and details, and the error is non-fatal
	assert.Contains(t, err.Message, "/srv/data/secret.txt")
	assert.Equal(t, "/srv/data/secret.txt", err.Details["path"])
	assert.Equal(t, CategoryEntry, err.Category)
	assert.False(t, IsFatal(err))
}

func TestEventError_CountsTowardBreaker(t *testing.T) {
	err := EventError("event carries no path", nil)

	assert.Equal(t, CategoryEvent, err.Category)
	assert.False(t, IsFatal(err))
}

func TestWatchError_IsFatal(t *testing.T) {
	err := WatchError(ErrCodeChannelClosed, "notification channel closed", nil)

	assert.Equal(t, CategoryWatch, err.Category)
	assert.True(t, IsFatal(err))
}

func TestIsFatal_ChecksFatalSeverity(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "tripped breaker",
			err:      New(ErrCodeBreakerTripped, "too many errors", nil),
			expected: true,
		},
		{
			name:     "bad root",
			err:      New(ErrCodeRootNotDir, "not a directory", nil),
			expected: true,
		},
		{
			name:     "entry error",
			err:      New(ErrCodeStatFailed, "stat failed", nil),
			expected: false,
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsFatal(tt.err))
		})
	}
}

func TestGetCode_ExtractsCode(t *testing.T) {
	assert.Equal(t, ErrCodeStatFailed, GetCode(New(ErrCodeStatFailed, "x", nil)))
	assert.Equal(t, "", GetCode(errors.New("plain")))
}

func TestGetCategory_ExtractsCategory(t *testing.T) {
	assert.Equal(t, CategoryEvent, GetCategory(EventError("bad event", nil)))
	assert.Equal(t, Category(""), GetCategory(errors.New("plain")))
}
