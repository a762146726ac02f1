package errors

import (
	"fmt"
	"strings"
)

// FormatForCLI renders err as the final user-facing message of a run:
// the message, a hint when the error carries a suggestion, and the
// code for reference. Plain errors are wrapped as internal first.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	he, ok := err.(*HideError)
	if !ok {
		he = Wrap(ErrCodeInternal, err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Error: %s\n", he.Message)
	if he.Suggestion != "" {
		fmt.Fprintf(&sb, "  Hint: %s\n", he.Suggestion)
	}
	fmt.Fprintf(&sb, "  Code: %s\n", he.Code)
	return sb.String()
}

// FormatForLog flattens err into key-value pairs for structured
// logging. Structured errors contribute their code, category,
// severity, cause, suggestion and prefixed details; plain errors just
// their message.
func FormatForLog(err error) map[string]any {
	if err == nil {
		return nil
	}

	he, ok := err.(*HideError)
	if !ok {
		return map[string]any{"error": err.Error()}
	}

	fields := map[string]any{
		"error_code": he.Code,
		"message":    he.Message,
		"category":   string(he.Category),
		"severity":   string(he.Severity),
	}
	if he.Cause != nil {
		fields["cause"] = he.Cause.Error()
	}
	if he.Suggestion != "" {
		fields["suggestion"] = he.Suggestion
	}
	for k, v := range he.Details {
		fields["detail_"+k] = v
	}
	return fields
}
