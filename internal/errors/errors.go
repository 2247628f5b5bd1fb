package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound   ErrorCode = "CONFIG-001"
	ErrCodeConfigUnreadable ErrorCode = "CONFIG-002"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG-003"

	// Host probe errors (PROBE-001 to PROBE-099)
	ErrCodeProbeUnavailable ErrorCode = "PROBE-001"
	ErrCodeProbeFailed      ErrorCode = "PROBE-002"

	// Audit errors (AUDIT-001 to AUDIT-099)
	ErrCodePostureFailed ErrorCode = "AUDIT-001"
	ErrCodeCheckPanicked ErrorCode = "AUDIT-002"

	// Output errors (RENDER-001 to RENDER-099)
	ErrCodeRenderFailed  ErrorCode = "RENDER-001"
	ErrCodeUnknownFormat ErrorCode = "RENDER-002"
	ErrCodeMetricsWrite  ErrorCode = "RENDER-003"
)

// AuditError represents an error with a code, suggestions and an optional cause
type AuditError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *AuditError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *AuditError) Unwrap() error {
	return e.Cause
}

// New creates a new AuditError
func New(code ErrorCode, message string) *AuditError {
	return &AuditError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AuditError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *AuditError {
	return &AuditError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *AuditError) WithSuggestion(suggestion string) *AuditError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *AuditError) WithSuggestions(suggestions ...string) *AuditError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// HasCode reports whether err is an AuditError carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	var ae *AuditError
	if !stderrors.As(err, &ae) {
		return false
	}
	return ae.Code == code
}

// NewConfigNotFoundError creates a configuration file not found error
func NewConfigNotFoundError(path string) *AuditError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithSuggestions(
			"Pass --config to point at the gateway configuration file",
			"Set OPENCLAW_STATE_DIR if the deployment uses a non-default state directory",
			"Run the audit as the user that owns the deployment",
		)
}

// NewConfigUnreadableError creates an error for a configuration file that exists but cannot be read
func NewConfigUnreadableError(path string, cause error) *AuditError {
	return Wrap(ErrCodeConfigUnreadable, fmt.Sprintf("failed to read configuration file: %s", path), cause).
		WithSuggestion("Check that the file is readable by the current user")
}

// NewConfigInvalidError creates a parse error for the configuration document
func NewConfigInvalidError(path string, format string, cause error) *AuditError {
	return Wrap(ErrCodeConfigInvalid, fmt.Sprintf("failed to parse %s configuration: %s", format, path), cause).
		WithSuggestions(
			"Check the file syntax and format",
			fmt.Sprintf("Ensure the file is valid %s", format),
		)
}

// NewPostureFailedError reports that at least one check failed
func NewPostureFailedError(failCount int) *AuditError {
	noun := "checks"
	if failCount == 1 {
		noun = "check"
	}
	return New(ErrCodePostureFailed, fmt.Sprintf("security posture verification failed: %d %s failed", failCount, noun)).
		WithSuggestion("Review the failed findings above and harden the configuration").
		WithSuggestion("Re-run with --verbose to see informational notes")
}

// NewUnknownFormatError creates an error for an unsupported output format
func NewUnknownFormatError(format string) *AuditError {
	return New(ErrCodeUnknownFormat, fmt.Sprintf("unknown output format: %s", format)).
		WithSuggestion("Use one of: text, json, yaml")
}

// NewProbeUnavailableError reports that a host tool needed by a probe is missing
func NewProbeUnavailableError(tool string, cause error) *AuditError {
	return Wrap(ErrCodeProbeUnavailable, fmt.Sprintf("host probe unavailable: %s not found", tool), cause).
		WithSuggestion(fmt.Sprintf("Install %s or run the audit on the gateway host", tool))
}

// NewProbeFailedError reports that a host probe ran but could not produce an answer
func NewProbeFailedError(probe string, cause error) *AuditError {
	return Wrap(ErrCodeProbeFailed, fmt.Sprintf("host probe failed: %s", probe), cause)
}

// NewCheckPanickedError wraps a value recovered from a panicking check
func NewCheckPanickedError(domain string, recovered any) *AuditError {
	return New(ErrCodeCheckPanicked, fmt.Sprintf("check %q panicked: %v", domain, recovered))
}

// NewRenderFailedError creates an error for a report that could not be written
func NewRenderFailedError(format string, cause error) *AuditError {
	return Wrap(ErrCodeRenderFailed, fmt.Sprintf("failed to render %s report", format), cause)
}

// NewMetricsWriteError creates an error for a metrics textfile that could not be written
func NewMetricsWriteError(path string, cause error) *AuditError {
	return Wrap(ErrCodeMetricsWrite, fmt.Sprintf("failed to write metrics file: %s", path), cause).
		WithSuggestion("Check that the metrics directory exists and is writable")
}
