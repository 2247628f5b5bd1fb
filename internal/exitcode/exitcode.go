package exitcode

import (
	"os"
	"strings"

	"github.com/clawaudit/clawaudit/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates the audit ran and no check failed (disposition ok or warn)
	Success = 0

	// PostureFailed indicates the audit ran and at least one check failed
	PostureFailed = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// SetupError indicates the audit could not run at all (no configuration, unparsable document)
	SetupError = 3

	// GeneralError indicates any other failure (rendering, metrics output)
	GeneralError = 4

	// Interrupted indicates the run was cancelled by a signal
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	switch {
	case errors.HasCode(err, errors.ErrCodePostureFailed):
		return PostureFailed
	case errors.HasCode(err, errors.ErrCodeConfigNotFound),
		errors.HasCode(err, errors.ErrCodeConfigUnreadable),
		errors.HasCode(err, errors.ErrCodeConfigInvalid):
		return SetupError
	case errors.HasCode(err, errors.ErrCodeUnknownFormat):
		return UsageError
	}

	// cobra reports usage problems as plain errors
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unknown flag") || strings.Contains(errMsg, "unknown shorthand flag") {
		return UsageError
	}
	if strings.Contains(errMsg, "invalid argument") || strings.Contains(errMsg, "unknown command") {
		return UsageError
	}
	if strings.Contains(errMsg, "flag needs an argument") || strings.Contains(errMsg, "arg(s), received") {
		return UsageError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case PostureFailed:
		return "Security posture verification failed"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case SetupError:
		return "Setup error (configuration missing or unreadable)"
	case GeneralError:
		return "General error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
