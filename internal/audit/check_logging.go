package audit

import "context"

// Redaction settings.
const (
	RedactTools = "tools"
	RedactOff   = "off"
)

// LoggingRedaction checks that gateway logs do not capture secrets.
type LoggingRedaction struct{}

// Name implements Check.
func (LoggingRedaction) Name() string { return "Logging Redaction" }

// Description implements Describer.
func (LoggingRedaction) Description() string {
	return "logging.redactSensitive and logging.level"
}

// Evaluate implements Check.
func (LoggingRedaction) Evaluate(_ context.Context, in Input, rec *Recorder) {
	redact := in.Config.Get("logging.redactSensitive")
	mode := redact.StringOr("")
	switch {
	case !redact.Present():
		rec.Pass("Sensitive values redacted in tool output (default)")
	case mode == RedactTools:
		rec.Pass("Sensitive values redacted in tool output")
	case mode == RedactOff:
		rec.Warn("Log redaction disabled (logging.redactSensitive=off)")
	default:
		rec.Warn("Unknown redaction mode %s", redact.Display())
	}

	switch level := in.Config.Get("logging.level").StringOr(""); level {
	case "debug", "trace":
		rec.Warn("Log level %s may capture message contents and credentials", level)
	}
}
