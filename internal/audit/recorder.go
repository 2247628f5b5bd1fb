package audit

import "fmt"

// Recorder is the write side handed to a single check invocation. It stamps
// every finding with the check's domain.
type Recorder struct {
	domain string
	agg    *Aggregator
}

// NewRecorder creates a recorder writing into agg under domain.
func NewRecorder(domain string, agg *Aggregator) *Recorder {
	return &Recorder{domain: domain, agg: agg}
}

// Domain returns the domain findings are recorded under.
func (r *Recorder) Domain() string {
	return r.domain
}

// Record appends a finding with the given severity.
func (r *Recorder) Record(s Severity, format string, args ...any) {
	r.agg.Record(Finding{Domain: r.domain, Severity: s, Message: sprintf(format, args...)})
}

// Pass records a passing finding.
func (r *Recorder) Pass(format string, args ...any) {
	r.Record(Pass, format, args...)
}

// Warn records a warning.
func (r *Recorder) Warn(format string, args ...any) {
	r.Record(Warn, format, args...)
}

// Fail records a failure.
func (r *Recorder) Fail(format string, args ...any) {
	r.Record(Fail, format, args...)
}

// Note records an informational, non-counted line.
func (r *Recorder) Note(format string, args ...any) {
	r.agg.Note(Note{Domain: r.domain, Message: sprintf(format, args...)})
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
