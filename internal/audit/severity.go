// Package audit evaluates a configuration snapshot and host state against an
// ordered catalog of security domain checks.
//
// Every check writes findings through a Recorder into an Aggregator. The
// Evaluator runs the catalog in order (or concurrently, merging in order),
// recovers from panicking checks, and produces a Report whose Disposition
// drives the process exit code.
package audit

import (
	"fmt"
	"strings"
)

// Severity is the ordered outcome of one finding. Fail > Warn > Pass.
type Severity int

const (
	Pass Severity = iota
	Warn
	Fail
)

// String returns "pass", "warn" or "fail".
func (s Severity) String() string {
	switch s {
	case Pass:
		return "pass"
	case Warn:
		return "warn"
	case Fail:
		return "fail"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText renders the severity for JSON and YAML documents.
func (s Severity) MarshalText() ([]byte, error) {
	if s < Pass || s > Fail {
		return nil, fmt.Errorf("invalid severity %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText parses "pass", "warn" or "fail".
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity parses a severity name, case-insensitively.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pass":
		return Pass, nil
	case "warn":
		return Warn, nil
	case "fail":
		return Fail, nil
	}
	return Pass, fmt.Errorf("unknown severity %q: must be pass, warn, or fail", name)
}
