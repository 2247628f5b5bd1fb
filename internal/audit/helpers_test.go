package audit

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clawaudit/clawaudit/internal/config"
	"github.com/clawaudit/clawaudit/internal/paths"
	"github.com/clawaudit/clawaudit/internal/probe"
	"github.com/clawaudit/clawaudit/internal/probe/probetest"
	"github.com/clawaudit/clawaudit/internal/security"
)

const testStateDir = "/srv/openclaw"

var testPaths = paths.Paths{
	StateDir:    testStateDir,
	ConfigFile:  testStateDir + "/openclaw.json",
	SecretsFile: testStateDir + "/.env",
}

// secureHost is a host with correct modes, a loopback listener and every
// service active. The config file on the host contains doc.
func secureHost(doc string) *probetest.Host {
	return probetest.New().
		WithDir(testPaths.StateDir, 0o700).
		WithFile(testPaths.ConfigFile, 0o600, doc).
		WithFile(testPaths.SecretsFile, 0o600, "ANTHROPIC_API_KEY=placeholder\n").
		WithListener("127.0.0.1", DefaultGatewayPort).
		WithService("openclaw-gateway", probe.ServiceActive).
		WithService("fail2ban", probe.ServiceActive).
		WithService("ufw", probe.ServiceActive)
}

func newInput(t *testing.T, doc string, host probe.Host) Input {
	t.Helper()
	tree, err := config.Parse("openclaw.json", []byte(doc))
	require.NoError(t, err)
	return Input{
		Config:  tree,
		Host:    host,
		Paths:   testPaths,
		Scanner: security.NewSecretScanner(),
	}
}

// evaluate runs a single check and returns its aggregator.
func evaluate(check Check, in Input) *Aggregator {
	agg := NewAggregator()
	check.Evaluate(context.Background(), in, NewRecorder(check.Name(), agg))
	return agg
}

func severities(findings []Finding) []Severity {
	out := make([]Severity, len(findings))
	for i, f := range findings {
		out[i] = f.Severity
	}
	return out
}

func messages(findings []Finding) string {
	parts := make([]string, len(findings))
	for i, f := range findings {
		parts[i] = f.Severity.String() + ": " + f.Message
	}
	return strings.Join(parts, "\n")
}

// staticCheck records a fixed list of findings.
type staticCheck struct {
	name     string
	findings []Severity
}

func (c staticCheck) Name() string { return c.name }

func (c staticCheck) Evaluate(_ context.Context, _ Input, rec *Recorder) {
	for i, s := range c.findings {
		rec.Record(s, "%s finding %d", c.name, i)
	}
}

// panicCheck records one finding and then panics.
type panicCheck struct{ name string }

func (c panicCheck) Name() string { return c.name }

func (c panicCheck) Evaluate(_ context.Context, _ Input, rec *Recorder) {
	rec.Pass("partial output")
	var m map[string]int
	m["boom"]++
}
