package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/clawaudit/clawaudit/internal/audit"
	"github.com/clawaudit/clawaudit/internal/errors"
)

func sampleReport() *audit.Report {
	agg := audit.NewAggregator()
	gw := audit.NewRecorder("Gateway Exposure", agg)
	gw.Pass("Gateway bound to loopback")
	gw.Pass("Gateway auth mode token with credential set")
	audit.NewRecorder("Sandboxing", agg).Warn("Tool deny list empty")
	return audit.NewReport([]string{"Gateway Exposure", "Network Listeners", "Sandboxing"}, agg)
}

func TestObserve(t *testing.T) {
	reg, m := NewRegistry()
	finished := time.Unix(1760000000, 0)
	m.Observe(sampleReport(), finished, 1500*time.Millisecond)

	if got := testutil.ToFloat64(m.Findings.WithLabelValues("pass")); got != 2 {
		t.Errorf("pass findings = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Findings.WithLabelValues("fail")); got != 0 {
		t.Errorf("fail findings = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.DomainFindings.WithLabelValues("Sandboxing", "warn")); got != 1 {
		t.Errorf("Sandboxing warn = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.DomainFindings.WithLabelValues("Network Listeners", "pass")); got != 0 {
		t.Errorf("empty domain pass = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.Disposition.WithLabelValues("warn")); got != 1 {
		t.Errorf("warn disposition = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Disposition.WithLabelValues("ok")); got != 0 {
		t.Errorf("ok disposition = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.LastRun); got != 1760000000 {
		t.Errorf("last run = %v", got)
	}
	if got := testutil.ToFloat64(m.Duration); got != 1.5 {
		t.Errorf("duration = %v, want 1.5", got)
	}

	// 3 statuses + 3 domains x 3 statuses + 3 dispositions + 2 gauges
	if count := testutil.CollectAndCount(reg); count != 17 {
		t.Errorf("collected %d series, want 17", count)
	}
}

func TestObserveIsRepeatable(t *testing.T) {
	_, m := NewRegistry()
	r := sampleReport()
	m.Observe(r, time.Now(), time.Second)
	m.Observe(r, time.Now(), time.Second)

	if got := testutil.ToFloat64(m.DomainFindings.WithLabelValues("Gateway Exposure", "pass")); got != 2 {
		t.Errorf("Gateway Exposure pass = %v after two observations, want 2", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clawaudit.prom")

	if err := WriteTextfile(path, sampleReport(), time.Unix(1760000000, 0), time.Second); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		`clawaudit_findings{status="warn"} 1`,
		`clawaudit_disposition{disposition="warn"} 1`,
		`clawaudit_domain_findings{domain="Sandboxing",status="warn"} 1`,
		"# TYPE clawaudit_last_run_timestamp_seconds gauge",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTextfileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "clawaudit.prom")

	err := WriteTextfile(path, sampleReport(), time.Now(), time.Second)
	if !errors.HasCode(err, errors.ErrCodeMetricsWrite) {
		t.Fatalf("WriteTextfile() error = %v, want %s", err, errors.ErrCodeMetricsWrite)
	}
}
