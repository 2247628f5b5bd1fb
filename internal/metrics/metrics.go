// Package metrics exports the outcome of an audit run as Prometheus gauges,
// written to a node_exporter textfile collector file.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/clawaudit/clawaudit/internal/audit"
	"github.com/clawaudit/clawaudit/internal/errors"
)

// Metrics holds the gauges describing one audit run
type Metrics struct {
	// Finding tallies
	Findings       *prometheus.GaugeVec
	DomainFindings *prometheus.GaugeVec

	// Verdict, one series per disposition with the current one set to 1
	Disposition *prometheus.GaugeVec

	// Run timing
	LastRun  prometheus.Gauge
	Duration prometheus.Gauge
}

// NewMetrics creates a new Metrics instance registered on registry
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		Findings: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "clawaudit_findings",
				Help: "Number of findings in the last audit run by status",
			},
			[]string{"status"},
		),
		DomainFindings: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "clawaudit_domain_findings",
				Help: "Number of findings in the last audit run by domain and status",
			},
			[]string{"domain", "status"},
		),
		Disposition: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "clawaudit_disposition",
				Help: "Overall verdict of the last audit run (1 for the current disposition)",
			},
			[]string{"disposition"},
		),
		LastRun: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "clawaudit_last_run_timestamp_seconds",
				Help: "Unix time the last audit run completed",
			},
		),
		Duration: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "clawaudit_run_duration_seconds",
				Help: "Wall time of the last audit run",
			},
		),
	}
}

// NewRegistry creates a new Prometheus registry with metrics
func NewRegistry() (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	return reg, m
}

// Observe records a completed run.
func (m *Metrics) Observe(r *audit.Report, finished time.Time, elapsed time.Duration) {
	for _, s := range []audit.Severity{audit.Pass, audit.Warn, audit.Fail} {
		m.Findings.WithLabelValues(s.String()).Set(float64(r.Counts.Of(s)))
		for _, domain := range r.Domains {
			m.DomainFindings.WithLabelValues(domain, s.String()).Set(0)
		}
	}
	for _, f := range r.Findings {
		m.DomainFindings.WithLabelValues(f.Domain, f.Severity.String()).Inc()
	}

	current := r.Disposition()
	for _, d := range []audit.Disposition{audit.DispositionOK, audit.DispositionWarn, audit.DispositionFail} {
		v := 0.0
		if d == current {
			v = 1
		}
		m.Disposition.WithLabelValues(d.String()).Set(v)
	}

	m.LastRun.Set(float64(finished.Unix()))
	m.Duration.Set(elapsed.Seconds())
}

// WriteTextfile writes the metrics of one run to path in the text exposition
// format. The file is replaced atomically.
func WriteTextfile(path string, r *audit.Report, finished time.Time, elapsed time.Duration) error {
	reg, m := NewRegistry()
	m.Observe(r, finished, elapsed)
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return errors.NewMetricsWriteError(path, err)
	}
	return nil
}
