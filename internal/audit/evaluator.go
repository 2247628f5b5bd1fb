package audit

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/clawaudit/clawaudit/internal/errors"
	"github.com/clawaudit/clawaudit/internal/log"
)

// Evaluator runs a catalog against one input.
type Evaluator struct {
	catalog  Catalog
	logger   *log.Logger
	parallel bool
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger used for per-check diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithParallel runs checks concurrently. Output is identical to sequential
// evaluation.
func WithParallel(parallel bool) Option {
	return func(e *Evaluator) {
		e.parallel = parallel
	}
}

// NewEvaluator creates an evaluator for catalog.
func NewEvaluator(catalog Catalog, opts ...Option) *Evaluator {
	e := &Evaluator{
		catalog: catalog,
		logger:  log.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the checks the evaluator runs.
func (e *Evaluator) Catalog() Catalog {
	return e.catalog
}

// Evaluate runs every check and returns the report. It never fails: a
// check that panics contributes a single warning for its domain.
func (e *Evaluator) Evaluate(ctx context.Context, in Input) *Report {
	results := make([]*Aggregator, len(e.catalog))

	if e.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, check := range e.catalog {
			g.Go(func() error {
				results[i] = e.run(gctx, check, in)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, check := range e.catalog {
			results[i] = e.run(ctx, check, in)
		}
	}

	agg := NewAggregator()
	for _, r := range results {
		agg.Merge(r)
	}

	report := NewReport(e.catalog.Names(), agg)
	e.logger.Debug("evaluation complete",
		"checks", len(e.catalog),
		"pass", report.Counts.Pass,
		"warn", report.Counts.Warn,
		"fail", report.Counts.Fail,
		"disposition", report.Disposition().String(),
	)
	return report
}

// run evaluates one check into its own aggregator. If the check panics its
// partial output is discarded and replaced by one warning.
func (e *Evaluator) run(ctx context.Context, check Check, in Input) (agg *Aggregator) {
	name := check.Name()
	agg = NewAggregator()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			e.logger.WithError(errors.NewCheckPanickedError(name, r)).Error("check panicked", "domain", name)
			agg = NewAggregator()
			NewRecorder(name, agg).Warn("check failed: %v", r)
		}
	}()

	check.Evaluate(ctx, in, NewRecorder(name, agg))

	c := agg.Counts()
	e.logger.Debug("check evaluated",
		"domain", name,
		"pass", c.Pass,
		"warn", c.Warn,
		"fail", c.Fail,
		"notes", len(agg.notes),
		"duration", time.Since(start),
	)
	return agg
}
