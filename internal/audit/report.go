package audit

// Disposition is the overall verdict of a run.
type Disposition string

const (
	DispositionOK   Disposition = "ok"
	DispositionWarn Disposition = "warn"
	DispositionFail Disposition = "fail"
)

// String returns the string representation of the disposition.
func (d Disposition) String() string {
	return string(d)
}

// Failed reports whether the disposition must produce a non-zero exit.
func (d Disposition) Failed() bool {
	return d == DispositionFail
}

// DispositionOf derives the verdict from counts: any failure fails the run,
// otherwise any warning makes it a warning, otherwise it is ok.
func DispositionOf(c Counts) Disposition {
	switch {
	case c.Fail > 0:
		return DispositionFail
	case c.Warn > 0:
		return DispositionWarn
	default:
		return DispositionOK
	}
}

// Report is the outcome of one evaluation. It exists only for rendering.
type Report struct {
	// Domains lists every evaluated domain in catalog order, including
	// domains that produced nothing.
	Domains  []string
	Findings []Finding
	Notes    []Note
	Counts   Counts
}

// NewReport snapshots an aggregator.
func NewReport(domains []string, agg *Aggregator) *Report {
	return &Report{
		Domains:  append([]string(nil), domains...),
		Findings: agg.Findings(),
		Notes:    agg.Notes(),
		Counts:   agg.Counts(),
	}
}

// Disposition returns the verdict of the report.
func (r *Report) Disposition() Disposition {
	return DispositionOf(r.Counts)
}

// FindingsFor returns the findings of one domain in emission order.
func (r *Report) FindingsFor(domain string) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Domain == domain {
			out = append(out, f)
		}
	}
	return out
}

// NotesFor returns the notes of one domain in emission order.
func (r *Report) NotesFor(domain string) []Note {
	var out []Note
	for _, n := range r.Notes {
		if n.Domain == domain {
			out = append(out, n)
		}
	}
	return out
}
