package audit

// Aggregator collects findings and notes in emission order and keeps a
// running count per severity. Identical findings are never collapsed.
//
// An Aggregator is not safe for concurrent use. Concurrent evaluation gives
// each check its own Aggregator and merges them in catalog order.
type Aggregator struct {
	findings []Finding
	notes    []Note
	counts   Counts
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Record appends a finding and updates the counts.
func (a *Aggregator) Record(f Finding) {
	a.findings = append(a.findings, f)
	a.counts.add(f.Severity)
}

// Note appends an informational note.
func (a *Aggregator) Note(n Note) {
	a.notes = append(a.notes, n)
}

// Merge appends everything other has recorded, preserving its order.
func (a *Aggregator) Merge(other *Aggregator) {
	for _, f := range other.findings {
		a.Record(f)
	}
	a.notes = append(a.notes, other.notes...)
}

// Counts returns the current tallies.
func (a *Aggregator) Counts() Counts {
	return a.counts
}

// Findings returns a copy of the recorded findings in emission order.
func (a *Aggregator) Findings() []Finding {
	return append([]Finding(nil), a.findings...)
}

// Notes returns a copy of the recorded notes in emission order.
func (a *Aggregator) Notes() []Note {
	return append([]Note(nil), a.notes...)
}
