package audit

// Finding is one severity-tagged observation produced by a domain check.
type Finding struct {
	Domain   string   `json:"domain" yaml:"domain"`
	Severity Severity `json:"status" yaml:"status"`
	Message  string   `json:"message" yaml:"message"`
}

// Note is an informational line. Notes are never counted and never change
// the disposition.
type Note struct {
	Domain  string
	Message string
}

// Counts tallies findings per severity.
type Counts struct {
	Pass int `json:"pass" yaml:"pass"`
	Warn int `json:"warn" yaml:"warn"`
	Fail int `json:"fail" yaml:"fail"`
}

// Total is the number of counted findings.
func (c Counts) Total() int {
	return c.Pass + c.Warn + c.Fail
}

// Of returns the count for one severity.
func (c Counts) Of(s Severity) int {
	switch s {
	case Pass:
		return c.Pass
	case Warn:
		return c.Warn
	case Fail:
		return c.Fail
	}
	return 0
}

func (c *Counts) add(s Severity) {
	switch s {
	case Pass:
		c.Pass++
	case Warn:
		c.Warn++
	case Fail:
		c.Fail++
	}
}
