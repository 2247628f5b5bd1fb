package report

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/clawaudit/clawaudit/internal/audit"
	"github.com/clawaudit/clawaudit/internal/errors"
)

// Document is the machine-readable report. Notes are not part of it.
type Document struct {
	Summary audit.Counts    `json:"summary" yaml:"summary"`
	Checks  []audit.Finding `json:"checks" yaml:"checks"`
}

// NewDocument builds the document for r. Checks is never nil.
func NewDocument(r *audit.Report) Document {
	checks := make([]audit.Finding, len(r.Findings))
	copy(checks, r.Findings)
	return Document{Summary: r.Counts, Checks: checks}
}

// JSONRenderer renders the document as JSON
type JSONRenderer struct {
	opts Options
}

// Render writes r as JSON
func (j *JSONRenderer) Render(r *audit.Report) error {
	encoder := json.NewEncoder(j.opts.Writer)
	encoder.SetEscapeHTML(false)
	if !j.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(NewDocument(r)); err != nil {
		return errors.NewRenderFailedError(string(FormatJSON), err)
	}
	return nil
}

// YAMLRenderer renders the document as YAML
type YAMLRenderer struct {
	opts Options
}

// Render writes r as YAML
func (y *YAMLRenderer) Render(r *audit.Report) error {
	encoder := yaml.NewEncoder(y.opts.Writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(NewDocument(r)); err != nil {
		return errors.NewRenderFailedError(string(FormatYAML), err)
	}
	if err := encoder.Close(); err != nil {
		return errors.NewRenderFailedError(string(FormatYAML), err)
	}
	return nil
}
