// Package report renders an audit report as grouped text or as a single
// machine-readable document.
package report

import (
	"io"
	"os"
	"strings"

	"github.com/clawaudit/clawaudit/internal/audit"
	"github.com/clawaudit/clawaudit/internal/errors"
)

// Format selects a renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", errors.NewUnknownFormatError(s)
}

// IsDocument reports whether the format renders a single structured document.
func (f Format) IsDocument() bool {
	return f == FormatJSON || f == FormatYAML
}

// Renderer writes one report.
type Renderer interface {
	Render(r *audit.Report) error
}

// Options configures a renderer.
type Options struct {
	// Writer is where output is written (defaults to os.Stdout)
	Writer io.Writer
	// Verbose shows informational notes in text output
	Verbose bool
	// NoColor disables colored text output
	NoColor bool
	// Compact disables indentation for JSON output
	Compact bool
	// Source and Digest identify the snapshot in verbose text output
	Source string
	Digest string
}

// NewRenderer creates a renderer for format.
func NewRenderer(format Format, opts Options) (Renderer, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	switch format {
	case FormatJSON:
		return &JSONRenderer{opts: opts}, nil
	case FormatYAML:
		return &YAMLRenderer{opts: opts}, nil
	case FormatText, "":
		return NewTextRenderer(opts), nil
	default:
		return nil, errors.NewUnknownFormatError(string(format))
	}
}

// Compile-time verification that renderers implement Renderer
var _ Renderer = (*JSONRenderer)(nil)
var _ Renderer = (*YAMLRenderer)(nil)
var _ Renderer = (*TextRenderer)(nil)
