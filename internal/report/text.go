package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/clawaudit/clawaudit/internal/audit"
	"github.com/clawaudit/clawaudit/internal/errors"
)

// Severity symbols.
const (
	SymbolPass = "✓"
	SymbolWarn = "!"
	SymbolFail = "✗"
	SymbolNote = "i"
)

type textStyles struct {
	title  lipgloss.Style
	header lipgloss.Style
	pass   lipgloss.Style
	warn   lipgloss.Style
	fail   lipgloss.Style
	note   lipgloss.Style
	label  lipgloss.Style
}

// TextRenderer renders findings grouped under one header per domain.
type TextRenderer struct {
	opts   Options
	styles textStyles
}

// NewTextRenderer creates a text renderer. Colors are only emitted when the
// writer is a terminal that supports them and NoColor is not set.
func NewTextRenderer(opts Options) *TextRenderer {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	return &TextRenderer{opts: opts, styles: newTextStyles(opts)}
}

func newTextStyles(opts Options) textStyles {
	if opts.NoColor {
		plain := lipgloss.NewStyle()
		return textStyles{plain, plain, plain, plain, plain, plain, plain}
	}

	r := lipgloss.NewRenderer(opts.Writer)
	return textStyles{
		title:  r.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		header: r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		pass:   r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("3")),
		fail:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		note:   r.NewStyle().Foreground(lipgloss.Color("8")),
		label:  r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Render writes the grouped report followed by the summary block.
func (t *TextRenderer) Render(r *audit.Report) error {
	var b strings.Builder

	b.WriteString(t.styles.title.Render("Security posture report"))
	b.WriteString("\n")
	if t.opts.Verbose && t.opts.Source != "" {
		b.WriteString(t.styles.label.Render(fmt.Sprintf("Config: %s", t.opts.Source)))
		if t.opts.Digest != "" {
			b.WriteString(t.styles.label.Render(fmt.Sprintf(" (blake3 %s)", t.opts.Digest)))
		}
		b.WriteString("\n")
	}

	for _, domain := range r.Domains {
		b.WriteString("\n")
		b.WriteString(t.styles.header.Render(domain))
		b.WriteString("\n")

		findings := r.FindingsFor(domain)
		var notes []audit.Note
		if t.opts.Verbose {
			notes = r.NotesFor(domain)
		}
		if len(findings) == 0 && len(notes) == 0 {
			b.WriteString(t.styles.label.Render("  (nothing to report)"))
			b.WriteString("\n")
			continue
		}

		for _, f := range findings {
			b.WriteString("  ")
			b.WriteString(t.severityLine(f.Severity, f.Message))
			b.WriteString("\n")
		}
		for _, n := range notes {
			b.WriteString("  ")
			b.WriteString(t.styles.note.Render(SymbolNote + " " + n.Message))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(t.styles.header.Render("Summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s  %s  %s\n",
		t.styles.pass.Render(fmt.Sprintf("%s %d passed", SymbolPass, r.Counts.Pass)),
		t.styles.warn.Render(fmt.Sprintf("%s %d warnings", SymbolWarn, r.Counts.Warn)),
		t.styles.fail.Render(fmt.Sprintf("%s %d failed", SymbolFail, r.Counts.Fail)),
	)
	b.WriteString("  ")
	b.WriteString(t.dispositionLine(r.Disposition()))
	b.WriteString("\n")

	if _, err := fmt.Fprint(t.opts.Writer, b.String()); err != nil {
		return errors.NewRenderFailedError(string(FormatText), err)
	}
	return nil
}

func (t *TextRenderer) severityLine(s audit.Severity, msg string) string {
	switch s {
	case audit.Fail:
		return t.styles.fail.Render(SymbolFail + " " + msg)
	case audit.Warn:
		return t.styles.warn.Render(SymbolWarn + " " + msg)
	default:
		return t.styles.pass.Render(SymbolPass + " " + msg)
	}
}

func (t *TextRenderer) dispositionLine(d audit.Disposition) string {
	switch d {
	case audit.DispositionFail:
		return t.styles.fail.Render("Result: FAIL (fix the failed checks before exposing the gateway)")
	case audit.DispositionWarn:
		return t.styles.warn.Render("Result: WARN (passing, but review the warnings above)")
	default:
		return t.styles.pass.Render("Result: OK")
	}
}
