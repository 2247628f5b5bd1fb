package audit

import (
	"context"

	"github.com/clawaudit/clawaudit/internal/config"
	"github.com/clawaudit/clawaudit/internal/paths"
	"github.com/clawaudit/clawaudit/internal/probe"
	"github.com/clawaudit/clawaudit/internal/security"
)

// Input is everything a check may read. It is shared by all checks of a run
// and must not be modified.
type Input struct {
	Config  *config.Tree
	Host    probe.Host
	Paths   paths.Paths
	Scanner *security.SecretScanner
}

// Check evaluates one security domain.
type Check interface {
	// Name is the stable domain name, e.g. "Gateway Exposure".
	Name() string

	// Evaluate records zero or more findings. It reads the snapshot and
	// the host probes and never mutates either.
	Evaluate(ctx context.Context, in Input, rec *Recorder)
}

// Describer is implemented by checks that can explain what they inspect.
type Describer interface {
	Description() string
}

// Describe returns the description of c, or "" if it has none.
func Describe(c Check) string {
	if d, ok := c.(Describer); ok {
		return d.Description()
	}
	return ""
}
