package audit

import "context"

// Sandbox mode and network values.
const (
	SandboxAll     = "all"
	SandboxNonMain = "non-main"
	SandboxOff     = "off"
	NetworkNone    = "none"
)

// Sandboxing checks agent sandbox isolation and tool restrictions.
type Sandboxing struct{}

// Name implements Check.
func (Sandboxing) Name() string { return "Sandboxing" }

// Description implements Describer.
func (Sandboxing) Description() string {
	return "agents.defaults.sandbox, tools.elevated.enabled and tools.deny"
}

// Evaluate implements Check.
func (Sandboxing) Evaluate(_ context.Context, in Input, rec *Recorder) {
	cfg := in.Config

	mode := cfg.Get("agents.defaults.sandbox.mode")
	modeStr, _ := mode.AsString()
	switch {
	case modeStr == SandboxAll || modeStr == SandboxNonMain:
		rec.Pass("Sandbox mode: %s", modeStr)
	case !mode.Present() || modeStr == SandboxOff:
		rec.Fail("Sandboxing disabled (agents.defaults.sandbox.mode is %s)", mode.Display())
	default:
		rec.Warn("Unknown sandbox mode %s", mode.Display())
	}
	active := mode.Present() && modeStr != SandboxOff

	network := cfg.Get("agents.defaults.sandbox.docker.network")
	switch {
	case network.Present():
		if s, _ := network.AsString(); s == NetworkNone {
			rec.Pass("Sandbox network: none")
		} else {
			rec.Warn("Sandbox network %s allows outbound access", network.Display())
		}
	case active:
		rec.Warn("Sandbox network not set (containers get default networking)")
	}

	if enabled, ok := cfg.Get("tools.elevated.enabled").AsBool(); ok && !enabled {
		rec.Pass("Elevated tools disabled")
	} else {
		rec.Warn("Elevated tools enabled (tools.elevated.enabled is %s)", cfg.Get("tools.elevated.enabled").Display())
	}

	if deny, _ := cfg.Get("tools.deny").AsList(); len(deny) > 0 {
		rec.Pass("Tool deny list has %d entries", len(deny))
	} else {
		rec.Warn("Tool deny list empty")
	}
}
