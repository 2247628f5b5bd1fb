package audit

import (
	"context"

	"github.com/clawaudit/clawaudit/internal/config"
)

// Gateway bind and auth values.
const (
	BindLoopback = "loopback"
	BindLAN      = "lan"

	AuthToken    = "token"
	AuthPassword = "password"
	AuthNone     = "none"
)

// GatewayExposure checks the gateway bind address against its auth mode.
type GatewayExposure struct{}

// Name implements Check.
func (GatewayExposure) Name() string { return "Gateway Exposure" }

// Description implements Describer.
func (GatewayExposure) Description() string {
	return "gateway.bind vs gateway.auth.mode and its credential"
}

// Evaluate implements Check. It emits the bind finding first, then the
// auth finding.
func (GatewayExposure) Evaluate(_ context.Context, in Input, rec *Recorder) {
	cfg := in.Config
	bind := cfg.Get("gateway.bind")
	bindStr, _ := bind.AsString()
	loopback := !bind.Present() || bindStr == BindLoopback

	mode, modeSet := gatewayAuthMode(cfg)
	protected := modeSet && authCredentialSet(cfg, mode)

	switch {
	case loopback:
		rec.Pass("Gateway bound to loopback")
	case bindStr == BindLAN && protected:
		rec.Warn("Gateway exposed on all interfaces (bind=lan) but protected by %s authentication", mode)
	case bindStr == BindLAN:
		rec.Fail("Gateway exposed on all interfaces (bind=lan) without authentication")
	default:
		rec.Pass("Gateway bind: %s", bind.Display())
	}

	switch {
	case modeSet && (mode == AuthToken || mode == AuthPassword):
		if protected {
			rec.Pass("Gateway auth mode %q with gateway.auth.%s set", mode, mode)
		} else {
			rec.Warn("Gateway auth mode %q but gateway.auth.%s is empty", mode, mode)
		}
	case modeSet:
		rec.Warn("Unknown gateway auth mode %s", cfg.Get("gateway.auth.mode").Display())
	case loopback:
		rec.Note("No gateway auth configured (acceptable while bound to loopback)")
	default:
		rec.Fail("Gateway auth not configured on a non-loopback bind")
	}
}

// gatewayAuthMode returns the configured auth mode. "none" and an absent
// mode are the same. A non-string mode is reported as set so it surfaces as
// unknown.
func gatewayAuthMode(cfg *config.Tree) (string, bool) {
	v := cfg.Get("gateway.auth.mode")
	if !v.Present() {
		return "", false
	}
	s, ok := v.AsString()
	if !ok {
		return v.Display(), true
	}
	if s == AuthNone {
		return "", false
	}
	return s, true
}

func authCredentialSet(cfg *config.Tree, mode string) bool {
	switch mode {
	case AuthToken:
		return cfg.Get("gateway.auth.token").NonEmptyString()
	case AuthPassword:
		return cfg.Get("gateway.auth.password").NonEmptyString()
	}
	return false
}
