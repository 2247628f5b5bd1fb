package audit

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/clawaudit/clawaudit/internal/errors"
)

// DefaultGatewayPort is used when gateway.port is absent or invalid.
const DefaultGatewayPort = 18789

// NetworkListeners checks which addresses the gateway port is bound to.
type NetworkListeners struct{}

// Name implements Check.
func (NetworkListeners) Name() string { return "Network Listeners" }

// Description implements Describer.
func (NetworkListeners) Description() string {
	return "listening sockets on gateway.port"
}

// Evaluate implements Check.
func (NetworkListeners) Evaluate(ctx context.Context, in Input, rec *Recorder) {
	port := gatewayPort(in)

	listeners, err := in.Host.Listeners(ctx, port)
	if err != nil {
		rec.Warn("Unable to inspect listening sockets for port %d (%s)", port, probeReason(err))
		return
	}
	if len(listeners) == 0 {
		rec.Note("Nothing listening on port %d", port)
		return
	}

	var wildcard, specific []string
	for _, l := range listeners {
		switch {
		case l.Loopback():
		case l.Wildcard():
			wildcard = append(wildcard, l.String())
		default:
			specific = append(specific, l.String())
		}
	}
	if len(wildcard) == 0 && len(specific) == 0 {
		rec.Pass("Port %d bound to loopback only", port)
		return
	}

	_, authSet := gatewayAuthMode(in.Config)
	sev := Warn
	suffix := ""
	if !authSet {
		sev = Fail
		suffix = " without gateway authentication"
	}
	if len(wildcard) > 0 {
		rec.Record(sev, "Port %d reachable on all interfaces (%s)%s", port, strings.Join(wildcard, ", "), suffix)
	}
	if len(specific) > 0 {
		rec.Record(sev, "Port %d reachable on %s%s", port, strings.Join(specific, ", "), suffix)
	}
}

func gatewayPort(in Input) int {
	port, ok := in.Config.Get("gateway.port").AsInt()
	if !ok || port <= 0 || port > 65535 {
		return DefaultGatewayPort
	}
	return port
}

// probeReason renders a probe error for a finding: the error message and,
// for coded errors, its first suggestion.
func probeReason(err error) string {
	var ae *errors.AuditError
	if !stderrors.As(err, &ae) {
		return err.Error()
	}
	reason := ae.Message
	if ae.Cause != nil {
		reason += ": " + ae.Cause.Error()
	}
	if len(ae.Suggestions) > 0 {
		reason += "; " + ae.Suggestions[0]
	}
	return reason
}
