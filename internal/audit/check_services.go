package audit

import (
	"context"

	"github.com/clawaudit/clawaudit/internal/probe"
)

type hostService struct {
	Unit string
	Role string
}

// hostServices are checked in this order.
var hostServices = []hostService{
	{Unit: "openclaw-gateway", Role: "gateway"},
	{Unit: "fail2ban", Role: "intrusion prevention"},
	{Unit: "ufw", Role: "firewall"},
}

// HostServices checks that the gateway and its protective services run.
type HostServices struct{}

// Name implements Check.
func (HostServices) Name() string { return "Host Services" }

// Description implements Describer.
func (HostServices) Description() string {
	return "systemd state of openclaw-gateway, fail2ban and ufw"
}

// Evaluate implements Check.
func (HostServices) Evaluate(ctx context.Context, in Input, rec *Recorder) {
	for _, svc := range hostServices {
		state, err := in.Host.ServiceState(ctx, svc.Unit)
		switch {
		case err != nil:
			rec.Warn("%s (%s) status unknown (%s)", svc.Unit, svc.Role, probeReason(err))
		case state == probe.ServiceUnknown:
			rec.Warn("%s (%s) status unknown", svc.Unit, svc.Role)
		case state == probe.ServiceActive:
			rec.Pass("%s (%s) active", svc.Unit, svc.Role)
		default:
			rec.Warn("%s (%s) not active", svc.Unit, svc.Role)
		}
	}
}
