package audit

import (
	"context"
	"slices"
)

// Messaging policy values.
const (
	PolicyAllowlist = "allowlist"
	PolicyPairing   = "pairing"
	PolicyDisabled  = "disabled"
	PolicyOpen      = "open"

	allowAnyone = "*"
)

// channelPolicy is the documented default posture of one channel.
// WarnUnsetGroup marks channels whose unset groupPolicy means "open".
type channelPolicy struct {
	Key            string
	Label          string
	GroupDefault   string
	WarnUnsetGroup bool
}

// messagingChannels is evaluated in this order.
var messagingChannels = []channelPolicy{
	{Key: "telegram", Label: "Telegram", GroupDefault: PolicyAllowlist},
	{Key: "discord", Label: "Discord", GroupDefault: PolicyOpen, WarnUnsetGroup: true},
	{Key: "slack", Label: "Slack", GroupDefault: PolicyOpen, WarnUnsetGroup: true},
	{Key: "whatsapp", Label: "WhatsApp", GroupDefault: PolicyAllowlist},
	{Key: "signal", Label: "Signal", GroupDefault: PolicyAllowlist},
	{Key: "imessage", Label: "iMessage", GroupDefault: PolicyAllowlist},
}

// MessagingPolicy checks DM and group policies of every messaging channel.
type MessagingPolicy struct{}

// Name implements Check.
func (MessagingPolicy) Name() string { return "Messaging Policy" }

// Description implements Describer.
func (MessagingPolicy) Description() string {
	return "channels.<channel>.dmPolicy, groupPolicy and allowFrom"
}

// Evaluate implements Check.
func (MessagingPolicy) Evaluate(_ context.Context, in Input, rec *Recorder) {
	for _, ch := range messagingChannels {
		base := "channels." + ch.Key
		if !in.Config.Has(base) {
			rec.Note("%s not configured", ch.Label)
			continue
		}
		evaluateDMPolicy(in, rec, ch, base)
		evaluateGroupPolicy(in, rec, ch, base)
	}
}

func evaluateDMPolicy(in Input, rec *Recorder, ch channelPolicy, base string) {
	v := in.Config.Get(base + ".dmPolicy")
	if !v.Present() {
		return
	}

	policy, _ := v.AsString()
	switch policy {
	case PolicyAllowlist, PolicyPairing, PolicyDisabled:
		rec.Pass("%s DM policy: %s", ch.Label, policy)
	case PolicyOpen:
		if slices.Contains(in.Config.Get(base+".allowFrom").Strings(), allowAnyone) {
			rec.Fail("%s DMs open to anyone (dmPolicy=open, allowFrom contains %q)", ch.Label, allowAnyone)
		} else {
			rec.Warn("%s DMs open (dmPolicy=open)", ch.Label)
		}
	default:
		rec.Warn("%s has unknown DM policy %s", ch.Label, v.Display())
	}
}

func evaluateGroupPolicy(in Input, rec *Recorder, ch channelPolicy, base string) {
	v := in.Config.Get(base + ".groupPolicy")
	if !v.Present() {
		if ch.WarnUnsetGroup {
			rec.Warn("%s groupPolicy unset (defaults to %s)", ch.Label, ch.GroupDefault)
		}
		return
	}

	policy, _ := v.AsString()
	switch policy {
	case PolicyAllowlist, PolicyDisabled:
		rec.Pass("%s group policy: %s", ch.Label, policy)
	case PolicyOpen:
		rec.Warn("%s groups open (groupPolicy=open)", ch.Label)
	default:
		rec.Warn("%s has unknown group policy %s", ch.Label, v.Display())
	}
}
