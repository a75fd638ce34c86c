package replyx

import (
	"context"

	"github.com/Abraxas-365/pesantren-notify/eventx"
	"github.com/Abraxas-365/pesantren-notify/logx"
	"github.com/Abraxas-365/pesantren-notify/msgx"
)

// ReplySent is published after every auto-reply attempt
type ReplySent struct {
	InReplyTo string              `json:"in_reply_to"`
	To        string              `json:"to"`
	Rule      string              `json:"rule"`
	Result    msgx.DeliveryResult `json:"result"`
}

// AutoReplier answers each inbound message with exactly one text reply
type AutoReplier struct {
	responder *Responder
	sender    msgx.Sender
	bus       eventx.Publisher
}

// NewAutoReplier wires a responder to a sender. bus may be nil.
func NewAutoReplier(responder *Responder, sender msgx.Sender, bus eventx.Publisher) *AutoReplier {
	return &AutoReplier{responder: responder, sender: sender, bus: bus}
}

// HandleMessage implements msgx.MessageHandler. Delivery failures are
// reported through the event, not the returned error.
func (a *AutoReplier) HandleMessage(ctx context.Context, msg *msgx.IncomingMessage) error {
	rule, text := a.responder.Reply(msg)
	result := a.sender.Send(ctx, msgx.NewTextMessage(msg.From, text))

	if result.Success {
		logx.Info("Auto-reply %q sent to %s", rule, msg.From)
	} else {
		logx.Warn("Auto-reply %q to %s failed: %s", rule, msg.From, result.Error)
	}

	if a.bus != nil {
		ev := eventx.NewEvent(string(msgx.EventReplySent), "replyx", ReplySent{
			InReplyTo: msg.ID,
			To:        msg.From,
			Rule:      rule,
			Result:    result,
		})
		if err := a.bus.Publish(ctx, ev); err != nil {
			logx.Warn("Publishing %s failed: %s", ev.Type(), err)
		}
	}
	return nil
}
