package replyx

import (
	"context"
	"testing"

	"github.com/Abraxas-365/pesantren-notify/eventx"
	"github.com/Abraxas-365/pesantren-notify/msgx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent   []msgx.Message
	result msgx.DeliveryResult
}

func (f *fakeSender) Send(_ context.Context, m msgx.Message) msgx.DeliveryResult {
	f.sent = append(f.sent, m)
	return f.result
}

func (f *fakeSender) GetProviderName() string { return "fake" }

func TestAutoReplier_OneReplyPerMessage(t *testing.T) {
	sender := &fakeSender{result: msgx.Delivered("wamid.R")}
	bus := eventx.NewMemoryBus()
	var events []ReplySent
	eventx.SubscribeTyped(bus, string(msgx.EventReplySent), func(_ context.Context, e eventx.TypedEvent[ReplySent]) error {
		events = append(events, e.Data())
		return nil
	})

	a := NewAutoReplier(Default(profile), sender, bus)
	msg := incoming("Mau tanya soal PPDB dong")
	msg.ID = "wamid.IN"

	require.NoError(t, a.HandleMessage(context.Background(), msg))

	require.Len(t, sender.sent, 1)
	reply := sender.sent[0]
	assert.Equal(t, "6281234567890", reply.To)
	assert.Equal(t, msgx.MessageTypeText, reply.Type)
	assert.Contains(t, reply.Content.Text.Body, "PPDB")

	require.Len(t, events, 1)
	assert.Equal(t, ReplySent{InReplyTo: "wamid.IN", To: "6281234567890", Rule: "ppdb", Result: msgx.Delivered("wamid.R")}, events[0])
}

func TestAutoReplier_MenuAndFailure(t *testing.T) {
	sender := &fakeSender{result: msgx.DeliveryResult{Error: "not configured"}}

	a := NewAutoReplier(Default(profile), sender, nil)
	assert.NoError(t, a.HandleMessage(context.Background(), incoming("apa kabar")))

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Content.Text.Body, "*INFO*")
}
