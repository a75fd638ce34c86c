package msgx

import "context"

// EventType names the events a webhook processor emits
type EventType string

const (
	EventMessageReceived EventType = "whatsapp.message.received"
	EventReplySent       EventType = "whatsapp.reply.sent"
	EventStatusUpdate    EventType = "whatsapp.status.updated"
)

// MessageHandler reacts to one inbound message. It is called once per
// message; a returned error is logged by the processor and never retried.
type MessageHandler interface {
	HandleMessage(ctx context.Context, message *IncomingMessage) error
}

// MessageHandlerFunc is a function adapter for MessageHandler
type MessageHandlerFunc func(ctx context.Context, message *IncomingMessage) error

func (f MessageHandlerFunc) HandleMessage(ctx context.Context, message *IncomingMessage) error {
	return f(ctx, message)
}
