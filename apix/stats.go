package apix

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Abraxas-365/pesantren-notify/eventx"
	"github.com/Abraxas-365/pesantren-notify/msgx"
	"github.com/Abraxas-365/pesantren-notify/replyx"
)

// Stats counts traffic since start. Webhook counters are fed from the
// event bus; API counters by the handlers.
type Stats struct {
	start            time.Time
	messagesReceived atomic.Int64
	repliesSent      atomic.Int64
	repliesFailed    atomic.Int64
	statusUpdates    atomic.Int64
	statusFailures   atomic.Int64
	webhookErrors    atomic.Int64
	apiSent          atomic.Int64
	apiFailed        atomic.Int64
}

// Snapshot is the JSON form of Stats
type Snapshot struct {
	StartTime        time.Time `json:"start_time"`
	Uptime           string    `json:"uptime"`
	MessagesReceived int64     `json:"messages_received"`
	RepliesSent      int64     `json:"replies_sent"`
	RepliesFailed    int64     `json:"replies_failed"`
	StatusUpdates    int64     `json:"status_updates"`
	StatusFailures   int64     `json:"status_failures"`
	WebhookErrors    int64     `json:"webhook_errors"`
	APISent          int64     `json:"api_sent"`
	APIFailed        int64     `json:"api_failed"`
}

func NewStats() *Stats {
	return &Stats{start: time.Now()}
}

// Subscribe feeds the webhook counters from bus
func (s *Stats) Subscribe(bus eventx.EventBus) {
	eventx.SubscribeTyped(bus, string(msgx.EventMessageReceived), func(context.Context, eventx.TypedEvent[*msgx.IncomingMessage]) error {
		s.messagesReceived.Add(1)
		return nil
	})
	eventx.SubscribeTyped(bus, string(msgx.EventReplySent), func(_ context.Context, e eventx.TypedEvent[replyx.ReplySent]) error {
		if e.Data().Result.Success {
			s.repliesSent.Add(1)
		} else {
			s.repliesFailed.Add(1)
		}
		return nil
	})
	eventx.SubscribeTyped(bus, string(msgx.EventStatusUpdate), func(_ context.Context, e eventx.TypedEvent[*msgx.Status]) error {
		s.statusUpdates.Add(1)
		if e.Data().Status == msgx.StatusFailed {
			s.statusFailures.Add(1)
		}
		return nil
	})
}

func (s *Stats) recordAPI(res msgx.DeliveryResult) {
	if res.Success {
		s.apiSent.Add(1)
	} else {
		s.apiFailed.Add(1)
	}
}

func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		StartTime:        s.start,
		Uptime:           time.Since(s.start).Round(time.Second).String(),
		MessagesReceived: s.messagesReceived.Load(),
		RepliesSent:      s.repliesSent.Load(),
		RepliesFailed:    s.repliesFailed.Load(),
		StatusUpdates:    s.statusUpdates.Load(),
		StatusFailures:   s.statusFailures.Load(),
		WebhookErrors:    s.webhookErrors.Load(),
		APISent:          s.apiSent.Load(),
		APIFailed:        s.apiFailed.Load(),
	}
}
