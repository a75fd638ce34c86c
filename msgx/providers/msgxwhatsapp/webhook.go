package msgxwhatsapp

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Abraxas-365/pesantren-notify/eventx"
	"github.com/Abraxas-365/pesantren-notify/logx"
	"github.com/Abraxas-365/pesantren-notify/msgx"
)

// SignatureHeader carries the HMAC-SHA256 of the webhook body
const SignatureHeader = "X-Hub-Signature-256"

// WebhookConfig holds the secrets for the webhook endpoint
type WebhookConfig struct {
	VerifyToken string
	AppSecret   string // Optional; enables signature checks
}

// Processor turns webhook deliveries into handler calls and events. A bad
// entry, change, message or status is logged and skipped; it never aborts the
// rest of the delivery.
type Processor struct {
	handler msgx.MessageHandler
	bus     eventx.Publisher
	config  WebhookConfig
}

// NewProcessor creates a processor. bus may be nil.
func NewProcessor(handler msgx.MessageHandler, config WebhookConfig, bus eventx.Publisher) *Processor {
	return &Processor{handler: handler, bus: bus, config: config}
}

// Verify answers the subscription handshake. It only succeeds for mode
// "subscribe" and a token equal to the configured one; an empty configured
// token never matches.
func (p *Processor) Verify(mode, token, challenge string) (string, bool) {
	if mode != "subscribe" || p.config.VerifyToken == "" {
		return "", false
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(p.config.VerifyToken)) != 1 {
		return "", false
	}
	return challenge, true
}

// VerifySignature checks the X-Hub-Signature-256 header against body. It is
// a no-op when no app secret is configured.
func (p *Processor) VerifySignature(body []byte, signature string) error {
	if p.config.AppSecret == "" {
		return nil
	}

	if signature == "" {
		return msgx.Registry.New(msgx.ErrWebhookVerificationFailed).
			WithDetail("provider", whatsappProvider).
			WithDetail("reason", "missing signature header")
	}

	mac := hmac.New(sha256.New, []byte(p.config.AppSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(strings.TrimPrefix(signature, "sha256=")), []byte(expected)) {
		return msgx.Registry.New(msgx.ErrWebhookVerificationFailed).
			WithDetail("provider", whatsappProvider).
			WithDetail("reason", "invalid signature").
			WithDetail("body_length", len(body))
	}
	return nil
}

// Process decodes a raw delivery level by level, so a malformed entry,
// change, message or status is logged and skipped without losing its
// siblings. Only a body that is not a JSON object is reported.
func (p *Processor) Process(ctx context.Context, body []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return msgx.Registry.New(msgx.ErrWebhookParseFailed).
			WithCause(err).
			WithDetail("provider", whatsappProvider)
	}

	var entries []json.RawMessage
	if raw, ok := top["entry"]; ok {
		if err := json.Unmarshal(raw, &entries); err != nil {
			logx.Warn("Webhook entry list skipped: %s", err)
			return nil
		}
	}

	for i, raw := range entries {
		guard(fmt.Sprintf("entry %d", i), func() {
			var entry rawEntry
			if err := json.Unmarshal(raw, &entry); err != nil {
				logx.Warn("Webhook entry %d skipped: %s", i, err)
				return
			}
			for j, rc := range entry.Changes {
				guard(fmt.Sprintf("entry %s change %d", entry.ID, j), func() {
					var change rawChange
					if err := json.Unmarshal(rc, &change); err != nil {
						logx.Warn("Webhook entry %s change %d skipped: %s", entry.ID, j, err)
						return
					}
					p.processRawChange(ctx, change)
				})
			}
		})
	}
	return nil
}

// ProcessPayload walks an already decoded delivery (entry → changes) and
// handles every message and status of the "messages" field.
func (p *Processor) ProcessPayload(ctx context.Context, payload WebhookPayload) {
	for i, entry := range payload.Entry {
		guard(fmt.Sprintf("entry %d (%s)", i, entry.ID), func() {
			for j, change := range entry.Changes {
				guard(fmt.Sprintf("entry %s change %d", entry.ID, j), func() {
					p.processChange(ctx, change)
				})
			}
		})
	}
}

// raw* mirror the payload types with messages and statuses left undecoded
type rawEntry struct {
	ID      string            `json:"id"`
	Changes []json.RawMessage `json:"changes"`
}

type rawChange struct {
	Field string   `json:"field"`
	Value rawValue `json:"value"`
}

type rawValue struct {
	MessagingProduct string            `json:"messaging_product"`
	Metadata         WebhookMetadata   `json:"metadata"`
	Contacts         []WebhookContact  `json:"contacts"`
	Messages         []json.RawMessage `json:"messages"`
	Statuses         []json.RawMessage `json:"statuses"`
}

func (p *Processor) processRawChange(ctx context.Context, change rawChange) {
	if change.Field != "messages" {
		logx.Debug("Skipping webhook change for field %q", change.Field)
		return
	}

	value := WebhookValue{
		MessagingProduct: change.Value.MessagingProduct,
		Metadata:         change.Value.Metadata,
		Contacts:         change.Value.Contacts,
	}

	for i, raw := range change.Value.Messages {
		guard(fmt.Sprintf("message %d", i), func() {
			var m IncomingMessage
			if err := json.Unmarshal(raw, &m); err != nil {
				logx.Warn("Webhook message %d skipped: %s", i, err)
				return
			}
			p.processMessage(ctx, value, m)
		})
	}

	for i, raw := range change.Value.Statuses {
		guard(fmt.Sprintf("status %d", i), func() {
			var s StatusUpdate
			if err := json.Unmarshal(raw, &s); err != nil {
				logx.Warn("Webhook status %d skipped: %s", i, err)
				return
			}
			p.processStatus(ctx, s)
		})
	}
}

func (p *Processor) processChange(ctx context.Context, change WebhookChange) {
	if change.Field != "messages" {
		logx.Debug("Skipping webhook change for field %q", change.Field)
		return
	}

	for _, m := range change.Value.Messages {
		guard("message "+m.ID, func() {
			p.processMessage(ctx, change.Value, m)
		})
	}

	for _, s := range change.Value.Statuses {
		guard("status "+s.ID, func() {
			p.processStatus(ctx, s)
		})
	}
}

func (p *Processor) processMessage(ctx context.Context, value WebhookValue, m IncomingMessage) {
	if m.Type != "text" || m.Text == nil {
		logx.Debug("Ignoring inbound %s message %s from %s", m.Type, m.ID, m.From)
		return
	}

	incoming := &msgx.IncomingMessage{
		ID:        m.ID,
		Provider:  whatsappProvider,
		From:      m.From,
		Name:      contactName(value.Contacts, m.From),
		Type:      msgx.MessageTypeText,
		Text:      m.Text.Body,
		Timestamp: parseTimestamp(m.Timestamp),
	}
	logx.Info("Inbound WhatsApp message %s from %s", incoming.ID, incoming.From)
	p.publish(ctx, eventx.NewEvent(string(msgx.EventMessageReceived), whatsappProvider, incoming))

	if err := p.handler.HandleMessage(ctx, incoming); err != nil {
		logx.Error("Handling message %s from %s failed: %s", incoming.ID, incoming.From, err)
	}
}

func (p *Processor) processStatus(ctx context.Context, s StatusUpdate) {
	status := &msgx.Status{
		MessageID: s.ID,
		Recipient: s.RecipientID,
		Status:    msgx.MessageStatus(s.Status),
		UpdatedAt: parseTimestamp(s.Timestamp),
	}

	if len(s.Errors) > 0 {
		status.ErrorCode = strconv.Itoa(s.Errors[0].Code)
		status.ErrorMsg = s.Errors[0].Title
		for _, e := range s.Errors {
			logx.Error("WhatsApp message %s to %s failed: %d %s %s", s.ID, s.RecipientID, e.Code, e.Title, e.Message)
		}
	} else {
		logx.Info("WhatsApp message %s to %s is %s", s.ID, s.RecipientID, s.Status)
	}

	p.publish(ctx, eventx.NewEvent(string(msgx.EventStatusUpdate), whatsappProvider, status))
}

func (p *Processor) publish(ctx context.Context, e eventx.Event) {
	if p.bus == nil {
		return
	}
	if err := p.bus.Publish(ctx, e); err != nil {
		logx.Warn("Publishing %s failed: %s", e.Type(), err)
	}
}

// guard runs fn and logs instead of propagating a panic
func guard(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logx.Error("Webhook %s skipped: %v", what, r)
		}
	}()
	fn()
}

func contactName(contacts []WebhookContact, waID string) string {
	for _, c := range contacts {
		if c.WaID == waID {
			return c.Profile.Name
		}
	}
	return ""
}

func parseTimestamp(ts string) time.Time {
	sec, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return time.Now()
	}
	return time.Unix(sec, 0)
}
