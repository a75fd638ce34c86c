package msgx

import (
	"context"
	"time"

	"github.com/Abraxas-365/pesantren-notify/errx"
	"github.com/Abraxas-365/pesantren-notify/validatex"
)

// ========== Core Interfaces ==========

// Sender delivers outbound messages. Send never returns an error: every
// failure is folded into the DeliveryResult.
type Sender interface {
	Send(ctx context.Context, message Message) DeliveryResult

	// GetProviderName returns the provider name
	GetProviderName() string
}

// ========== Message Structures ==========

// Message is one outbound message to a single recipient
type Message struct {
	To      string      `json:"to" validatex:"required"`
	Type    MessageType `json:"type" validatex:"required,oneof=text template image document"`
	Content Content     `json:"content"`
}

// MessageType defines the type of message
type MessageType string

const (
	MessageTypeText     MessageType = "text"
	MessageTypeTemplate MessageType = "template"
	MessageTypeImage    MessageType = "image"
	MessageTypeDocument MessageType = "document"
)

// Content holds the message content based on type. Exactly one field is set.
type Content struct {
	Text     *TextContent     `json:"text,omitempty"`
	Media    *MediaContent    `json:"media,omitempty"`
	Template *TemplateContent `json:"template,omitempty"`
}

// TextContent for text messages
type TextContent struct {
	Body       string `json:"body" validatex:"required,max=4096"`
	PreviewURL bool   `json:"preview_url,omitempty"`
}

// MediaContent for image and document messages
type MediaContent struct {
	URL      string `json:"url" validatex:"required,url"`
	Caption  string `json:"caption,omitempty" validatex:"max=1024"`
	Filename string `json:"filename,omitempty"`
}

// TemplateContent references a provider-approved template. Parameters fill
// the body placeholders {{1}}..{{n}} in order.
type TemplateContent struct {
	Name       string   `json:"name" validatex:"required"`
	Language   string   `json:"language" validatex:"required"`
	Parameters []string `json:"parameters,omitempty"`
}

// Validate checks that the content matching Type is present
func (m Message) Validate() error {
	var ok bool
	switch m.Type {
	case MessageTypeText:
		ok = m.Content.Text != nil
	case MessageTypeTemplate:
		ok = m.Content.Template != nil
	case MessageTypeImage, MessageTypeDocument:
		ok = m.Content.Media != nil
	}
	if !ok {
		return Registry.New(ErrInvalidMessage).
			WithDetail("type", string(m.Type)).
			WithDetail("reason", "missing content for message type")
	}
	return nil
}

// Check runs the tag rules and the content check, mapping failures to
// ErrInvalidMessage.
func (m Message) Check() error {
	if err := validatex.Validate(m); err != nil {
		if errx.IsCode(err, ErrInvalidMessage) {
			return err
		}
		return Registry.NewWithCause(ErrInvalidMessage, err).
			WithDetail("reason", errx.Reason(err))
	}
	return nil
}

// NewTextMessage builds a plain text message
func NewTextMessage(to, body string) Message {
	return Message{To: to, Type: MessageTypeText, Content: Content{Text: &TextContent{Body: body}}}
}

// NewTemplateMessage builds a template message with positional parameters
func NewTemplateMessage(to, name, language string, params []string) Message {
	return Message{
		To:   to,
		Type: MessageTypeTemplate,
		Content: Content{Template: &TemplateContent{
			Name:       name,
			Language:   language,
			Parameters: params,
		}},
	}
}

// NewMediaMessage builds an image or document message
func NewMediaMessage(to string, kind MessageType, url, caption, filename string) Message {
	return Message{
		To:      to,
		Type:    kind,
		Content: Content{Media: &MediaContent{URL: url, Caption: caption, Filename: filename}},
	}
}

// ========== Response Structures ==========

// DeliveryResult is the outcome of one send attempt
type DeliveryResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Delivered returns a successful result
func Delivered(messageID string) DeliveryResult {
	return DeliveryResult{Success: true, MessageID: messageID}
}

// Failed folds an error into a failed result using its short reason
func Failed(err error) DeliveryResult {
	return DeliveryResult{Success: false, Error: errx.Reason(err)}
}

// Response represents the provider's answer to a send
type Response struct {
	MessageID string        `json:"message_id"`
	Provider  string        `json:"provider"`
	To        string        `json:"to"`
	Status    MessageStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
}

// Status represents a delivery status update
type Status struct {
	MessageID string        `json:"message_id"`
	Recipient string        `json:"recipient"`
	Status    MessageStatus `json:"status"`
	UpdatedAt time.Time     `json:"updated_at"`
	ErrorCode string        `json:"error_code,omitempty"`
	ErrorMsg  string        `json:"error_message,omitempty"`
}

// MessageStatus represents the delivery status
type MessageStatus string

const (
	StatusPending   MessageStatus = "pending"
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusRead      MessageStatus = "read"
	StatusFailed    MessageStatus = "failed"
)

// NumberValidation represents number validation result
type NumberValidation struct {
	PhoneNumber string `json:"phone_number"`
	IsValid     bool   `json:"is_valid"`
	Country     string `json:"country,omitempty"`
	LineType    string `json:"line_type,omitempty"`
}

// ========== Incoming Message Structures ==========

// IncomingMessage represents a message received via webhook
type IncomingMessage struct {
	ID        string      `json:"id"`
	Provider  string      `json:"provider"`
	From      string      `json:"from"`
	Name      string      `json:"name,omitempty"`
	Type      MessageType `json:"type"`
	Text      string      `json:"text,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
