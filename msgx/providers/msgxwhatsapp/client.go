package msgxwhatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Abraxas-365/pesantren-notify/logx"
	"github.com/Abraxas-365/pesantren-notify/msgx"
	"github.com/Abraxas-365/pesantren-notify/phonex"
)

const (
	whatsappAPIURL     = "https://graph.facebook.com"
	whatsappProvider   = "whatsapp"
	whatsappAPIVersion = "v18.0"
	defaultHTTPTimeout = 10 * time.Second
)

// ========== Configuration ==========

// Config holds WhatsApp Cloud API credentials
type Config struct {
	AccessToken       string        `json:"access_token"`
	PhoneNumberID     string        `json:"phone_number_id"`
	BusinessAccountID string        `json:"business_account_id,omitempty"` // Only for template administration
	APIVersion        string        `json:"api_version,omitempty"`
	BaseURL           string        `json:"base_url,omitempty"`
	HTTPTimeout       time.Duration `json:"http_timeout,omitempty"`
}

// Configured reports whether the credentials needed for sending are present
func (c Config) Configured() bool {
	return c.AccessToken != "" && c.PhoneNumberID != ""
}

// Client sends messages through the WhatsApp Cloud API. Every call makes at
// most one HTTP request; there are no retries.
type Client struct {
	config     Config
	httpClient *http.Client
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its timeout is kept as-is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client. Missing credentials are not an error here:
// sends simply report "not configured".
func NewClient(config Config, opts ...Option) *Client {
	if config.APIVersion == "" {
		config.APIVersion = whatsappAPIVersion
	}
	if config.BaseURL == "" {
		config.BaseURL = whatsappAPIURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.HTTPTimeout <= 0 {
		config.HTTPTimeout = defaultHTTPTimeout
	}

	c := &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.HTTPTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetProviderName returns the provider name
func (c *Client) GetProviderName() string {
	return whatsappProvider
}

// Configured reports whether sends can be attempted
func (c *Client) Configured() bool {
	return c.config.Configured()
}

func (c *Client) endpoint(id, resource string) string {
	return fmt.Sprintf("%s/%s/%s/%s", c.config.BaseURL, c.config.APIVersion, id, resource)
}

// ========== Sending ==========

// Send delivers a message and folds any failure into the result
func (c *Client) Send(ctx context.Context, message msgx.Message) msgx.DeliveryResult {
	resp, err := c.Do(ctx, message)
	if err != nil {
		logx.Warn("WhatsApp %s message to %s failed: %s", message.Type, message.To, err)
		return msgx.Failed(err)
	}
	logx.Info("WhatsApp %s message sent to %s (id %s)", message.Type, resp.To, resp.MessageID)
	return msgx.Delivered(resp.MessageID)
}

// SendText sends a plain text message
func (c *Client) SendText(ctx context.Context, to, body string) msgx.DeliveryResult {
	return c.Send(ctx, msgx.NewTextMessage(to, body))
}

// SendTemplate sends an approved template with positional body parameters
func (c *Client) SendTemplate(ctx context.Context, to, name, language string, params []string) msgx.DeliveryResult {
	return c.Send(ctx, msgx.NewTemplateMessage(to, name, language, params))
}

// SendImage sends an image by URL
func (c *Client) SendImage(ctx context.Context, to, url, caption string) msgx.DeliveryResult {
	return c.Send(ctx, msgx.NewMediaMessage(to, msgx.MessageTypeImage, url, caption, ""))
}

// SendDocument sends a document by URL
func (c *Client) SendDocument(ctx context.Context, to, url, filename, caption string) msgx.DeliveryResult {
	return c.Send(ctx, msgx.NewMediaMessage(to, msgx.MessageTypeDocument, url, caption, filename))
}

// Do sends a message and returns typed errors. Preconditions are checked
// before any network traffic.
func (c *Client) Do(ctx context.Context, message msgx.Message) (*msgx.Response, error) {
	if !c.Configured() {
		return nil, msgx.Registry.New(msgx.ErrNotConfigured).
			WithDetail("provider", whatsappProvider)
	}

	to, ok := phonex.Normalize(message.To)
	if !ok {
		return nil, msgx.Registry.New(msgx.ErrInvalidPhone).
			WithDetail("phone_number", message.To)
	}

	if err := message.Check(); err != nil {
		return nil, err
	}

	payload := convertMessage(to, message)
	resp, err := c.sendMessage(ctx, payload)
	if err != nil {
		return nil, err
	}

	return &msgx.Response{
		MessageID: resp.Messages[0].ID,
		Provider:  whatsappProvider,
		To:        to,
		Status:    msgx.StatusSent,
		Timestamp: time.Now(),
	}, nil
}

// convertMessage maps a validated message onto the Cloud API payload
func convertMessage(to string, msg msgx.Message) *whatsappMessage {
	out := &whatsappMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             string(msg.Type),
	}

	switch msg.Type {
	case msgx.MessageTypeText:
		out.Text = &whatsappTextMessage{
			Body:       msg.Content.Text.Body,
			PreviewURL: msg.Content.Text.PreviewURL,
		}

	case msgx.MessageTypeImage:
		out.Image = &whatsappMediaMessage{
			Link:    msg.Content.Media.URL,
			Caption: msg.Content.Media.Caption,
		}

	case msgx.MessageTypeDocument:
		out.Document = &whatsappDocumentMessage{
			Link:     msg.Content.Media.URL,
			Caption:  msg.Content.Media.Caption,
			Filename: msg.Content.Media.Filename,
		}

	case msgx.MessageTypeTemplate:
		tpl := msg.Content.Template
		out.Template = &whatsappTemplateMessage{
			Name:     tpl.Name,
			Language: whatsappLanguage{Code: tpl.Language},
		}
		if len(tpl.Parameters) > 0 {
			params := make([]whatsappTemplateParameter, len(tpl.Parameters))
			for i, p := range tpl.Parameters {
				params[i] = whatsappTemplateParameter{Type: "text", Text: p}
			}
			out.Template.Components = []whatsappTemplateComponent{{Type: "body", Parameters: params}}
		}
	}

	return out
}

// ========== Validation ==========

// ValidateNumber normalizes a number and resolves its region and line type.
// The Cloud API has no lookup endpoint, so this never touches the network.
func (c *Client) ValidateNumber(_ context.Context, phoneNumber string) (*msgx.NumberValidation, error) {
	info, err := phonex.Lookup(phoneNumber)
	if err != nil {
		return nil, msgx.Registry.New(msgx.ErrNumberValidationFailed).
			WithCause(err).
			WithDetail("phone_number", phoneNumber).
			WithDetail("provider", whatsappProvider)
	}

	return &msgx.NumberValidation{
		PhoneNumber: info.Number,
		IsValid:     info.Valid,
		Country:     info.Region,
		LineType:    info.LineType,
	}, nil
}

// ========== Helper Methods ==========

func (c *Client) sendMessage(ctx context.Context, message *whatsappMessage) (*whatsappSendResponse, error) {
	var sendResp whatsappSendResponse
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint(c.config.PhoneNumberID, "messages"), message, &sendResp); err != nil {
		return nil, err
	}

	if len(sendResp.Messages) == 0 || sendResp.Messages[0].ID == "" {
		return nil, msgx.Registry.NewWithMessage(msgx.ErrSendFailed, "provider returned no message id").
			WithDetail("provider", whatsappProvider)
	}
	return &sendResp, nil
}

// doJSON performs one authenticated request. body may be nil; out may be nil.
func (c *Client) doJSON(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return msgx.Registry.New(msgx.ErrSendFailed).
				WithCause(err).
				WithDetail("operation", "marshal_request")
		}
		logx.Debug("WhatsApp %s %s: %s", method, url, data)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return msgx.Registry.New(msgx.ErrSendFailed).
			WithCause(err).
			WithDetail("operation", "create_request")
	}
	req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return msgx.Registry.NewWithMessage(msgx.ErrSendFailed, err.Error()).
			WithCause(err).
			WithDetail("provider", whatsappProvider).
			WithDetail("operation", "http_request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return handleAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return msgx.Registry.New(msgx.ErrSendFailed).
			WithCause(err).
			WithDetail("provider", whatsappProvider).
			WithDetail("operation", "decode_response")
	}
	return nil
}

// handleAPIError maps a non-2xx answer to a coded error whose message is the
// provider's own error.message when the body carries one.
func handleAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	code := msgx.ErrSendFailed
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		code = msgx.ErrRateLimitExceeded
	case http.StatusServiceUnavailable:
		code = msgx.ErrProviderUnavailable
	case http.StatusUnauthorized, http.StatusForbidden:
		code = msgx.ErrProviderConfigInvalid
	case http.StatusBadRequest:
		code = msgx.ErrInvalidMessage
	}

	var errorResp whatsappErrorResponse
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
		return msgx.Registry.NewWithMessage(code, errorResp.Error.Message).
			WithDetail("provider", whatsappProvider).
			WithDetail("http_status", resp.StatusCode).
			WithDetail("whatsapp_code", errorResp.Error.Code).
			WithDetail("fbtrace_id", errorResp.Error.FbtraceID)
	}

	return msgx.Registry.NewWithMessage(code, fmt.Sprintf("whatsapp api returned status %d", resp.StatusCode)).
		WithDetail("provider", whatsappProvider).
		WithDetail("http_status", resp.StatusCode).
		WithDetail("response_body", string(body))
}
