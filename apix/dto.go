package apix

import (
	"github.com/Abraxas-365/pesantren-notify/errx"
	"github.com/Abraxas-365/pesantren-notify/msgx"
	"github.com/Abraxas-365/pesantren-notify/notifyx"
	"github.com/Abraxas-365/pesantren-notify/templatex"
)

// SendMessageRequest is the body of POST /api/messages
type SendMessageRequest struct {
	To       string           `json:"to" validatex:"required"`
	Type     msgx.MessageType `json:"type" validatex:"required,oneof=text template image document"`
	Text     string           `json:"text,omitempty" validatex:"max=4096"`
	Template *TemplateRequest `json:"template,omitempty"`
	Media    *MediaRequest    `json:"media,omitempty"`
}

// TemplateRequest names a template and its parameters, either positional or
// by name. Named values are ordered with templatex.FormatParameters.
type TemplateRequest struct {
	Name       string            `json:"name" validatex:"required"`
	Language   string            `json:"language,omitempty"`
	Parameters []string          `json:"parameters,omitempty"`
	Values     map[string]string `json:"values,omitempty"`
}

type MediaRequest struct {
	URL      string `json:"url" validatex:"required,url"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// Message converts the request into a msgx.Message
func (r SendMessageRequest) Message() (msgx.Message, error) {
	switch r.Type {
	case msgx.MessageTypeText:
		return msgx.NewTextMessage(r.To, r.Text), nil

	case msgx.MessageTypeTemplate:
		if r.Template == nil {
			return msgx.Message{}, missing("template")
		}
		lang := r.Template.Language
		if lang == "" {
			lang = templatex.DefaultLanguage
		}
		params := r.Template.Parameters
		if len(params) == 0 && len(r.Template.Values) > 0 {
			params = templatex.FormatParameters(r.Template.Name, r.Template.Values)
			if params == nil {
				return msgx.Message{}, msgx.Registry.New(msgx.ErrTemplateNotFound).
					WithDetail("template", r.Template.Name)
			}
		}
		return msgx.NewTemplateMessage(r.To, r.Template.Name, lang, params), nil

	default:
		if r.Media == nil {
			return msgx.Message{}, missing("media")
		}
		return msgx.NewMediaMessage(r.To, r.Type, r.Media.URL, r.Media.Caption, r.Media.Filename), nil
	}
}

func missing(field string) *errx.Error {
	return msgx.Registry.New(msgx.ErrInvalidMessage).
		WithDetail("field", field).
		WithDetail("reason", field+" is required for this message type")
}

// NotifyRequest is the body of POST /api/notify
type NotifyRequest struct {
	Phone        string       `json:"phone" validatex:"required"`
	Kind         notifyx.Kind `json:"kind,omitempty"`
	Title        string       `json:"title" validatex:"required,max=200"`
	Message      string       `json:"message" validatex:"required,max=3000"`
	TemplateName string       `json:"templateName,omitempty"`
}

// BroadcastRequest is the body of POST /api/broadcast
type BroadcastRequest struct {
	Phones       []string     `json:"phones" validatex:"required,max=1000"`
	Kind         notifyx.Kind `json:"kind,omitempty"`
	Title        string       `json:"title" validatex:"required,max=200"`
	Message      string       `json:"message" validatex:"required,max=3000"`
	TemplateName string       `json:"templateName,omitempty"`
}
