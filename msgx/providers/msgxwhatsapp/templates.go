package msgxwhatsapp

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Abraxas-365/pesantren-notify/msgx"
	"github.com/Abraxas-365/pesantren-notify/templatex"
)

// ========== Template API Methods ==========

// RemoteTemplate is a template as the provider stores it
type RemoteTemplate struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	templatex.Template
}

// CreatedTemplate is the provider's answer to a template submission
type CreatedTemplate struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Category string `json:"category"`
}

type templateList struct {
	Data []RemoteTemplate `json:"data"`
}

func (c *Client) templatesURL() (string, error) {
	if c.config.AccessToken == "" || c.config.BusinessAccountID == "" {
		return "", msgx.Registry.NewWithMessage(msgx.ErrNotConfigured, "business account not configured").
			WithDetail("provider", whatsappProvider)
	}
	return c.endpoint(c.config.BusinessAccountID, "message_templates"), nil
}

// ListTemplates returns the templates registered with the business account
func (c *Client) ListTemplates(ctx context.Context) ([]RemoteTemplate, error) {
	endpoint, err := c.templatesURL()
	if err != nil {
		return nil, err
	}

	var list templateList
	if err := c.doJSON(ctx, http.MethodGet, endpoint+"?limit=100", nil, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// GetTemplate fetches one template by name and language
func (c *Client) GetTemplate(ctx context.Context, name, language string) (*RemoteTemplate, error) {
	endpoint, err := c.templatesURL()
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("name", name)
	if language != "" {
		q.Set("language", language)
	}

	var list templateList
	if err := c.doJSON(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil, &list); err != nil {
		return nil, err
	}

	for _, t := range list.Data {
		if t.Name == name && (language == "" || t.Language == language) {
			return &t, nil
		}
	}
	return nil, msgx.Registry.New(msgx.ErrTemplateNotFound).
		WithDetail("template", name).
		WithDetail("language", language)
}

// CreateTemplate submits a template for provider review
func (c *Client) CreateTemplate(ctx context.Context, tpl templatex.Template) (*CreatedTemplate, error) {
	endpoint, err := c.templatesURL()
	if err != nil {
		return nil, err
	}

	var created CreatedTemplate
	if err := c.doJSON(ctx, http.MethodPost, endpoint, tpl, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
