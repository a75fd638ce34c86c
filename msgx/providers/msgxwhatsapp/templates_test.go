package msgxwhatsapp

import (
	"context"
	"net/http"
	"testing"

	"github.com/Abraxas-365/pesantren-notify/errx"
	"github.com/Abraxas-365/pesantren-notify/msgx"
	"github.com/Abraxas-365/pesantren-notify/templatex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const templateListResponse = `{"data":[
	{"id":"1","status":"APPROVED","name":"payment_reminder","language":"id","category":"UTILITY","components":[{"type":"BODY","text":"Halo {{1}}"}]},
	{"id":"2","status":"PENDING","name":"announcement","language":"id","category":"MARKETING","components":[]}
]}`

func TestTemplates_RequireBusinessAccount(t *testing.T) {
	graph := newFakeGraph(t, http.StatusOK, templateListResponse)
	c := graph.client(func(c *Config) { c.BusinessAccountID = "" })

	_, err := c.ListTemplates(context.Background())
	assert.True(t, errx.IsCode(err, msgx.ErrNotConfigured))

	_, err = c.CreateTemplate(context.Background(), templatex.Template{Name: "x"})
	assert.True(t, errx.IsCode(err, msgx.ErrNotConfigured))
	assert.Zero(t, graph.hits.Load())
}

func TestListTemplates(t *testing.T) {
	graph := newFakeGraph(t, http.StatusOK, templateListResponse)

	list, err := graph.client().ListTemplates(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, http.MethodGet, graph.method)
	assert.Equal(t, "/v18.0/WABA/message_templates", graph.path)
	assert.Equal(t, "Bearer token-123", graph.auth)

	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, "APPROVED", list[0].Status)
	assert.Equal(t, "payment_reminder", list[0].Name)
	assert.Equal(t, templatex.CategoryUtility, list[0].Category)
	assert.Equal(t, "Halo {{1}}", list[0].Body())
}

func TestGetTemplate(t *testing.T) {
	graph := newFakeGraph(t, http.StatusOK, templateListResponse)
	c := graph.client()

	tpl, err := c.GetTemplate(context.Background(), "announcement", "id")
	require.NoError(t, err)
	assert.Equal(t, "2", tpl.ID)
	assert.Equal(t, "language=id&name=announcement", graph.query)

	_, err = c.GetTemplate(context.Background(), "grade_report", "id")
	assert.True(t, errx.IsCode(err, msgx.ErrTemplateNotFound))
}

func TestCreateTemplate(t *testing.T) {
	graph := newFakeGraph(t, http.StatusOK, `{"id":"987","status":"PENDING","category":"UTILITY"}`)

	tpl, ok := templatex.Get(templatex.NamePaymentReminder)
	require.True(t, ok)

	created, err := graph.client().CreateTemplate(context.Background(), tpl)
	require.NoError(t, err)
	assert.Equal(t, &CreatedTemplate{ID: "987", Status: "PENDING", Category: "UTILITY"}, created)

	assert.Equal(t, http.MethodPost, graph.method)
	assert.Equal(t, "/v18.0/WABA/message_templates", graph.path)
	assert.Equal(t, "payment_reminder", graph.body["name"])
	assert.Equal(t, "id", graph.body["language"])
	assert.Equal(t, "UTILITY", graph.body["category"])
	assert.NotContains(t, graph.body, "Params")
	assert.Len(t, graph.body["components"], 4)
}

func TestCreateTemplate_Rejected(t *testing.T) {
	graph := newFakeGraph(t, http.StatusBadRequest, `{"error":{"message":"Template name already exists","code":100}}`)

	tpl, _ := templatex.Get(templatex.NameAnnouncement)
	_, err := graph.client().CreateTemplate(context.Background(), tpl)
	require.Error(t, err)
	assert.Equal(t, "Template name already exists", errx.Reason(err))
}
