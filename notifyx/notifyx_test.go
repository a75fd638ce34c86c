package notifyx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Abraxas-365/pesantren-notify/msgx"
	"github.com/Abraxas-365/pesantren-notify/msgx/providers/msgxwhatsapp"
	"github.com/Abraxas-365/pesantren-notify/templatex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSender answers template and text sends with fixed results
type scriptedSender struct {
	mu       sync.Mutex
	sent     []msgx.Message
	template msgx.DeliveryResult
	text     msgx.DeliveryResult
}

func (s *scriptedSender) Send(_ context.Context, m msgx.Message) msgx.DeliveryResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, m)
	if m.Type == msgx.MessageTypeTemplate {
		return s.template
	}
	return s.text
}

func (s *scriptedSender) GetProviderName() string { return "scripted" }

func TestNotify_TemplateSucceeds(t *testing.T) {
	s := &scriptedSender{template: msgx.Delivered("wamid.T")}
	n := New(s, Options{Signature: "Pondok Pesantren Al-Hikmah"})

	res := n.Notify(context.Background(), "081234567890", KindAnnouncement, "Libur", "Besok libur", templatex.NameAnnouncement)
	assert.Equal(t, msgx.Delivered("wamid.T"), res)

	require.Len(t, s.sent, 1)
	tpl := s.sent[0].Content.Template
	assert.Equal(t, "announcement", tpl.Name)
	assert.Equal(t, "id", tpl.Language)
	assert.Equal(t, []string{"Libur", "Besok libur"}, tpl.Parameters)
}

func TestNotify_FallbackMasksTemplateFailure(t *testing.T) {
	s := &scriptedSender{
		template: msgx.DeliveryResult{Error: "template not approved"},
		text:     msgx.Delivered("wamid.X"),
	}
	n := New(s, Options{Signature: "Pondok Pesantren Al-Hikmah"})

	res := n.Notify(context.Background(), "081234567890", KindPayment, "Tagihan SPP", "SPP Juli belum dibayar.", templatex.NameAnnouncement)
	assert.Equal(t, msgx.DeliveryResult{Success: true, MessageID: "wamid.X"}, res)

	require.Len(t, s.sent, 2)
	assert.Equal(t, msgx.MessageTypeText, s.sent[1].Type)
	assert.Equal(t, "*Tagihan SPP*\n\nSPP Juli belum dibayar.\n\n_Pondok Pesantren Al-Hikmah_", s.sent[1].Content.Text.Body)
}

func TestNotify_NoTemplateSendsTextOnly(t *testing.T) {
	s := &scriptedSender{text: msgx.Delivered("wamid.X")}
	res := New(s, Options{}).Notify(context.Background(), "081234567890", KindGeneral, "Info", "Isi", "")

	assert.True(t, res.Success)
	require.Len(t, s.sent, 1)
	assert.Equal(t, "*Info*\n\nIsi", s.sent[0].Content.Text.Body)
}

func TestNotify_TotalFailureReportsFallbackError(t *testing.T) {
	s := &scriptedSender{
		template: msgx.DeliveryResult{Error: "template error"},
		text:     msgx.DeliveryResult{Error: "text error"},
	}
	res := New(s, Options{}).Notify(context.Background(), "081234567890", KindGeneral, "a", "b", "announcement")
	assert.Equal(t, msgx.DeliveryResult{Success: false, Error: "text error"}, res)
}

func TestNotify_UnconfiguredClientMakesNoCalls(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	client := msgxwhatsapp.NewClient(msgxwhatsapp.Config{BaseURL: srv.URL})
	res := New(client, Options{}).Notify(context.Background(), "081234567890", KindGeneral, "a", "b", "announcement")

	assert.Equal(t, msgx.DeliveryResult{Success: false, Error: "not configured"}, res)
	assert.Zero(t, hits.Load())
}

func TestNotifyTemplate_FallsBackToRenderedBody(t *testing.T) {
	s := &scriptedSender{
		template: msgx.DeliveryResult{Error: "template error"},
		text:     msgx.Delivered("wamid.X"),
	}
	n := New(s, Options{Signature: "TU Pesantren"})

	res := n.NotifyTemplate(context.Background(), "081234567890", KindAttendance, templatex.AttendanceAlert{
		ParentName: "Budi", StudentName: "Ahmad", Date: "8 Juli", Status: "sakit", ClassName: "7A",
	})
	assert.True(t, res.Success)

	require.Len(t, s.sent, 2)
	assert.Equal(t, []string{"Budi", "Ahmad", "8 Juli", "sakit", "7A"}, s.sent[0].Content.Template.Parameters)
	body := s.sent[1].Content.Text.Body
	assert.Contains(t, body, "Ananda Ahmad tercatat sakit")
	assert.Contains(t, body, "_TU Pesantren_")
}

func TestBroadcast(t *testing.T) {
	s := &scriptedSender{text: msgx.Delivered("wamid.X")}
	phones := []string{"081111111111", "082222222222", "083333333333"}

	report := New(s, Options{Concurrency: 2}).Broadcast(context.Background(), phones, KindAnnouncement, "Libur", "Besok", "")

	require.Len(t, report, 3)
	for i, r := range report {
		assert.Equal(t, phones[i], r.Phone)
		assert.True(t, r.Result.Success)
	}
	assert.Len(t, s.sent, 3)
}
