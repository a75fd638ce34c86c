package templatex

import (
	"testing"

	"github.com/Abraxas-365/pesantren-notify/msgx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	tpl, ok := Get(NamePaymentReminder)
	require.True(t, ok)
	assert.Equal(t, "payment_reminder", tpl.Name)
	assert.Equal(t, "id", tpl.Language)
	assert.Equal(t, CategoryUtility, tpl.Category)
	assert.Contains(t, tpl.Body(), "{{6}}")

	_, ok = Get("does_not_exist")
	assert.False(t, ok)
}

func TestGet_ReturnsCopy(t *testing.T) {
	tpl, _ := Get(NameAnnouncement)
	tpl.Components[0].Text = "changed"
	tpl.Params[0] = "changed"

	again, _ := Get(NameAnnouncement)
	assert.Equal(t, "Pengumuman", again.Components[0].Text)
	assert.Equal(t, "title", again.Params[0])
}

func TestList(t *testing.T) {
	all := List()
	require.Len(t, all, 8)
	assert.Equal(t, NameAnnouncement, all[0].Name)

	for _, tpl := range all {
		body := tpl.Body()
		require.NotEmpty(t, body, tpl.Name)
		for i := range tpl.Params {
			assert.Contains(t, body, "{{"+string(rune('1'+i))+"}}", tpl.Name)
		}
	}

	auth, _ := Get(NameVerificationCode)
	assert.Equal(t, CategoryAuthentication, auth.Category)
}

func TestFormatParameters(t *testing.T) {
	params := FormatParameters(NamePaymentReminder, map[string]string{"parentName": "Budi"})
	require.Len(t, params, 6)
	assert.Equal(t, "Budi", params[0])
	for _, p := range params[1:] {
		assert.Equal(t, "", p)
	}

	params = FormatParameters(NameAttendanceAlert, map[string]string{
		"className":   "7A",
		"status":      "izin",
		"studentName": "Ahmad",
		"date":        "8 Juli",
		"parentName":  "Budi",
		"unused":      "x",
	})
	assert.Equal(t, []string{"Budi", "Ahmad", "8 Juli", "izin", "7A"}, params)

	assert.Nil(t, FormatParameters("nope", map[string]string{"a": "b"}))
}

func TestTypedParamsMatchFormatParameters(t *testing.T) {
	reminder := PaymentReminder{
		ParentName:  "Budi",
		BillType:    "SPP",
		StudentName: "Ahmad",
		Amount:      "Rp 750.000",
		DueDate:     "10 Juli",
		PaymentURL:  "https://pay.example.sch.id/1",
	}
	byName := FormatParameters(NamePaymentReminder, map[string]string{
		"parentName":  "Budi",
		"billType":    "SPP",
		"studentName": "Ahmad",
		"amount":      "Rp 750.000",
		"dueDate":     "10 Juli",
		"paymentUrl":  "https://pay.example.sch.id/1",
	})
	assert.Equal(t, byName, reminder.Values())

	for _, p := range []Params{
		reminder, PaymentConfirmation{}, AttendanceAlert{}, GradeReport{},
		Announcement{}, DonationReceipt{}, PPDBRegistration{}, VerificationCode{},
	} {
		tpl, ok := Get(p.TemplateName())
		require.True(t, ok, p.TemplateName())
		assert.Len(t, p.Values(), len(tpl.Params), p.TemplateName())
	}
}

func TestMessage(t *testing.T) {
	m := Message("6281234567890", VerificationCode{Code: "123456"})
	assert.Equal(t, msgx.MessageTypeTemplate, m.Type)
	require.NotNil(t, m.Content.Template)
	assert.Equal(t, "verification_code", m.Content.Template.Name)
	assert.Equal(t, "id", m.Content.Template.Language)
	assert.Equal(t, []string{"123456"}, m.Content.Template.Parameters)
}

func TestFallback(t *testing.T) {
	text := Fallback(Announcement{Title: "Libur", Message: "Sekolah libur besok."})
	assert.Equal(t, "*Libur*\n\nSekolah libur besok.", text)

	text = Fallback(AttendanceAlert{ParentName: "Budi", StudentName: "Ahmad", Date: "8 Juli", Status: "sakit", ClassName: "7A"})
	assert.Contains(t, text, "Ananda Ahmad tercatat sakit pada 8 Juli di kelas 7A")
	assert.NotContains(t, text, "{{")

	_, ok := Render("nope", nil)
	assert.False(t, ok)
}

func TestRender_ValuesAreNotRescanned(t *testing.T) {
	text, ok := Render(NameAnnouncement, []string{"{{2}}", "Isi {{1}}"})
	require.True(t, ok)
	assert.Equal(t, "*{{2}}*\n\nIsi {{1}}", text)
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 1.500.000", FormatRupiah(1500000))
	assert.Equal(t, "Rp 500", FormatRupiah(500))
}
