package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Abraxas-365/pesantren-notify/configx"
	"github.com/Abraxas-365/pesantren-notify/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig_Defaults(t *testing.T) {
	c, err := configx.NewBuilder().WithDefaults(Defaults).Build()
	require.NoError(t, err)

	cfg := FromConfig(c)
	assert.Equal(t, "v18.0", cfg.WhatsApp.APIVersion)
	assert.Equal(t, "https://graph.facebook.com", cfg.WhatsApp.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.WhatsApp.HTTPTimeout)
	assert.False(t, cfg.WhatsApp.Configured())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "Sistem Informasi Pesantren", cfg.Notify.Signature)
	assert.Equal(t, "Pondok Pesantren", cfg.School.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.Color)
	assert.False(t, cfg.Log.Caller)
}

func TestFromConfig_Overrides(t *testing.T) {
	c, err := configx.NewBuilder().
		WithDefaults(Defaults).
		FromMap(map[string]any{
			"whatsapp.access_token":         "EAAG...",
			"whatsapp.phone_number_id":      "109876543210987",
			"whatsapp.webhook_verify_token": "rahasia",
			"whatsapp.http_timeout":         "3s",
			"server.port":                   9090,
			"api.jwt_secret":                "s3cret",
			"school.ppdb_url":               "https://alhikmah.sch.id/ppdb",
		}, "test").
		Build()
	require.NoError(t, err)

	cfg := FromConfig(c)
	assert.True(t, cfg.WhatsApp.Configured())
	assert.Equal(t, "109876543210987", cfg.WhatsApp.PhoneNumberID)
	assert.Equal(t, 3*time.Second, cfg.WhatsApp.HTTPTimeout)
	assert.Equal(t, "rahasia", cfg.Webhook.VerifyToken)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.API.JWTSecret)
	assert.Equal(t, "https://alhikmah.sch.id/ppdb", cfg.School.PPDBURL)
	assert.NoError(t, cfg.ValidateForServe())
}

func TestLoad_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"WHATSAPP_PHONE_NUMBER_ID=555000111222\n"+
			"NOTIFY_SIGNATURE=\"TU Al-Hikmah\"\n"+
			"LOG_FORMAT=json\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "555000111222", cfg.WhatsApp.PhoneNumberID)
	assert.Equal(t, "TU Al-Hikmah", cfg.Notify.Signature)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingDotEnvIsFine(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.NoError(t, err)
}

func TestValidateForServe_RequiresVerifyToken(t *testing.T) {
	c, _ := configx.NewBuilder().WithDefaults(Defaults).Build()
	err := FromConfig(c).ValidateForServe()
	assert.True(t, errx.IsCode(err, ErrMissingSetting))
}

func TestLoad_SecretsKeepTheirText(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"WHATSAPP_WEBHOOK_VERIFY_TOKEN=000123\n"+
			"API_JWT_SECRET=yes\n"+
			"SERVER_PORT=9091\n"+
			"LOG_CALLER=true\n"), 0o600))
	t.Setenv("WHATSAPP_WEBHOOK_VERIFY_TOKEN", "")
	os.Unsetenv("WHATSAPP_WEBHOOK_VERIFY_TOKEN")
	t.Setenv("API_JWT_SECRET", "")
	os.Unsetenv("API_JWT_SECRET")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "000123", cfg.Webhook.VerifyToken)
	assert.Equal(t, "yes", cfg.API.JWTSecret)
	assert.Equal(t, 9091, cfg.Server.Port)
	assert.True(t, cfg.Log.Caller)
}
