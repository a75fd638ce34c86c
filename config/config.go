package config

import (
	"net/http"
	"time"

	"github.com/Abraxas-365/pesantren-notify/configx"
	"github.com/Abraxas-365/pesantren-notify/errx"
	"github.com/Abraxas-365/pesantren-notify/logx"
	"github.com/Abraxas-365/pesantren-notify/msgx/providers/msgxwhatsapp"
	"github.com/Abraxas-365/pesantren-notify/notifyx"
	"github.com/Abraxas-365/pesantren-notify/replyx"
)

var registry = errx.NewRegistry("CONFIG")

var ErrMissingSetting = registry.Register("MISSING_SETTING", errx.TypeConfiguration, http.StatusInternalServerError, "required setting is not set")

// AppConfig is the typed view of every setting the binary reads
type AppConfig struct {
	WhatsApp msgxwhatsapp.Config
	Webhook  msgxwhatsapp.WebhookConfig
	Server   ServerConfig
	API      APIConfig
	Notify   notifyx.Options
	School   replyx.Profile
	Log      logx.Settings
}

type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

type APIConfig struct {
	JWTSecret string
}

// Defaults are the lowest-priority layer
var Defaults = map[string]any{
	"whatsapp": map[string]any{
		"api_version":  "v18.0",
		"base_url":     "https://graph.facebook.com",
		"http_timeout": "10s",
	},
	"server": map[string]any{
		"port":             8080,
		"shutdown_timeout": "15s",
	},
	"notify": map[string]any{
		"signature":   "Sistem Informasi Pesantren",
		"concurrency": 4,
	},
	"school": map[string]any{
		"name": "Pondok Pesantren",
	},
	"log": map[string]any{
		"level":  "info",
		"format": "console",
		"color":  true,
		"caller": false,
	},
}

// Load layers defaults, the optional dotenv file and the process
// environment (WHATSAPP_ACCESS_TOKEN → whatsapp.access_token).
func Load(dotenvPath string) (*AppConfig, error) {
	b := configx.NewBuilder().WithDefaults(Defaults)
	if dotenvPath != "" {
		b = b.FromDotEnv(dotenvPath)
	}

	cfg, err := b.FromEnv("").Build()
	if err != nil {
		return nil, errx.Wrap(err, "failed to load configuration", errx.TypeConfiguration)
	}
	return FromConfig(cfg), nil
}

// FromConfig reads an already built configx.Config
func FromConfig(c configx.Config) *AppConfig {
	return &AppConfig{
		WhatsApp: msgxwhatsapp.Config{
			AccessToken:       c.Get("whatsapp.access_token").AsString(),
			PhoneNumberID:     c.Get("whatsapp.phone_number_id").AsString(),
			BusinessAccountID: c.Get("whatsapp.business_account_id").AsString(),
			APIVersion:        c.Get("whatsapp.api_version").AsStringDefault("v18.0"),
			BaseURL:           c.Get("whatsapp.base_url").AsStringDefault("https://graph.facebook.com"),
			HTTPTimeout:       c.Get("whatsapp.http_timeout").AsDurationDefault(10 * time.Second),
		},
		Webhook: msgxwhatsapp.WebhookConfig{
			VerifyToken: c.Get("whatsapp.webhook_verify_token").AsString(),
			AppSecret:   c.Get("whatsapp.webhook_secret").AsString(),
		},
		Server: ServerConfig{
			Port:            c.Get("server.port").AsIntDefault(8080),
			ShutdownTimeout: c.Get("server.shutdown_timeout").AsDurationDefault(15 * time.Second),
		},
		API: APIConfig{
			JWTSecret: c.Get("api.jwt_secret").AsString(),
		},
		Notify: notifyx.Options{
			Signature:   c.Get("notify.signature").AsString(),
			Concurrency: c.Get("notify.concurrency").AsIntDefault(4),
		},
		School: replyx.Profile{
			Name:       c.Get("school.name").AsString(),
			Address:    c.Get("school.address").AsString(),
			Phone:      c.Get("school.phone").AsString(),
			Website:    c.Get("school.website").AsString(),
			PPDBURL:    c.Get("school.ppdb_url").AsString(),
			PaymentURL: c.Get("school.payment_url").AsString(),
		},
		Log: logx.Settings{
			Level:  c.Get("log.level").AsStringDefault("info"),
			Format: c.Get("log.format").AsStringDefault("console"),
			Color:  c.Get("log.color").AsBoolDefault(true),
			Caller: c.Get("log.caller").AsBoolDefault(false),
		},
	}
}

// ValidateForServe checks the settings the webhook server cannot start
// without. Messaging credentials are optional: an unconfigured client
// reports "not configured" per send instead.
func (c *AppConfig) ValidateForServe() error {
	if c.Webhook.VerifyToken == "" {
		return registry.New(ErrMissingSetting).
			WithDetail("setting", "WHATSAPP_WEBHOOK_VERIFY_TOKEN")
	}
	return nil
}
