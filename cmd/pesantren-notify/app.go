package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Abraxas-365/pesantren-notify/apix"
	"github.com/Abraxas-365/pesantren-notify/auth"
	"github.com/Abraxas-365/pesantren-notify/config"
	"github.com/Abraxas-365/pesantren-notify/eventx"
	"github.com/Abraxas-365/pesantren-notify/logx"
	"github.com/Abraxas-365/pesantren-notify/msgx"
	"github.com/Abraxas-365/pesantren-notify/msgx/providers/msgxwhatsapp"
	"github.com/Abraxas-365/pesantren-notify/notifyx"
	"github.com/Abraxas-365/pesantren-notify/replyx"
)

// app holds the components built once per process and injected everywhere
type app struct {
	bus       *eventx.MemoryBus
	client    *msgxwhatsapp.Client
	notifier  *notifyx.Notifier
	processor *msgxwhatsapp.Processor
	verifier  *auth.TokenVerifier
	stats     *apix.Stats
}

func newApp(c *config.AppConfig) *app {
	bus := eventx.NewMemoryBus()
	client := msgxwhatsapp.NewClient(c.WhatsApp)
	replier := replyx.NewAutoReplier(replyx.Default(c.School), client, bus)

	a := &app{
		bus:       bus,
		client:    client,
		notifier:  notifyx.New(client, c.Notify),
		processor: msgxwhatsapp.NewProcessor(replier, c.Webhook, bus),
		stats:     apix.NewStats(),
	}
	a.stats.Subscribe(bus)

	v, err := auth.NewTokenVerifier(c.API.JWTSecret)
	if err != nil {
		logx.Warn("API routes disabled: %s", err)
	} else {
		a.verifier = v
	}

	if !client.Configured() {
		logx.Warn("WhatsApp credentials missing, sends will report \"not configured\"")
	}
	return a
}

func (a *app) server() *apix.Server {
	return apix.NewServer(apix.Deps{
		Sender:    a.client,
		Processor: a.processor,
		Notifier:  a.notifier,
		Verifier:  a.verifier,
		Templates: a.client,
		Stats:     a.stats,
	})
}

// logEvents mirrors every bus event into the debug log
func (a *app) logEvents() {
	for _, t := range []msgx.EventType{msgx.EventMessageReceived, msgx.EventReplySent, msgx.EventStatusUpdate} {
		a.bus.Subscribe(string(t), func(_ context.Context, e eventx.Event) error {
			logx.Debug("event %s %s: %+v", e.Type(), e.ID(), e.Payload())
			return nil
		})
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// report prints a delivery result and turns a failure into an error exit
func report(w io.Writer, res msgx.DeliveryResult) error {
	if err := printJSON(w, res); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("delivery failed: %s", res.Error)
	}
	return nil
}
