package apix

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Abraxas-365/pesantren-notify/errx"
	"github.com/Abraxas-365/pesantren-notify/logx"
	"github.com/Abraxas-365/pesantren-notify/msgx"
	"github.com/Abraxas-365/pesantren-notify/msgx/providers/msgxwhatsapp"
	"github.com/Abraxas-365/pesantren-notify/notifyx"
	"github.com/Abraxas-365/pesantren-notify/templatex"
	"github.com/Abraxas-365/pesantren-notify/validatex"
)

var registry = errx.NewRegistry("API")

var (
	ErrInvalidJSON  = registry.Register("INVALID_JSON", errx.TypeBadRequest, http.StatusBadRequest, "request body is not valid JSON")
	ErrNotAvailable = registry.Register("NOT_AVAILABLE", errx.TypeUnavailable, http.StatusNotImplemented, "feature not available")
	ErrTooLarge     = registry.Register("BODY_TOO_LARGE", errx.TypeBadRequest, http.StatusRequestEntityTooLarge, "request body too large")
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Warn("Writing response failed: %s", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var xerr *errx.Error
	if !errors.As(err, &xerr) {
		xerr = errx.Wrap(err, "internal server error", errx.TypeInternal)
	}
	if xerr.HTTPStatus >= http.StatusInternalServerError {
		logx.Error("Request failed: %s", errx.Print(xerr))
	} else {
		logx.Debug("Request rejected: %s", errx.Print(xerr))
	}
	xerr.ToHTTP(w)
}

// readError maps a body read failure, telling an oversized body apart.
func readError(reg *errx.Registry, code errx.Code, err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return registry.NewWithCause(ErrTooLarge, err).WithDetail("limit", tooLarge.Limit)
	}
	return reg.NewWithCause(code, err)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return readError(registry, ErrInvalidJSON, err)
	}
	return validatex.Validate(dst)
}

func writeDelivery(w http.ResponseWriter, res msgx.DeliveryResult) {
	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, res)
}

// ========== Webhook ==========

func (s *Server) handleWebhookVerification(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	challenge, ok := s.deps.Processor.Verify(q.Get("hub.mode"), q.Get("hub.verify_token"), q.Get("hub.challenge"))
	if !ok {
		logx.Warn("Webhook verification rejected (mode=%q)", q.Get("hub.mode"))
		msgx.Registry.New(msgx.ErrWebhookVerificationFailed).ToHTTP(w)
		return
	}

	logx.Info("Webhook verification succeeded")
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, challenge)
}

// handleWebhook acknowledges every readable, authentic delivery with 200 so
// the provider does not redeliver; processing problems are only logged.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.deps.Stats.webhookErrors.Add(1)
		writeError(w, readError(msgx.Registry, msgx.ErrWebhookParseFailed, err))
		return
	}

	if err := s.deps.Processor.VerifySignature(body, r.Header.Get(msgxwhatsapp.SignatureHeader)); err != nil {
		s.deps.Stats.webhookErrors.Add(1)
		logx.Warn("Webhook signature rejected: %s", err)
		writeError(w, err)
		return
	}

	if err := s.deps.Processor.Process(r.Context(), body); err != nil {
		s.deps.Stats.webhookErrors.Add(1)
		logx.Error("Webhook delivery dropped: %s", err)
	}

	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "OK")
}

// ========== API ==========

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	msg, err := req.Message()
	if err == nil {
		err = msg.Check()
	}
	if err != nil {
		writeError(w, err)
		return
	}

	res := s.deps.Sender.Send(r.Context(), msg)
	s.deps.Stats.recordAPI(res)
	writeDelivery(w, res)
}

func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	var req NotifyRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Kind == "" {
		req.Kind = notifyx.KindGeneral
	}

	res := s.deps.Notifier.Notify(r.Context(), req.Phone, req.Kind, req.Title, req.Message, req.TemplateName)
	s.deps.Stats.recordAPI(res)
	writeDelivery(w, res)
}

func (s *Server) handleBroadcast(w http.ResponseWriter, r *http.Request) {
	var req BroadcastRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Kind == "" {
		req.Kind = notifyx.KindAnnouncement
	}

	report := s.deps.Notifier.Broadcast(r.Context(), req.Phones, req.Kind, req.Title, req.Message, req.TemplateName)
	for _, rec := range report {
		s.deps.Stats.recordAPI(rec.Result)
	}
	writeJSON(w, http.StatusOK, map[string]any{"recipients": report})
}

type templateView struct {
	Name       string             `json:"name"`
	Language   string             `json:"language"`
	Category   templatex.Category `json:"category"`
	Parameters []string           `json:"parameters"`
	Body       string             `json:"body"`
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	list := templatex.List()
	out := make([]templateView, 0, len(list))
	for _, t := range list {
		out = append(out, templateView{
			Name:       t.Name,
			Language:   t.Language,
			Category:   t.Category,
			Parameters: t.Params,
			Body:       t.Body(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": out})
}

func (s *Server) handleRemoteTemplates(w http.ResponseWriter, r *http.Request) {
	if s.deps.Templates == nil {
		writeError(w, registry.New(ErrNotAvailable).WithDetail("feature", "remote templates"))
		return
	}

	list, err := s.deps.Templates.ListTemplates(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": list})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Stats.Snapshot())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	configured := false
	if c, ok := s.deps.Sender.(interface{ Configured() bool }); ok {
		configured = c.Configured()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "healthy",
		"provider":   s.deps.Sender.GetProviderName(),
		"configured": configured,
		"timestamp":  time.Now().UTC(),
	})
}
