package apix

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Abraxas-365/pesantren-notify/auth"
	"github.com/Abraxas-365/pesantren-notify/logx"
	"github.com/Abraxas-365/pesantren-notify/msgx"
	"github.com/Abraxas-365/pesantren-notify/msgx/providers/msgxwhatsapp"
	"github.com/Abraxas-365/pesantren-notify/notifyx"
)

// WebhookPath is where the provider delivers webhooks
const WebhookPath = "/webhook/whatsapp"

// maxBodyBytes caps request bodies; larger ones get 413
const maxBodyBytes = 1 << 20

// TemplateLister reads the provider-side template catalogue
type TemplateLister interface {
	ListTemplates(ctx context.Context) ([]msgxwhatsapp.RemoteTemplate, error)
}

// Deps are the collaborators the server routes to. Verifier and Templates
// may be nil: without a verifier the /api routes are not mounted.
type Deps struct {
	Sender    msgx.Sender
	Processor *msgxwhatsapp.Processor
	Notifier  *notifyx.Notifier
	Verifier  *auth.TokenVerifier
	Templates TemplateLister
	Stats     *Stats
}

// Server exposes the webhook and the send API over HTTP
type Server struct {
	deps   Deps
	router *mux.Router
}

func NewServer(deps Deps) *Server {
	if deps.Stats == nil {
		deps.Stats = NewStats()
	}
	s := &Server{deps: deps, router: mux.NewRouter()}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc(WebhookPath, s.handleWebhookVerification).Methods(http.MethodGet)
	s.router.HandleFunc(WebhookPath, s.handleWebhook).Methods(http.MethodPost)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	if s.deps.Verifier == nil {
		logx.Info("No token verifier, /api routes are not mounted")
	} else {
		api := s.router.PathPrefix("/api").Subrouter()
		api.Use(s.deps.Verifier.Middleware)
		api.HandleFunc("/messages", s.handleSendMessage).Methods(http.MethodPost)
		api.HandleFunc("/notify", s.handleNotify).Methods(http.MethodPost)
		api.HandleFunc("/broadcast", s.handleBroadcast).Methods(http.MethodPost)
		api.HandleFunc("/templates", s.handleTemplates).Methods(http.MethodGet)
		api.HandleFunc("/templates/remote", s.handleRemoteTemplates).Methods(http.MethodGet)
		api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	}

	s.router.Use(requestIDMiddleware, loggingMiddleware, recoveryMiddleware)
}

// Handler returns the routed handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logx.Info("HTTP server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logx.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logx.Info("HTTP server stopped")
	return nil
}
