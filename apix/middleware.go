package apix

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/pesantren-notify/errx"
	"github.com/Abraxas-365/pesantren-notify/logx"
)

const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID returns the id assigned by requestIDMiddleware
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logx.Info("%s %s %d %s [%s]", r.Method, r.URL.Path, rec.status, time.Since(start), RequestID(r.Context()))
	})
}

func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logx.Error("Panic recovered in %s %s: %v [%s]", r.Method, r.URL.Path, err, RequestID(r.Context()))
				errx.New("internal server error", errx.TypeInternal).ToHTTP(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
