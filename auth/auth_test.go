package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abraxas-365/pesantren-notify/errx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenVerifier_RequiresSecret(t *testing.T) {
	_, err := NewTokenVerifier("")
	assert.True(t, errx.IsCode(err, ErrNoSecret))
}

func TestTokenRoundTrip(t *testing.T) {
	v, err := NewTokenVerifier("s3cret")
	require.NoError(t, err)

	token, err := v.GenerateToken("sia-backend", "messages:send", time.Hour)
	require.NoError(t, err)

	claims, err := v.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sia-backend", claims.ClientID())
	assert.Equal(t, "messages:send", claims.Scope)
}

func TestValidateToken_Rejects(t *testing.T) {
	v, _ := NewTokenVerifier("s3cret")
	other, _ := NewTokenVerifier("other")

	expired, _ := v.GenerateToken("sia-backend", "", -time.Minute)
	foreign, _ := other.GenerateToken("sia-backend", "", time.Hour)
	noSubject, _ := v.GenerateToken("", "", time.Hour)
	noneAlg, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "x", Issuer: issuer}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)

	for name, token := range map[string]string{
		"expired":    expired,
		"foreign":    foreign,
		"no subject": noSubject,
		"alg none":   noneAlg,
		"garbage":    "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.ValidateToken(token)
			assert.True(t, errx.IsCode(err, ErrInvalidToken), "got %v", err)
		})
	}
}

func TestMiddleware(t *testing.T) {
	v, _ := NewTokenVerifier("s3cret")
	token, _ := v.GenerateToken("sia-backend", "", time.Hour)

	h := v.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(claims.ClientID()))
	}))

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"valid", "Bearer " + token, http.StatusOK, ""},
		{"missing", "", http.StatusUnauthorized, string(ErrMissingToken)},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, string(ErrMissingToken)},
		{"invalid", "Bearer nope", http.StatusUnauthorized, string(ErrInvalidToken)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/messages", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.code == "" {
				assert.Equal(t, "sia-backend", rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), tt.code)
			}
		})
	}
}
