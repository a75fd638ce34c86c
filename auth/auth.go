package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Abraxas-365/pesantren-notify/errx"
)

var registry = errx.NewRegistry("AUTH")

var (
	ErrMissingToken = registry.Register("MISSING_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "missing bearer token")
	ErrInvalidToken = registry.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "invalid or expired token")
	ErrNoSecret     = registry.Register("NO_SECRET", errx.TypeConfiguration, http.StatusInternalServerError, "jwt secret not configured")
)

const issuer = "pesantren-notify"

// JWTClaims identifies the backend service calling the API
type JWTClaims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// ClientID returns the calling service's name
func (c *JWTClaims) ClientID() string {
	return c.Subject
}

// TokenVerifier issues and checks HS256 service tokens
type TokenVerifier struct {
	secret []byte
	now    func() time.Time
}

// NewTokenVerifier fails on an empty secret; an unsigned API is never served.
func NewTokenVerifier(secret string) (*TokenVerifier, error) {
	if secret == "" {
		return nil, registry.New(ErrNoSecret)
	}
	return &TokenVerifier{secret: []byte(secret), now: time.Now}, nil
}

// GenerateToken issues a token for clientID valid for ttl
func (v *TokenVerifier) GenerateToken(clientID, scope string, ttl time.Duration) (string, error) {
	now := v.now()
	claims := &JWTClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// ValidateToken parses and verifies a token
func (v *TokenVerifier) ValidateToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, registry.NewWithCause(ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, registry.NewWithCause(ErrInvalidToken, errors.New("token has no subject"))
	}
	return claims, nil
}

type claimsKey struct{}

// Middleware rejects requests without a valid bearer token and stores the
// claims in the request context.
func (v *TokenVerifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			registry.New(ErrMissingToken).ToHTTP(w)
			return
		}

		claims, err := v.ValidateToken(token)
		if err != nil {
			var xerr *errx.Error
			errors.As(err, &xerr)
			xerr.ToHTTP(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}

// ClaimsFrom returns the claims stored by Middleware
func ClaimsFrom(ctx context.Context) (*JWTClaims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*JWTClaims)
	return c, ok
}
