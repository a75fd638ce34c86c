/*
Package auth protects the HTTP API with HS256 service tokens.

The school administration backend holds the shared secret and calls the API
with a bearer token whose subject names the calling service:

	verifier, err := auth.NewTokenVerifier(cfg.API.JWTSecret)
	if err != nil {
		return err
	}

	token, _ := verifier.GenerateToken("sia-backend", "messages:send", 24*time.Hour)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(verifier.Middleware)

Handlers read the caller with ClaimsFrom(r.Context()).
*/
package auth
