/*
Package errx provides structured errors with types, codes, details, HTTP
status mapping and cause wrapping.

# Error Registry

Each package declares its errors once against a prefixed registry:

	var registry = errx.NewRegistry("MSG")

	var ErrNotConfigured = registry.Register("NOT_CONFIGURED", errx.TypeConfiguration,
		http.StatusServiceUnavailable, "not configured")

	err := registry.New(ErrNotConfigured).WithDetail("provider", "whatsapp")

# Checking Errors

	if errx.IsCode(err, ErrNotConfigured) {
		// ...
	}

	if errx.IsType(err, errx.TypeValidation) {
		// ...
	}

# Caller-facing Messages

Reason returns the registered (or overridden) message without the code and
cause chain, which is what result objects expose to their callers:

	result.Error = errx.Reason(err)

# HTTP Integration

	func handler(w http.ResponseWriter, r *http.Request) {
		if err := do(r); err != nil {
			errx.Wrap(err, "request failed", errx.TypeInternal).ToHTTP(w)
			return
		}
	}
*/
package errx
