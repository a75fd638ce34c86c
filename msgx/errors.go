package msgx

import (
	"net/http"

	"github.com/Abraxas-365/pesantren-notify/errx"
)

// Registry holds every error the messaging layer can produce
var Registry = errx.NewRegistry("MSG")

var (
	ErrNotConfigured             = Registry.Register("NOT_CONFIGURED", errx.TypeConfiguration, http.StatusServiceUnavailable, "not configured")
	ErrInvalidPhone              = Registry.Register("INVALID_PHONE", errx.TypeValidation, http.StatusBadRequest, "invalid phone number")
	ErrInvalidMessage            = Registry.Register("INVALID_MESSAGE", errx.TypeValidation, http.StatusBadRequest, "invalid message")
	ErrSendFailed                = Registry.Register("SEND_FAILED", errx.TypeExternal, http.StatusBadGateway, "failed to send message")
	ErrProviderUnavailable       = Registry.Register("PROVIDER_UNAVAILABLE", errx.TypeUnavailable, http.StatusServiceUnavailable, "messaging provider unavailable")
	ErrRateLimitExceeded         = Registry.Register("RATE_LIMIT_EXCEEDED", errx.TypeRateLimit, http.StatusTooManyRequests, "rate limit exceeded")
	ErrProviderConfigInvalid     = Registry.Register("PROVIDER_CONFIG_INVALID", errx.TypeConfiguration, http.StatusBadGateway, "provider rejected credentials")
	ErrWebhookVerificationFailed = Registry.Register("WEBHOOK_VERIFICATION_FAILED", errx.TypeAuthorization, http.StatusForbidden, "webhook verification failed")
	ErrWebhookParseFailed        = Registry.Register("WEBHOOK_PARSE_FAILED", errx.TypeBadRequest, http.StatusBadRequest, "failed to parse webhook payload")
	ErrTemplateNotFound          = Registry.Register("TEMPLATE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "template not found")
	ErrNumberValidationFailed    = Registry.Register("NUMBER_VALIDATION_FAILED", errx.TypeValidation, http.StatusUnprocessableEntity, "number validation failed")
)
