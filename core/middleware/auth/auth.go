package auth

import (
	"crypto/subtle"

	"circulation/core/apperr"

	"github.com/gofiber/fiber/v2"
)

// Header carries the operator API key.
const Header = "X-API-Key"

// Config holds the API key middleware settings.
type Config struct {
	ApiKey string
}

var (
	errMissingKey = apperr.New(apperr.Forbidden, "API_KEY_REQUIRED", "operator API key required")
	errDisabled   = apperr.New(apperr.Forbidden, "OPERATOR_DISABLED", "operator endpoints are disabled")
)

// New returns a middleware that rejects requests without the configured API key.
// With no key configured every request is rejected.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return apperr.Respond(c, errDisabled)
		}
		key := c.Get(Header)
		if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.ApiKey)) != 1 {
			return apperr.Respond(c, errMissingKey)
		}
		return c.Next()
	}
}
