package bearer

import (
	"strings"

	"circulation/core/apperr"
	"circulation/core/identity"

	"github.com/gofiber/fiber/v2"
)

var (
	errMissing = apperr.New(apperr.Unauthenticated, "TOKEN_REQUIRED", "bearer token required")
	errInvalid = apperr.New(apperr.Unauthenticated, "TOKEN_INVALID", "bearer token is invalid or expired")
)

// New returns a middleware resolving the caller identity from the
// Authorization header. Requests without a valid token are rejected.
func New(cfg identity.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return apperr.Respond(c, errMissing)
		}

		who, err := identity.Parse(cfg, token)
		if err != nil {
			return apperr.Respond(c, errInvalid)
		}

		identity.Store(c, who)
		return c.Next()
	}
}
