package identity

import (
	"circulation/core/apperr"

	"github.com/gofiber/fiber/v2"
)

const localsKey = "identity"

var errAnonymous = apperr.New(apperr.Unauthenticated, "IDENTITY_REQUIRED", "caller identity is missing")

// Store attaches the identity to the request.
func Store(c *fiber.Ctx, who Identity) {
	c.Locals(localsKey, who)
}

// FromCtx returns the identity resolved by the bearer middleware.
func FromCtx(c *fiber.Ctx) (Identity, bool) {
	who, ok := c.Locals(localsKey).(Identity)
	return who, ok
}

// Require is FromCtx for handlers that cannot run anonymously.
func Require(c *fiber.Ctx) (Identity, error) {
	who, ok := FromCtx(c)
	if !ok {
		return Identity{}, errAnonymous
	}
	return who, nil
}
