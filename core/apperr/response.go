package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the error payload returned by every handler.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// Response wraps ErrorBody under the "error" key.
type Response struct {
	Error ErrorBody `json:"error"`
}

// Respond writes err as a JSON error response with the status of its kind.
// Unclassified errors are reported as internal without leaking their text.
func Respond(c *fiber.Ctx, err error) error {
	kind := KindOf(err)
	body := ErrorBody{Code: "INTERNAL", Message: "internal error"}

	var ae *Error
	if errors.As(err, &ae) {
		body.Code = ae.Code
		body.Message = ae.Message
	} else if kind == Transient {
		body.Code = "TIMEOUT"
		body.Message = "operation timed out"
	}
	body.Retryable = kind == Transient

	return c.Status(Status(kind)).JSON(Response{Error: body})
}
