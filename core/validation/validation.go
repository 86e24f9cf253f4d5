package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"circulation/core/apperr"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report json names so messages match the request body
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors lists the rejected fields of a request.
func Errors(s any) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "gt", "gte":
			message = fmt.Sprintf("%s must be greater than %s%s", field, orEqual(fe.Tag()), fe.Param())
		case "gtfield", "gtefield":
			message = fmt.Sprintf("%s must not precede %s", field, fe.Param())
		case "required_with":
			message = fmt.Sprintf("%s is required together with %s", field, fe.Param())
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}
		out = append(out, FieldError{Field: field, Message: message})
	}
	return out
}

// Struct validates a typed request and returns an Invalid error naming every
// rejected field.
func Struct(s any) error {
	fields := Errors(s)
	if len(fields) == 0 {
		return nil
	}
	msgs := make([]string, len(fields))
	for i, f := range fields {
		msgs[i] = f.Message
	}
	return apperr.New(apperr.Invalid, "INVALID_REQUEST", strings.Join(msgs, "; "))
}

func orEqual(tag string) string {
	if tag == "gte" {
		return "or equal to "
	}
	return ""
}
