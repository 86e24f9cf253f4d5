package utils

import (
	"fmt"
	"strconv"

	"circulation/core/apperr"

	"github.com/gofiber/fiber/v2"
)

// ToInt64 converts a raw scanned column value to int64.
// Drivers disagree on the Go type of aggregate columns: sqlite yields int64,
// mysql yields []byte, postgres may yield int32.
func ToInt64(val any) int64 {
	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case uint:
		return int64(v)
	case uint64:
		return int64(v)
	case uint32:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		i, _ := strconv.ParseInt(v, 10, 64)
		return i
	case []byte:
		i, _ := strconv.ParseInt(string(v), 10, 64)
		return i
	case nil:
		return 0
	default:
		i, _ := strconv.ParseInt(fmt.Sprintf("%v", v), 10, 64)
		return i
	}
}

// ParamID parses a positive numeric route parameter.
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.New(apperr.Invalid, "INVALID_ID", fmt.Sprintf("%s must be a positive integer", name))
	}
	return uint(id), nil
}
