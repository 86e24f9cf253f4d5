package utils

import (
	"net/http/httptest"
	"testing"

	"circulation/core/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"int64", int64(7), 7},
		{"int32", int32(7), 7},
		{"bytes", []byte("12"), 12},
		{"string", "3", 3},
		{"nil", nil, 0},
		{"garbage", "x", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt64(tt.in))
		})
	}
}

func TestParamID(t *testing.T) {
	app := fiber.New()
	app.Get("/books/:id", func(c *fiber.Ctx) error {
		id, err := ParamID(c, "id")
		if err != nil {
			return apperr.Respond(c, err)
		}
		return c.JSON(fiber.Map{"id": id})
	})

	tests := []struct {
		path string
		want int
	}{
		{"/books/12", fiber.StatusOK},
		{"/books/0", fiber.StatusBadRequest},
		{"/books/abc", fiber.StatusBadRequest},
		{"/books/-1", fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
