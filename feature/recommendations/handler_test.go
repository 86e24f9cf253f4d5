package recommendations_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"circulation/core/identity"
	"circulation/core/policy"
	"circulation/feature/recommendations"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandler(t *testing.T) {
	f := newFixture(t, policy.Default())

	t.Run("Authenticated", func(t *testing.T) {
		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			identity.Store(c, f.alice)
			return c.Next()
		})
		require.NoError(t, recommendations.NewFeature(f.engine, zap.NewNop()).Load(app))

		resp, err := app.Test(httptest.NewRequest("GET", "/recommendations", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out []recommendations.Recommendation
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Len(t, out, 5)
		assert.Equal(t, recommendations.ReasonPopular, out[0].Reason)
	})

	t.Run("Anonymous", func(t *testing.T) {
		app := fiber.New()
		require.NoError(t, recommendations.NewFeature(f.engine, zap.NewNop()).Load(app))

		resp, err := app.Test(httptest.NewRequest("GET", "/recommendations", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
