package recommendations

import (
	"circulation/core/apperr"
	"circulation/core/identity"
	"circulation/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves recommendations over HTTP.
type Handler struct {
	engine *Engine
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(e *Engine, logger *zap.Logger) *Handler {
	return &Handler{engine: e, logger: logger}
}

// RegisterRoutes registers the recommendation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/recommendations", h.HandleRecommendations)
}

// HandleRecommendations returns suggestions for the caller.
// @Summary Recommend Books
// @Description Suggests available books from the caller's recent categories, topped up with popular titles.
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} recommendations.Recommendation
// @Failure 401 {object} apperr.Response
// @Failure 503 {object} apperr.Response
// @Router /recommendations [get]
func (h *Handler) HandleRecommendations(c *fiber.Ctx) error {
	who, err := identity.Require(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	out, err := h.engine.For(c.UserContext(), who)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Recommendations failed",
			zap.Uint("user_id", who.UserID),
			zap.Error(err),
		)
		return apperr.Respond(c, err)
	}
	return c.JSON(out)
}
