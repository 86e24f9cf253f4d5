package loans

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	manager *Manager
	handler *Handler
}

// NewFeature creates the loans feature around an existing manager.
func NewFeature(m *Manager, logger *zap.Logger) *Feature {
	return &Feature{manager: m, handler: NewHandler(m, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "loans"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
