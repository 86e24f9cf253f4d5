package fines

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	ledger  *Ledger
	handler *Handler
}

// NewFeature creates the fines feature around an existing ledger.
func NewFeature(l *Ledger, logger *zap.Logger) *Feature {
	return &Feature{ledger: l, handler: NewHandler(l, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "fines"
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
