// Package loader provides the plugin-like feature loading system.
//
// Each feature (loans, reservations, fines, ...) implements the Feature
// interface and registers its own routes when loaded:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager holds the registry. Register adds a feature; LoadAll loads the
// enabled ones in registration order and fails fast on the first error.
package loader
