// Package logger builds the zap logger used across the circulation service.
//
// Debug level selects zap's development preset; every other level uses the
// production preset at the configured threshold. Encoding is json by default
// and console when running the CLI interactively.
//
// # Request correlation
//
// WithRayID copies the request id stored by the rayid middleware onto a child
// logger, so every line written while serving one request shares a ray_id.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	l := logger.WithRayID(log, c)
//	l.Error("Borrow failed", zap.Error(err))
package logger
