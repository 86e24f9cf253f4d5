// Package config provides configuration management for the circulation service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, operator API key, timeouts)
//   - Database: ledger connection details (mysql, postgres or sqlite)
//   - Storage: MinIO credentials and the fine receipt bucket
//   - Log: Logging level and format
//   - Lending: loan period, reservation window, fine rate, recommendation limits
//   - Auth: shared secret for caller identity tokens
//
// Every leaf field declares its default in a `default` struct tag. Environment
// variables use the upper-cased dotted path, e.g. LENDING_FINE_RATE_CENTS.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
