// Package server holds the HTTP server configuration.
//
// While the start command owns the fiber application, this package defines the
// listen port, the operator API key and the request/shutdown timeouts.
//
// # Usage
//
// This package is embedded by core/config and read by cmd/start.go.
package server
