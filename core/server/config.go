package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey protects the operator endpoints (/audit). Empty disables them.
	ApiKey string `mapstructure:"api_key" default:""`
	// ReadTimeoutSeconds bounds reading a request.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"5"`
	// WriteTimeoutSeconds bounds writing a response.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" default:"10"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" default:"15"`
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

// ReadTimeout returns the read timeout, defaulting to five seconds.
func (c Config) ReadTimeout() time.Duration {
	return seconds(c.ReadTimeoutSeconds, 5)
}

// WriteTimeout returns the write timeout, defaulting to ten seconds.
func (c Config) WriteTimeout() time.Duration {
	return seconds(c.WriteTimeoutSeconds, 10)
}

// ShutdownTimeout returns the graceful shutdown budget, defaulting to fifteen seconds.
func (c Config) ShutdownTimeout() time.Duration {
	return seconds(c.ShutdownTimeoutSeconds, 15)
}

// OperatorEndpointsEnabled reports whether /audit should be mounted.
func (c Config) OperatorEndpointsEnabled() bool {
	return c.ApiKey != ""
}

func seconds(v, def int) time.Duration {
	if v <= 0 {
		v = def
	}
	return time.Duration(v) * time.Second
}
