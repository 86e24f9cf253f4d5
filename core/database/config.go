package database

import "time"

// Config holds configuration for the database connection.
type Config struct {
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name. For sqlite this is the file path or ":memory:".
	Name string `mapstructure:"name" default:"circulation"`
	// Driver is the database driver (mysql, postgres, sqlite).
	Driver string `mapstructure:"driver" default:"mysql"`
	// TimeoutSeconds bounds connection setup and socket I/O.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// QueryTimeoutSeconds bounds every ledger transaction.
	QueryTimeoutSeconds int `mapstructure:"query_timeout_seconds" default:"5"`
}

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// IsValidDriver checks if the configured driver is supported.
func (c Config) IsValidDriver() bool {
	switch c.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
		return true
	default:
		return false
	}
}

// QueryTimeout returns the per-transaction budget, defaulting to five seconds.
func (c Config) QueryTimeout() time.Duration {
	if c.QueryTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.QueryTimeoutSeconds) * time.Second
}
