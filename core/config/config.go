package config

import (
	"fmt"
	"reflect"
	"strings"

	"circulation/core/database"
	"circulation/core/identity"
	"circulation/core/logger"
	"circulation/core/policy"
	"circulation/core/server"
	"circulation/core/storage"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the receipt archive bucket.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the ledger database.
	Database database.Config `mapstructure:"database"`
	// Lending holds the circulation policy (loan period, fine rate, ...).
	Lending policy.Config `mapstructure:"lending"`
	// Auth holds the settings used to verify caller identities.
	Auth identity.Config `mapstructure:"auth"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Missing .env is fine in production
	_ = godotenv.Overload(envPath)

	v := viper.New()
	bindValues(v, Config{}, "")

	// LENDING_FINE_RATE_CENTS -> lending.fine_rate_cents
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if !c.Database.IsValidDriver() {
		result = multierror.Append(result, fmt.Errorf("database.driver: unsupported driver %q", c.Database.Driver))
	}
	if c.Database.QueryTimeoutSeconds <= 0 {
		result = multierror.Append(result, fmt.Errorf("database.query_timeout_seconds: must be positive"))
	}
	if c.Lending.LoanDays <= 0 {
		result = multierror.Append(result, fmt.Errorf("lending.loan_days: must be positive"))
	}
	if c.Lending.ReservationWindowDays <= 0 {
		result = multierror.Append(result, fmt.Errorf("lending.reservation_window_days: must be positive"))
	}
	if c.Lending.FineRateCents < 0 {
		result = multierror.Append(result, fmt.Errorf("lending.fine_rate_cents: must not be negative"))
	}
	if c.Lending.RecommendationLimit <= 0 {
		result = multierror.Append(result, fmt.Errorf("lending.recommendation_limit: must be positive"))
	}
	if c.Auth.JWTSecret == "" {
		result = multierror.Append(result, fmt.Errorf("auth.jwt_secret: required"))
	}
	if c.Storage.Receipts && (c.Storage.Endpoint == "" || c.Storage.Bucket == "") {
		result = multierror.Append(result, fmt.Errorf("storage: endpoint and bucket are required when receipts are enabled"))
	}

	return result.ErrorOrNil()
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Registering every key, even with an empty default, lets AutomaticEnv see it
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
