package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Database.QueryTimeoutSeconds)
	assert.Equal(t, 14, cfg.Lending.LoanDays)
	assert.Equal(t, 7, cfg.Lending.ReservationWindowDays)
	assert.Equal(t, int64(100), cfg.Lending.FineRateCents)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Storage.Receipts)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("LENDING_FINE_RATE_CENTS", "250")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("AUTH_JWT_SECRET", "from-env")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, int64(250), cfg.Lending.FineRateCents)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LENDING_LOAN_DAYS=21\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("LENDING_LOAN_DAYS") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 21, cfg.Lending.LoanDays)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		cfg.Auth.JWTSecret = "secret"
		return cfg
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("Aggregates Problems", func(t *testing.T) {
		cfg := valid()
		cfg.Database.Driver = "oracle"
		cfg.Lending.LoanDays = 0
		cfg.Auth.JWTSecret = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
		assert.Contains(t, err.Error(), "lending.loan_days")
		assert.Contains(t, err.Error(), "auth.jwt_secret")
	})

	t.Run("Receipts Need Storage", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.Receipts = true
		cfg.Storage.Endpoint = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage")
	})
}
