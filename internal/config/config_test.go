// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "ts_session", cfg.Session.CookieName)
	assert.Equal(t, 24, cfg.Session.TTLHours)
	assert.InDelta(t, 0.8, cfg.Payment.SuccessRate, 0.001)
	assert.InDelta(t, 85.00, cfg.Shipping.DefaultBaseCost, 0.001)
	assert.InDelta(t, 2.50, cfg.Shipping.PerUnitWeight, 0.001)
	assert.EqualValues(t, 50*1024*1024, cfg.Upload.MaxBodySize)
	assert.Equal(t, 10, cfg.RateLimit.GeneralPerSecond)
	assert.Equal(t, 5, cfg.RateLimit.AuthPerMinute)
	assert.Equal(t, 10, cfg.RateLimit.UploadPerMinute)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SESSION_TTL_HOURS", "48")
	t.Setenv("PAYMENT_SUCCESS_RATE", "0.5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 48, cfg.Session.TTLHours)
	assert.InDelta(t, 0.5, cfg.Payment.SuccessRate, 0.001)
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Payment.SuccessRate = 1.5
	assert.Error(t, cfg.Validate())

	cfg.Payment.SuccessRate = 0.8
	cfg.Session.TTLHours = 0
	assert.Error(t, cfg.Validate())

	cfg.Session.TTLHours = 24
	cfg.RateLimit.AuthPerMinute = 0
	assert.Error(t, cfg.Validate())

	cfg.RateLimit.AuthPerMinute = 5
	cfg.Environment = "production"
	cfg.Database.Password = ""
	assert.Error(t, cfg.Validate())

	cfg.Database.Password = "secret"
	assert.NoError(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "thrift",
		Password: "secret",
		Database: "thriftstore",
		SSLMode:  "require",
	}
	dsn := cfg.DSN()
	assert.Contains(t, dsn, "host=db.internal")
	assert.Contains(t, dsn, "port=5433")
	assert.Contains(t, dsn, "dbname=thriftstore")
	assert.Contains(t, dsn, "sslmode=require")
}
