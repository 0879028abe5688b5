package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "card.s3db", cfg.Database.Path)
	assert.Equal(t, "400000", cfg.Ledger.IssuerPrefix)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_CONNECTIONS", "50")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")
	t.Setenv("ISSUER_PREFIX", "512345")
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 50, cfg.Database.MaxConnections)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "512345", cfg.Ledger.IssuerPrefix)
	assert.True(t, cfg.IsProduction())
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("DB_MAX_CONNECTIONS", "not-a-number")
	t.Setenv("DB_CONN_MAX_LIFETIME", "soon")

	cfg := Load()

	assert.Equal(t, 25, cfg.Database.MaxConnections)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
}

func TestDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: "5432", User: "u", Password: "p",
		Name: "bank", SSLMode: "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=u password=p dbname=bank sslmode=disable", cfg.DSN())
}
