package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"simplebanking/internal/cardnumber"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ledger   LedgerConfig
}

type AppConfig struct {
	Environment string
	LogLevel    string
	MetricsAddr string
}

type DatabaseConfig struct {
	Driver          string
	Path            string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LedgerConfig struct {
	IssuerPrefix string
}

func Load() *Config {
	// .env is a development convenience; absence is not an error
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			MetricsAddr: getEnv("METRICS_ADDR", ""),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", DriverSQLite),
			Path:            getEnv("DB_PATH", "card.s3db"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "banking_user"),
			Password:        getEnv("DB_PASSWORD", "banking_password"),
			Name:            getEnv("DB_NAME", "banking_db"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		Ledger: LedgerConfig{
			IssuerPrefix: getEnv("ISSUER_PREFIX", cardnumber.DefaultIssuerPrefix),
		},
	}

	if err := config.validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	return config
}

func (c *Config) validate() error {
	if c.Database.Driver != DriverSQLite && c.Database.Driver != DriverPostgres {
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	prefix := c.Ledger.IssuerPrefix
	if len(prefix) != cardnumber.PrefixLength {
		return fmt.Errorf("ISSUER_PREFIX must be %d digits, got %q", cardnumber.PrefixLength, prefix)
	}
	for i := 0; i < len(prefix); i++ {
		if prefix[i] < '0' || prefix[i] > '9' {
			return fmt.Errorf("ISSUER_PREFIX must be numeric, got %q", prefix)
		}
	}

	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
