package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the application: which storage driver
// backs the portfolio and how to reach it. Calculation behavior is configured
// separately through the portfolio file (see Portfolio).
type Config struct {
	Storage  StorageConfig
	Database DatabaseConfig
	App      AppConfig
}

// StorageConfig selects the storage driver behind the entity stores.
type StorageConfig struct {
	// Driver is "memory" or "postgres".
	Driver string
	// SnapshotPath is the JSON snapshot file used by the memory driver.
	// Empty disables persistence.
	SnapshotPath string
}

// DatabaseConfig holds PostgreSQL connection settings for the postgres driver.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env      string
	LogLevel string
}

// DSN builds a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// Load reads the configuration from environment variables, with an optional
// .env file loaded first.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Storage.Driver = getEnvDefault("REFDASH_STORAGE", "memory")
	cfg.Storage.SnapshotPath = getEnvDefault("REFDASH_SNAPSHOT", "")

	cfg.Database.Host = getEnvDefault("DB_HOST", "localhost")
	cfg.Database.Port = getEnvIntDefault("DB_PORT", 5432)
	cfg.Database.User = os.Getenv("DB_USER")
	cfg.Database.Password = os.Getenv("DB_PASSWORD")
	cfg.Database.Name = os.Getenv("DB_NAME")
	cfg.Database.SSLMode = getEnvDefault("DB_SSL_MODE", "disable")

	cfg.App.Env = getEnvDefault("APP_ENV", "development")
	cfg.App.LogLevel = getEnvDefault("LOG_LEVEL", "info")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks driver selection and driver-specific requirements.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory":
	case "postgres":
		if c.Database.User == "" || c.Database.Name == "" {
			return fmt.Errorf("postgres storage requires DB_USER and DB_NAME")
		}
	default:
		return fmt.Errorf("unknown storage driver %q (want memory or postgres)", c.Storage.Driver)
	}
	return nil
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
