// Package config loads runtime settings from a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultDatabaseURL     = "sqlite://catalog.db"
	DefaultHTTPAddr        = ":8080"
	DefaultPGDriver        = "pgx"
	DefaultShutdownTimeout = 30 * time.Second
	DefaultSalesEmail      = "ventas@agencia1.cl"
)

type Config struct {
	DatabaseURL     string
	HTTPAddr        string
	PGDriver        string
	DBDebug         bool
	LogLevel        slog.Level
	LogFormat       string
	ShutdownTimeout time.Duration
	SalesEmail      string
}

// Load reads the given .env files (".env" when none are given) and then the
// process environment. Missing files are not an error.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{
		DatabaseURL:     getEnv("DATABASE_URL", DefaultDatabaseURL),
		HTTPAddr:        getEnv("HTTP_ADDR", DefaultHTTPAddr),
		PGDriver:        strings.ToLower(getEnv("PG_DRIVER", DefaultPGDriver)),
		DBDebug:         getEnvBool("DB_DEBUG", false),
		LogLevel:        getEnvLevel("LOG_LEVEL", slog.LevelInfo),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "text")),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
		SalesEmail:      getEnv("SALES_EMAIL", DefaultSalesEmail),
	}
	return cfg, nil
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if !strings.HasPrefix(c.DatabaseURL, "postgres://") &&
		!strings.HasPrefix(c.DatabaseURL, "postgresql://") &&
		!strings.HasPrefix(c.DatabaseURL, "sqlite://") {
		errs = append(errs, fmt.Errorf("unsupported database URL: %s", c.DatabaseURL))
	}
	if c.PGDriver != "pgx" && c.PGDriver != "postgres" {
		errs = append(errs, fmt.Errorf("unsupported PG_DRIVER %q (want pgx or postgres)", c.PGDriver))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("unsupported LOG_FORMAT %q (want text or json)", c.LogFormat))
	}
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("HTTP_ADDR must not be empty"))
	}
	return errors.Join(errs...)
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		slog.Warn("invalid bool value, using default", "key", key, "value", value, "default", defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
			return duration
		}
		slog.Warn("invalid duration value, using default", "key", key, "value", value, "default", defaultValue)
	}
	return defaultValue
}

func getEnvLevel(key string, defaultValue slog.Level) slog.Level {
	if value := os.Getenv(key); value != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err == nil {
			return level
		}
		slog.Warn("invalid log level, using default", "key", key, "value", value, "default", defaultValue)
	}
	return defaultValue
}
