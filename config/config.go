package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all runtime settings, read from the environment
type Config struct {
	Port     string
	LogLevel string
	UseHTTPS bool

	DBDriver       string
	DBPath         string
	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBConnLifetime time.Duration

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	OIDCDomain       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCCallbackURL  string
}

// Load reads an optional .env file and builds the configuration from the environment
func Load() (*Config, error) {
	// A missing .env file is fine; the environment may already be populated
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load the env vars: %w", err)
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds the configuration from environment variables, applying defaults
func FromEnv() *Config {
	return &Config{
		Port:     getEnvOrDefault("PORT", "8080"),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		UseHTTPS: os.Getenv("USE_HTTPS") == "true",

		DBDriver:       strings.ToLower(getEnvOrDefault("DB_DRIVER", DriverSQLite)),
		DBPath:         getEnvOrDefault("DB_PATH", "actionlog.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DBMaxOpenConns: parseIntOrDefault("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: parseIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		DBConnLifetime: parseDurationOrDefault("DB_CONN_MAX_LIFETIME", time.Hour),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTIssuer: getEnvOrDefault("JWT_ISSUER", "actionlog"),
		JWTTTL:    parseDurationOrDefault("JWT_TTL", time.Hour),

		OIDCDomain:       os.Getenv("OIDC_DOMAIN"),
		OIDCClientID:     os.Getenv("OIDC_CLIENT_ID"),
		OIDCClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
		OIDCCallbackURL:  os.Getenv("OIDC_CALLBACK_URL"),
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (must be %s or %s)", c.DBDriver, DriverSQLite, DriverPostgres)
	}

	if !c.OIDCEnabled() && c.JWTSecret == "" {
		return errors.New("either OIDC_DOMAIN or JWT_SECRET must be set")
	}

	return nil
}

// OIDCEnabled reports whether an OpenID Connect provider is configured
func (c *Config) OIDCEnabled() bool {
	return c.OIDCDomain != ""
}

// getEnvOrDefault returns the environment value for key or the default when unset
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntOrDefault parses an integer from environment variable or returns default
func parseIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// parseDurationOrDefault parses a duration from environment variable or returns default
func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
