package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost string
	ServerPort string
	GinMode    string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// Redis configuration. Redis is optional; it is only dialed when a
	// rate limit is configured.
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// RateLimit is the number of requests a client may make per
	// RateLimitWindow. Zero disables rate limiting.
	RateLimit       int
	RateLimitWindow time.Duration

	CORSOrigins []string
	LogLevel    string
}

// LoadConfig builds a Config from environment variables, Docker secrets and
// defaults, in that order of precedence. Unless the process environment
// already says production, an optional .env file is loaded first, and it may
// set ENV or CI itself.
func LoadConfig() (*Config, error) {
	if GetEnvironment() != Production {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}
	env := GetEnvironment()

	src := source{useSecrets: env != CI}

	cfg := &Config{
		Environment: env,

		ServerHost: src.get("SERVER_HOST", "server_host", "0.0.0.0"),
		ServerPort: src.get("SERVER_PORT", "server_port", "8000"),
		GinMode:    src.get("GIN_MODE", "", ""),

		DBDriver:   strings.ToLower(src.get("DB_DRIVER", "db_driver", DriverPostgres)),
		DBHost:     src.get("DB_HOST", "db_host", "localhost"),
		DBPort:     src.get("DB_PORT", "db_port", "5432"),
		DBUser:     src.get("DB_USER", "db_user", "postgres"),
		DBPassword: src.get("DB_PASSWORD", "db_password", ""),
		DBName:     src.get("DB_NAME", "db_name", "cookbook"),
		DBSSLMode:  src.get("DB_SSL_MODE", "db_ssl_mode", "disable"),
		DBPath:     src.get("DB_PATH", "", "cookbook.db"),

		RedisURL:      src.get("REDIS_URL", "redis_url", ""),
		RedisHost:     src.get("REDIS_HOST", "redis_host", "localhost"),
		RedisPort:     src.get("REDIS_PORT", "redis_port", "6379"),
		RedisPassword: src.get("REDIS_PASSWORD", "redis_password", ""),
		RedisDB:       src.getInt("REDIS_DB", 0),

		RateLimit:       src.getInt("RATE_LIMIT", 0),
		RateLimitWindow: src.getDuration("RATE_LIMIT_WINDOW", time.Minute),

		CORSOrigins: splitList(src.get("CORS_ORIGINS", "", "*")),
		LogLevel:    strings.ToLower(src.get("LOG_LEVEL", "", "warn")),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the address the HTTP server listens on
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// PostgresDSN returns the connection string for the postgres driver
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RateLimitEnabled reports whether requests should be rate limited
func (c *Config) RateLimitEnabled() bool {
	return c.RateLimit > 0
}

// source resolves a single setting. In CI only environment variables are
// consulted; elsewhere Docker secrets are the fallback.
type source struct {
	useSecrets bool
}

func (s source) get(envKey, secretName, def string) string {
	if value := strings.TrimSpace(os.Getenv(envKey)); value != "" {
		return value
	}
	if s.useSecrets && secretName != "" {
		if value := readSecret(secretName); value != "" {
			return value
		}
	}
	return def
}

func (s source) getInt(envKey string, def int) int {
	raw := s.get(envKey, "", "")
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid integer for %s, using default: %d", envKey, def)
		return def
	}
	return value
}

func (s source) getDuration(envKey string, def time.Duration) time.Duration {
	raw := s.get(envKey, "", "")
	if raw == "" {
		return def
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid duration for %s, using default: %s", envKey, def)
		return def
	}
	return value
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
