package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validLogLevels = map[string]bool{
	"silent": true,
	"error":  true,
	"warn":   true,
	"info":   true,
}

// ValidateConfig checks if the configuration meets the requirements for the
// current environment.
func ValidateConfig(cfg *Config) error {
	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBHost == "" {
			add("DB_HOST", "is required for the postgres driver")
		}
		if cfg.DBName == "" {
			add("DB_NAME", "is required for the postgres driver")
		}
		if cfg.Environment == Production || cfg.Environment == CI {
			if cfg.DBPassword == "" {
				add("DB_PASSWORD", fmt.Sprintf("is required in %s environment", cfg.Environment))
			}
		}
	case DriverSQLite:
		if cfg.DBPath == "" {
			add("DB_PATH", "is required for the sqlite driver")
		}
		if cfg.Environment == Production {
			add("DB_DRIVER", "sqlite is not supported in production environment")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unknown driver %q", cfg.DBDriver))
	}

	if cfg.RateLimit < 0 {
		add("RATE_LIMIT", "must not be negative")
	}
	if cfg.RateLimitEnabled() && cfg.RateLimitWindow <= 0 {
		add("RATE_LIMIT_WINDOW", "must be positive when rate limiting is enabled")
	}

	if !validLogLevels[cfg.LogLevel] {
		add("LOG_LEVEL", fmt.Sprintf("unknown level %q", cfg.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "\n"))
	}

	return nil
}
