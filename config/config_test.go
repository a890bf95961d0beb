package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the loader at an empty working directory and secrets
// directory so neither a stray .env nor /run/secrets leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()

	secretsDir := t.TempDir()
	t.Setenv("SECRETS_DIR", secretsDir)
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	for _, key := range []string{
		"SERVER_HOST", "SERVER_PORT", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER",
		"DB_PASSWORD", "DB_NAME", "DB_SSL_MODE", "DB_PATH", "REDIS_URL",
		"RATE_LIMIT", "RATE_LIMIT_WINDOW", "CORS_ORIGINS", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	return secretsDir
}

func TestLoadConfig(t *testing.T) {
	isolate(t)

	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "chef")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "recipes")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("RATE_LIMIT", "100")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, http://frontend:5173")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "chef", cfg.DBUser)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, "recipes", cfg.DBName)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.True(t, cfg.RateLimitEnabled())
	assert.Equal(t, []string{"http://localhost:5173", "http://frontend:5173"}, cfg.CORSOrigins)
	assert.Equal(t, "host=db port=5433 user=chef password=secret dbname=recipes sslmode=disable", cfg.PostgresDSN())
}

func TestLoadConfigWithDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "cookbook", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.False(t, cfg.RateLimitEnabled())
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	secretsDir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "db_password"), []byte("from-secret\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "db_user"), []byte("secret-user"), 0o600))
	t.Setenv("DB_USER", "env-user")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-secret", cfg.DBPassword)
	assert.Equal(t, "env-user", cfg.DBUser, "environment variables take precedence over secrets")
}

func TestLoadConfigIgnoresSecretsInCI(t *testing.T) {
	secretsDir := isolate(t)
	t.Setenv("CI", "true")

	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "db_password"), []byte("from-secret"), 0o600))

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")

	t.Setenv("DB_PASSWORD", "from-env")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, CI, cfg.Environment)
	assert.Equal(t, "from-env", cfg.DBPassword)
}

func TestLoadConfigEnvironmentFromDotEnv(t *testing.T) {
	isolate(t)
	// godotenv never overrides a variable that is already set, even to "".
	require.NoError(t, os.Unsetenv("ENV"))
	require.NoError(t, os.Unsetenv("CI"))
	require.NoError(t, os.Unsetenv("DB_PASSWORD"))

	require.NoError(t, os.WriteFile(".env", []byte("CI=true\nDB_PASSWORD=from-dotenv\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, CI, cfg.Environment)
	assert.Equal(t, "from-dotenv", cfg.DBPassword)
}

func TestLoadConfigProductionFromDotEnv(t *testing.T) {
	secretsDir := isolate(t)
	require.NoError(t, os.Unsetenv("ENV"))
	require.NoError(t, os.Unsetenv("CI"))

	require.NoError(t, os.WriteFile(".env", []byte("ENV=production\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "db_password"), []byte("from-secret"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Production, cfg.Environment)
	assert.Equal(t, "from-secret", cfg.DBPassword)
}

func TestLoadConfigInvalidNumbersFallBack(t *testing.T) {
	isolate(t)
	t.Setenv("RATE_LIMIT", "lots")
	t.Setenv("RATE_LIMIT_WINDOW", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment:     Development,
			ServerPort:      "8000",
			DBDriver:        DriverSQLite,
			DBPath:          "cookbook.db",
			RateLimitWindow: time.Minute,
			LogLevel:        "warn",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid sqlite", mutate: func(*Config) {}},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.DBDriver = "mysql" },
			wantErr: "DB_DRIVER",
		},
		{
			name:    "sqlite in production",
			mutate:  func(c *Config) { c.Environment = Production },
			wantErr: "sqlite is not supported",
		},
		{
			name: "postgres in production without password",
			mutate: func(c *Config) {
				c.Environment = Production
				c.DBDriver = DriverPostgres
				c.DBHost = "db"
				c.DBName = "cookbook"
			},
			wantErr: "DB_PASSWORD",
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *Config) { c.RateLimit = -1 },
			wantErr: "RATE_LIMIT",
		},
		{
			name: "rate limit without window",
			mutate: func(c *Config) {
				c.RateLimit = 10
				c.RateLimitWindow = 0
			},
			wantErr: "RATE_LIMIT_WINDOW",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: "LOG_LEVEL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
