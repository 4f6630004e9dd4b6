package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedVars = []string{
	"DATABASE_URL", "JWT_SECRET", "SERVER_ADDRESS", "MIGRATIONS_PATH", "APP_ENV",
	"LOG_LEVEL", "REDIS_ADDRESS", "REDIS_USERNAME", "REDIS_PASSWORD", "CACHE_TTL",
	"MQTT_BROKER_URL", "MQTT_CLIENT_ID", "TIMEZONE", "TIMELINE_MAX_STEPS",
}

// clearEnv blanks every variable Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range managedVars {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func noDotenv(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/medusa")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load(noDotenv(t))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "./migrations", cfg.MigrationsPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "medusa-scheduler", cfg.MQTTClientID)
	assert.Equal(t, 10000, cfg.TimelineMaxSteps)
	assert.Empty(t, cfg.RedisAddress)
	assert.Empty(t, cfg.MQTTBrokerURL)
	assert.Nil(t, cfg.Location)
	assert.False(t, cfg.Development())
}

func TestLoad_RequiredVars(t *testing.T) {
	clearEnv(t)
	_, err := Load(noDotenv(t))
	assert.EqualError(t, err, "DATABASE_URL is required")

	t.Setenv("DATABASE_URL", "postgres://localhost/medusa")
	_, err = Load(noDotenv(t))
	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/medusa")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_ENV", "development")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("TIMEZONE", "America/New_York")
	t.Setenv("TIMELINE_MAX_STEPS", "500")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg, err := Load(noDotenv(t))
	require.NoError(t, err)

	assert.True(t, cfg.Development())
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	require.NotNil(t, cfg.Location)
	assert.Equal(t, "America/New_York", cfg.Location.String())
	assert.Equal(t, 500, cfg.TimelineMaxSteps)
	assert.Equal(t, "localhost:6379", cfg.RedisAddress)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"CACHE_TTL", "soon"},
		{"CACHE_TTL", "-5s"},
		{"TIMELINE_MAX_STEPS", "many"},
		{"TIMEZONE", "Mars/Olympus_Mons"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DATABASE_URL", "postgres://localhost/medusa")
			t.Setenv("JWT_SECRET", "secret")
			t.Setenv(tt.key, tt.value)

			_, err := Load(noDotenv(t))
			assert.ErrorContains(t, err, tt.key)
		})
	}
}

func TestLoad_DotenvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_URL=postgres://from-file/medusa\nJWT_SECRET=file-secret\nSERVER_ADDRESS=:9090\n"), 0o600))
	t.Setenv("SERVER_ADDRESS", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://from-file/medusa", cfg.DatabaseURL)
	assert.Equal(t, "file-secret", cfg.JWTSecret)
	assert.Equal(t, ":7070", cfg.ServerAddress)
}
