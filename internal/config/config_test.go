package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.FlushOnExit)
	assert.True(t, cfg.IsDev())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATA_DIR", "/var/lib/hms")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "/var/lib/hms", cfg.DataDir)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.IsDev())
}
