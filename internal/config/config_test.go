package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "local.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	if _, set := os.LookupEnv("PORT"); !set {
		assert.Equal(t, 3000, cfg.Port)
	}
	if _, set := os.LookupEnv("STORAGE_PATH"); !set {
		assert.Equal(t, "promise_keepers.db", cfg.StoragePath)
	}
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
}

func TestLoad_PortFromEnv(t *testing.T) {
	t.Setenv("PORT", "8081")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, ":8081", cfg.HTTPServer.Addr())
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	path := writeConfig(t, `
env: prod
storage_path: /tmp/registrations.db
http_server:
  host: 127.0.0.1
  port: 9090
  shutdown_timeout: 2s
cors:
  allowed_origins:
    - https://dance.example.com
`)

	t.Run("file values", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "prod", cfg.Env)
		assert.Equal(t, "/tmp/registrations.db", cfg.StoragePath)
		assert.Equal(t, "127.0.0.1:9090", cfg.HTTPServer.Addr())
		assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, []string{"https://dance.example.com"}, cfg.CORS.AllowedOrigins)
	})

	t.Run("env wins over file", func(t *testing.T) {
		t.Setenv("PORT", "4000")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 4000, cfg.Port)
	})
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "70000")

	_, err := Load("")
	require.ErrorIs(t, err, ErrInvalidPort)
}
