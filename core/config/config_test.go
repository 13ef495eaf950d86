package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ",", cfg.Reconcile.Delimiter)
	assert.Equal(t, 1, cfg.Reconcile.Header)
	assert.Equal(t, 0.0, cfg.Reconcile.Tolerance)
	assert.Equal(t, "reconcile", cfg.Reconcile.Prefix)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "data", cfg.Server.DataDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.False(t, cfg.Database.Export)
	assert.False(t, cfg.Storage.Upload)
	assert.Equal(t, 30, cfg.Storage.TimeoutSeconds)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("RECONCILE_DELIMITER", ";")
	t.Setenv("RECONCILE_HEADER", "0")
	t.Setenv("RECONCILE_TOLERANCE", "0.25")
	t.Setenv("STORAGE_UPLOAD", "true")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ";", cfg.Reconcile.Delimiter)
	assert.Equal(t, 0, cfg.Reconcile.Header)
	assert.Equal(t, 0.25, cfg.Reconcile.Tolerance)
	assert.True(t, cfg.Storage.Upload)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RECONCILE_PREFIX=out/run\nSERVER_API_KEY=secret\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("RECONCILE_PREFIX")
		os.Unsetenv("SERVER_API_KEY")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "out/run", cfg.Reconcile.Prefix)
	assert.Equal(t, "secret", cfg.Server.ApiKey)
}
