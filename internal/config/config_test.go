package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "docportal", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr())
	assert.Equal(t, 5, cfg.Storage.TopK)
	assert.Equal(t, "portal.message.persist", cfg.RabbitMQ.MessagePersistQueue)
	assert.Equal(t, int64(10)<<20, cfg.MaxUploadBytes())
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[app]\nport = 9090\n\n[storage]\ntop_k = 3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("STORAGE_TOP_K", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTPAddr())
	assert.Equal(t, 7, cfg.Storage.TopK, "env wins over file")
}

func TestMySQLDSN(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Contains(t, cfg.MySQLDSN(), "root:@tcp(127.0.0.1:3306)/docportal?")
}
