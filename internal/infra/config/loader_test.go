package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tasktracker/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o644)
	require.NoError(t, err)
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_DataConfigOnly(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
[store]
backend = "sqlite"

[server]
addr = "127.0.0.1:9090"

[log]
level = "debug"
`)

	cfg, err := NewLoaderWithGlobalDir(dataDir, t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, domain.StoreBackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "tasks.db", cfg.Store.Path)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_GlobalConfigOnly(t *testing.T) {
	globalDir := t.TempDir()
	writeConfig(t, globalDir, `
[log]
level = "warn"
`)

	cfg, err := NewLoaderWithGlobalDir(t.TempDir(), globalDir).Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, domain.StoreBackendCSV, cfg.Store.Backend)
}

func TestLoader_Load_DataOverridesGlobal(t *testing.T) {
	dataDir := t.TempDir()
	globalDir := t.TempDir()
	writeConfig(t, globalDir, `
[store]
path = "global.csv"

[log]
level = "warn"
`)
	writeConfig(t, dataDir, `
[log]
level = "error"
`)

	cfg, err := NewLoaderWithGlobalDir(dataDir, globalDir).Load()
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "global.csv", cfg.Store.Path)
}

func TestLoader_Load_Warnings(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
[store]
backend = "csv"
compress = true

[metrics]
enabled = true
`)

	cfg, err := NewLoaderWithGlobalDir(dataDir, "").Load()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"unknown key in [store]: compress",
		"unknown section: metrics",
	}, cfg.Warnings)
}

func TestLoader_Load_InvalidBackend(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
[store]
backend = "postgres"
`)

	_, err := NewLoaderWithGlobalDir(dataDir, "").Load()
	assert.ErrorIs(t, err, domain.ErrInvalidStoreValue)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `[store`)

	_, err := NewLoaderWithGlobalDir(dataDir, "").Load()
	assert.Error(t, err)
}

func TestLoader_LoadData_Missing(t *testing.T) {
	_, err := NewLoaderWithGlobalDir(t.TempDir(), "").LoadData()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
