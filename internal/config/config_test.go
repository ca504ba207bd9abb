package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Repo.Root)
	assert.Equal(t, "lg-cfg/modes.yaml", cfg.Repo.ModesConfig)
	assert.True(t, cfg.Repo.CacheEnable)
	assert.Equal(t, "stdio", cfg.Transport.Mode)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lg-render.toml")
	writeFile(t, path, `
[repo]
root = "/srv/repo"
cache_enable = false

[transport]
mode = "http"
port = "9999"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/repo", cfg.Repo.Root)
	assert.False(t, cfg.Repo.CacheEnable)
	assert.Equal(t, "http", cfg.Transport.Mode)
	assert.Equal(t, "9999", cfg.Transport.Port)
}

func TestApplyEnvOverridesFileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lg-render.toml")
	writeFile(t, path, `
[repo]
root = "/from/file"
`)

	t.Setenv("LG_RENDER_REPO_ROOT", "/from/env")
	t.Setenv("LG_RENDER_TRANSPORT", "http")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Repo.Root)
	assert.Equal(t, "http", cfg.Transport.Mode)
}

func TestLGCacheTakesPrecedenceOverLGRenderCacheEnable(t *testing.T) {
	t.Setenv("LG_RENDER_CACHE_ENABLE", "true")
	t.Setenv("LG_CACHE", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Repo.CacheEnable)
}

func TestValidateRejectsUnknownTransportMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lg-render.toml")
	writeFile(t, path, `
[transport]
mode = "carrier-pigeon"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transport mode")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
