package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService()

	cfg := &Config{
		Version: 1,
		Theme:   "dracula",
		UISettings: UISettings{
			ShowGutter:     true,
			MouseEnabled:   false,
			RestoreSession: true,
		},
	}

	require.NoError(t, svc.SaveToPath(cfg, path))

	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromMissingPath(t *testing.T) {
	svc := NewConfigService()
	_, err := svc.LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadFromMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = [broken"), 0644))

	svc := NewConfigService()
	_, err := svc.LoadFromPath(path)
	assert.Error(t, err)
}

func TestLoadFillsDefaultTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 1\n"), 0644))

	svc := NewConfigService()
	cfg, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Theme, cfg.Theme)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1, cfg.Version)
	assert.NotEmpty(t, cfg.Theme)
	assert.True(t, cfg.UISettings.ShowGutter)
	assert.True(t, cfg.UISettings.MouseEnabled)
	assert.True(t, cfg.UISettings.RestoreSession)
}
