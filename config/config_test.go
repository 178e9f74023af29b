package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubefeed/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, 3, cfg.PerChannelLimit)
	assert.Equal(t, 48, cfg.VideoLimit)
	assert.Equal(t, 50, cfg.ChannelBatch)
	assert.Equal(t, 2*time.Second, cfg.Cooldown)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 3210, cfg.Port)
	assert.NotEmpty(t, cfg.Translator)
	assert.NotEmpty(t, cfg.Directory)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tubefeed.toml")
	content := `
[limits]
videos = 12

[fetch]
translator = "https://translator.example/convert"
cooldown_seconds = 5

[server]
port = 8080
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.VideoLimit)
	assert.Equal(t, "https://translator.example/convert", cfg.Translator)
	assert.Equal(t, 5*time.Second, cfg.Cooldown)
	assert.Equal(t, 8080, cfg.Port)

	// Everything not set in the file keeps its default
	assert.Equal(t, 3, cfg.PerChannelLimit)
	assert.Equal(t, 50, cfg.ChannelBatch)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadInvalidTomlErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tubefeed.toml")
	require.NoError(t, os.WriteFile(path, []byte("[limits\nvideos = 12"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
