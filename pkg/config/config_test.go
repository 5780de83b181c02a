package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()

	// The documented defaults that a controls reset restores
	assert.Equal(t, 0.25, cfg.Effects.Distortion)
	assert.Equal(t, 1.0, cfg.Effects.Zoom)
	assert.Equal(t, 0.05, cfg.Effects.Noise)
	assert.Equal(t, 0.15, cfg.Effects.Scanlines)
	assert.Equal(t, 0.25, cfg.Effects.Vignette)
	assert.Equal(t, "#33FF66", cfg.Effects.Foreground)
	assert.Equal(t, "#0A0A0A", cfg.Effects.Background)
	assert.Equal(t, 28.0, cfg.Text.FontSize)
	assert.Equal(t, 1.3, cfg.Text.LineSpacing)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err, "missing file should be reported")
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultConfig(), cfg, "missing file should fall back to defaults")
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Effects.Distortion = 0.7
	cfg.Effects.Foreground = "#FFB000"
	cfg.Window.Width = 640

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
