package engine

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phosphor/pkg/config"
)

func TestRenderToFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Window.Width = 320
	cfg.Window.Height = 240

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, RenderToFile(cfg, "hello from the tube", path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())
}

func TestRenderToFileBadColors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Effects.Foreground = "chartreuse"

	err := RenderToFile(cfg, "x", filepath.Join(t.TempDir(), "out.png"))
	assert.Error(t, err)
}
