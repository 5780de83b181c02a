package engine

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullSurface returns a surface with full glyph coverage everywhere
func fullSurface(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func flatParams() EffectParams {
	return EffectParams{
		Zoom:       1,
		Foreground: [3]float32{1, 1, 1},
		Background: [3]float32{0, 0, 0},
	}
}

func TestSoftwareRendererIdentity(t *testing.T) {
	// No distortion or effects: a fully covered surface renders as
	// solid foreground
	r := NewSoftwareRenderer(64, 64)
	r.UploadSurface(fullSurface(64, 64))

	out := r.RenderImage(flatParams(), 0)
	for _, p := range []image.Point{{32, 32}, {1, 1}, {62, 62}, {5, 50}} {
		c := out.RGBAAt(p.X, p.Y)
		assert.Equal(t, uint8(255), c.R, "pixel %v", p)
		assert.Equal(t, uint8(255), c.G, "pixel %v", p)
		assert.Equal(t, uint8(255), c.B, "pixel %v", p)
	}
}

func TestSoftwareRendererBarrelPushesCornersOffTube(t *testing.T) {
	r := NewSoftwareRenderer(64, 64)
	r.UploadSurface(fullSurface(64, 64))

	params := flatParams()
	params.Distortion = 1.5

	out := r.RenderImage(params, 0)

	// The center is a fixed point and stays on the surface
	assert.Equal(t, uint8(255), out.RGBAAt(32, 32).R)

	// Corners warp outside the surface and show the backing glass
	// (dimmed background, here black)
	assert.Equal(t, uint8(0), out.RGBAAt(0, 0).R)
	assert.Equal(t, uint8(0), out.RGBAAt(63, 63).R)
}

func TestSoftwareRendererScanlinesDarken(t *testing.T) {
	r := NewSoftwareRenderer(64, 64)
	r.UploadSurface(fullSurface(64, 64))

	params := flatParams()
	params.Scanlines = 0.6

	out := r.RenderImage(params, 0)

	var min, max uint8 = 255, 0
	for y := 0; y < 64; y++ {
		v := out.RGBAAt(32, y).R
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	assert.Less(t, min, max, "scanlines should modulate brightness per row")
}

func TestSoftwareRendererVignetteDarkensEdges(t *testing.T) {
	r := NewSoftwareRenderer(64, 64)
	r.UploadSurface(fullSurface(64, 64))

	params := flatParams()
	params.Vignette = 0.8

	out := r.RenderImage(params, 0)
	center := out.RGBAAt(32, 32).R
	edge := out.RGBAAt(2, 32).R
	assert.Greater(t, center, edge)
}

func TestSoftwareRendererEmptySurface(t *testing.T) {
	// No surface uploaded: everything is background
	r := NewSoftwareRenderer(32, 32)
	out := r.RenderImage(flatParams(), 0)
	assert.Equal(t, uint8(0), out.RGBAAt(16, 16).R)
}

func TestSoftwareRendererSavePNG(t *testing.T) {
	r := NewSoftwareRenderer(48, 32)
	r.UploadSurface(fullSurface(48, 32))

	require.Error(t, r.SavePNG(filepath.Join(t.TempDir(), "x.png")),
		"saving before rendering should fail")

	r.Render(flatParams(), 0)
	require.NotNil(t, r.Frame())

	path := filepath.Join(t.TempDir(), "shots", "frame.png")
	require.NoError(t, r.SavePNG(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 48, decoded.Bounds().Dx())
	assert.Equal(t, 32, decoded.Bounds().Dy())
}
