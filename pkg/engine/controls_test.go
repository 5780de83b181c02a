package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phosphor/pkg/config"
)

func newTestControls(t *testing.T) *Controls {
	t.Helper()
	c, err := NewControls(config.DefaultConfig())
	require.NoError(t, err)
	c.TextDirty() // clear the initial dirty flag
	return c
}

func TestControlsDefaults(t *testing.T) {
	c := newTestControls(t)

	assert.Equal(t, 0.25, c.Slider(SliderDistortion).Value)
	assert.Equal(t, 1.0, c.Slider(SliderZoom).Value)
	assert.Equal(t, 0.05, c.Slider(SliderNoise).Value)
	assert.Equal(t, 0.15, c.Slider(SliderScanlines).Value)
	assert.Equal(t, 0.25, c.Slider(SliderVignette).Value)
	assert.Equal(t, 28.0, c.Slider(SliderFontSize).Value)
	assert.Equal(t, 1.3, c.Slider(SliderLineSpacing).Value)
	assert.Equal(t, "#33FF66", config.FormatHexColor(c.Foreground))
	assert.Equal(t, "#0A0A0A", config.FormatHexColor(c.Background))
}

func TestControlsClampConfigSeeds(t *testing.T) {
	// Hostile config values must not reach the renderer unclamped: a
	// zero zoom would divide the barrel warp by zero
	cfg := config.DefaultConfig()
	cfg.Effects.Zoom = 0
	cfg.Effects.Distortion = 99
	cfg.Effects.Noise = -3
	cfg.Text.FontSize = 10000

	c, err := NewControls(cfg)
	require.NoError(t, err)

	assert.Equal(t, c.Slider(SliderZoom).Min, c.Slider(SliderZoom).Value)
	assert.Equal(t, c.Slider(SliderDistortion).Max, c.Slider(SliderDistortion).Value)
	assert.Equal(t, c.Slider(SliderNoise).Min, c.Slider(SliderNoise).Value)
	assert.Equal(t, c.Slider(SliderFontSize).Max, c.Slider(SliderFontSize).Value)

	// Reset must restore in-bounds values, not the raw config ones
	c.Reset()
	assert.Equal(t, c.Slider(SliderZoom).Min, c.Slider(SliderZoom).Value)
}

func TestControlsZeroZoomConfigRendersFinite(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Effects.Zoom = 0

	c, err := NewControls(cfg)
	require.NoError(t, err)
	params := c.EffectParams()

	// Exact-center pixel of an odd-sized frame hits dx == dy == 0,
	// where an unclamped zoom of zero would make DistortUV return NaN
	u, v := DistortUV(0.5, 0.5, params.Distortion, params.Zoom)
	assert.False(t, u != u || v != v, "warp must stay finite")

	// Center pixel (u = v = 0.5 exactly) samples the surface, so the
	// foreground green must land there instead of garbage
	r := NewSoftwareRenderer(33, 33)
	r.UploadSurface(fullSurface(33, 33))
	out := r.RenderImage(params, 0)
	assert.Greater(t, out.RGBAAt(16, 16).G, uint8(0))
}

func TestControlsAdjustClamps(t *testing.T) {
	c := newTestControls(t)

	s := c.Slider(SliderNoise)
	for i := 0; i < 1000; i++ {
		c.Adjust(SliderNoise, 1)
	}
	assert.Equal(t, s.Max, s.Value)

	for i := 0; i < 1000; i++ {
		c.Adjust(SliderNoise, -1)
	}
	assert.Equal(t, s.Min, s.Value)

	// Unknown slider names are ignored
	c.Adjust("bogus", 1)
}

func TestControlsTextDirty(t *testing.T) {
	c := newTestControls(t)

	c.Adjust(SliderDistortion, 1)
	assert.False(t, c.TextDirty(), "effect-only changes do not need re-rasterization")

	c.Adjust(SliderFontSize, 1)
	assert.True(t, c.TextDirty())
	assert.False(t, c.TextDirty(), "reading the flag clears it")

	c.Adjust(SliderLineSpacing, -1)
	assert.True(t, c.TextDirty())
}

func TestControlsResetRestoresDefaults(t *testing.T) {
	c := newTestControls(t)

	c.Adjust(SliderDistortion, 5)
	c.Adjust(SliderZoom, -3)
	c.Adjust(SliderFontSize, 4)
	c.CyclePalette(2)
	require.NotEqual(t, 0.25, c.Slider(SliderDistortion).Value)

	c.Reset()

	assert.Equal(t, 0.25, c.Slider(SliderDistortion).Value)
	assert.Equal(t, 1.0, c.Slider(SliderZoom).Value)
	assert.Equal(t, 28.0, c.Slider(SliderFontSize).Value)
	assert.Equal(t, "#33FF66", config.FormatHexColor(c.Foreground))
	assert.Equal(t, "#0A0A0A", config.FormatHexColor(c.Background))
	assert.True(t, c.TextDirty(), "reset may have changed text controls")
}

func TestControlsCyclePalette(t *testing.T) {
	c := newTestControls(t)

	c.CyclePalette(1)
	first := c.Foreground

	seen := map[string]bool{config.FormatHexColor(first): true}
	for i := 1; i < len(palettes); i++ {
		c.CyclePalette(1)
		seen[config.FormatHexColor(c.Foreground)] = true
	}
	assert.Len(t, seen, len(palettes), "cycling visits every palette")

	c.CyclePalette(1)
	assert.Equal(t, first, c.Foreground, "full cycle wraps around")
}

func TestControlsApplyPreset(t *testing.T) {
	c := newTestControls(t)

	catalog := config.NewPresetCatalog()
	vhs, err := catalog.Get("vhs")
	require.NoError(t, err)

	require.NoError(t, c.ApplyPreset(vhs))
	assert.Equal(t, vhs.Effects.Distortion, c.Slider(SliderDistortion).Value)
	assert.Equal(t, vhs.Effects.Noise, c.Slider(SliderNoise).Value)
	assert.Equal(t, vhs.Effects.Foreground, config.FormatHexColor(c.Foreground))

	bad := &config.Preset{Name: "bad", Effects: config.EffectsConfig{Foreground: "nope"}}
	assert.Error(t, c.ApplyPreset(bad))
}

func TestControlsEffectParams(t *testing.T) {
	c := newTestControls(t)
	c.Slider(SliderDistortion).Set(0.6)
	c.Slider(SliderZoom).Set(1.5)

	p := c.EffectParams()
	assert.Equal(t, float32(0.6), p.Distortion)
	assert.Equal(t, float32(1.5), p.Zoom)
	assert.Equal(t, c.Foreground, p.Foreground)
	assert.Equal(t, c.Background, p.Background)
}

func TestControlsEffectsConfigExport(t *testing.T) {
	c := newTestControls(t)
	c.Slider(SliderScanlines).Set(0.45)

	out := c.EffectsConfig()
	assert.Equal(t, 0.45, out.Scanlines)
	assert.Equal(t, "#33FF66", out.Foreground)

	// Exported config parses back into the same controls
	cfg := config.DefaultConfig()
	cfg.Effects = out
	c2, err := NewControls(cfg)
	require.NoError(t, err)
	assert.Equal(t, c.Slider(SliderScanlines).Value, c2.Slider(SliderScanlines).Value)
}
