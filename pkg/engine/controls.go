package engine

import (
	"fmt"
	"strings"

	"phosphor/internal/util"
	"phosphor/pkg/config"
)

// Slider names
const (
	SliderDistortion  = "distortion"
	SliderZoom        = "zoom"
	SliderNoise       = "noise"
	SliderScanlines   = "scanlines"
	SliderVignette    = "vignette"
	SliderFontSize    = "font_size"
	SliderLineSpacing = "line_spacing"
)

// Slider is a single bounded control value
type Slider struct {
	Name    string
	Min     float64
	Max     float64
	Step    float64
	Default float64
	Value   float64
}

// Adjust moves the slider by the given number of steps, clamped to its
// bounds
func (s *Slider) Adjust(steps int) {
	s.Set(s.Value + float64(steps)*s.Step)
}

// Set sets the slider value, clamped to its bounds
func (s *Slider) Set(v float64) {
	s.Value = util.Clamp(v, s.Min, s.Max)
}

// palettes are the fg/bg pairs the color control cycles through
var palettes = [][2]string{
	{"#33FF66", "#0A0A0A"}, // green phosphor
	{"#FFB000", "#140A00"}, // amber phosphor
	{"#E6E6E6", "#101010"}, // paper white
	{"#C8D8FF", "#05050A"}, // cool blue
	{"#FF5555", "#120505"}, // alert red
}

// Controls holds every live parameter the user can drive. It is the
// keyboard stand-in for the original slider/color-picker panel.
type Controls struct {
	sliders map[string]*Slider
	order   []string

	Foreground [3]float32
	Background [3]float32

	defaultFg [3]float32
	defaultBg [3]float32

	paletteIndex int
	textDirty    bool
}

// NewControls builds the control set from a configuration. The config
// values become both current values and the documented defaults that
// Reset restores.
func NewControls(cfg *config.Config) (*Controls, error) {
	fg, err := config.ParseHexColor(cfg.Effects.Foreground)
	if err != nil {
		return nil, fmt.Errorf("bad foreground color: %v", err)
	}
	bg, err := config.ParseHexColor(cfg.Effects.Background)
	if err != nil {
		return nil, fmt.Errorf("bad background color: %v", err)
	}

	c := &Controls{
		sliders:      make(map[string]*Slider),
		Foreground:   fg,
		Background:   bg,
		defaultFg:    fg,
		defaultBg:    bg,
		paletteIndex: -1,
		textDirty:    true,
	}

	add := func(name string, min, max, step, def float64) {
		// Config values are untrusted; keep seeds inside the bounds
		// Set and Adjust enforce
		def = util.Clamp(def, min, max)
		c.sliders[name] = &Slider{Name: name, Min: min, Max: max, Step: step, Default: def, Value: def}
		c.order = append(c.order, name)
	}

	add(SliderDistortion, -0.5, 1.5, 0.05, cfg.Effects.Distortion)
	add(SliderZoom, 0.5, 3.0, 0.05, cfg.Effects.Zoom)
	add(SliderNoise, 0, 1, 0.02, cfg.Effects.Noise)
	add(SliderScanlines, 0, 1, 0.05, cfg.Effects.Scanlines)
	add(SliderVignette, 0, 1, 0.05, cfg.Effects.Vignette)
	add(SliderFontSize, 8, 96, 2, cfg.Text.FontSize)
	add(SliderLineSpacing, 0.8, 3.0, 0.1, cfg.Text.LineSpacing)

	return c, nil
}

// Slider returns the named slider, or nil if it does not exist
func (c *Controls) Slider(name string) *Slider {
	return c.sliders[name]
}

// Adjust moves the named slider by the given number of steps
func (c *Controls) Adjust(name string, steps int) {
	s := c.sliders[name]
	if s == nil {
		return
	}
	s.Adjust(steps)
	if name == SliderFontSize || name == SliderLineSpacing {
		c.textDirty = true
	}
}

// Reset restores every control to its default value, including colors
func (c *Controls) Reset() {
	for _, s := range c.sliders {
		s.Value = s.Default
	}
	c.paletteIndex = -1
	c.Foreground = c.defaultFg
	c.Background = c.defaultBg
	c.textDirty = true
}

// CyclePalette advances the fg/bg color pair
func (c *Controls) CyclePalette(dir int) {
	c.paletteIndex = (c.paletteIndex + dir + len(palettes)) % len(palettes)
	c.Foreground, _ = config.ParseHexColor(palettes[c.paletteIndex][0])
	c.Background, _ = config.ParseHexColor(palettes[c.paletteIndex][1])
}

// ApplyPreset sets the effect controls from a preset
func (c *Controls) ApplyPreset(preset *config.Preset) error {
	fg, err := config.ParseHexColor(preset.Effects.Foreground)
	if err != nil {
		return fmt.Errorf("preset %q: %v", preset.Name, err)
	}
	bg, err := config.ParseHexColor(preset.Effects.Background)
	if err != nil {
		return fmt.Errorf("preset %q: %v", preset.Name, err)
	}

	c.sliders[SliderDistortion].Set(preset.Effects.Distortion)
	c.sliders[SliderZoom].Set(preset.Effects.Zoom)
	c.sliders[SliderNoise].Set(preset.Effects.Noise)
	c.sliders[SliderScanlines].Set(preset.Effects.Scanlines)
	c.sliders[SliderVignette].Set(preset.Effects.Vignette)
	c.Foreground = fg
	c.Background = bg
	return nil
}

// EffectParams snapshots the current shader control values
func (c *Controls) EffectParams() EffectParams {
	return EffectParams{
		Distortion: float32(c.sliders[SliderDistortion].Value),
		Zoom:       float32(c.sliders[SliderZoom].Value),
		Noise:      float32(c.sliders[SliderNoise].Value),
		Scanlines:  float32(c.sliders[SliderScanlines].Value),
		Vignette:   float32(c.sliders[SliderVignette].Value),
		Foreground: c.Foreground,
		Background: c.Background,
	}
}

// RasterOptions builds the rasterization options for the current text
// controls and surface size
func (c *Controls) RasterOptions(width, height, padding int) RasterOptions {
	return RasterOptions{
		Width:       width,
		Height:      height,
		FontSize:    c.sliders[SliderFontSize].Value,
		LineSpacing: c.sliders[SliderLineSpacing].Value,
		Padding:     padding,
	}
}

// TextDirty reports whether the text surface must be re-rasterized,
// clearing the flag
func (c *Controls) TextDirty() bool {
	dirty := c.textDirty
	c.textDirty = false
	return dirty
}

// MarkTextDirty forces a re-rasterization on the next frame
func (c *Controls) MarkTextDirty() {
	c.textDirty = true
}

// EffectsConfig exports the current effect values, for preset saving
func (c *Controls) EffectsConfig() config.EffectsConfig {
	return config.EffectsConfig{
		Distortion: c.sliders[SliderDistortion].Value,
		Zoom:       c.sliders[SliderZoom].Value,
		Noise:      c.sliders[SliderNoise].Value,
		Scanlines:  c.sliders[SliderScanlines].Value,
		Vignette:   c.sliders[SliderVignette].Value,
		Foreground: config.FormatHexColor(c.Foreground),
		Background: config.FormatHexColor(c.Background),
	}
}

// Describe returns a one-line summary of the current values, for the log
func (c *Controls) Describe() string {
	var b strings.Builder
	for i, name := range c.order {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s=%.2f", name, c.sliders[name].Value)
	}
	fmt.Fprintf(&b, " fg=%s bg=%s", config.FormatHexColor(c.Foreground), config.FormatHexColor(c.Background))
	return b.String()
}
