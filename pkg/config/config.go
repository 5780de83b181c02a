package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config represents the main configuration
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Text    TextConfig    `yaml:"text"`
	Effects EffectsConfig `yaml:"effects"`
	Audio   AudioConfig   `yaml:"audio"`
}

// WindowConfig contains window-related configuration
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FrameRate  int  `yaml:"framerate"`
}

// TextConfig controls how text is rasterized onto the surface
type TextConfig struct {
	FontSize    float64 `yaml:"font_size"`    // Glyph size in pixels
	LineSpacing float64 `yaml:"line_spacing"` // Multiplier on the face line height
	Padding     int     `yaml:"padding"`      // Margin around the text block, pixels
}

// EffectsConfig contains the CRT shader control values
type EffectsConfig struct {
	Distortion float64 `yaml:"distortion"` // Barrel distortion coefficient
	Zoom       float64 `yaml:"zoom"`
	Noise      float64 `yaml:"noise"`      // Film noise amount
	Scanlines  float64 `yaml:"scanlines"`  // Scanline darkening intensity
	Vignette   float64 `yaml:"vignette"`   // Edge darkening amount
	Foreground string  `yaml:"foreground"` // Text color, #RRGGBB
	Background string  `yaml:"background"` // Screen color, #RRGGBB
}

// AudioConfig contains audio-related configuration
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
	HumHz   float64 `yaml:"hum_hz"` // Base frequency of the CRT hum
}

// DefaultConfig creates a default configuration. These values are the
// documented defaults that resetting the controls restores.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1024,
			Height:     768,
			Fullscreen: false,
			VSync:      true,
			FrameRate:  60,
		},
		Text: TextConfig{
			FontSize:    28,
			LineSpacing: 1.3,
			Padding:     48,
		},
		Effects: EffectsConfig{
			Distortion: 0.25,
			Zoom:       1.0,
			Noise:      0.05,
			Scanlines:  0.15,
			Vignette:   0.25,
			Foreground: "#33FF66",
			Background: "#0A0A0A",
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  0.4,
			HumHz:   60,
		},
	}
}

// LoadConfig loads the configuration from a file
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %v", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return config, fmt.Errorf("error parsing config: %v", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %v", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %v", err)
	}

	return nil
}
