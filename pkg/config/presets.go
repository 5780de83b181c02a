package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

// Preset is a named set of effect control values
type Preset struct {
	Name    string        `yaml:"name"`
	Effects EffectsConfig `yaml:"effects"`
}

// PresetCatalog holds the known effect presets
type PresetCatalog struct {
	Presets map[string]*Preset `yaml:"presets"`
}

// NewPresetCatalog creates a catalog seeded with the built-in presets
func NewPresetCatalog() *PresetCatalog {
	catalog := &PresetCatalog{
		Presets: make(map[string]*Preset),
	}
	for _, p := range builtinPresets() {
		catalog.Presets[p.Name] = p
	}
	return catalog
}

// builtinPresets returns the presets that ship with the program
func builtinPresets() []*Preset {
	return []*Preset{
		{
			Name: "clean",
			Effects: EffectsConfig{
				Distortion: 0,
				Zoom:       1.0,
				Noise:      0,
				Scanlines:  0,
				Vignette:   0,
				Foreground: "#E6E6E6",
				Background: "#101010",
			},
		},
		{
			Name: "arcade",
			Effects: EffectsConfig{
				Distortion: 0.25,
				Zoom:       1.0,
				Noise:      0.05,
				Scanlines:  0.15,
				Vignette:   0.25,
				Foreground: "#33FF66",
				Background: "#0A0A0A",
			},
		},
		{
			Name: "vhs",
			Effects: EffectsConfig{
				Distortion: 0.35,
				Zoom:       1.05,
				Noise:      0.18,
				Scanlines:  0.30,
				Vignette:   0.40,
				Foreground: "#C8D8FF",
				Background: "#05050A",
			},
		},
		{
			Name: "amber",
			Effects: EffectsConfig{
				Distortion: 0.20,
				Zoom:       1.0,
				Noise:      0.04,
				Scanlines:  0.20,
				Vignette:   0.30,
				Foreground: "#FFB000",
				Background: "#140A00",
			},
		},
	}
}

// Add adds a new preset to the catalog. Names are case-insensitive;
// the lowercased name is the catalog key, matching Get and LoadDir.
func (pc *PresetCatalog) Add(preset *Preset) error {
	if preset.Name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	key := strings.ToLower(preset.Name)
	if _, exists := pc.Presets[key]; exists {
		return fmt.Errorf("preset %q already exists", preset.Name)
	}
	pc.Presets[key] = preset
	return nil
}

// Get looks up a preset by name
func (pc *PresetCatalog) Get(name string) (*Preset, error) {
	preset, ok := pc.Presets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (have: %s)", name, strings.Join(pc.Names(), ", "))
	}
	return preset, nil
}

// Names returns the preset names in sorted order
func (pc *PresetCatalog) Names() []string {
	names := make([]string, 0, len(pc.Presets))
	for name := range pc.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadDir loads user preset files (*.yaml) from a directory into the
// catalog. User presets may shadow built-ins of the same name.
func (pc *PresetCatalog) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("cannot read preset directory: %v", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("cannot read preset file %s: %v", path, err)
		}

		preset := &Preset{}
		if err := yaml.Unmarshal(data, preset); err != nil {
			return fmt.Errorf("cannot parse preset file %s: %v", path, err)
		}

		if preset.Name == "" {
			// Fall back to the file name
			base := entry.Name()
			preset.Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
		pc.Presets[strings.ToLower(preset.Name)] = preset
	}

	return nil
}

// SavePreset writes a single preset to a YAML file
func SavePreset(preset *Preset, filePath string) error {
	data, err := yaml.Marshal(preset)
	if err != nil {
		return fmt.Errorf("error serializing preset: %v", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing preset file: %v", err)
	}
	return nil
}
