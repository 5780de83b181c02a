package engine

import (
	"fmt"

	"phosphor/pkg/config"
)

// RenderToFile rasterizes the text and renders a single CRT frame to a
// PNG file using the software renderer. No window or GL context is
// created, so this works headless.
func RenderToFile(cfg *config.Config, text, outPath string) error {
	rasterizer, err := NewTextRasterizer()
	if err != nil {
		return fmt.Errorf("failed to initialize text rasterizer: %v", err)
	}

	controls, err := NewControls(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize controls: %v", err)
	}

	opts := controls.RasterOptions(cfg.Window.Width, cfg.Window.Height, cfg.Text.Padding)
	img, err := rasterizer.Rasterize(text, opts)
	if err != nil {
		return fmt.Errorf("rasterization failed: %v", err)
	}

	soft := NewSoftwareRenderer(cfg.Window.Width, cfg.Window.Height)
	soft.UploadSurface(img)
	soft.Render(controls.EffectParams(), 0)

	return soft.SavePNG(outPath)
}
