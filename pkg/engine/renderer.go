package engine

import "image"

// EffectParams is the per-frame snapshot of every shader control value
type EffectParams struct {
	Distortion float32
	Zoom       float32
	Noise      float32
	Scanlines  float32
	Vignette   float32
	Foreground [3]float32
	Background [3]float32
}

// Renderer defines the interface for all screen renderers
type Renderer interface {
	// UploadSurface replaces the text surface texture
	UploadSurface(img *image.RGBA)

	// Render draws the surface through the CRT effects.
	// elapsed is seconds since the renderer started, used to animate noise.
	Render(params EffectParams, elapsed float32)

	// UpdateResolution updates the output resolution
	UpdateResolution(width, height int)

	// Close releases resources
	Close()
}
