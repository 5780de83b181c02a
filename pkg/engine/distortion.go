package engine

import (
	"github.com/chewxy/math32"

	"phosphor/internal/noise"
)

// CPU mirrors of the fragment shader math. The software renderer uses
// these for screenshots, and they keep the warp testable without a GL
// context.

// DistortUV applies the barrel warp to a UV coordinate in [0,1]².
// Displacement from center grows with the square of the distance, so
// (0.5, 0.5) maps to itself and the warp is radially monotonic for
// non-negative distortion.
func DistortUV(u, v, distortion, zoom float32) (float32, float32) {
	dx := u - 0.5
	dy := v - 0.5
	r2 := dx*dx + dy*dy
	scale := (1 + distortion*r2) / zoom
	return 0.5 + dx*scale, 0.5 + dy*scale
}

// ScanlineFactor returns the per-row brightness multiplier for a UV row
// on a surface of the given pixel height
func ScanlineFactor(v float32, heightPx int, intensity float32) float32 {
	if intensity <= 0 {
		return 1
	}
	scan := math32.Sin(v * float32(heightPx) * math32.Pi)
	return 1 - intensity*0.5*(1+scan)
}

// VignetteFactor returns the radial darkening multiplier at a UV
// coordinate
func VignetteFactor(u, v, amount float32) float32 {
	dx := u - 0.5
	dy := v - 0.5
	dist := math32.Sqrt(dx*dx+dy*dy) * 2
	f := 1 - dist*dist*amount
	if f < 0 {
		return 0
	}
	return f
}

// NoiseOffset returns the signed film-noise contribution at a UV
// coordinate for the given frame time, matching the shader's sampling
// of the value-noise lattice
func NoiseOffset(u, v float32, width, height int, amount, t float32) float32 {
	if amount <= 0 {
		return 0
	}
	n := noise.Value2D(u*float32(width)*0.25+t*60, v*float32(height)*0.25+t*60)
	return (n - 0.5) * amount
}
