package engine

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"phosphor/internal/util"
)

// SoftwareRenderer applies the same barrel/CRT math as the fragment
// shader on the CPU. It backs the screenshot feature and the one-shot
// render mode, neither of which needs a GL context.
type SoftwareRenderer struct {
	width   int
	height  int
	surface *image.RGBA
	frame   *image.RGBA
}

// NewSoftwareRenderer creates a CPU renderer with the given output size
func NewSoftwareRenderer(width, height int) *SoftwareRenderer {
	return &SoftwareRenderer{
		width:  width,
		height: height,
	}
}

// UploadSurface replaces the text surface
func (r *SoftwareRenderer) UploadSurface(img *image.RGBA) {
	r.surface = img
}

// Render renders a frame and keeps it for Frame / SavePNG
func (r *SoftwareRenderer) Render(params EffectParams, elapsed float32) {
	r.frame = r.RenderImage(params, elapsed)
}

// Frame returns the last rendered frame, or nil
func (r *SoftwareRenderer) Frame() *image.RGBA {
	return r.frame
}

// RenderImage renders one frame to a new RGBA image
func (r *SoftwareRenderer) RenderImage(params EffectParams, elapsed float32) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, r.width, r.height))

	// Backing glass outside the tube face
	glass := [3]float32{
		params.Background[0] * 0.4,
		params.Background[1] * 0.4,
		params.Background[2] * 0.4,
	}

	for y := 0; y < r.height; y++ {
		v := (float32(y) + 0.5) / float32(r.height)
		for x := 0; x < r.width; x++ {
			u := (float32(x) + 0.5) / float32(r.width)

			su, sv := DistortUV(u, v, params.Distortion, params.Zoom)

			var rgb [3]float32
			if su < 0 || su > 1 || sv < 0 || sv > 1 {
				rgb = glass
			} else {
				mask := r.sampleMask(su, sv)
				for i := 0; i < 3; i++ {
					rgb[i] = params.Background[i] + mask*(params.Foreground[i]-params.Background[i])
				}

				scan := ScanlineFactor(sv, r.height, params.Scanlines)
				n := NoiseOffset(su, sv, r.width, r.height, params.Noise, elapsed)
				vig := VignetteFactor(su, sv, params.Vignette)
				for i := 0; i < 3; i++ {
					rgb[i] = (rgb[i]*scan + n) * vig
				}
			}

			idx := out.PixOffset(x, y)
			for i := 0; i < 3; i++ {
				out.Pix[idx+i] = uint8(util.Clamp32(rgb[i], 0, 1)*255 + 0.5)
			}
			out.Pix[idx+3] = 255
		}
	}

	return out
}

// sampleMask bilinearly samples the text surface coverage at a UV
// coordinate, matching the GPU's linear filtering
func (r *SoftwareRenderer) sampleMask(u, v float32) float32 {
	if r.surface == nil {
		return 0
	}

	bounds := r.surface.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	fx := u*float32(w) - 0.5
	fy := v*float32(h) - 0.5

	x0 := int(fx)
	y0 := int(fy)
	tx := fx - float32(x0)
	ty := fy - float32(y0)
	if fx < 0 {
		x0, tx = 0, 0
	}
	if fy < 0 {
		y0, ty = 0, 0
	}

	alpha := func(x, y int) float32 {
		if x >= w {
			x = w - 1
		}
		if y >= h {
			y = h - 1
		}
		return float32(r.surface.Pix[r.surface.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)+3]) / 255
	}

	top := alpha(x0, y0) + tx*(alpha(x0+1, y0)-alpha(x0, y0))
	bot := alpha(x0, y0+1) + tx*(alpha(x0+1, y0+1)-alpha(x0, y0+1))
	return top + ty*(bot-top)
}

// UpdateResolution updates the output resolution
func (r *SoftwareRenderer) UpdateResolution(width, height int) {
	r.width = width
	r.height = height
}

// Close releases resources
func (r *SoftwareRenderer) Close() {}

// SavePNG writes the last rendered frame to a PNG file, creating the
// directory if needed
func (r *SoftwareRenderer) SavePNG(path string) error {
	if r.frame == nil {
		return fmt.Errorf("no frame rendered yet")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := util.CreateDirIfNotExist(dir); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create screenshot file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, r.frame); err != nil {
		return fmt.Errorf("failed to encode screenshot: %v", err)
	}

	return nil
}
