package engine

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextRasterizer renders wrapped text into an RGBA coverage surface
// ready for texture upload
type TextRasterizer struct {
	font  *opentype.Font
	faces map[int]font.Face
}

// RasterOptions controls a single rasterization pass
type RasterOptions struct {
	Width       int     // Surface width in pixels
	Height      int     // Surface height in pixels
	FontSize    float64 // Glyph size in pixels
	LineSpacing float64 // Multiplier on the face line height
	Padding     int     // Margin around the text block
}

// NewTextRasterizer creates a rasterizer using the bundled Go Regular face
func NewTextRasterizer() (*TextRasterizer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bundled font: %v", err)
	}

	return &TextRasterizer{
		font:  f,
		faces: make(map[int]font.Face),
	}, nil
}

// face returns a cached face for the given size
func (tr *TextRasterizer) face(size float64) (font.Face, error) {
	key := int(size*4 + 0.5) // quarter-pixel granularity
	if f, ok := tr.faces[key]; ok {
		return f, nil
	}

	f, err := opentype.NewFace(tr.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %v", err)
	}

	tr.faces[key] = f
	return f, nil
}

// Rasterize draws the text, word-wrapped to the surface width, into a
// new RGBA image. Glyphs are white with coverage alpha; the shader
// tints them.
func (tr *TextRasterizer) Rasterize(text string, opts RasterOptions) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", opts.Width, opts.Height)
	}
	if opts.FontSize <= 0 {
		return nil, fmt.Errorf("invalid font size %v", opts.FontSize)
	}
	if opts.LineSpacing <= 0 {
		opts.LineSpacing = 1
	}

	face, err := tr.face(opts.FontSize)
	if err != nil {
		return nil, err
	}

	maxWidth := opts.Width - 2*opts.Padding
	if maxWidth < 1 {
		maxWidth = 1
	}
	lines := WrapText(face, text, maxWidth)

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))

	metrics := face.Metrics()
	lineHeight := int(float64(metrics.Height.Ceil()) * opts.LineSpacing)
	if lineHeight < 1 {
		lineHeight = 1
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
	}

	y := opts.Padding + metrics.Ascent.Ceil()
	for _, line := range lines {
		if y-metrics.Ascent.Ceil() > opts.Height {
			break // below the surface, nothing more to draw
		}
		drawer.Dot = fixed.P(opts.Padding, y)
		drawer.DrawString(line)
		y += lineHeight
	}

	return img, nil
}

// WrapText greedily wraps text so that no produced line measures wider
// than maxWidth, unless a line consists of a single word that alone
// exceeds it. Explicit newlines are honored.
func WrapText(face font.Face, text string, maxWidth int) []string {
	var lines []string

	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if font.MeasureString(face, candidate).Ceil() <= maxWidth {
				current = candidate
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		lines = append(lines, current)
	}

	return lines
}

// MeasureString returns the advance width of s in pixels for the given
// face
func MeasureString(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}
