package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
)

func testFace(t *testing.T, size float64) font.Face {
	t.Helper()
	tr, err := NewTextRasterizer()
	require.NoError(t, err)
	face, err := tr.face(size)
	require.NoError(t, err)
	return face
}

func TestWrapTextNeverExceedsMaxWidth(t *testing.T) {
	face := testFace(t, 16)
	text := "the quick brown fox jumps over the lazy dog and keeps on running into the night"
	maxWidth := 120

	lines := WrapText(face, text, maxWidth)
	require.NotEmpty(t, lines)

	for _, line := range lines {
		if strings.Contains(line, " ") {
			assert.LessOrEqual(t, MeasureString(face, line), maxWidth,
				"wrapped line %q exceeds max width", line)
		}
	}

	// No words lost
	assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(lines, " ")))
}

func TestWrapTextSingleLongWord(t *testing.T) {
	face := testFace(t, 16)
	word := "pneumonoultramicroscopicsilicovolcanoconiosis"
	require.Greater(t, MeasureString(face, word), 40)

	lines := WrapText(face, "tiny "+word+" tiny", 40)

	// The overlong word stands alone on its line; it is the only line
	// allowed to exceed the width
	found := false
	for _, line := range lines {
		if line == word {
			found = true
		} else {
			assert.LessOrEqual(t, MeasureString(face, line), 40, "line %q", line)
		}
	}
	assert.True(t, found, "long word should occupy its own line")
}

func TestWrapTextExplicitNewlines(t *testing.T) {
	face := testFace(t, 16)

	lines := WrapText(face, "one\n\ntwo", 10000)
	assert.Equal(t, []string{"one", "", "two"}, lines)
}

func TestWrapTextEmpty(t *testing.T) {
	face := testFace(t, 16)
	assert.Equal(t, []string{""}, WrapText(face, "", 100))
}

func TestRasterizeSurface(t *testing.T) {
	tr, err := NewTextRasterizer()
	require.NoError(t, err)

	opts := RasterOptions{Width: 320, Height: 200, FontSize: 24, LineSpacing: 1.3, Padding: 10}
	img, err := tr.Rasterize("hello, tube", opts)
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 320, bounds.Dx())
	assert.Equal(t, 200, bounds.Dy())

	// Some glyph coverage must have landed on the surface
	var covered int
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			covered++
		}
	}
	assert.Greater(t, covered, 0, "rasterized text should produce coverage")
}

func TestRasterizeInvalidOptions(t *testing.T) {
	tr, err := NewTextRasterizer()
	require.NoError(t, err)

	_, err = tr.Rasterize("x", RasterOptions{Width: 0, Height: 100, FontSize: 12})
	assert.Error(t, err)

	_, err = tr.Rasterize("x", RasterOptions{Width: 100, Height: 100, FontSize: 0})
	assert.Error(t, err)
}

func TestFaceCache(t *testing.T) {
	tr, err := NewTextRasterizer()
	require.NoError(t, err)

	a, err := tr.face(18)
	require.NoError(t, err)
	b, err := tr.face(18)
	require.NoError(t, err)
	assert.Same(t, a, b, "faces should be cached per size")
}
