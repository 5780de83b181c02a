// Package noise provides the CPU twin of the hash noise used by the
// CRT fragment shader. The software renderer and the hum synthesizer
// sample it so that offline output matches what the GPU produces.
package noise

import (
	"github.com/chewxy/math32"
)

// Rand2 is the classic shader one-liner
// fract(sin(dot(p, vec2(12.9898, 78.233))) * 43758.5453)
// evaluated with float32 arithmetic. Deterministic, range [0,1).
func Rand2(x, y float32) float32 {
	s := math32.Sin(x*12.9898+y*78.233) * 43758.5453
	return s - math32.Floor(s)
}

// Value2D evaluates smoothed value noise over the unit lattice, the
// same construction the fragment shader uses: bilinear mix of Rand2 at
// the four surrounding lattice points with smoothstep weights, squared.
// Range [0,1).
func Value2D(x, y float32) float32 {
	ix := math32.Floor(x)
	iy := math32.Floor(y)
	fx := x - ix
	fy := y - iy

	// Smoothstep fade
	ux := fx * fx * (3 - 2*fx)
	uy := fy * fy * (3 - 2*fy)

	a := Rand2(ix, iy)
	b := Rand2(ix+1, iy)
	c := Rand2(ix, iy+1)
	d := Rand2(ix+1, iy+1)

	res := mix(mix(a, b, ux), mix(c, d, ux), uy)
	return res * res
}

func mix(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Generator produces seeded noise streams. The seed offsets the lattice
// so independent consumers do not correlate.
type Generator struct {
	offX float32
	offY float32
}

// NewGenerator creates a noise generator for the given seed
func NewGenerator(seed int64) *Generator {
	// Spread seeds far apart on the lattice
	return &Generator{
		offX: float32(seed%7919) * 13.7,
		offY: float32(seed%104729) * 7.3,
	}
}

// Value2D evaluates seeded value noise
func (g *Generator) Value2D(x, y float32) float32 {
	return Value2D(x+g.offX, y+g.offY)
}

// FBM2D sums octaves of value noise with the given lacunarity and gain,
// normalized back to [0,1)
func (g *Generator) FBM2D(x, y float32, octaves int, lacunarity, gain float32) float32 {
	var result, max float32
	amplitude := float32(1)
	frequency := float32(1)

	for i := 0; i < octaves; i++ {
		result += g.Value2D(x*frequency, y*frequency) * amplitude
		max += amplitude
		amplitude *= gain
		frequency *= lacunarity
	}

	return result / max
}
