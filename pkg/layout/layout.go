package layout

import (
	"math/rand/v2"
)

// MaxJitter is the largest offset, in canvas units, that [Mixed] applies to
// a placement along either axis.
const MaxJitter = 5.0

// Placement is one glyph drawn centered on (X, Y) with a font size of Size.
type Placement struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Size       float64 `json:"size"`
	GlyphIndex int     `json:"glyph"`
}

// Source supplies uniform random numbers in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// Params is the input to [Generate].
type Params struct {
	Width      float64 // canvas width
	Height     float64 // canvas height
	BaseSize   float64 // base glyph size in canvas units
	Density    int     // user density control, see Spacing
	GlyphCount int     // number of distinct glyphs to cycle through
	Rand       Source  // jitter source for Mixed; nil uses the global generator
}

// Spacing returns the generic spacing hint max(BaseSize*1.5, 100-Density).
// None of the modes consume it: each derives its own spacing from BaseSize.
// It is kept so callers can report the value the density control maps to.
func (p Params) Spacing() float64 {
	return max(p.BaseSize*1.5, float64(100-p.Density))
}

func (p Params) empty() bool {
	return p.Width <= 0 || p.Height <= 0 || p.BaseSize <= 0 || p.GlyphCount < 1
}

func (p Params) inBounds(x, y float64) bool {
	return x >= 0 && x <= p.Width && y >= 0 && y <= p.Height
}

func (p Params) center() (float64, float64) {
	return p.Width / 2, p.Height / 2
}

func (p Params) source() Source {
	if p.Rand == nil {
		return globalSource{}
	}
	return p.Rand
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// NewSeededSource returns a reproducible source backed by PCG.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Generate returns the placements for mode. It returns nil for an unknown
// mode or for params that cannot produce any placement.
func Generate(mode Mode, p Params) []Placement {
	if p.empty() {
		return nil
	}
	switch mode {
	case Grid:
		return grid(p)
	case Large:
		return large(p)
	case Mixed:
		return mixed(p)
	case Radial:
		return radial(p)
	case Spiral:
		return spiral(p)
	default:
		return nil
	}
}
