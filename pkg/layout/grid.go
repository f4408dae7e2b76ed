package layout

import "math"

func grid(p Params) []Placement {
	spacing := max(p.BaseSize*1.8, 80)
	return uniform(p, spacing, p.BaseSize)
}

func large(p Params) []Placement {
	size := p.BaseSize * 1.5
	spacing := max(size*1.6, 100)
	return uniform(p, spacing, size)
}

// uniform scans the canvas column by column and emits one glyph per cell,
// cycling through the glyphs in scan order.
func uniform(p Params, spacing, size float64) []Placement {
	var out []Placement
	i := 0
	for x := spacing / 2; x < p.Width; x += spacing {
		for y := spacing / 2; y < p.Height; y += spacing {
			out = append(out, Placement{X: x, Y: y, Size: size, GlyphIndex: i % p.GlyphCount})
			i++
		}
	}
	return out
}

func mixed(p Params) []Placement {
	spacing := max(p.BaseSize*1.4, 70)
	rng := p.source()

	var out []Placement
	i := 0
	for x := spacing / 2; x < p.Width; x += spacing {
		for y := spacing / 2; y < p.Height; y += spacing {
			size := mixedSize(p.BaseSize, x, y, spacing)
			out = append(out, Placement{
				X:          x + jitter(rng),
				Y:          y + jitter(rng),
				Size:       size,
				GlyphIndex: mixedGlyph(i, p.GlyphCount, size > p.BaseSize),
			})
			i++
		}
	}
	return out
}

// mixedSize tiles the canvas with a 3x3 pattern: cells on the even diagonal
// are enlarged, the center of each tile is shrunk, the rest keep the base size.
func mixedSize(base, x, y, spacing float64) float64 {
	gx := int(math.Floor(x/spacing)) % 3
	gy := int(math.Floor(y/spacing)) % 3
	switch {
	case (gx+gy)%2 == 0:
		return base * 1.4
	case gx == 1 && gy == 1:
		return base * 0.7
	default:
		return base
	}
}

// mixedGlyph keeps enlarged cells on the first three glyphs.
func mixedGlyph(i, n int, enlarged bool) int {
	switch {
	case n <= 1:
		return 0
	case enlarged:
		return i % min(n, 3)
	default:
		return (i + 2) % n
	}
}

func jitter(rng Source) float64 {
	return (rng.Float64() - 0.5) * 2 * MaxJitter
}
