package layout

import "math"

const rayCount = 12

func radial(p Params) []Placement {
	cx, cy := p.center()
	maxRadius := max(p.Width, p.Height) * 0.7
	step := p.BaseSize * 1.2

	var out []Placement
	for ray := range rayCount {
		angle := float64(ray) * 2 * math.Pi / rayCount
		for radius := step; radius < maxRadius; radius += step {
			x := cx + math.Cos(angle)*radius
			y := cy + math.Sin(angle)*radius
			if !p.inBounds(x, y) {
				continue
			}
			idx := 0
			if p.GlyphCount > 1 {
				idx = (ray + int(math.Floor(radius/step))) % p.GlyphCount
			}
			out = append(out, Placement{
				X:          x,
				Y:          y,
				Size:       p.BaseSize * (1.2 - radius/maxRadius*0.4),
				GlyphIndex: idx,
			})
		}
	}
	return out
}

const (
	spiralAngleStep  = 0.5
	spiralRadiusStep = 2.0
)

func spiral(p Params) []Placement {
	cx, cy := p.center()
	maxRadius := min(p.Width, p.Height) * 0.4

	var out []Placement
	angle := 0.0
	for radius := p.BaseSize * 0.8; radius < maxRadius; radius += spiralRadiusStep {
		x := cx + math.Cos(angle)*radius
		y := cy + math.Sin(angle)*radius
		angle += spiralAngleStep
		if !p.inBounds(x, y) {
			continue
		}
		idx := 0
		if p.GlyphCount > 1 {
			idx = len(out) % p.GlyphCount
		}
		out = append(out, Placement{
			X:          x,
			Y:          y,
			Size:       p.BaseSize * (1.1 - radius/maxRadius*0.3),
			GlyphIndex: idx,
		})
	}
	return out
}
