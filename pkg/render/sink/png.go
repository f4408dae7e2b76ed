package sink

import (
	"bytes"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"

	"github.com/matzehuels/emojiwall/pkg/fonts"
	"github.com/matzehuels/emojiwall/pkg/wallpaper"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	font  *fonts.Font
	ink   color.Color
	scale float64
}

// WithFont sets the font used to draw glyphs (default: the embedded font).
// Parsed fonts are read-only and may be shared by concurrent renders.
func WithFont(f *fonts.Font) PNGOption {
	return func(r *pngRenderer) { r.font = f }
}

// WithInk sets the glyph colour. The default is InkFor(background).
func WithInk(c color.Color) PNGOption {
	return func(r *pngRenderer) { r.ink = c }
}

// WithScale sets the pixel density (default 1.0; 3.0 matches a phone screen).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// InkFor returns the default glyph colour for a background: the background
// blended 65% toward black in Lab space.
func InkFor(bg colorful.Color) colorful.Color {
	return bg.BlendLab(colorful.Color{}, 0.65).Clamped()
}

// drawCentered draws text with the middle of its em box on (x, y).
func drawCentered(dc *gg.Context, face font.Face, text string, x, y float64) {
	dc.SetFontFace(face)
	m := face.Metrics()
	w, _ := dc.MeasureString(text)
	baseline := y + float64(m.Ascent-m.Descent)/64/2
	dc.DrawString(text, x-w/2, baseline)
}

// RenderPNG rasterizes the scene.
func RenderPNG(s Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.font == nil {
		r.font = fonts.Embedded()
	}
	faces := fonts.NewFaces(r.font)

	bg, err := wallpaper.ParseColor(s.Config.Background)
	if err != nil {
		return nil, err
	}
	if r.ink == nil {
		r.ink = InkFor(bg)
	}

	w := int(math.Ceil(float64(s.Config.Width) * r.scale))
	h := int(math.Ceil(float64(s.Config.Height) * r.scale))
	dc := gg.NewContext(w, h)
	dc.SetColor(bg)
	dc.Clear()

	dc.SetColor(r.ink)
	for _, p := range s.Placements {
		drawCentered(dc, faces.Face(p.Size*r.scale), s.Config.Glyph(p), p.X*r.scale, p.Y*r.scale)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
