package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// DefaultFontFamily lists the colour emoji fonts of the major platforms.
const DefaultFontFamily = `'Apple Color Emoji', 'Segoe UI Emoji', 'Noto Color Emoji', sans-serif`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	fontFamily string
	title      string
}

// WithFontFamily overrides the CSS font-family used for glyphs.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

// WithTitle adds a <title> element.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG renders the scene as SVG. Glyph text is XML-escaped.
func RenderSVG(s Scene, opts ...SVGOption) []byte {
	r := svgRenderer{fontFamily: DefaultFontFamily}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := s.Config.Width, s.Config.Height
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n", w, h, w, h)
	if r.title != "" {
		buf.WriteString("  <title>")
		escape(&buf, r.title)
		buf.WriteString("</title>\n")
	}
	fmt.Fprintf(&buf, `  <rect width="%d" height="%d" fill="`, w, h)
	escape(&buf, s.Config.Background)
	buf.WriteString("\"/>\n")

	buf.WriteString(`  <g text-anchor="middle" dominant-baseline="central" font-family="`)
	escape(&buf, r.fontFamily)
	buf.WriteString("\">\n")
	for _, p := range s.Placements {
		fmt.Fprintf(&buf, `    <text x="%.2f" y="%.2f" font-size="%.2f">`, p.X, p.Y, p.Size)
		escape(&buf, s.Config.Glyph(p))
		buf.WriteString("</text>\n")
	}
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func escape(buf *bytes.Buffer, s string) {
	_ = xml.EscapeText(buf, []byte(s))
}
