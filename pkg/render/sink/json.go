package sink

import (
	"encoding/json"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	id   string
	seed uint64
}

// WithJSONID records the render ID, so a JSON export can be matched with the
// images rendered alongside it.
func WithJSONID(id string) JSONOption { return func(r *jsonRenderer) { r.id = id } }

// WithJSONSeed records the jitter seed, enabling reproducible re-rendering of
// mixed layouts.
func WithJSONSeed(seed uint64) JSONOption { return func(r *jsonRenderer) { r.seed = seed } }

type jsonOutput struct {
	ID         string          `json:"id,omitempty"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Background string          `json:"background"`
	Mode       string          `json:"mode"`
	Density    int             `json:"density"`
	Size       int             `json:"size"`
	Spacing    float64         `json:"spacing_hint"`
	Seed       uint64          `json:"seed,omitempty"`
	Glyphs     []string        `json:"glyphs"`
	Placements []jsonPlacement `json:"placements"`
}

type jsonPlacement struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Index int     `json:"index"`
	Glyph string  `json:"glyph"`
}

// RenderJSON exports the scene as a pretty-printed JSON document. The spacing
// hint is the value the density control maps to; no layout mode consumes it.
func RenderJSON(s Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	c := s.Config
	out := jsonOutput{
		ID:         r.id,
		Width:      c.Width,
		Height:     c.Height,
		Background: c.Background,
		Mode:       c.Mode.String(),
		Density:    c.Density,
		Size:       c.Size,
		Spacing:    c.Params(nil).Spacing(),
		Seed:       r.seed,
		Glyphs:     c.Glyphs,
		Placements: make([]jsonPlacement, len(s.Placements)),
	}
	for i, p := range s.Placements {
		out.Placements[i] = jsonPlacement{X: p.X, Y: p.Y, Size: p.Size, Index: p.GlyphIndex, Glyph: c.Glyph(p)}
	}
	return json.MarshalIndent(out, "", "  ")
}
