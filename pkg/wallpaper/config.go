package wallpaper

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/emojiwall/pkg/errors"
	"github.com/matzehuels/emojiwall/pkg/layout"
)

// Defaults describe a phone-sized portrait wallpaper.
const (
	DefaultGlyph      = "🐢"
	DefaultBackground = "#87CEEB"
	DefaultMode       = layout.Mixed
	DefaultDensity    = 50
	DefaultSize       = 40
	DefaultWidth      = 390
	DefaultHeight     = 844
)

// Ranges accepted by the density and size controls.
const (
	MinDensity = 10
	MaxDensity = 100
	MinSize    = 20
	MaxSize    = 80
	MaxGlyphs  = 6
	MaxCanvas  = 8192
)

// Config is the full description of one wallpaper.
type Config struct {
	Glyphs     []string    `json:"glyphs"`
	Background string      `json:"background"`
	Mode       layout.Mode `json:"mode"`
	Density    int         `json:"density"`
	Size       int         `json:"size"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
}

// Default returns the starting configuration: one turtle on sky blue.
func Default() Config {
	return Config{
		Glyphs:     []string{DefaultGlyph},
		Background: DefaultBackground,
		Mode:       DefaultMode,
		Density:    DefaultDensity,
		Size:       DefaultSize,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
	}
}

// SetDefaults fills zero-valued fields with the defaults. Mode has a valid
// zero value (grid) and is left alone.
func (c *Config) SetDefaults() {
	if len(c.Glyphs) == 0 {
		c.Glyphs = []string{DefaultGlyph}
	}
	if c.Background == "" {
		c.Background = DefaultBackground
	}
	if c.Density == 0 {
		c.Density = DefaultDensity
	}
	if c.Size == 0 {
		c.Size = DefaultSize
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
}

// Validate checks every field against the ranges of the user controls.
func (c Config) Validate() error {
	if len(c.Glyphs) == 0 || len(c.Glyphs) > MaxGlyphs {
		return errors.New(errors.ErrCodeInvalidGlyphs, "need between 1 and %d glyphs, got %d", MaxGlyphs, len(c.Glyphs))
	}
	for i, g := range c.Glyphs {
		if g == "" {
			return errors.New(errors.ErrCodeInvalidGlyphs, "glyph %d is empty", i)
		}
	}
	if !c.Mode.Valid() {
		return errors.New(errors.ErrCodeInvalidMode, "invalid layout mode %d", int(c.Mode))
	}
	if _, err := ParseColor(c.Background); err != nil {
		return err
	}
	if err := errors.ValidateRange(errors.ErrCodeInvalidDensity, "density", c.Density, MinDensity, MaxDensity); err != nil {
		return err
	}
	if err := errors.ValidateRange(errors.ErrCodeInvalidSize, "size", c.Size, MinSize, MaxSize); err != nil {
		return err
	}
	if err := errors.ValidateRange(errors.ErrCodeInvalidCanvas, "width", c.Width, 1, MaxCanvas); err != nil {
		return err
	}
	return errors.ValidateRange(errors.ErrCodeInvalidCanvas, "height", c.Height, 1, MaxCanvas)
}

// Params converts c into layout engine input. src may be nil.
func (c Config) Params(src layout.Source) layout.Params {
	return layout.Params{
		Width:      float64(c.Width),
		Height:     float64(c.Height),
		BaseSize:   float64(c.Size),
		Density:    c.Density,
		GlyphCount: len(c.Glyphs),
		Rand:       src,
	}
}

// Placements runs the layout engine for c.
func (c Config) Placements(src layout.Source) []layout.Placement {
	return layout.Generate(c.Mode, c.Params(src))
}

// Glyph returns the glyph a placement refers to.
func (c Config) Glyph(p layout.Placement) string {
	return c.Glyphs[p.GlyphIndex]
}

// ParseColor parses a "#rrggbb" or "#rgb" background colour.
func ParseColor(s string) (colorful.Color, error) {
	hex := expandShortHex(s)
	if len(hex) != 7 {
		return colorful.Color{}, errors.New(errors.ErrCodeInvalidColor, "invalid colour %q (want #rrggbb)", s)
	}
	col, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid colour %q (want #rrggbb)", s)
	}
	return col, nil
}

func expandShortHex(s string) string {
	if len(s) != 4 || s[0] != '#' {
		return s
	}
	return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
}
