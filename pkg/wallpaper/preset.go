package wallpaper

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/emojiwall/pkg/errors"
	"github.com/matzehuels/emojiwall/pkg/layout"
)

// Preset is a wallpaper configuration stored as TOML:
//
//	[wallpaper]
//	glyphs = "🐢🦋"
//	background = "#87CEEB"
//	mode = "spiral"
//	density = 50
//	size = 40
//
//	[render]
//	formats = ["png", "svg"]
//	seed = 42
type Preset struct {
	Wallpaper PresetWallpaper `toml:"wallpaper"`
	Render    PresetRender    `toml:"render"`
}

// PresetWallpaper is the [wallpaper] table. Zero values mean "use the default".
type PresetWallpaper struct {
	Glyphs     string `toml:"glyphs"`
	Background string `toml:"background"`
	Mode       string `toml:"mode"`
	Density    int    `toml:"density"`
	Size       int    `toml:"size"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
}

// PresetRender is the optional [render] table.
type PresetRender struct {
	Formats []string `toml:"formats"`
	Font    string   `toml:"font"`
	Ink     string   `toml:"ink"`
	Seed    uint64   `toml:"seed"`
	Scale   float64  `toml:"scale"`
}

// LoadPreset reads and decodes a TOML preset file.
func LoadPreset(path string) (Preset, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Preset{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "preset %s", path)
	}
	if err != nil {
		return Preset{}, err
	}
	defer f.Close()
	return DecodePreset(f)
}

// DecodePreset decodes a TOML preset. Unknown keys are rejected so typos do
// not silently fall back to defaults.
func DecodePreset(r io.Reader) (Preset, error) {
	var p Preset
	md, err := toml.NewDecoder(r).Decode(&p)
	if err != nil {
		return Preset{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "decode preset")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Preset{}, errors.New(errors.ErrCodeInvalidPreset, "unknown preset keys: %s", strings.Join(keys, ", "))
	}
	return p, nil
}

// Config converts the [wallpaper] table into a Config, applying defaults for
// omitted fields. The result is not validated.
func (p Preset) Config() (Config, error) {
	c := Default()
	w := p.Wallpaper
	if w.Glyphs != "" {
		glyphs, err := ParseGlyphInput(w.Glyphs)
		if err != nil {
			return Config{}, err
		}
		c.Glyphs = glyphs
	}
	if w.Mode != "" {
		m, err := layout.ParseMode(w.Mode)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidMode, err, "preset mode")
		}
		c.Mode = m
	}
	if w.Background != "" {
		c.Background = w.Background
	}
	if w.Density != 0 {
		c.Density = w.Density
	}
	if w.Size != 0 {
		c.Size = w.Size
	}
	if w.Width != 0 {
		c.Width = w.Width
	}
	if w.Height != 0 {
		c.Height = w.Height
	}
	return c, nil
}
