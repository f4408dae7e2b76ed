// Package fonts locates and caches the font used by the PNG rasterizer.
//
// Colour emoji fonts (CBDT/sbix) cannot be rasterized by freetype, so the
// search prefers monochrome outline emoji and symbol fonts installed on the
// system. When none is found the Go Regular font embedded in the binary is
// used; glyphs it lacks render as its replacement box.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/emojiwall/pkg/errors"
)

// EmbeddedName is the name reported for the built-in fallback font.
const EmbeddedName = "Go Regular (embedded)"

// Candidates are the system font files tried, in order, when no explicit
// font path is given.
var Candidates = []string{
	"NotoEmoji-Regular.ttf",
	"NotoEmoji.ttf",
	"OpenMoji-black-glyf.ttf",
	"Symbola.ttf",
	"seguisym.ttf",
	"DejaVuSans.ttf",
}

// Font is a parsed TrueType font.
type Font struct {
	Name string
	TTF  *truetype.Font
}

var (
	embedded     *Font
	embeddedOnce sync.Once
)

// Embedded returns the built-in Go Regular font. It is parsed once.
func Embedded() *Font {
	embeddedOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			panic("fonts: embedded font is corrupt: " + err.Error())
		}
		embedded = &Font{Name: EmbeddedName, TTF: f}
	})
	return embedded
}

// Load parses the TrueType font at path.
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "font %s", path)
	}
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "parse font %s (only TrueType outline fonts are supported)", path)
	}
	return &Font{Name: path, TTF: f}, nil
}

// Resolve returns the font at path if one is given. Otherwise it returns the
// first parseable Candidates entry found on the system, falling back to
// Embedded.
func Resolve(path string) (*Font, error) {
	if path != "" {
		return Load(path)
	}
	for _, name := range Candidates {
		found, err := findfont.Find(name)
		if err != nil {
			continue
		}
		if f, err := Load(found); err == nil {
			return f, nil
		}
	}
	return Embedded(), nil
}

// Covers reports whether every rune of s has a glyph in f. Variation
// selectors and joiners are ignored since they never carry outlines.
func (f *Font) Covers(s string) bool {
	for _, r := range s {
		if r == 0x200D || (r >= 0xFE00 && r <= 0xFE0F) {
			continue
		}
		if f.TTF.Index(r) == 0 {
			return false
		}
	}
	return true
}

// Faces caches one font.Face per size for a single render. A truetype face
// keeps glyph buffers between calls, so a Faces must not be shared by
// concurrent renders; share the *Font instead, which is read-only.
type Faces struct {
	font  *Font
	faces map[float64]font.Face
}

// NewFaces creates an empty face cache for f.
func NewFaces(f *Font) *Faces {
	return &Faces{font: f, faces: make(map[float64]font.Face)}
}

// Font returns the font the cache was created for.
func (c *Faces) Font() *Font {
	return c.font
}

// Face returns the face for size, creating it on first use. Size is in
// pixels at 72 DPI, matching the canvas unit.
func (c *Faces) Face(size float64) font.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(c.font.TTF, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
	c.faces[size] = f
	return f
}

// Len returns the number of cached faces.
func (c *Faces) Len() int {
	return len(c.faces)
}
