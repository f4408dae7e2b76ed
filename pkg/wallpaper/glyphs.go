package wallpaper

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/matzehuels/emojiwall/pkg/errors"
)

// ParseGlyphs splits text into at most MaxGlyphs user-perceived characters.
// Whitespace is skipped. An empty result falls back to the default glyph.
func ParseGlyphs(text string) []string {
	var glyphs []string
	g := uniseg.NewGraphemes(text)
	for len(glyphs) < MaxGlyphs && g.Next() {
		cluster := g.Str()
		if strings.TrimFunc(cluster, unicode.IsSpace) == "" {
			continue
		}
		glyphs = append(glyphs, cluster)
	}
	if len(glyphs) == 0 {
		return []string{DefaultGlyph}
	}
	return glyphs
}

// ParseGlyphInput validates raw text before splitting it with ParseGlyphs.
func ParseGlyphInput(text string) ([]string, error) {
	if err := errors.ValidateGlyphText(text); err != nil {
		return nil, err
	}
	return ParseGlyphs(text), nil
}

// JoinGlyphs is the inverse of ParseGlyphs for display and file names.
func JoinGlyphs(glyphs []string) string {
	return strings.Join(glyphs, "")
}
