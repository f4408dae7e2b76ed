package wallpaper

import (
	"slices"

	"github.com/matzehuels/emojiwall/pkg/layout"
)

// Palette is the set of glyphs Shuffle draws from.
var Palette = []string{"🐢", "🦋", "🌸", "⭐", "🍀", "🌙", "☀️", "🌈", "🦄", "🍎", "🌺", "🍄", "🐠", "🦊", "🎨"}

// Backgrounds is the set of colours Shuffle draws from.
var Backgrounds = []string{"#87CEEB", "#FFB6C1", "#98FB98", "#DDA0DD", "#F0E68C", "#FFA07A", "#20B2AA", "#87CEFA"}

// Intn is the subset of *rand.Rand used by Shuffle.
type Intn interface {
	IntN(n int) int
}

// Shuffle returns a random configuration on the default canvas: one to four
// draws from Palette (duplicates dropped), a background from Backgrounds, any
// mode, density in [20, 99] and size in [30, 69].
func Shuffle(rng Intn) Config {
	draws := rng.IntN(4) + 1
	var glyphs []string
	for range draws {
		g := Palette[rng.IntN(len(Palette))]
		if !slices.Contains(glyphs, g) {
			glyphs = append(glyphs, g)
		}
	}

	modes := layout.Modes()
	return Config{
		Glyphs:     glyphs,
		Background: Backgrounds[rng.IntN(len(Backgrounds))],
		Mode:       modes[rng.IntN(len(modes))],
		Density:    rng.IntN(80) + 20,
		Size:       rng.IntN(40) + 30,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
	}
}
