package sink

import (
	"github.com/matzehuels/emojiwall/pkg/layout"
	"github.com/matzehuels/emojiwall/pkg/wallpaper"
)

// Scene is everything a sink needs to draw one wallpaper.
type Scene struct {
	Config     wallpaper.Config
	Placements []layout.Placement
}

// NewScene runs the layout engine for c with src as the jitter source.
func NewScene(c wallpaper.Config, src layout.Source) Scene {
	return Scene{Config: c, Placements: c.Placements(src)}
}
