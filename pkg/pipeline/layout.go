package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/emojiwall/pkg/layout"
	"github.com/matzehuels/emojiwall/pkg/observability"
	"github.com/matzehuels/emojiwall/pkg/render/sink"
)

// =============================================================================
// Layout Stage
// =============================================================================

// GenerateScene runs the layout engine for validated options and pairs the
// placements with the configuration they index into.
func GenerateScene(ctx context.Context, opts Options) (sink.Scene, error) {
	if err := ctx.Err(); err != nil {
		return sink.Scene{}, err
	}

	hooks := observability.Pipeline()
	mode := opts.Config.Mode.String()
	hooks.OnLayoutStart(ctx, mode, len(opts.Config.Glyphs))

	start := time.Now()
	scene := sink.NewScene(opts.Config, opts.Source())
	hooks.OnLayoutComplete(ctx, mode, len(scene.Placements), time.Since(start), nil)

	return scene, nil
}

// Preview runs the layout engine without validation or hooks. The editor
// uses it to redraw on every keystroke; callers must pass a valid config.
func Preview(opts Options) []layout.Placement {
	return opts.Config.Placements(opts.Source())
}
