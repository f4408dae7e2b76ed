package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/emojiwall/pkg/fonts"
	"github.com/matzehuels/emojiwall/pkg/observability"
	"github.com/matzehuels/emojiwall/pkg/render/sink"
	"github.com/matzehuels/emojiwall/pkg/wallpaper"
)

// Render generates output artifacts in the requested formats.
// Options must have been validated.
func Render(ctx context.Context, scene sink.Scene, id string, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, scene, id, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, scene sink.Scene, id string, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(scene)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatPNG:
			var pngOpts []sink.PNGOption
			pngOpts, err = buildPNGOptions(opts)
			if err == nil {
				data, err = sink.RenderPNG(scene, pngOpts...)
			}
		case FormatSVG:
			data = sink.RenderSVG(scene, svgOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, scene, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(scene, sink.WithJSONID(id), sink.WithJSONSeed(opts.Seed))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions titles the SVG with the glyphs and mode.
func buildSVGOptions(scene sink.Scene) []sink.SVGOption {
	title := fmt.Sprintf("%s %s wallpaper", wallpaper.JoinGlyphs(scene.Config.Glyphs), scene.Config.Mode)
	return []sink.SVGOption{sink.WithTitle(title)}
}

// buildPNGOptions resolves the font and ink colour.
func buildPNGOptions(opts Options) ([]sink.PNGOption, error) {
	f := opts.Font
	if f == nil {
		var err error
		if f, err = fonts.Resolve(opts.FontPath); err != nil {
			return nil, err
		}
	}

	pngOpts := []sink.PNGOption{sink.WithFont(f), sink.WithScale(opts.Scale)}
	if opts.Ink != "" {
		ink, err := wallpaper.ParseColor(opts.Ink)
		if err != nil {
			return nil, err
		}
		pngOpts = append(pngOpts, sink.WithInk(ink))
	}
	return pngOpts, nil
}
