// Package pkg provides the core libraries for emojiwall.
//
// # Overview
//
// emojiwall tiles a handful of emoji across a phone-sized canvas and exports
// the result. The pkg directory is organized into three areas:
//
//  1. [layout] and [wallpaper] - Domain logic (placement engine, configuration)
//  2. [render] and [fonts] - Output (PNG, SVG, PDF and JSON sinks)
//  3. [pipeline], [cache] and [observability] - Orchestration and infrastructure
//
// # Architecture
//
// The data flow for one render:
//
//	wallpaper.Config (flags, TOML preset, query string)
//	         ↓
//	    [layout] package (placements for the chosen mode)
//	         ↓
//	    [render/sink] package (rasterize or serialize the scene)
//	         ↓
//	    PNG/SVG/PDF/JSON output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/emojiwall/pkg/layout"
//	    "github.com/matzehuels/emojiwall/pkg/render/sink"
//	    "github.com/matzehuels/emojiwall/pkg/wallpaper"
//	)
//
//	cfg := wallpaper.Default()
//	cfg.Glyphs = []string{"🐢", "🦋"}
//	cfg.Mode = layout.Spiral
//
//	scene := sink.NewScene(cfg, nil)
//	png, _ := sink.RenderPNG(scene)
//
// # Main Packages
//
// [layout] - The five placement modes (grid, large, mixed, radial, spiral).
// Pure functions of the parameters plus an injectable random source.
//
// [wallpaper] - Config with defaults and validation, glyph parsing, TOML
// presets, shuffle and export file names.
//
// [render/sink] - PNG (gg + freetype), SVG, PDF (via rsvg-convert) and JSON.
//
// [pipeline] - Validation, layout and render with caching, shared by the CLI
// and the HTTP server.
//
// [cache] - File, Redis and null backends keyed by scene hash.
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/emojiwall/pkg/layout
// [wallpaper]: https://pkg.go.dev/github.com/matzehuels/emojiwall/pkg/wallpaper
// [render]: https://pkg.go.dev/github.com/matzehuels/emojiwall/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/emojiwall/pkg/render/sink
// [fonts]: https://pkg.go.dev/github.com/matzehuels/emojiwall/pkg/fonts
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/emojiwall/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/emojiwall/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/emojiwall/pkg/observability
package pkg
