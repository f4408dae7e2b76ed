// Package wallpaper holds the configuration record that drives a wallpaper
// render, together with the helpers that build it from user input.
//
// A [Config] bundles the glyphs, background colour, layout mode, density,
// base glyph size and canvas size. [Config.Validate] enforces the ranges
// accepted by the user controls and [Config.Params] converts a valid config
// into the input of [layout.Generate].
//
// Configs can be loaded from TOML presets with [LoadPreset], randomized with
// [Shuffle], and named for export with [ExportName].
package wallpaper
