// Package layout computes glyph placements for emoji wallpapers.
//
// # Overview
//
// Given a canvas size, a base glyph size and the number of glyphs the user
// picked, this package produces an ordered sequence of [Placement] values
// that covers the canvas according to one of five geometric patterns. The
// result carries everything a rasterizer needs: a center point, a font size
// and the index of the glyph to draw.
//
// # Modes
//
// The five modes form a closed set, see [Mode]:
//
//   - [Grid]: a regular grid at the base size.
//   - [Large]: the same grid with glyphs enlarged by 1.5x and wider spacing.
//   - [Mixed]: a grid whose cells alternate between large, normal and small
//     glyphs in a 3x3 pattern, with a small random offset per cell.
//   - [Radial]: twelve rays from the canvas center, shrinking outward.
//   - [Spiral]: an Archimedean spiral around the center, shrinking outward.
//
// # Generating Placements
//
// Use [Generate] with a mode and [Params]:
//
//	ps := layout.Generate(layout.Spiral, layout.Params{
//	    Width:      390,
//	    Height:     844,
//	    BaseSize:   40,
//	    Density:    50,
//	    GlyphCount: 3,
//	})
//
// Generate is a pure function of its arguments apart from the jitter used by
// [Mixed]. Supply [Params.Rand] (for example [NewSeededSource]) to make the
// jitter reproducible. A nil source uses the process-wide generator.
//
// # Bounds
//
// Every placement lies inside the canvas, inclusive of its edges. The one
// exception is [Mixed], whose jitter may move a glyph up to [MaxJitter] units
// past an edge. A canvas with a non-positive dimension, a non-positive base
// size or a zero glyph count produces no placements.
package layout
