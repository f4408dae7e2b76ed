// Package sink provides output format renderers for emoji wallpapers.
//
// # Overview
//
// A "sink" turns a [Scene] (a configuration plus the placements the layout
// engine computed for it) into bytes of one output format:
//
//   - PNG: native raster output via fogleman/gg
//   - SVG: one text element per placement, rendered by the viewer's emoji font
//   - PDF: print-ready output (requires rsvg-convert)
//   - JSON: the placements with resolved glyphs, for external tools
//
// Every sink paints the background first and then each placement in order,
// centered horizontally and vertically on its point at its size.
//
// # PNG Output
//
// [RenderPNG] rasterizes with a TrueType face per glyph size, built fresh for
// each call from a shared [fonts.Font]. Colour emoji
// fonts cannot be rasterized this way, so glyphs are drawn in a single ink
// colour, by default the background darkened in Lab space (see [InkFor]):
//
//	png, err := sink.RenderPNG(scene,
//	    sink.WithFont(font),
//	    sink.WithScale(3),
//	)
//
// # SVG and PDF Output
//
// [RenderSVG] emits plain SVG text elements so browsers use their own colour
// emoji font. [RenderPDF] converts that SVG via [render.ToPDF].
//
// [render.ToPDF]: github.com/matzehuels/emojiwall/pkg/render.ToPDF
// [fonts.Font]: github.com/matzehuels/emojiwall/pkg/fonts.Font
package sink
