// Package render provides the conversion helpers shared by the output sinks.
//
// The sinks themselves live in [sink]. This package only wraps external
// converters: [ToPDF] shells out to rsvg-convert, which must be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [sink]: github.com/matzehuels/emojiwall/pkg/render/sink
package render
