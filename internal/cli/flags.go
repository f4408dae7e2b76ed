package cli

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/matzehuels/emojiwall/pkg/errors"
	"github.com/matzehuels/emojiwall/pkg/layout"
	"github.com/matzehuels/emojiwall/pkg/pipeline"
	"github.com/matzehuels/emojiwall/pkg/wallpaper"
)

// wallpaperFlags holds the flags shared by render, layout and edit.
//
// Precedence is defaults < preset file < --shuffle < flags set on the
// command line. Flag defaults only matter when the flag is set explicitly.
type wallpaperFlags struct {
	glyphs     string
	background string
	mode       string
	density    int
	size       int
	width      int
	height     int
	preset     string
	shuffle    bool
	seed       uint64

	// Render flags (render and edit only)
	formats string
	font    string
	ink     string
	scale   float64
}

// register adds the wallpaper flags to fs. withRender adds the format,
// font, ink and scale flags.
func (f *wallpaperFlags) register(fs *pflag.FlagSet, withRender bool) {
	d := wallpaper.Default()

	fs.StringVarP(&f.glyphs, "glyphs", "g", wallpaper.JoinGlyphs(d.Glyphs), "glyphs to tile (up to 6 characters)")
	fs.StringVarP(&f.background, "background", "b", d.Background, "background colour (#rrggbb)")
	fs.StringVarP(&f.mode, "mode", "m", d.Mode.String(), "layout mode: "+joinModes())
	fs.IntVar(&f.density, "density", d.Density, "density control (10-100)")
	fs.IntVarP(&f.size, "size", "s", d.Size, "base glyph size (20-80)")
	fs.IntVar(&f.width, "width", d.Width, "canvas width")
	fs.IntVar(&f.height, "height", d.Height, "canvas height")
	fs.StringVarP(&f.preset, "config", "c", "", "TOML preset file")
	fs.BoolVar(&f.shuffle, "shuffle", false, "start from random settings")
	fs.Uint64Var(&f.seed, "seed", 0, "seed for mixed-mode jitter and --shuffle (0: random)")

	if !withRender {
		return
	}
	fs.StringVarP(&f.formats, "format", "f", pipeline.DefaultFormat, "output format(s): "+joinFormats()+" (comma-separated)")
	fs.StringVar(&f.font, "font", "", "TrueType font for PNG output (default: first emoji font found)")
	fs.StringVar(&f.ink, "ink", "", "glyph colour for PNG output (default: darkened background)")
	fs.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
}

// options resolves the flags into pipeline options.
func (f *wallpaperFlags) options(fs *pflag.FlagSet) (pipeline.Options, error) {
	opts := pipeline.Options{Config: wallpaper.Default()}

	if f.preset != "" {
		p, err := wallpaper.LoadPreset(f.preset)
		if err != nil {
			return opts, err
		}
		cfg, err := p.Config()
		if err != nil {
			return opts, err
		}
		opts.Config = cfg
		opts.Formats = p.Render.Formats
		opts.FontPath = p.Render.Font
		opts.Ink = p.Render.Ink
		opts.Seed = p.Render.Seed
		opts.Scale = p.Render.Scale
	}

	if fs.Changed("seed") {
		opts.Seed = f.seed
	}

	if f.shuffle {
		w, h := opts.Config.Width, opts.Config.Height
		opts.Config = wallpaper.Shuffle(shuffleRand(opts.Seed))
		opts.Config.Width, opts.Config.Height = w, h
	}

	if fs.Changed("glyphs") {
		glyphs, err := wallpaper.ParseGlyphInput(f.glyphs)
		if err != nil {
			return opts, err
		}
		opts.Config.Glyphs = glyphs
	}
	if fs.Changed("background") {
		opts.Config.Background = f.background
	}
	if fs.Changed("mode") {
		m, err := layout.ParseMode(f.mode)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidMode, err, "--mode")
		}
		opts.Config.Mode = m
	}

	// An explicit zero would be replaced by the default during validation.
	ints := []struct {
		name string
		code errors.Code
		val  int
		dst  *int
	}{
		{"density", errors.ErrCodeInvalidDensity, f.density, &opts.Config.Density},
		{"size", errors.ErrCodeInvalidSize, f.size, &opts.Config.Size},
		{"width", errors.ErrCodeInvalidCanvas, f.width, &opts.Config.Width},
		{"height", errors.ErrCodeInvalidCanvas, f.height, &opts.Config.Height},
	}
	for _, p := range ints {
		if !fs.Changed(p.name) {
			continue
		}
		if p.val == 0 {
			return opts, errors.New(p.code, "--%s must not be zero", p.name)
		}
		*p.dst = p.val
	}

	if fs.Lookup("format") == nil {
		return opts, nil
	}
	if fs.Changed("format") || len(opts.Formats) == 0 {
		opts.Formats = pipeline.ParseFormats(f.formats)
	}
	if fs.Changed("font") {
		opts.FontPath = f.font
	}
	if fs.Changed("ink") {
		opts.Ink = f.ink
	}
	if fs.Changed("scale") && f.scale == 0 {
		return opts, errors.New(errors.ErrCodeInvalidSize, "--scale must not be zero")
	}
	if fs.Changed("scale") || opts.Scale == 0 {
		opts.Scale = f.scale
	}
	return opts, nil
}

// shuffleRand returns the generator behind --shuffle. A zero seed draws a
// fresh one.
func shuffleRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func joinModes() string {
	return strings.Join(layout.ModeNames(), ", ")
}

func joinFormats() string {
	return strings.Join(pipeline.FormatNames(), ", ")
}
