// Package pipeline provides the core wallpaper pipeline for emojiwall.
//
// This package implements the complete config → layout → render pipeline
// shared by the CLI, the interactive editor and the HTTP API, so every
// surface validates, caches and renders the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: run the layout engine for the configured mode
//  2. Render: paint the placements in the requested formats (PNG, SVG, PDF, JSON)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Config:  wallpaper.Default(),
//	    Formats: []string{"png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Run the layout stage alone:
//
//	placements, err := runner.Layout(ctx, opts)
package pipeline

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/emojiwall/pkg/cache"
	"github.com/matzehuels/emojiwall/pkg/errors"
	"github.com/matzehuels/emojiwall/pkg/fonts"
	"github.com/matzehuels/emojiwall/pkg/layout"
	"github.com/matzehuels/emojiwall/pkg/wallpaper"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Editor
// =============================================================================

const (
	// DefaultScale is the default PNG pixel density.
	DefaultScale = 1.0

	// MaxScale bounds the PNG pixel density.
	MaxScale = 4.0
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DefaultFormat is the format rendered when none is requested.
const DefaultFormat = FormatPNG

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// FormatNames returns the supported formats in a stable order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Config is the wallpaper being rendered.
	Config wallpaper.Config `json:"config"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	FontPath string   `json:"font,omitempty"`
	Ink      string   `json:"ink,omitempty"`
	Scale    float64  `json:"scale,omitempty"`

	// Seed fixes the mixed-mode jitter. Zero means unseeded: every run
	// jitters differently and the result is not cached.
	Seed uint64 `json:"seed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger  `json:"-"`
	Font   *fonts.Font  `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the wallpaper. Reproducible runs get a stable ID derived
	// from the scene hash; unseeded mixed layouts get a random one.
	ID uuid.UUID

	// Config is the validated configuration that was rendered.
	Config wallpaper.Config

	// Placements is the layout engine output.
	Placements []layout.Placement

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the render stage hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Placements int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache use for a run.
type CacheInfo struct {
	Cacheable bool // Whether the run was eligible for caching
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates.
func ParseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the configuration and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.Config.SetDefaults()
	if err := o.Config.Validate(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender checks the render options. Defaults must already be set.
func (o *Options) ValidateForRender() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if !(o.Scale > 0 && o.Scale <= MaxScale) {
		return errors.New(errors.ErrCodeInvalidSize, "scale must be in (0, %g], got %g", MaxScale, o.Scale)
	}
	w := math.Ceil(float64(o.Config.Width) * o.Scale)
	h := math.Ceil(float64(o.Config.Height) * o.Scale)
	if w > wallpaper.MaxCanvas || h > wallpaper.MaxCanvas {
		return errors.New(errors.ErrCodeInvalidCanvas, "scaled canvas %gx%g exceeds %d pixels", w, h, wallpaper.MaxCanvas)
	}
	if o.Ink != "" {
		if _, err := wallpaper.ParseColor(o.Ink); err != nil {
			return err
		}
	}
	return nil
}

// Reproducible reports whether two runs with these options produce the same
// placements. Only the mixed mode is randomized.
func (o *Options) Reproducible() bool {
	return o.Config.Mode != layout.Mixed || o.Seed != 0
}

// Source returns the jitter source for the run.
func (o *Options) Source() layout.Source {
	if o.Seed == 0 {
		return nil
	}
	return layout.NewSeededSource(o.Seed)
}

// SceneHash identifies the placements a run will produce.
func (o *Options) SceneHash() (string, error) {
	h, err := cache.HashJSON(struct {
		Config wallpaper.Config `json:"config"`
		Seed   uint64           `json:"seed"`
	}{o.Config, o.Seed})
	if err != nil {
		return "", fmt.Errorf("hash scene: %w", err)
	}
	return h, nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Font:   o.FontPath,
		Ink:    o.Ink,
		Scale:  o.Scale,
	}
}

// sceneNamespace seeds the stable IDs of reproducible wallpapers.
var sceneNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/emojiwall"))

// resultID returns a stable ID for reproducible runs and a random one otherwise.
func (o *Options) resultID() (uuid.UUID, error) {
	if !o.Reproducible() {
		return uuid.New(), nil
	}
	h, err := o.SceneHash()
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.NewSHA1(sceneNamespace, []byte(h)), nil
}
