package pipeline

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/emojiwall/pkg/cache"
	"github.com/matzehuels/emojiwall/pkg/fonts"
	"github.com/matzehuels/emojiwall/pkg/layout"
	"github.com/matzehuels/emojiwall/pkg/observability"
	"github.com/matzehuels/emojiwall/pkg/render/sink"
)

// Runner encapsulates pipeline execution with caching.
// The CLI, the editor and the API all use it so caching behaves the same
// everywhere.
//
// The Runner doesn't store pipeline results. Multiple goroutines can safely
// use the same Runner with different options. Parsed fonts are shared per
// font path; every PNG render builds its own faces from them.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	mu    sync.Mutex
	fonts map[string]*fonts.Font
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		fonts:  make(map[string]*fonts.Font),
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	id, err := opts.resultID()
	if err != nil {
		return nil, err
	}
	result := &Result{
		ID:     id,
		Config: opts.Config,
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	scene, err := GenerateScene(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Placements = scene.Placements
	result.Stats.Placements = len(scene.Placements)
	result.Stats.LayoutTime = time.Since(layoutStart)

	opts.Logger.Debug("computed layout",
		"mode", opts.Config.Mode,
		"placements", len(scene.Placements),
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, scene, id.String(), opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.Cacheable = opts.Reproducible()
	result.CacheInfo.RenderHit = hit

	opts.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Layout validates the options and returns the placements without rendering.
func (r *Runner) Layout(ctx context.Context, opts Options) ([]layout.Placement, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	scene, err := GenerateScene(ctx, opts)
	if err != nil {
		return nil, err
	}
	return scene.Placements, nil
}

// RenderWithCacheInfo renders the scene, serving every format from cache when
// possible, and reports whether all artifacts were cached. Unseeded mixed
// layouts bypass the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, scene sink.Scene, id string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if opts.Font == nil && slices.Contains(opts.Formats, FormatPNG) {
		f, err := r.fontFor(opts.FontPath)
		if err != nil {
			return nil, false, err
		}
		opts.Font = f
	}

	if !opts.Reproducible() {
		artifacts, err := Render(ctx, scene, id, opts)
		return artifacts, false, err
	}

	hooks := observability.Cache()
	sceneHash, err := opts.SceneHash()
	if err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "error", err)
		}
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, "artifact")
			break
		}
		hooks.OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := Render(ctx, scene, id, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// fontFor returns the parsed font for a path, loading it on first use.
func (r *Runner) fontFor(path string) (*fonts.Font, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fonts == nil {
		r.fonts = make(map[string]*fonts.Font)
	}
	if f, ok := r.fonts[path]; ok {
		return f, nil
	}
	f, err := fonts.Resolve(path)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded font", "name", f.Name)
	r.fonts[path] = f
	return f, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
