package server

import (
	"context"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/matzehuels/emojiwall/pkg/errors"
	"github.com/matzehuels/emojiwall/pkg/layout"
	"github.com/matzehuels/emojiwall/pkg/pipeline"
	"github.com/matzehuels/emojiwall/pkg/wallpaper"
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleWallpaper(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	opts, err := optionsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}
	opts.FontPath = s.fontPath
	opts.Logger = s.logger

	ctx, cancel := context.WithTimeout(r.Context(), RenderTimeout)
	defer cancel()

	result, err := s.runner.Execute(ctx, opts)
	if err != nil {
		if !apperrors.IsValidation(err) {
			s.logger.Error("render failed", "format", format, "error", err)
		}
		writeError(w, err)
		return
	}

	cacheStatus := "miss"
	if result.CacheInfo.RenderHit {
		cacheStatus = "hit"
	} else if !result.CacheInfo.Cacheable {
		cacheStatus = "bypass"
	}

	name := wallpaper.ExportName(result.Config.Glyphs, s.now(), format)
	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set("Content-Disposition", "inline; filename*=UTF-8''"+url.PathEscape(name))
	h.Set("X-Wallpaper-Id", result.ID.String())
	h.Set("X-Wallpaper-Placements", strconv.Itoa(result.Stats.Placements))
	h.Set("X-Cache", cacheStatus)
	if result.CacheInfo.Cacheable {
		h.Set("ETag", strconv.Quote(result.ID.String()))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// optionsFromQuery builds pipeline options from query parameters. Absent
// parameters keep their defaults; shuffle=1 starts from random settings.
func optionsFromQuery(q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{Config: wallpaper.Default()}

	if q.Has("seed") {
		seed, err := strconv.ParseUint(q.Get("seed"), 10, 64)
		if err != nil {
			return opts, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "seed must be an unsigned integer")
		}
		opts.Seed = seed
	}

	if shuffle, _ := strconv.ParseBool(q.Get("shuffle")); shuffle {
		seed := opts.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		opts.Config = wallpaper.Shuffle(rand.New(rand.NewPCG(seed, seed^0xdeadbeef)))
	}

	if q.Has("glyphs") {
		glyphs, err := wallpaper.ParseGlyphInput(q.Get("glyphs"))
		if err != nil {
			return opts, err
		}
		opts.Config.Glyphs = glyphs
	}
	if q.Has("background") {
		opts.Config.Background = q.Get("background")
	}
	if q.Has("mode") {
		m, err := layout.ParseMode(q.Get("mode"))
		if err != nil {
			return opts, apperrors.Wrap(apperrors.ErrCodeInvalidMode, err, "mode")
		}
		opts.Config.Mode = m
	}

	// Zero would be replaced by the default during validation, so it is
	// rejected here.
	ints := []struct {
		name string
		code apperrors.Code
		dst  *int
	}{
		{"density", apperrors.ErrCodeInvalidDensity, &opts.Config.Density},
		{"size", apperrors.ErrCodeInvalidSize, &opts.Config.Size},
		{"width", apperrors.ErrCodeInvalidCanvas, &opts.Config.Width},
		{"height", apperrors.ErrCodeInvalidCanvas, &opts.Config.Height},
	}
	for _, p := range ints {
		if !q.Has(p.name) {
			continue
		}
		v, err := strconv.Atoi(q.Get(p.name))
		if err != nil {
			return opts, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "%s must be an integer", p.name)
		}
		if v == 0 {
			return opts, apperrors.New(p.code, "%s must not be zero", p.name)
		}
		*p.dst = v
	}

	if q.Has("ink") {
		opts.Ink = q.Get("ink")
	}
	if q.Has("scale") {
		scale, err := strconv.ParseFloat(q.Get("scale"), 64)
		if err != nil {
			return opts, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "scale must be a number")
		}
		if scale == 0 {
			return opts, apperrors.New(apperrors.ErrCodeInvalidSize, "scale must not be zero")
		}
		opts.Scale = scale
	}
	return opts, nil
}
