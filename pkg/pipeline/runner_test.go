package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/emojiwall/pkg/cache"
	"github.com/matzehuels/emojiwall/pkg/errors"
	"github.com/matzehuels/emojiwall/pkg/layout"
	"github.com/matzehuels/emojiwall/pkg/observability"
	"github.com/matzehuels/emojiwall/pkg/wallpaper"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func gridOptions(formats ...string) Options {
	c := wallpaper.Default()
	c.Mode = layout.Grid
	c.Glyphs = []string{"🐢", "🦋"}
	return Options{Config: c, Formats: formats}
}

func TestExecute(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	res, err := r.Execute(ctx, gridOptions(FormatSVG, FormatJSON))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.Placements != 55 || len(res.Placements) != 55 {
		t.Errorf("placements = %d, want 55", res.Stats.Placements)
	}
	if !res.CacheInfo.Cacheable {
		t.Error("grid layout should be cacheable")
	}
	if res.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if got := bytes.Count(res.Artifacts[FormatSVG], []byte("<text ")); got != 55 {
		t.Errorf("svg has %d text elements, want 55", got)
	}

	var doc struct {
		ID         string `json:"id"`
		Mode       string `json:"mode"`
		Placements []struct {
			Glyph string `json:"glyph"`
		} `json:"placements"`
	}
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if doc.ID != res.ID.String() {
		t.Errorf("json id = %q, want %q", doc.ID, res.ID)
	}
	if doc.Mode != "grid" || len(doc.Placements) != 55 || doc.Placements[1].Glyph != "🦋" {
		t.Errorf("unexpected json artifact: mode %q, %d placements", doc.Mode, len(doc.Placements))
	}

	again, err := r.Execute(ctx, gridOptions(FormatSVG, FormatJSON))
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !again.CacheInfo.RenderHit {
		t.Error("second run should hit the cache")
	}
	if again.ID != res.ID {
		t.Errorf("reproducible runs should share an ID: %s != %s", again.ID, res.ID)
	}
	if !bytes.Equal(again.Artifacts[FormatSVG], res.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}
}

func TestExecutePNG(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := gridOptions(FormatPNG)
	opts.Scale = 0.5

	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(res.Artifacts[FormatPNG]))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 195 || b.Dy() != 422 {
		t.Errorf("png size = %dx%d, want 195x422", b.Dx(), b.Dy())
	}
	if len(r.fonts) != 1 {
		t.Errorf("runner should load the font once, has %d", len(r.fonts))
	}
}

func TestExecuteConcurrentPNG(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			opts := gridOptions(FormatPNG)
			opts.Config.Size = 30 + i*10
			opts.Config.Width, opts.Config.Height = 200, 300
			if _, err := r.Execute(context.Background(), opts); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Execute: %v", err)
	}
	if len(r.fonts) != 1 {
		t.Errorf("concurrent renders should share one parsed font, have %d", len(r.fonts))
	}
}

func TestExecuteMixedUnseeded(t *testing.T) {
	r := newTestRunner(t)
	opts := Options{Config: wallpaper.Default(), Formats: []string{FormatJSON}}

	a, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	b, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if a.CacheInfo.Cacheable || b.CacheInfo.RenderHit {
		t.Error("unseeded mixed layouts must bypass the cache")
	}
	if a.ID == b.ID {
		t.Error("unseeded runs should get distinct IDs")
	}
}

func TestExecuteMixedSeeded(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := Options{Config: wallpaper.Default(), Formats: []string{FormatJSON}, Seed: 42}

	a, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	b, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(a.Placements) != len(b.Placements) {
		t.Fatalf("placement counts differ: %d vs %d", len(a.Placements), len(b.Placements))
	}
	for i := range a.Placements {
		if a.Placements[i] != b.Placements[i] {
			t.Fatalf("placement %d differs: %+v vs %+v", i, a.Placements[i], b.Placements[i])
		}
	}
	if !a.CacheInfo.Cacheable {
		t.Error("seeded mixed layout should be cacheable")
	}
}

func TestExecuteInvalid(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := gridOptions()
	opts.Config.Density = 500

	_, err := r.Execute(context.Background(), opts)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidDensity) {
		t.Errorf("error code = %s, want INVALID_DENSITY", errors.GetCode(err))
	}
	if !strings.HasPrefix(err.Error(), "invalid options:") {
		t.Errorf("error should carry the stage prefix: %v", err)
	}
}

func TestExecuteCancelled(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Execute(ctx, gridOptions(FormatSVG))
	if err == nil || !strings.Contains(err.Error(), context.Canceled.Error()) {
		t.Errorf("expected cancellation error, got %v", err)
	}
}

func TestRunnerLayout(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	placements, err := r.Layout(context.Background(), gridOptions())
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(placements) != 55 {
		t.Errorf("got %d placements, want 55", len(placements))
	}
	if p := placements[0]; p.X != 40 || p.Y != 40 || p.Size != 40 {
		t.Errorf("first placement = %+v", p)
	}

	bad := gridOptions()
	bad.Config.Glyphs = make([]string, 7)
	if _, err := r.Layout(context.Background(), bad); !errors.Is(err, errors.ErrCodeInvalidGlyphs) {
		t.Errorf("expected INVALID_GLYPHS, got %v", err)
	}
}

func TestPreview(t *testing.T) {
	opts := gridOptions()
	opts.Config.SetDefaults()
	if got := len(Preview(opts)); got != 55 {
		t.Errorf("Preview returned %d placements, want 55", got)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, mode string, n int, _ time.Duration, _ error) {
	h.record("layout:" + mode)
}

func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.record("render")
}

func (h *recordingHooks) OnCacheHit(context.Context, string)      { h.record("hit") }
func (h *recordingHooks) OnCacheMiss(context.Context, string)     { h.record("miss") }
func (h *recordingHooks) OnCacheSet(context.Context, string, int) { h.record("set") }

func TestExecuteHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)

	r := newTestRunner(t)
	opts := gridOptions(FormatSVG)
	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatal(err)
	}

	want := []string{"layout:grid", "miss", "render", "set", "layout:grid", "hit"}
	if strings.Join(h.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", h.events, want)
	}
}
