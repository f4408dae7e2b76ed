package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/emojiwall/pkg/cache"
	"github.com/matzehuels/emojiwall/pkg/observability"
	"github.com/matzehuels/emojiwall/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(c, cache.NewScopedKeyer(nil, "api:"), logger)
	srv := httptest.NewServer(New(runner, logger).Handler())
	t.Cleanup(func() {
		srv.Close()
		runner.Close()
	})
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got map[string]string
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["status"] != "ok" || got["version"] == "" || got["commit"] == "" || got["built"] == "" {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestModes(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv, "/modes")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got struct {
		Modes    []string `json:"modes"`
		Formats  []string `json:"formats"`
		Defaults struct {
			Mode string `json:"mode"`
		} `json:"defaults"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.Join(got.Modes, ",") != "grid,large,mixed,radial,spiral" {
		t.Errorf("modes = %v", got.Modes)
	}
	if len(got.Formats) != 4 {
		t.Errorf("formats = %v", got.Formats)
	}
	if got.Defaults.Mode != "mixed" {
		t.Errorf("default mode = %q, want mixed", got.Defaults.Mode)
	}
}

func TestWallpaperSVG(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv, "/wallpaper.svg?mode=grid&glyphs=%F0%9F%90%A2%F0%9F%A6%8B")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := resp.Header.Get("X-Wallpaper-Placements"); got != "55" {
		t.Errorf("placements header = %q, want 55", got)
	}
	if got := resp.Header.Get("X-Cache"); got != "miss" {
		t.Errorf("X-Cache = %q, want miss", got)
	}
	if !strings.Contains(resp.Header.Get("Content-Disposition"), "emoji-wallpaper-") {
		t.Errorf("Content-Disposition = %q", resp.Header.Get("Content-Disposition"))
	}
	if !bytes.Contains(body, []byte("🦋")) {
		t.Error("svg should contain the second glyph")
	}

	again, _ := get(t, srv, "/wallpaper.svg?mode=grid&glyphs=%F0%9F%90%A2%F0%9F%A6%8B")
	if got := again.Header.Get("X-Cache"); got != "hit" {
		t.Errorf("second request X-Cache = %q, want hit", got)
	}
	if again.Header.Get("X-Wallpaper-Id") != resp.Header.Get("X-Wallpaper-Id") {
		t.Error("identical deterministic requests should share an id")
	}
}

func TestWallpaperPNG(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv, "/wallpaper.png?mode=radial&width=200&height=300")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 300 {
		t.Errorf("size = %dx%d, want 200x300", b.Dx(), b.Dy())
	}
}

func TestWallpaperJSONUnseededMixed(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv, "/wallpaper.json")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if got := resp.Header.Get("X-Cache"); got != "bypass" {
		t.Errorf("X-Cache = %q, want bypass", got)
	}
	var doc struct {
		Mode       string            `json:"mode"`
		Placements []json.RawMessage `json:"placements"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Mode != "mixed" || len(doc.Placements) == 0 {
		t.Errorf("unexpected json: mode %q, %d placements", doc.Mode, len(doc.Placements))
	}
}

func TestWallpaperErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/wallpaper.gif", http.StatusBadRequest, "INVALID_FORMAT"},
		{"/wallpaper.png?mode=hexagon", http.StatusBadRequest, "INVALID_MODE"},
		{"/wallpaper.png?density=5", http.StatusBadRequest, "INVALID_DENSITY"},
		{"/wallpaper.png?density=0", http.StatusBadRequest, "INVALID_DENSITY"},
		{"/wallpaper.png?size=abc", http.StatusBadRequest, "INVALID_INPUT"},
		{"/wallpaper.png?background=red", http.StatusBadRequest, "INVALID_COLOR"},
		{"/wallpaper.png?width=9000", http.StatusBadRequest, "INVALID_CANVAS"},
		{"/wallpaper.png?seed=-1", http.StatusBadRequest, "INVALID_INPUT"},
		{"/wallpaper.png?scale=0", http.StatusBadRequest, "INVALID_SIZE"},
		{"/wallpaper.png?scale=NaN&mode=grid", http.StatusBadRequest, "INVALID_SIZE"},
		{"/wallpaper.png?scale=Inf&mode=grid", http.StatusBadRequest, "INVALID_SIZE"},
		{"/nope", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv, tt.path)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d (%s)", resp.StatusCode, tt.status, body)
			}
			var e errorResponse
			if err := json.Unmarshal(body, &e); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if e.Code != tt.code {
				t.Errorf("code = %q, want %q", e.Code, tt.code)
			}
			if e.Error == "" {
				t.Error("error message should not be empty")
			}
		})
	}
}

func TestOptionsFromQueryShuffle(t *testing.T) {
	q := map[string][]string{"shuffle": {"true"}, "seed": {"9"}, "size": {"33"}}
	a, err := optionsFromQuery(q)
	if err != nil {
		t.Fatalf("optionsFromQuery: %v", err)
	}
	b, _ := optionsFromQuery(q)
	ha, err := a.SceneHash()
	if err != nil {
		t.Fatalf("SceneHash: %v", err)
	}
	hb, _ := b.SceneHash()
	if ha != hb {
		t.Error("seeded shuffle should be reproducible")
	}
	if a.Config.Size != 33 {
		t.Errorf("explicit size should override shuffle, got %d", a.Config.Size)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestObserveMiddleware(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	h := &recordingHTTPHooks{}
	observability.SetHTTPHooks(h)

	srv := newTestServer(t)
	get(t, srv, "/healthz")
	get(t, srv, "/wallpaper.gif")

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.statuses) != 2 || h.statuses[0] != 200 || h.statuses[1] != 400 {
		t.Errorf("statuses = %v, want [200 400]", h.statuses)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(pipeline.NewRunner(nil, nil, logger), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("ListenAndServe = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
