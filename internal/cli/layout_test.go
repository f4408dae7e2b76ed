package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/emojiwall/pkg/layout"
	"github.com/matzehuels/emojiwall/pkg/pipeline"
	"github.com/matzehuels/emojiwall/pkg/wallpaper"
)

func layoutOptions(mode layout.Mode) pipeline.Options {
	cfg := wallpaper.Default()
	cfg.Glyphs = []string{"🐢", "🦋"}
	cfg.Mode = mode
	return pipeline.Options{Config: cfg}
}

func TestRunLayoutJSON(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	var buf bytes.Buffer

	if err := c.runLayout(context.Background(), &buf, layoutOptions(layout.Grid), true, 0); err != nil {
		t.Fatalf("runLayout: %v", err)
	}

	var placements []layout.Placement
	if err := json.Unmarshal(buf.Bytes(), &placements); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if len(placements) != 55 {
		t.Errorf("placements = %d, want 55", len(placements))
	}
	if placements[0].GlyphIndex != 0 || placements[1].GlyphIndex != 1 {
		t.Errorf("glyphs should alternate, got %d, %d", placements[0].GlyphIndex, placements[1].GlyphIndex)
	}
}

func TestRunLayoutLimit(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	var buf bytes.Buffer

	if err := c.runLayout(context.Background(), &buf, layoutOptions(layout.Spiral), true, 3); err != nil {
		t.Fatalf("runLayout: %v", err)
	}
	var placements []layout.Placement
	if err := json.Unmarshal(buf.Bytes(), &placements); err != nil {
		t.Fatal(err)
	}
	if len(placements) != 3 {
		t.Errorf("placements = %d, want 3", len(placements))
	}
}

func TestRunLayoutTable(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	var buf bytes.Buffer

	if err := c.runLayout(context.Background(), &buf, layoutOptions(layout.Grid), false, 2); err != nil {
		t.Fatalf("runLayout: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"glyph", "🐢", "🦋", "2 of 55 placements"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestRunLayoutInvalid(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	opts := layoutOptions(layout.Grid)
	opts.Config.Size = 5

	if err := c.runLayout(context.Background(), io.Discard, opts, true, 0); err == nil {
		t.Error("expected validation error")
	}
}
