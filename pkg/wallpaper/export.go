package wallpaper

import (
	"fmt"
	"strings"
	"time"
)

// ExportName returns the download file name for a render:
// emoji-wallpaper-<glyphs>-<unix millis>.<ext>
func ExportName(glyphs []string, t time.Time, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "png"
	}
	return fmt.Sprintf("emoji-wallpaper-%s-%d.%s", JoinGlyphs(glyphs), t.UnixMilli(), ext)
}
