package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxGlyphInput bounds the raw glyph text accepted from users before it is
// split into glyphs. Emoji sequences can be long, so this is generous.
const MaxGlyphInput = 256

// ValidateRange checks that v lies in [lo, hi] and reports a coded error
// naming the field otherwise.
func ValidateRange(code Code, field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return New(code, "%s must be between %d and %d, got %d", field, lo, hi, v)
	}
	return nil
}

// ValidateGlyphText validates raw glyph input before it is split.
//
// The validation rules are intentionally conservative:
//   - Must be valid UTF-8
//   - No control characters (zero-width joiners and variation selectors are
//     format characters, not control characters, and are allowed)
//   - Maximum length of MaxGlyphInput bytes
func ValidateGlyphText(text string) error {
	if len(text) > MaxGlyphInput {
		return New(ErrCodeInvalidGlyphs, "glyph text too long (max %d bytes)", MaxGlyphInput)
	}
	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidGlyphs, "glyph text is not valid UTF-8")
	}
	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGlyphs, "glyph text contains control characters")
		}
	}
	return nil
}

// ValidateOutputPath validates a user-supplied output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}
