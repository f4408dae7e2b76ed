package errors

import (
	"strings"
	"testing"
)

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		v       int
		wantErr bool
	}{
		{"low bound", 10, false},
		{"high bound", 100, false},
		{"middle", 55, false},
		{"below", 9, true},
		{"above", 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange(ErrCodeInvalidDensity, "density", tt.v, 10, 100)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRange(%d) error = %v, wantErr %v", tt.v, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDensity) {
				t.Errorf("ValidateRange(%d) code = %v, want %v", tt.v, GetCode(err), ErrCodeInvalidDensity)
			}
		})
	}
}

func TestValidateGlyphText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single emoji", "🐢", false},
		{"several emoji", "🐢🦋🌸", false},
		{"zwj sequence", "👩‍💻", false},
		{"variation selector", "☀️", false},
		{"plain letters", "abc", false},
		{"empty", "", false},

		{"too long", strings.Repeat("a", MaxGlyphInput+1), true},
		{"invalid utf8", "\xff\xfe", true},
		{"newline", "🐢\n🦋", true},
		{"null byte", "🐢\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGlyphText(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGlyphText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "wallpaper.png", false},
		{"nested", "out/wallpaper.svg", false},
		{"absolute", "/tmp/wallpaper.png", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "wall\x00paper.png", true},
		{"directory", "out/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
