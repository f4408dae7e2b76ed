package layout

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"grid", Grid, false},
		{"LARGE", Large, false},
		{" mixed ", Mixed, false},
		{"radial", Radial, false},
		{"spiral", Spiral, false},
		{"hexagon", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestModeRoundTrip(t *testing.T) {
	for _, m := range Modes() {
		text, err := m.MarshalText()
		if err != nil {
			t.Fatalf("%v.MarshalText() error: %v", m, err)
		}
		var got Mode
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error: %v", text, err)
		}
		if got != m {
			t.Errorf("round trip %v -> %q -> %v", m, text, got)
		}
	}
}

func TestModeNext(t *testing.T) {
	if Grid.Next() != Large || Spiral.Next() != Grid {
		t.Errorf("Next cycle broken: Grid.Next() = %v, Spiral.Next() = %v", Grid.Next(), Spiral.Next())
	}
}

func TestInvalidMode(t *testing.T) {
	m := Mode(9)
	if m.Valid() {
		t.Error("Mode(9).Valid() = true")
	}
	if m.String() != "Mode(9)" {
		t.Errorf("Mode(9).String() = %q", m.String())
	}
	if _, err := m.MarshalText(); err == nil {
		t.Error("Mode(9).MarshalText() should fail")
	}
}
