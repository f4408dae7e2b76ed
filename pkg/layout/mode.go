package layout

import (
	"fmt"
	"strings"
)

// Mode selects one of the five placement patterns.
type Mode int

const (
	Grid Mode = iota
	Large
	Mixed
	Radial
	Spiral
)

var modeNames = [...]string{
	Grid:   "grid",
	Large:  "large",
	Mixed:  "mixed",
	Radial: "radial",
	Spiral: "spiral",
}

// Modes returns all layout modes in declaration order.
func Modes() []Mode {
	return []Mode{Grid, Large, Mixed, Radial, Spiral}
}

// ModeNames returns the names of all layout modes in declaration order.
func ModeNames() []string {
	names := make([]string, len(modeNames))
	copy(names, modeNames[:])
	return names
}

// String returns the lower-case mode name.
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m >= Grid && m <= Spiral
}

// Next returns the mode following m, wrapping around after [Spiral].
func (m Mode) Next() Mode {
	return Mode((int(m) + 1) % len(modeNames))
}

// ParseMode returns the mode with the given name. Matching is case-insensitive
// and ignores surrounding whitespace.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown layout mode %q (must be one of: %s)", s, strings.Join(modeNames[:], ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid layout mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
