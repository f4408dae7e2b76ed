package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	if !Current().Dev() {
		t.Skip("stamped build")
	}
	if got := Template(); !strings.Contains(got, "dev build") {
		t.Errorf("Template() = %q, want a dev build line", got)
	}

	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v1.2.3"

	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} v1.2.3\n") || !strings.Contains(got, "built: ") {
		t.Errorf("Template() = %q", got)
	}
	if Current().Dev() {
		t.Error("stamped version should not report Dev")
	}
}
