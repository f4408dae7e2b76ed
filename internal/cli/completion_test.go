package cli

import (
	"bytes"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func runRoot(t *testing.T, args ...string) string {
	t.Helper()
	root := New(io.Discard, log.ErrorLevel).RootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return buf.String()
}

// completions returns the candidate lines of a __complete run, dropping the
// trailing directive line.
func completions(out string) []string {
	var got []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if strings.HasPrefix(line, ":") {
			break
		}
		got = append(got, line)
	}
	return got
}

func TestFlagValueCompletion(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantNot []string
	}{
		{"render mode", []string{"render", "--mode", ""}, []string{"grid", "large", "mixed", "radial", "spiral"}, nil},
		{"layout mode", []string{"layout", "--mode", "sp"}, []string{"spiral"}, nil},
		{"edit mode", []string{"edit", "--mode", ""}, []string{"grid"}, nil},
		{"format first entry", []string{"render", "--format", "p"}, []string{"pdf", "png"}, []string{"svg"}},
		{"format after comma", []string{"render", "--format", "png,"}, []string{"png,json", "png,pdf", "png,svg"}, []string{"png,png"}},
		{"background", []string{"render", "--background", ""}, []string{"#87CEEB"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{cobra.ShellCompRequestCmd}, tt.args...)
			got := completions(runRoot(t, args...))
			for _, w := range tt.want {
				if !slices.Contains(got, w) {
					t.Errorf("completions %v missing %q", got, w)
				}
			}
			for _, w := range tt.wantNot {
				if slices.Contains(got, w) {
					t.Errorf("completions %v should not contain %q", got, w)
				}
			}
		})
	}
}

func TestLayoutHasNoFormatCompletion(t *testing.T) {
	root := New(io.Discard, log.ErrorLevel).RootCommand()
	cmd, _, err := root.Find([]string{"layout"})
	if err != nil {
		t.Fatalf("find layout: %v", err)
	}
	if _, ok := cmd.GetFlagCompletionFunc("format"); ok {
		t.Error("layout should not register --format completion")
	}
	if _, ok := cmd.GetFlagCompletionFunc("mode"); !ok {
		t.Error("layout should register --mode completion")
	}
}

func TestCompletionScripts(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out := runRoot(t, "completion", shell)
			if !strings.Contains(out, appName) {
				t.Errorf("%s script does not mention %q", shell, appName)
			}
		})
	}
}
