package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/emojiwall/pkg/layout"
	"github.com/matzehuels/emojiwall/pkg/pipeline"
	"github.com/matzehuels/emojiwall/pkg/wallpaper"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for emojiwall.

Besides commands and flags, the scripts complete layout modes (--mode),
output formats (--format, comma-separated) and the shuffle background
colours (--background).

Bash:
  $ source <(emojiwall completion bash)

Zsh:
  $ emojiwall completion zsh > "${fpath[1]}/_emojiwall"

Fish:
  $ emojiwall completion fish > ~/.config/fish/completions/emojiwall.fish

PowerShell:
  PS> emojiwall completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
		},
	}
}

// registerWallpaperCompletions adds value completion for the flags
// registered by wallpaperFlags.register.
func registerWallpaperCompletions(cmd *cobra.Command) {
	fixed := func(values ...string) cobra.CompletionFunc {
		return cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp)
	}
	_ = cmd.RegisterFlagCompletionFunc("mode", fixed(layout.ModeNames()...))
	_ = cmd.RegisterFlagCompletionFunc("background", fixed(wallpaper.Backgrounds...))
	if cmd.Flags().Lookup("format") != nil {
		_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	}
}

// completeFormats completes the last entry of a comma-separated format list,
// skipping formats already listed.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done, partial := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		done, partial = toComplete[:i+1], toComplete[i+1:]
	}
	used := strings.Split(done, ",")

	var out []string
	for _, f := range pipeline.FormatNames() {
		if strings.HasPrefix(f, strings.ToLower(partial)) && !slices.Contains(used, f) {
			out = append(out, done+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
