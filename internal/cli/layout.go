package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/emojiwall/pkg/layout"
	"github.com/matzehuels/emojiwall/pkg/pipeline"
	"github.com/matzehuels/emojiwall/pkg/wallpaper"
)

// layoutCommand creates the layout command, which prints placements
// without rendering.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  wallpaperFlags
		asJSON bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the placements a wallpaper would use",
		Long: `Print the placements a wallpaper would use.

Runs the layout engine only and prints one row per placement: position,
size and glyph. Use --json for machine-readable output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd.Flags())
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), opts, asJSON, limit)
		},
	}

	flags.register(cmd.Flags(), false)
	registerWallpaperCompletions(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print placements as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "print at most n placements (0: all)")

	return cmd
}

// runLayout computes the placements and writes them to w.
func (c *CLI) runLayout(ctx context.Context, w io.Writer, opts pipeline.Options, asJSON bool, limit int) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	placements, err := runner.Layout(ctx, opts)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("layout computed", "mode", opts.Config.Mode, "placements", len(placements))

	total := len(placements)
	if limit > 0 && limit < total {
		placements = placements[:limit]
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(placements)
	}

	fmt.Fprintln(w, placementTable(opts.Config, placements))
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("  %d of %d placements · %s", len(placements), total, opts.Config.Mode)))
	return nil
}

// placementTable renders placements as a bordered table.
func placementTable(cfg wallpaper.Config, placements []layout.Placement) string {
	rows := make([][]string, len(placements))
	for i, p := range placements {
		rows[i] = []string{
			strconv.Itoa(i),
			strconv.FormatFloat(p.X, 'f', 1, 64),
			strconv.FormatFloat(p.Y, 'f', 1, 64),
			strconv.FormatFloat(p.Size, 'f', 1, 64),
			fmt.Sprintf("%d %s", p.GlyphIndex, cfg.Glyph(p)),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "x", "y", "size", "glyph").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return cellStyle.Foreground(colorDim)
			}
			return cellStyle.Foreground(colorWhite)
		})

	return t.Render()
}

// modesCommand lists the layout modes.
func (c *CLI) modesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List the layout modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, m := range layout.Modes() {
				printKeyValue(m.String(), modeDescriptions[m])
			}
			return nil
		},
	}
}

var modeDescriptions = map[layout.Mode]string{
	layout.Grid:   "uniform grid at the base size",
	layout.Large:  "sparser grid of enlarged glyphs",
	layout.Mixed:  "3x3 size pattern with small random jitter",
	layout.Radial: "12 rays from the centre, shrinking outward",
	layout.Spiral: "one outward spiral from the centre",
}
