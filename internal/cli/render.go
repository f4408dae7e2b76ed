package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/emojiwall/pkg/errors"
	"github.com/matzehuels/emojiwall/pkg/pipeline"
	"github.com/matzehuels/emojiwall/pkg/wallpaper"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags   wallpaperFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a wallpaper to PNG, SVG, PDF or JSON",
		Long: `Render a wallpaper to PNG, SVG, PDF or JSON.

Settings come from the built-in defaults, then an optional TOML preset
(--config), then --shuffle, then any flag given on the command line.

Without --output, files are named emoji-wallpaper-<glyphs>-<unix ms>.<format>
in the current directory. With several formats, --output is used as a base
path and the format is appended as the extension.

Deterministic renders (every mode except mixed, or mixed with --seed) are
cached locally for faster subsequent runs.`,
		Example: `  emojiwall render -g "🐢🦋🌸" -m spiral
  emojiwall render --shuffle -f png,svg -o wall
  emojiwall render -c preset.toml --scale 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd.Flags())
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	flags.register(cmd.Flags(), true)
	registerWallpaperCompletions(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender executes the pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s wallpaper...", opts.Config.Mode))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}

	paths, err := outputPaths(opts.Formats, opts.Config.Glyphs, output, time.Now())
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.SetMessage(fmt.Sprintf("Writing %d file(s)...", len(paths)))
	if err := writeArtifacts(result.Artifacts, opts.Formats, paths); err != nil {
		spinner.StopWithError("Write failed")
		return err
	}
	spinner.Stop()

	prog.done(fmt.Sprintf("Rendered %s wallpaper", opts.Config.Mode))
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Placements, len(opts.Config.Glyphs), result.CacheInfo.RenderHit)
	printNewline()
	printNextStep("Edit interactively", appName+" edit")
	return nil
}

// outputPaths returns one path per format, in format order.
func outputPaths(formats, glyphs []string, output string, now time.Time) ([]string, error) {
	paths := make([]string, len(formats))
	if output == "" {
		for i, f := range formats {
			paths[i] = wallpaper.ExportName(glyphs, now, f)
		}
		return paths, nil
	}

	if err := errors.ValidateOutputPath(output); err != nil {
		return nil, err
	}
	if len(formats) == 1 {
		paths[0] = output
		return paths, nil
	}

	base := basePath(output)
	for i, f := range formats {
		paths[i] = base + "." + f
	}
	return paths, nil
}

// basePath strips a known format extension from output.
func basePath(output string) string {
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes artifacts[formats[i]] to paths[i].
func writeArtifacts(artifacts map[string][]byte, formats, paths []string) error {
	for i, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			return fmt.Errorf("no %s output produced", f)
		}
		if dir := filepath.Dir(paths[i]); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(paths[i], data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", paths[i], err)
		}
	}
	return nil
}
