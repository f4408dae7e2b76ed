package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/emojiwall/pkg/fonts"
	"github.com/matzehuels/emojiwall/pkg/layout"
	"github.com/matzehuels/emojiwall/pkg/pipeline"
	"github.com/matzehuels/emojiwall/pkg/render/sink"
	"github.com/matzehuels/emojiwall/pkg/wallpaper"
)

// Editor styles
var (
	editorSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editorLabelStyle    = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	editorValueStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	editorDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	editorErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// editCommand creates the interactive editor command.
func (c *CLI) editCommand() *cobra.Command {
	var (
		flags   wallpaperFlags
		preview string
		outDir  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a wallpaper interactively with a live preview",
		Long: `Edit a wallpaper interactively with a live preview.

Every change re-runs the layout and rewrites the preview PNG, so an image
viewer that reloads on change shows the wallpaper as you edit it.

Keys:
  tab / shift+tab   select field
  ← / →             adjust the selected field
  + / -             add or remove a glyph
  m                 next layout mode
  s                 shuffle all settings
  enter             export in the selected formats
  q                 quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd.Flags())
			if err != nil {
				return err
			}
			return c.runEdit(cmd.Context(), opts, preview, outDir, noCache)
		},
	}

	flags.register(cmd.Flags(), true)
	registerWallpaperCompletions(cmd)
	cmd.Flags().StringVar(&preview, "preview", filepath.Join(os.TempDir(), previewName), "preview PNG rewritten on every change")
	cmd.Flags().StringVarP(&outDir, "dir", "d", ".", "directory for exported files")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, opts pipeline.Options, preview, outDir string, noCache bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	m, err := newEditorModel(ctx, runner, opts, preview, outDir)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	if em, ok := final.(editorModel); ok && len(em.exported) > 0 {
		printSuccess("Exported %s wallpaper", em.cfg.Mode)
		for _, p := range em.exported {
			printFile(p)
		}
	}
	printDetail("Preview: %s", preview)
	return nil
}

// =============================================================================
// editorModel - Interactive wallpaper editor
// =============================================================================

type editorField int

const (
	fieldGlyphs editorField = iota
	fieldBackground
	fieldMode
	fieldDensity
	fieldSize
	numFields
)

var fieldNames = [numFields]string{"glyphs", "background", "mode", "density", "size"}

// Step sizes for left/right.
const (
	densityStep = 5
	sizeStep    = 2
)

// previewMsg reports a finished preview render.
type previewMsg struct {
	placements int
	err        error
}

// exportMsg reports a finished export.
type exportMsg struct {
	paths []string
	err   error
}

// editorModel is the bubbletea model for the wallpaper editor. The
// configuration is the only state; placements are recomputed on every change.
type editorModel struct {
	ctx     context.Context
	runner  *pipeline.Runner
	opts    pipeline.Options
	cfg     wallpaper.Config
	font    *fonts.Font
	preview string
	outDir  string
	rng     *rand.Rand
	now     func() time.Time

	field      editorField
	placements int
	status     string
	err        error
	exported   []string
}

func newEditorModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, preview, outDir string) (editorModel, error) {
	f, err := fonts.Resolve(opts.FontPath)
	if err != nil {
		return editorModel{}, err
	}
	return editorModel{
		ctx:     ctx,
		runner:  runner,
		opts:    opts,
		cfg:     opts.Config,
		font:    f,
		preview: preview,
		outDir:  outDir,
		rng:     shuffleRand(opts.Seed),
		now:     time.Now,
	}, nil
}

func (m editorModel) Init() tea.Cmd {
	return m.renderPreview()
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case previewMsg:
		m.placements = msg.placements
		m.err = msg.err
		return m, nil
	case exportMsg:
		m.err = msg.err
		if msg.err == nil {
			m.exported = append(m.exported, msg.paths...)
			m.status = fmt.Sprintf("exported %s", strings.Join(msg.paths, ", "))
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m editorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "down", "j":
		m.field = (m.field + 1) % numFields
		return m, nil
	case "shift+tab", "up", "k":
		m.field = (m.field + numFields - 1) % numFields
		return m, nil
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)
	case "+":
		if len(m.cfg.Glyphs) < wallpaper.MaxGlyphs {
			m.cfg.Glyphs = append(slices.Clone(m.cfg.Glyphs), wallpaper.Palette[m.rng.IntN(len(wallpaper.Palette))])
		}
	case "-":
		if len(m.cfg.Glyphs) > 1 {
			m.cfg.Glyphs = slices.Clone(m.cfg.Glyphs[:len(m.cfg.Glyphs)-1])
		}
	case "m":
		m.cfg.Mode = m.cfg.Mode.Next()
	case "s":
		w, h := m.cfg.Width, m.cfg.Height
		m.cfg = wallpaper.Shuffle(m.rng)
		m.cfg.Width, m.cfg.Height = w, h
	case "enter":
		m.status = "exporting..."
		return m, m.export()
	default:
		return m, nil
	}
	m.status = ""
	return m, m.renderPreview()
}

// adjust moves the selected field one step in dir (-1 or +1).
func (m *editorModel) adjust(dir int) {
	switch m.field {
	case fieldGlyphs:
		glyphs := slices.Clone(m.cfg.Glyphs)
		glyphs[0] = cycle(wallpaper.Palette, glyphs[0], dir)
		m.cfg.Glyphs = glyphs
	case fieldBackground:
		m.cfg.Background = cycle(wallpaper.Backgrounds, strings.ToUpper(m.cfg.Background), dir)
	case fieldMode:
		modes := layout.Modes()
		m.cfg.Mode = cycle(modes, m.cfg.Mode, dir)
	case fieldDensity:
		m.cfg.Density = clamp(m.cfg.Density+dir*densityStep, wallpaper.MinDensity, wallpaper.MaxDensity)
	case fieldSize:
		m.cfg.Size = clamp(m.cfg.Size+dir*sizeStep, wallpaper.MinSize, wallpaper.MaxSize)
	}
}

// cycle returns the element dir steps away from cur in items, wrapping.
// A value not in items moves to the first element.
func cycle[T comparable](items []T, cur T, dir int) T {
	i := slices.Index(items, cur)
	if i < 0 {
		return items[0]
	}
	n := len(items)
	return items[((i+dir)%n+n)%n]
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// renderPreview rewrites the preview PNG for the current configuration.
func (m editorModel) renderPreview() tea.Cmd {
	opts := m.opts
	opts.Config = m.cfg
	font, path := m.font, m.preview

	return func() tea.Msg {
		if err := opts.Config.Validate(); err != nil {
			return previewMsg{err: err}
		}
		scene := sink.Scene{Config: opts.Config, Placements: pipeline.Preview(opts)}

		pngOpts := []sink.PNGOption{sink.WithFont(font)}
		if opts.Ink != "" {
			if ink, err := wallpaper.ParseColor(opts.Ink); err == nil {
				pngOpts = append(pngOpts, sink.WithInk(ink))
			}
		}
		data, err := sink.RenderPNG(scene, pngOpts...)
		if err != nil {
			return previewMsg{err: err}
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return previewMsg{err: err}
		}
		return previewMsg{placements: len(scene.Placements)}
	}
}

// export runs the full pipeline and writes the selected formats to outDir.
func (m editorModel) export() tea.Cmd {
	opts := m.opts
	opts.Config = m.cfg
	opts.Font = m.font
	ctx, runner, outDir, now := m.ctx, m.runner, m.outDir, m.now()

	return func() tea.Msg {
		result, err := runner.Execute(ctx, opts)
		if err != nil {
			return exportMsg{err: err}
		}
		paths, err := outputPaths(opts.Formats, opts.Config.Glyphs, "", now)
		if err != nil {
			return exportMsg{err: err}
		}
		for i := range paths {
			paths[i] = filepath.Join(outDir, paths[i])
		}
		if err := writeArtifacts(result.Artifacts, opts.Formats, paths); err != nil {
			return exportMsg{err: err}
		}
		return exportMsg{paths: paths}
	}
}

func (m editorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("emojiwall"))
	b.WriteString("  ")
	b.WriteString(editorDimStyle.Render(fmt.Sprintf("%dx%d", m.cfg.Width, m.cfg.Height)))
	b.WriteString("\n\n")

	values := [numFields]string{
		wallpaper.JoinGlyphs(m.cfg.Glyphs),
		m.cfg.Background,
		m.cfg.Mode.String(),
		fmt.Sprintf("%d", m.cfg.Density),
		fmt.Sprintf("%d", m.cfg.Size),
	}
	for i, name := range fieldNames {
		cursor := "  "
		label := editorLabelStyle.Render(name)
		value := editorValueStyle.Render(values[i])
		if editorField(i) == m.field {
			cursor = editorSelectedStyle.Render("▸ ")
			value = editorSelectedStyle.Render("‹ " + values[i] + " ›")
		}
		b.WriteString(cursor + label + " " + value + "\n")
	}

	b.WriteString("\n")
	b.WriteString(editorDimStyle.Render(fmt.Sprintf("preview  %s  (%d placements)", m.preview, m.placements)))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(editorErrorStyle.Render(iconError + " " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(StyleSuccess.Render(iconSuccess + " " + m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(editorDimStyle.Render("tab field  ←/→ adjust  +/- glyphs  m mode  s shuffle  ⏎ export  q quit"))

	return b.String()
}
