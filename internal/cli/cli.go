// Package cli implements the blueprint command-line interface.
//
// The commands follow the pipeline stages: build turns a brief into a model
// file, draw renders a model file, and render does both in one step for
// any number of briefs. inspect and browse are interactive helpers.
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blueprint/pkg/buildinfo"
	"github.com/matzehuels/blueprint/pkg/cache"
	"github.com/matzehuels/blueprint/pkg/pipeline"
	"github.com/matzehuels/blueprint/pkg/render/projection"
	"github.com/matzehuels/blueprint/pkg/styles"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "blueprint"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Blueprint synthesizes building models and draws them",
		Long: `Blueprint turns a design brief into a 3D building model (envelope, floors,
rooms, walls, openings, roof and stairs) and projects that one model into
consistent technical drawings: floor plans, elevations and sections.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.drawCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.themesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/blueprint/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// buildFlags are the model construction flags shared by several commands.
type buildFlags struct {
	programPolicy string
	noRepair      bool
	noCache       bool
	refresh       bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.programPolicy, "program-policy", "", "empty program handling: envelope-only (default), default-program")
	cmd.Flags().BoolVar(&f.noRepair, "no-repair", false, "skip the adjacency repair pass")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

func (f *buildFlags) apply(opts *pipeline.Options) {
	opts.ProgramPolicy = f.programPolicy
	opts.DisableRepair = f.noRepair
	opts.Refresh = f.refresh
}

// drawFlags are the drawing flags shared by draw, render and browse.
// Flags left unset keep the value from the options file, if any, else the
// projection defaults.
type drawFlags struct {
	optionsFile string
	theme       string
	scale       float64
	furniture   bool
	plain       bool
	detailed    bool
	pngScale    float64
}

func (f *drawFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.optionsFile, "options", "", "drawing options TOML file")
	cmd.Flags().StringVar(&f.theme, "theme", "", "drawing theme: "+strings.Join(styles.Names(), ", "))
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "drawing scale in pixels per meter (default 50)")
	cmd.Flags().BoolVar(&f.furniture, "furniture", false, "draw furniture symbols in plans")
	cmd.Flags().BoolVar(&f.plain, "plain", false, "omit dimensions, hatching, ground and level markers")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "show room kind and zone in adjacency diagrams")
	cmd.Flags().Float64Var(&f.pngScale, "png-scale", pipeline.DefaultPNGScale, "PNG resolution multiplier")
	_ = cmd.RegisterFlagCompletionFunc("theme", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return styles.Names(), cobra.ShellCompDirectiveNoFileComp
	})
}

// options resolves the drawing options: defaults, then the options file,
// then explicit flags.
func (f *drawFlags) options(cmd *cobra.Command) (projection.Options, error) {
	opts := projection.DefaultOptions()
	if f.optionsFile != "" {
		loaded, err := projection.LoadOptions(f.optionsFile)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}
	if cmd.Flags().Changed("theme") {
		opts.Theme = f.theme
	}
	if f.scale > 0 {
		opts.Scale = f.scale
	}
	if cmd.Flags().Changed("furniture") {
		opts.ShowFurniture = f.furniture
	}
	if f.plain {
		opts.ShowDimensions = false
		opts.ShowWallHatch = false
		opts.ShowGround = false
		opts.ShowLevelMarkers = false
		opts.ShowFoundation = false
	}
	return opts, pipeline.ValidateTheme(opts.Theme)
}

func (f *drawFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	d, err := f.options(cmd)
	if err != nil {
		return err
	}
	opts.Drawing = &d
	opts.Detailed = f.detailed
	opts.PNGScale = f.pngScale
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
