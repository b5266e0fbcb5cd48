package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blueprint/pkg/errors"
	"github.com/matzehuels/blueprint/pkg/model"
	"github.com/matzehuels/blueprint/pkg/pipeline"
	"github.com/matzehuels/blueprint/pkg/render/projection"
)

// drawOpts holds the flags for the draw command.
type drawOpts struct {
	drawFlags
	output   string
	formats  string
	noCache  bool
	floors   []string
	facades  []string
	sections []string
}

// drawCommand creates the draw command, which projects an existing model
// file into drawings.
func (c *CLI) drawCommand() *cobra.Command {
	opts := drawOpts{}

	cmd := &cobra.Command{
		Use:   "draw <model.json>",
		Short: "Draw plans, elevations and sections of a model",
		Long: `Draw a building model produced by 'blueprint build'.

By default every plan, elevation and section is drawn. --floor, --facade
and --section restrict the output to the named drawings.`,
		Example: `  blueprint draw model.json -o drawings
  blueprint draw model.json -f svg,pdf --theme blueprint
  blueprint draw model.json --floor ground --facade S --section A-A`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDraw(cmd, args[0], opts)
		},
	}

	opts.drawFlags.register(cmd)
	registerFormatFlag(cmd, &opts.formats)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "drawings", "output directory")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringSliceVar(&opts.floors, "floor", nil, "plan floors to draw (ground, first, level2, or an index)")
	cmd.Flags().StringSliceVar(&opts.facades, "facade", nil, "elevations to draw (N, S, E, W)")
	cmd.Flags().StringSliceVar(&opts.sections, "section", nil, "sections to draw (A-A, B-B)")

	return cmd
}

func (c *CLI) runDraw(cmd *cobra.Command, path string, opts drawOpts) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	m, err := model.ImportJSON(path)
	if err != nil {
		return err
	}
	sel, err := newSelection(m, opts.floors, opts.facades, opts.sections)
	if err != nil {
		return err
	}

	popts := pipeline.Options{
		Formats: parseFormats(opts.formats),
		Logger:  c.Logger,
	}
	if err := opts.drawFlags.apply(cmd, &popts); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(cmd.Context(), "Drawing...")
	spinner.Start()
	artifacts, cached, err := runner.RenderWithCacheInfo(cmd.Context(), m, popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	artifacts = sel.filter(artifacts)
	paths, err := writeArtifacts(opts.output, artifacts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d files", len(paths)))

	v := m.Validate()
	printSuccess("Drew %s", m.ID)
	printStats(v.Metrics.Floors, v.Metrics.Rooms, v.Metrics.Windows+v.Metrics.Doors, cached)
	printFiles(paths)
	return nil
}

// selection restricts output to named drawings. The zero value keeps
// everything.
type selection struct {
	stems map[string]bool
}

func newSelection(m *model.Building, floors, facades, sections []string) (selection, error) {
	if len(floors)+len(facades)+len(sections) == 0 {
		return selection{}, nil
	}
	s := selection{stems: map[string]bool{}}
	for _, key := range floors {
		i, ok := projection.ParseFloorKey(key)
		if !ok || m.Floor(i) == nil {
			return s, fmt.Errorf("no floor %q (model has %d floors)", key, len(m.Floors))
		}
		s.stems["plan-"+projection.FloorKey(i)] = true
	}
	for _, f := range facades {
		if err := errors.ValidateFacade(f); err != nil {
			return s, err
		}
		facade, _ := model.ParseFacade(f)
		s.stems["elevation-"+string(facade)] = true
	}
	for _, name := range sections {
		if err := errors.ValidateSection(name); err != nil {
			return s, err
		}
		canonical, _ := projection.ParseSection(name)
		s.stems["section-"+canonical] = true
	}
	return s, nil
}

// filter drops drawings that were not selected. Files that are not plans,
// elevations or sections are always kept.
func (s selection) filter(artifacts map[string][]byte) map[string][]byte {
	if s.stems == nil {
		return artifacts
	}
	out := map[string][]byte{}
	for name, data := range artifacts {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if isDrawing(stem) && !s.stems[stem] {
			continue
		}
		out[name] = data
	}
	return out
}

func isDrawing(stem string) bool {
	for _, prefix := range []string{"plan-", "elevation-", "section-"} {
		if strings.HasPrefix(stem, prefix) {
			return true
		}
	}
	return false
}

// registerFormatFlag adds the -f flag with shell completion of format names.
func registerFormatFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "format", "f", "", "output formats: svg, png, pdf, json, dot (comma-separated, default svg)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON, pipeline.FormatDOT},
			cobra.ShellCompDirectiveNoFileComp
	})
}
