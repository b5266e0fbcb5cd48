package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blueprint/pkg/errors"
	"github.com/matzehuels/blueprint/pkg/pipeline"
)

// renderOpts holds the flags for the render command.
type renderOpts struct {
	buildFlags
	drawFlags
	output      string
	formats     string
	concurrency int
}

// renderCommand creates the render command, which builds and draws one or
// more briefs in a single step.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render <brief>...",
		Short: "Build and draw one or more briefs",
		Long: `Build a model from each brief and draw it.

With a single brief the files go straight into the output directory. With
several, each design gets its own subdirectory named after its brief file.
Briefs are processed concurrently; the first failure stops the rest.`,
		Example: `  blueprint render house.yaml
  blueprint render briefs/*.json -f svg,json -o out --concurrency 8`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args, opts)
		},
	}

	opts.buildFlags.register(cmd)
	opts.drawFlags.register(cmd)
	registerFormatFlag(cmd, &opts.formats)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "drawings", "output directory")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", pipeline.DefaultConcurrency, "briefs processed at once")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, paths []string, opts renderOpts) error {
	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	all := make([]pipeline.Options, len(paths))
	for i, path := range paths {
		popts := pipeline.Options{BriefPath: path, Formats: formats, Logger: c.Logger}
		opts.buildFlags.apply(&popts)
		if err := opts.drawFlags.apply(cmd, &popts); err != nil {
			return err
		}
		all[i] = popts
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	msg := "Rendering..."
	if len(paths) > 1 {
		msg = fmt.Sprintf("Rendering %d designs...", len(paths))
	}
	spinner := newSpinnerWithContext(cmd.Context(), msg)
	spinner.Start()
	results, err := runner.ExecuteAll(cmd.Context(), all, opts.concurrency)
	spinner.Stop()
	if err != nil {
		return err
	}

	dirs := outputDirs(opts.output, all)
	total := 0
	for i, res := range results {
		written, err := writeArtifacts(dirs[i], res.Artifacts)
		if err != nil {
			return err
		}
		total += len(written)

		printSuccess("%s", all[i].DesignName())
		printStats(res.Stats.Floors, res.Stats.Rooms, res.Stats.Openings, res.CacheInfo.BuildHit && res.CacheInfo.RenderHit)
		printValidation(res.Validation)
		printFiles(written)
	}
	prog.done(fmt.Sprintf("Wrote %d files for %d designs", total, len(results)))
	return nil
}

// outputDirs picks the directory of each run. A single run writes into
// root. Several runs get one subdirectory each, named by design; repeated
// names get a numeric suffix.
func outputDirs(root string, all []pipeline.Options) []string {
	dirs := make([]string, len(all))
	if len(all) == 1 {
		dirs[0] = root
		return dirs
	}
	seen := map[string]int{}
	for i := range all {
		name := all[i].DesignName()
		if errors.ValidateDesignID(name) != nil {
			name = fmt.Sprintf("design-%d", i+1)
		}
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s-%d", name, n)
		}
		dirs[i] = filepath.Join(root, name)
	}
	return dirs
}
