package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/blueprint/pkg/model"
	"github.com/matzehuels/blueprint/pkg/pipeline"
)

// buildOpts holds the flags for the build command.
type buildOpts struct {
	buildFlags
	output string
}

// buildCommand creates the build command, which turns a brief into a model
// file without drawing it.
func (c *CLI) buildCommand() *cobra.Command {
	opts := buildOpts{}

	cmd := &cobra.Command{
		Use:   "build <brief>",
		Short: "Build a building model from a brief",
		Long: `Build a 3D building model from a design brief (JSON, YAML or TOML).

The model is written as JSON and can be drawn later with 'blueprint draw'.`,
		Example: `  blueprint build house.yaml
  blueprint build house.json -o house-model.json --program-policy default-program`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, args[0], opts)
		},
	}

	opts.buildFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", pipeline.ModelFile, "output model file")

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, path string, opts buildOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{BriefPath: path, Logger: c.Logger}
	opts.buildFlags.apply(&popts)

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(cmd.Context(), "Building model...")
	spinner.Start()
	m, cached, err := runner.BuildWithCacheInfo(cmd.Context(), popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	if err := model.ExportJSON(m, opts.output); err != nil {
		return err
	}
	prog.done("Built " + popts.DesignName())

	v := m.Validate()
	printSuccess("Model %s", m.ID)
	printStats(v.Metrics.Floors, v.Metrics.Rooms, v.Metrics.Windows+v.Metrics.Doors, cached)
	printValidation(v)
	for _, w := range m.Warnings {
		printWarning("%s", w)
	}
	printFile(opts.output)
	printNewline()
	printNextStep("Draw it", "blueprint draw "+opts.output)
	return nil
}

// printValidation prints model errors and warnings.
func printValidation(v model.Validation) {
	for _, e := range v.Errors {
		printError("%s", e)
	}
	for _, w := range v.Warnings {
		printWarning("%s", w)
	}
}
