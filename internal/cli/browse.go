package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blueprint/pkg/pipeline"
)

// browseOpts holds the flags for the browse command.
type browseOpts struct {
	buildFlags
	drawFlags
	fromModel bool
	output    string
}

// browseCommand creates the browse command: build and draw a brief, pick
// drawings interactively and save only those.
func (c *CLI) browseCommand() *cobra.Command {
	opts := browseOpts{}

	cmd := &cobra.Command{
		Use:   "browse <brief>",
		Short: "Interactively pick drawings of a model to save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd, args[0], opts)
		},
	}

	opts.buildFlags.register(cmd)
	opts.drawFlags.register(cmd)
	cmd.Flags().BoolVar(&opts.fromModel, "model", false, "treat the argument as a model file from 'blueprint build'")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "drawings", "output directory")

	return cmd
}

func (c *CLI) runBrowse(cmd *cobra.Command, path string, opts browseOpts) error {
	m, err := c.loadModel(cmd, path, opts.fromModel, opts.buildFlags)
	if err != nil {
		return err
	}

	popts := pipeline.Options{
		Formats: []string{pipeline.FormatSVG, pipeline.FormatDOT},
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

	files, err := runner.Render(cmd.Context(), m, popts)
	if err != nil {
		return err
	}

	list := NewDrawingListModel("Drawings of "+m.ID, newDrawingItems(files))
	final, err := tea.NewProgram(list, tea.WithContext(cmd.Context())).Run()
	if err != nil {
		return err
	}
	chosen := final.(DrawingListModel).Selected
	if len(chosen) == 0 {
		printInfo("Nothing saved")
		return nil
	}

	picked := make(map[string][]byte, len(chosen))
	for _, item := range chosen {
		picked[item.Name] = files[item.Name]
	}
	paths, err := writeArtifacts(opts.output, picked)
	if err != nil {
		return err
	}
	printSuccess("Saved %d drawings", len(paths))
	printFiles(paths)
	return nil
}
