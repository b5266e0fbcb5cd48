package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blueprint/pkg/compliance"
	"github.com/matzehuels/blueprint/pkg/model"
	"github.com/matzehuels/blueprint/pkg/pipeline"
	"github.com/matzehuels/blueprint/pkg/render/projection"
)

// inspectOpts holds the flags for the inspect command.
type inspectOpts struct {
	buildFlags
	fromModel bool
	rooms     bool
	asJSON    bool
}

// inspectCommand creates the inspect command, which summarizes a model and
// its compliance report.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{}

	cmd := &cobra.Command{
		Use:   "inspect <brief>",
		Short: "Summarize a model and check it against the room rules",
		Example: `  blueprint inspect house.yaml
  blueprint inspect house.yaml --rooms
  blueprint inspect model.json --model --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, args[0], opts)
		},
	}

	opts.buildFlags.register(cmd)
	cmd.Flags().BoolVar(&opts.fromModel, "model", false, "treat the argument as a model file from 'blueprint build'")
	cmd.Flags().BoolVar(&opts.rooms, "rooms", false, "list every room with its measured and required values")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the validation and compliance report as JSON")

	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, path string, opts inspectOpts) error {
	m, err := c.loadModel(cmd, path, opts.fromModel, opts.buildFlags)
	if err != nil {
		return err
	}
	report := pipeline.Report{Validation: m.Validate(), Compliance: compliance.Check(m)}

	if opts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printSummary(m)
	printNewline()
	fmt.Fprintln(stdout, floorTable(m))
	if opts.rooms {
		fmt.Fprintln(stdout, roomTable(report.Compliance.Rooms))
	}
	printNewline()
	printValidation(report.Validation)
	printCompliance(report.Compliance)
	return nil
}

// loadModel builds a model from a brief, or reads a model file when
// fromModel is set.
func (c *CLI) loadModel(cmd *cobra.Command, path string, fromModel bool, flags buildFlags) (*model.Building, error) {
	if fromModel {
		return model.ImportJSON(path)
	}
	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()
	popts := pipeline.Options{BriefPath: path, Logger: c.Logger}
	flags.apply(&popts)
	return runner.Build(cmd.Context(), popts)
}

func printSummary(m *model.Building) {
	d := m.DimensionsMeters()
	fmt.Fprintln(stdout, StyleTitle.Render("Design "+m.ID))
	printKeyValue("Envelope", fmt.Sprintf("%.2f × %.2f m, %.2f m to eaves", d.Width, d.Depth, d.Height))
	roof := string(m.Roof.Type)
	if m.Roof.Type != model.RoofFlat && m.Roof.Ridge != "" {
		roof = fmt.Sprintf("%s, %.0f°, ridge %s at %.2f m", roof, m.Roof.Pitch, m.Roof.Ridge, d.RidgeHeight)
	}
	printKeyValue("Roof", roof)
	printKeyValue("Stairs", strconv.Itoa(len(m.Stairs)))
	v := m.Validate().Metrics
	printKeyValue("Area", fmt.Sprintf("%.1f m² gross, %.1f m² rooms (%.0f%%)", v.GrossArea, v.RoomArea, v.Efficiency*100))
}

// floorTable renders one row per floor.
func floorTable(m *model.Building) string {
	rows := make([][]string, 0, len(m.Floors))
	for i, fl := range m.Floors {
		windows, doors := 0, 0
		for _, o := range fl.Openings {
			if o.Type == model.OpeningDoor {
				doors++
			} else {
				windows++
			}
		}
		rows = append(rows, []string{
			projection.FloorKey(i),
			fmt.Sprintf("%+.2f", float64(fl.ZBase)/1000),
			fmt.Sprintf("%.2f", float64(fl.FloorHeight)/1000),
			strconv.Itoa(len(fl.Rooms)),
			strconv.Itoa(len(fl.Walls)),
			strconv.Itoa(windows),
			strconv.Itoa(doors),
		})
	}
	return newTable("Floor", "Level (m)", "Height (m)", "Rooms", "Walls", "Windows", "Doors").Rows(rows...).Render()
}

// roomTable renders the measured values of every room, failing values in red.
func roomTable(rooms []compliance.RoomReport) string {
	rows := make([][]string, 0, len(rooms))
	failed := map[[2]int]bool{}
	for r, room := range rooms {
		glazing := "-"
		if room.MinGlazing > 0 {
			glazing = fmt.Sprintf("%.2f / %.2f", room.Glazing, room.MinGlazing)
			failed[[2]int{r, 5}] = room.Glazing < room.MinGlazing
		}
		failed[[2]int{r, 3}] = room.Area < room.MinArea
		failed[[2]int{r, 4}] = room.Width < room.MinWidth
		failed[[2]int{r, 6}] = !room.Reachable
		rows = append(rows, []string{
			projection.FloorKey(room.Floor),
			room.Name,
			string(room.Kind),
			fmt.Sprintf("%.1f / %.1f", room.Area, room.MinArea),
			fmt.Sprintf("%d / %d", room.Width, room.MinWidth),
			glazing,
			yesNo(room.Reachable),
		})
	}
	t := newTable("Floor", "Room", "Kind", "Area m²", "Width mm", "Glazing m²", "Reachable").Rows(rows...)
	return t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == headerRow {
			return styleTableHeader
		}
		if failed[[2]int{row, col}] {
			return StyleError
		}
		return lipgloss.NewStyle()
	}).Render()
}

func printCompliance(r compliance.Report) {
	if r.Compliant {
		printSuccess("All %d rooms pass %d checks", len(r.Rooms), len(compliance.Checks()))
		return
	}
	rows := make([][]string, 0, len(r.Issues))
	for _, i := range r.Issues {
		rows = append(rows, []string{projection.FloorKey(i.Floor), i.Check, i.Subject, i.Message})
	}
	printError("%d compliance issues", len(r.Issues))
	fmt.Fprintln(stdout, newTable("Floor", "Check", "Subject", "Issue").Rows(rows...).Render())
}

// headerRow is the row index lipgloss tables pass to StyleFunc for headers.
const headerRow = -1

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleTableHeader
			}
			return lipgloss.NewStyle()
		})
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
