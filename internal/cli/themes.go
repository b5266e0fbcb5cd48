package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blueprint/pkg/pipeline"
	"github.com/matzehuels/blueprint/pkg/styles"
)

// themesCommand lists the drawing themes with a swatch of their main colors.
func (c *CLI) themesCommand() *cobra.Command {
	var css string

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List drawing themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if css != "" {
				if err := pipeline.ValidateTheme(css); err != nil {
					return err
				}
				t, _ := styles.Lookup(css)
				fmt.Fprint(cmd.OutOrStdout(), t.CSS())
				return nil
			}
			fmt.Fprintln(stdout, themeTable())
			return nil
		},
	}
	cmd.Flags().StringVar(&css, "css", "", "print the stylesheet embedded in drawings of this theme")
	return cmd
}

func themeTable() string {
	rows := [][]string{}
	for _, name := range styles.Names() {
		t, _ := styles.Lookup(name)
		p := t.Palette
		def := ""
		if name == styles.DefaultTheme {
			def = "default"
		}
		rows = append(rows, []string{
			name,
			swatch(p.Background) + swatch(p.Wall) + swatch(p.Poche) + swatch(p.Glass) + swatch(p.Roof),
			fmt.Sprintf("%.1f / %.1f", t.Weights.Cut, t.Weights.Thin),
			def,
		})
	}
	return newTable("Theme", "Colors", "Cut / thin", "").Rows(rows...).Render()
}

func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}
