package cmd

import (
	"fmt"

	"github.com/KaramelBytes/energystat-cli/internal/chart"
	"github.com/KaramelBytes/energystat-cli/internal/dataset"
	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:   "chart <bar|line|pie|box|heatmap> <file>",
	Short: "Render a single chart from the filtered dataset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := chart.ParseKind(args[0])
		if err != nil {
			return err
		}
		s, err := settings(cmd)
		if err != nil {
			return err
		}
		tbl, _, err := loadClean(args[1], true)
		if err != nil {
			return err
		}
		s.CorrColumns = presentColumns(tbl, s.CorrColumns)
		view := dataset.Filter(tbl, criteria(s))
		r, err := newRenderer(s)
		if err != nil {
			return err
		}
		p, err := render(r, k, view, s)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s chart to %s\n", k, p)
		if s.Preview {
			return chart.Preview(cmd.OutOrStdout(), view)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	addInputFlags(chartCmd)
	addSelectionFlags(chartCmd)
}
