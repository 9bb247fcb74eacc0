package cmd

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/energystat-cli/internal/analysis"
	"github.com/KaramelBytes/energystat-cli/internal/chart"
	"github.com/KaramelBytes/energystat-cli/internal/dataset"
	"github.com/KaramelBytes/energystat-cli/internal/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var repXLSXOut string

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Run the full pipeline: clean, describe, filter and render every chart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		s, err := settings(cmd)
		if err != nil {
			return err
		}
		tbl, dropped, err := loadClean(path, true)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		s.CorrColumns = presentColumns(tbl, s.CorrColumns)

		sum, err := analysis.Summarize(tbl, dropped, s.CorrColumns)
		if err != nil {
			return err
		}
		sum.WriteText(out)
		if repXLSXOut != "" {
			if err := sum.ExportXLSX(repXLSXOut); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Wrote statistics workbook to %s\n", repXLSXOut)
		}

		view := dataset.Filter(tbl, criteria(s))
		log.Info().Strs("countries", s.Countries).Int("year_min", s.YearMin).Int("year_max", s.YearMax).
			Int("rows", view.Len()).Msg("dataset filtered")

		r, err := newRenderer(s)
		if err != nil {
			return err
		}
		m := report.NewManifest(path, r.Options().OutDir)
		m.Rows = tbl.Len()
		m.Dropped = dropped
		m.Filtered = view.Len()
		for _, k := range chart.Kinds {
			p, err := render(r, k, view, s)
			if errors.Is(err, dataset.ErrEmptyResult) {
				log.Warn().Err(err).Str("chart", string(k)).Msg("chart skipped")
				m.Warn(fmt.Sprintf("%s: %v", k, err))
				continue
			}
			if err != nil {
				return err
			}
			m.AddChart(string(k), p)
			fmt.Fprintf(out, "✓ Wrote %s chart to %s\n", k, p)
		}
		if s.Preview {
			if err := chart.Preview(out, view); err != nil {
				log.Warn().Err(err).Msg("preview skipped")
			}
		}
		mp, err := m.Save()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Wrote manifest to %s\n", mp)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	addInputFlags(reportCmd)
	addSelectionFlags(reportCmd)
	reportCmd.Flags().StringVar(&repXLSXOut, "xlsx-out", "", "optional path to write describe and correlation sheets (XLSX)")
}
