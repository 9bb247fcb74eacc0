package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/energystat-cli/internal/analysis"
	"github.com/KaramelBytes/energystat-cli/internal/dataset"
	"github.com/KaramelBytes/energystat-cli/internal/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	desFormat  string
	desOutput  string
	desXLSXOut string
	desCorr    []string
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Print descriptive statistics, skewness, kurtosis and correlations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentConfig()
		if err != nil {
			return err
		}
		tbl, dropped, err := loadClean(args[0], false)
		if err != nil {
			return err
		}
		cols := s.CorrColumns
		if cmd.Flags().Changed("corr") {
			cols = desCorr
		}
		sum, err := analysis.Summarize(tbl, dropped, presentColumns(tbl, cols))
		if err != nil {
			return err
		}

		var body []byte
		switch strings.ToLower(desFormat) {
		case "", "text":
			var b strings.Builder
			sum.WriteText(&b)
			body = []byte(b.String())
		case "markdown", "md":
			body = []byte(sum.Markdown())
		case "json":
			body, err = sum.JSON()
		case "yaml", "yml":
			body, err = sum.YAML()
		default:
			return fmt.Errorf("unsupported --format: %s (use text|markdown|json|yaml)", desFormat)
		}
		if err != nil {
			return err
		}

		if desOutput != "" {
			if dir := filepath.Dir(desOutput); dir != "." {
				if err := utils.EnsureDir(dir); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
			}
			if err := utils.SafeWriteFile(desOutput, body); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote summary to %s\n", desOutput)
		} else {
			if _, err := cmd.OutOrStdout().Write(body); err != nil {
				return err
			}
		}
		if desXLSXOut != "" {
			if err := sum.ExportXLSX(desXLSXOut); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote statistics workbook to %s\n", desXLSXOut)
		}
		return nil
	},
}

// presentColumns keeps the numeric columns of cols that exist in t.
func presentColumns(t *dataset.Table, cols []string) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		j := t.Col(c)
		if j < 0 || t.Columns[j].Kind != dataset.KindNumber {
			log.Warn().Str("column", c).Msg("correlation column not numeric or absent; skipped")
			continue
		}
		out = append(out, c)
	}
	return out
}

func init() {
	rootCmd.AddCommand(describeCmd)
	addInputFlags(describeCmd)
	describeCmd.Flags().StringVar(&desFormat, "format", "text", "output format: text|markdown|json|yaml")
	describeCmd.Flags().StringVarP(&desOutput, "output", "o", "", "optional path to write the summary instead of stdout")
	describeCmd.Flags().StringVar(&desXLSXOut, "xlsx-out", "", "optional path to write describe and correlation sheets (XLSX)")
	describeCmd.Flags().StringSliceVar(&desCorr, "corr", nil, "columns to correlate (default from config)")
}
