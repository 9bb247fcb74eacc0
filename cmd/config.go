package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/energystat-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set energystat configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "countries: %s\n", strings.Join(cfg.Countries, ", "))
		fmt.Fprintf(out, "year_min: %d\n", cfg.YearMin)
		fmt.Fprintf(out, "year_max: %d\n", cfg.YearMax)
		fmt.Fprintf(out, "pie_year: %d\n", cfg.PieYear)
		fmt.Fprintf(out, "heatmap_countries: %s\n", strings.Join(cfg.HeatmapCountries, ", "))
		fmt.Fprintf(out, "corr_columns: %s\n", strings.Join(cfg.CorrColumns, ", "))
		fmt.Fprintf(out, "output_dir: %s\n", cfg.OutputDir)
		fmt.Fprintf(out, "image_format: %s\n", cfg.ImageFormat)
		fmt.Fprintf(out, "image_size_in: %.1fx%.1f\n", cfg.ImageWidthIn, cfg.ImageHeightIn)
		fmt.Fprintf(out, "preview: %t\n", cfg.Preview)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := currentConfig()
		if err != nil {
			return err
		}
		next := *c
		switch key {
		case "countries":
			next.Countries = splitList(val)
		case "year_min", "year_max", "pie_year":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for %s: %w", key, err)
			}
			switch key {
			case "year_min":
				next.YearMin = i
			case "year_max":
				next.YearMax = i
			default:
				next.PieYear = i
			}
		case "heatmap_countries":
			next.HeatmapCountries = splitList(val)
		case "corr_columns":
			next.CorrColumns = splitList(val)
		case "output_dir":
			next.OutputDir = val
		case "image_format":
			next.ImageFormat = strings.ToLower(val)
		case "image_width_in", "image_height_in":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid size for %s: %v", key, val)
			}
			if key == "image_width_in" {
				next.ImageWidthIn = f
			} else {
				next.ImageHeightIn = f
			}
		case "preview":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for preview: %w", err)
			}
			next.Preview = b
		case "log_level":
			next.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(&next, cfgFile); err != nil {
			return err
		}
		cfg = &next
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// splitList turns "a, b,c" into [a b c], dropping empty entries.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
