package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/energystat-cli/internal/chart"
	cfgpkg "github.com/KaramelBytes/energystat-cli/internal/config"
	"github.com/KaramelBytes/energystat-cli/internal/dataset"
	"github.com/KaramelBytes/energystat-cli/internal/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

// Input parsing flags shared by every command that reads a data file.
var (
	inDelimiter string
	inSheet     string
	inDecimal   string
	inThousands string
)

// Selection and rendering overrides shared by report and chart.
var (
	selCountries []string
	selYearMin   int
	selYearMax   int
	selPieYear   int
	selHeatmap   []string
	outDir       string
	outFormat    string
	outPreview   bool
)

func addInputFlags(c *cobra.Command) {
	c.Flags().StringVar(&inDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (tab for .tsv, comma otherwise)")
	c.Flags().StringVar(&inSheet, "sheet", "", "XLSX: sheet name to read (first sheet if omitted)")
	c.Flags().StringVar(&inDecimal, "decimal", "", "decimal separator for numbers: '.'|'comma'")
	c.Flags().StringVar(&inThousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space'")
}

func addSelectionFlags(c *cobra.Command) {
	c.Flags().StringSliceVar(&selCountries, "countries", nil, "comma-separated countries to keep (default from config)")
	c.Flags().IntVar(&selYearMin, "year-min", 0, "first year to keep (inclusive)")
	c.Flags().IntVar(&selYearMax, "year-max", 0, "last year to keep (inclusive)")
	c.Flags().IntVar(&selPieYear, "pie-year", 0, "year shown in the wind-share pie chart")
	c.Flags().StringSliceVar(&selHeatmap, "heatmap", nil, "the two countries compared in the correlation heatmap")
	c.Flags().StringVar(&outDir, "out", "", "directory charts are written to")
	c.Flags().StringVar(&outFormat, "format", "", "image format: png|svg|pdf|jpg|eps|tif")
	c.Flags().BoolVar(&outPreview, "preview", false, "also draw a terminal preview of the wind trend")
}

func loadOptions() (dataset.LoadOptions, error) {
	var opt dataset.LoadOptions
	switch inDelimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", inDelimiter)
	}
	switch strings.ToLower(strings.TrimSpace(inDecimal)) {
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", inDecimal)
	}
	switch strings.ToLower(strings.TrimSpace(inThousands)) {
	case ",":
		opt.ThousandsSeparator = ','
	case ".":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", inThousands)
	}
	opt.Sheet = inSheet
	return opt, nil
}

// loadClean reads path and drops exact duplicate rows. When required is set
// the energy columns the charts depend on must all be present.
func loadClean(path string, required bool) (*dataset.Table, int, error) {
	opt, err := loadOptions()
	if err != nil {
		return nil, 0, err
	}
	t, err := dataset.Load(path, opt)
	if err != nil {
		return nil, 0, err
	}
	if required {
		if err := t.Require(dataset.RequiredColumns...); err != nil {
			return nil, 0, err
		}
	}
	clean, dropped := dataset.DropDuplicates(t)
	log.Info().Str("file", t.Name).Int("rows", t.Len()).Int("duplicates", dropped).Msg("dataset loaded")
	return clean, dropped, nil
}

// settings merges command-line overrides into a copy of the loaded config.
func settings(c *cobra.Command) (*cfgpkg.Global, error) {
	base, err := currentConfig()
	if err != nil {
		return nil, err
	}
	s := *base
	f := c.Flags()
	if f.Changed("countries") {
		s.Countries = selCountries
	}
	if f.Changed("year-min") {
		s.YearMin = selYearMin
	}
	if f.Changed("year-max") {
		s.YearMax = selYearMax
	}
	if f.Changed("pie-year") {
		s.PieYear = selPieYear
	}
	if f.Changed("heatmap") {
		s.HeatmapCountries = selHeatmap
	}
	if f.Changed("out") {
		s.OutputDir = outDir
	}
	if f.Changed("format") {
		s.ImageFormat = outFormat
	}
	if f.Changed("preview") {
		s.Preview = outPreview
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func criteria(s *cfgpkg.Global) dataset.Criteria {
	return dataset.Criteria{Countries: s.Countries, YearMin: s.YearMin, YearMax: s.YearMax}
}

func newRenderer(s *cfgpkg.Global) (*chart.Renderer, error) {
	dir, err := utils.ExpandHome(s.OutputDir)
	if err != nil {
		return nil, err
	}
	return chart.NewRenderer(chart.Options{
		OutDir: dir,
		Format: s.ImageFormat,
		Width:  vg.Length(s.ImageWidthIn) * vg.Inch,
		Height: vg.Length(s.ImageHeightIn) * vg.Inch,
	})
}

// render draws one figure kind from the filtered view.
func render(r *chart.Renderer, k chart.Kind, v *dataset.View, s *cfgpkg.Global) (string, error) {
	switch k {
	case chart.KindBar:
		return r.Bar(v)
	case chart.KindLine:
		return r.Line(v)
	case chart.KindPie:
		return r.Pie(v, s.PieYear)
	case chart.KindBox:
		return r.Box(v)
	case chart.KindHeatmap:
		if len(s.CorrColumns) < 2 {
			return "", fmt.Errorf("heatmap needs two correlation columns: %w", dataset.ErrEmptyResult)
		}
		return r.Heatmap(v, s.HeatmapCountries[0], s.HeatmapCountries[1], s.CorrColumns)
	}
	return "", fmt.Errorf("unknown chart kind %q", k)
}
