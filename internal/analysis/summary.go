package analysis

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/energystat-cli/internal/dataset"
	"github.com/olekukonko/tablewriter"
)

// DefaultCorrColumns is the column subset used for correlation output.
var DefaultCorrColumns = []string{
	dataset.ColYear,
	dataset.ColWind,
	dataset.ColSolar,
	dataset.ColGDP,
	dataset.ColBiofuel,
}

// Summary bundles the descriptive statistics of a cleaned table.
type Summary struct {
	Name       string
	Rows       int
	Duplicates int
	Stats      []ColumnStats
	Corr       *CorrMatrix
}

// Summarize describes t and correlates corrCols over all of its rows.
func Summarize(t *dataset.Table, duplicates int, corrCols []string) (*Summary, error) {
	s := &Summary{Name: t.Name, Rows: t.Len(), Duplicates: duplicates, Stats: Describe(t)}
	if len(corrCols) > 0 {
		m, err := Correlate(dataset.All(t), corrCols)
		if err != nil {
			return nil, err
		}
		s.Corr = m
	}
	return s, nil
}

func fmtNum(x float64) string {
	if math.IsNaN(x) {
		return "NaN"
	}
	return fmt.Sprintf("%.6g", x)
}

// WriteText prints describe, skewness/kurtosis and the correlation matrix as
// aligned tables.
func (s *Summary) WriteText(w io.Writer) {
	fmt.Fprintf(w, "Dataset: %s (%d rows, %d duplicates dropped)\n\n", s.Name, s.Rows, s.Duplicates)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"})
	table.SetBorder(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, c := range s.Stats {
		table.Append([]string{
			c.Name, fmt.Sprintf("%d", c.Count), fmtNum(c.Mean), fmtNum(c.Std),
			fmtNum(c.Min), fmtNum(c.Q25), fmtNum(c.Q50), fmtNum(c.Q75), fmtNum(c.Max),
		})
	}
	table.Render()

	fmt.Fprintln(w, "\nSkewness and kurtosis of numeric columns:")
	shape := tablewriter.NewWriter(w)
	shape.SetHeader([]string{"column", "skewness", "kurtosis"})
	shape.SetBorder(false)
	shape.SetAutoFormatHeaders(false)
	shape.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, c := range s.Stats {
		shape.Append([]string{c.Name, fmtNum(c.Skew), fmtNum(c.Kurtosis)})
	}
	shape.Render()

	if s.Corr != nil {
		fmt.Fprintln(w, "\nCorrelation matrix:")
		writeCorrTable(w, s.Corr)
	}
}

func writeCorrTable(w io.Writer, m *CorrMatrix) {
	corr := tablewriter.NewWriter(w)
	corr.SetHeader(append([]string{""}, m.Columns...))
	corr.SetBorder(false)
	corr.SetAutoFormatHeaders(false)
	corr.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i, name := range m.Columns {
		row := []string{name}
		for j := range m.Columns {
			row = append(row, fmtNum(m.Values[i][j]))
		}
		corr.Append(row)
	}
	corr.Render()
}

// Markdown renders a compact report suitable for standalone docs.
func (s *Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if s.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", s.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d (duplicates dropped: %d)\n", s.Rows, s.Duplicates))
	b.WriteString(fmt.Sprintf("Numeric columns: %d\n\n", len(s.Stats)))

	b.WriteString("[DESCRIBE]\n")
	b.WriteString("| column | count | mean | std | min | 25% | 50% | 75% | max | skew | kurtosis |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, c := range s.Stats {
		b.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			c.Name, c.Count, fmtNum(c.Mean), fmtNum(c.Std), fmtNum(c.Min), fmtNum(c.Q25),
			fmtNum(c.Q50), fmtNum(c.Q75), fmtNum(c.Max), fmtNum(c.Skew), fmtNum(c.Kurtosis)))
	}
	if s.Corr != nil && len(s.Corr.Columns) >= 2 {
		b.WriteString("\n[CORRELATIONS]\n")
		type pr struct {
			A, B string
			R    float64
		}
		var pairs []pr
		n := len(s.Corr.Columns)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				r := s.Corr.Values[i][j]
				if math.IsNaN(r) {
					continue
				}
				pairs = append(pairs, pr{A: s.Corr.Columns[i], B: s.Corr.Columns[j], R: r})
			}
		}
		sort.Slice(pairs, func(i, j int) bool {
			ai, aj := math.Abs(pairs[i].R), math.Abs(pairs[j].R)
			if ai == aj {
				return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
			}
			return ai > aj
		})
		for _, p := range pairs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
		}
	}
	return b.String()
}
