package chart

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/energystat-cli/internal/dataset"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"
)

// Preview prints a terminal line plot of wind consumption per country.
func Preview(w io.Writer, v *dataset.View) error {
	countries, series := countrySeries(v, dataset.ColWind)
	drawn := 0
	for _, c := range countries {
		pts := series[c]
		if len(pts) == 0 {
			continue
		}
		vals := make([]float64, len(pts))
		for i, p := range pts {
			vals[i] = p.Value
		}
		caption := fmt.Sprintf("%s wind_consumption %d-%d", c, pts[0].Year, pts[len(pts)-1].Year)
		drawn++
		// asciigraph needs a non-zero value range.
		if floats.Min(vals) == floats.Max(vals) {
			fmt.Fprintf(w, "%s: %.4g\n\n", caption, vals[0])
			continue
		}
		fmt.Fprintln(w, asciigraph.Plot(vals, asciigraph.Height(8), asciigraph.Caption(caption)))
		fmt.Fprintln(w)
	}
	if drawn == 0 {
		return fmt.Errorf("preview: %w", dataset.ErrEmptyResult)
	}
	return nil
}
