package chart

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/energystat-cli/internal/analysis"
	"github.com/KaramelBytes/energystat-cli/internal/dataset"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// BoxStats follows the usual box-plot convention: whiskers reach the most
// extreme values within 1.5×IQR of the box, anything beyond is an outlier.
type BoxStats struct {
	Q1, Median, Q3 float64
	LowWhisker     float64
	HighWhisker    float64
	Outliers       []int // indices into the input values
}

// ComputeBox summarizes vals, which must be non-empty.
func ComputeBox(vals []float64) BoxStats {
	b := BoxStats{
		Q1:     analysis.Quantile(vals, 0.25),
		Median: analysis.Quantile(vals, 0.5),
		Q3:     analysis.Quantile(vals, 0.75),
	}
	iqr := b.Q3 - b.Q1
	lo, hi := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.LowWhisker, b.HighWhisker = math.Inf(1), math.Inf(-1)
	for i, x := range vals {
		if x < lo || x > hi {
			b.Outliers = append(b.Outliers, i)
			continue
		}
		b.LowWhisker = math.Min(b.LowWhisker, x)
		b.HighWhisker = math.Max(b.HighWhisker, x)
	}
	return b
}

// Box draws the distribution of wind consumption per country.
func (r *Renderer) Box(v *dataset.View) (string, error) {
	countries, series := countrySeries(v, dataset.ColWind)
	p := newPlot("Distribution of Wind Consumption by Country", "Country", "Wind Consumption (TWh)")

	var names []string
	for _, c := range countries {
		pts := series[c]
		if len(pts) == 0 {
			continue
		}
		vals := make(plotter.Values, len(pts))
		for i, pt := range pts {
			vals[i] = pt.Value
		}
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(len(names)), vals)
		if err != nil {
			return "", fmt.Errorf("box plot %s: %w", c, err)
		}
		// Replace gonum's empirical quartiles with linear interpolation.
		st := ComputeBox(box.Values)
		box.Quartile1, box.Median, box.Quartile3 = st.Q1, st.Median, st.Q3
		box.AdjLow, box.AdjHigh = st.LowWhisker, st.HighWhisker
		box.Outside = st.Outliers
		box.FillColor = plotutil.Color(len(names))
		p.Add(box)
		names = append(names, c)
	}
	if len(names) == 0 {
		return "", fmt.Errorf("box plot: %w", dataset.ErrEmptyResult)
	}
	p.NominalX(names...)
	return r.save(p, "box_wind_by_country", r.opt.Width, r.opt.Height)
}
