package chart

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/energystat-cli/internal/dataset"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// GroupedMeans returns, per country, the mean of col for each year in yrs.
// Years without data yield 0 so every group has a bar slot.
func GroupedMeans(v *dataset.View, col string, yrs []int) ([]string, map[string][]float64) {
	countries, series := countrySeries(v, col)
	out := make(map[string][]float64, len(countries))
	for _, c := range countries {
		sum := make(map[int]float64)
		cnt := make(map[int]int)
		for _, p := range series[c] {
			sum[p.Year] += p.Value
			cnt[p.Year]++
		}
		vals := make([]float64, len(yrs))
		for i, y := range yrs {
			if cnt[y] > 0 {
				vals[i] = sum[y] / float64(cnt[y])
			}
		}
		out[c] = vals
	}
	return countries, out
}

// Bar draws wind consumption by year with one bar per country in each year group.
func (r *Renderer) Bar(v *dataset.View) (string, error) {
	yrs := years(v)
	if len(yrs) == 0 {
		return "", fmt.Errorf("bar chart: %w", dataset.ErrEmptyResult)
	}
	countries, means := GroupedMeans(v, dataset.ColWind, yrs)

	p := newPlot("Distribution of Wind Consumption by Year for Selected Countries", "Year", "Wind Consumption (TWh)")
	width := vg.Points(12)
	n := float64(len(countries))
	for i, c := range countries {
		bars, err := plotter.NewBarChart(plotter.Values(means[c]), width)
		if err != nil {
			return "", fmt.Errorf("bar chart %s: %w", c, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Length(float64(i)-(n-1)/2) * width
		p.Add(bars)
		p.Legend.Add(c, bars)
	}
	labels := make([]string, len(yrs))
	for i, y := range yrs {
		labels[i] = strconv.Itoa(y)
	}
	p.NominalX(labels...)
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())
	return r.save(p, "bar_wind_by_year", r.opt.Width, r.opt.Height)
}
