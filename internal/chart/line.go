package chart

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/energystat-cli/internal/dataset"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Line draws one wind-consumption trend line per country across years.
func (r *Renderer) Line(v *dataset.View) (string, error) {
	countries, series := countrySeries(v, dataset.ColWind)
	p := newPlot("Trends in Wind Consumption for Selected Countries", "Year", "Wind Consumption (TWh)")
	p.Add(plotter.NewGrid())

	drawn := 0
	for i, c := range countries {
		pts := series[c]
		if len(pts) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(pts))
		for k, pt := range pts {
			xys[k].X = float64(pt.Year)
			xys[k].Y = pt.Value
		}
		line, marks, err := plotter.NewLinePoints(xys)
		if err != nil {
			return "", fmt.Errorf("line chart %s: %w", c, err)
		}
		col := plotutil.Color(i)
		line.Color = col
		line.Width = vg.Points(3)
		marks.Color = col
		marks.Shape = plotutil.Shape(0)
		marks.Radius = vg.Points(3)
		p.Add(line, marks)
		p.Legend.Add(c, line, marks)
		drawn++
	}
	if drawn == 0 {
		return "", fmt.Errorf("line chart: %w", dataset.ErrEmptyResult)
	}

	var ticks []plot.Tick
	for _, y := range years(v) {
		ticks = append(ticks, plot.Tick{Value: float64(y), Label: strconv.Itoa(y)})
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Legend.Top = true
	p.Legend.Left = true
	return r.save(p, "line_wind_trend", r.opt.Width, r.opt.Height)
}
