package chart

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/KaramelBytes/energystat-cli/internal/dataset"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Slice is one pie wedge.
type Slice struct {
	Label   string
	Value   float64
	Percent float64
}

// PieSlices sums wind_share_elec per country for one year. Countries are
// ordered by name. An empty year subset or a non-positive total returns
// dataset.ErrEmptyResult.
func PieSlices(v *dataset.View, year int) ([]Slice, error) {
	sub := v.Year(year)
	t := sub.Source()
	rows := sub.Rows()
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows for %d: %w", year, dataset.ErrEmptyResult)
	}
	sums := map[string]float64{}
	for _, r := range rows {
		c := t.Text(r, dataset.ColCountry)
		x, ok := t.Float(r, dataset.ColWindShareEle)
		if !ok {
			x = 0
		}
		sums[c] += x
	}
	var total float64
	slices := make([]Slice, 0, len(sums))
	for c, s := range sums {
		if s <= 0 {
			continue
		}
		total += s
		slices = append(slices, Slice{Label: c, Value: s})
	}
	if total <= 0 {
		return nil, fmt.Errorf("%s sums to zero for %d: %w", dataset.ColWindShareEle, year, dataset.ErrEmptyResult)
	}
	sort.Slice(slices, func(i, j int) bool { return slices[i].Label < slices[j].Label })
	for i := range slices {
		slices[i].Percent = slices[i].Value / total * 100
	}
	return slices, nil
}

// pieChart implements plot.Plotter for a set of slices.
type pieChart struct {
	slices []Slice
	start  float64 // radians, counter-clockwise from +X
	label  text.Style
}

func (pc *pieChart) Plot(c draw.Canvas, _ *plot.Plot) {
	var total float64
	for _, s := range pc.slices {
		total += s.Value
	}
	center := c.Center()
	rad := vg.Length(math.Min(float64(c.Max.X-c.Min.X), float64(c.Max.Y-c.Min.Y))) / 2 * 0.7
	edge := draw.LineStyle{Color: color.Black, Width: vg.Points(1.5)}

	angle := pc.start
	for i, s := range pc.slices {
		sweep := 2 * math.Pi * s.Value / total
		var path vg.Path
		path.Move(center)
		path.Arc(center, rad, angle, sweep)
		path.Close()
		c.SetColor(plotutil.Color(i))
		c.Fill(path)
		c.SetLineStyle(edge)
		c.Stroke(path)

		mid := angle + sweep/2
		at := func(f float64) vg.Point {
			return vg.Point{
				X: center.X + rad*vg.Length(f*math.Cos(mid)),
				Y: center.Y + rad*vg.Length(f*math.Sin(mid)),
			}
		}
		c.FillText(pc.label, at(0.6), fmt.Sprintf("%.1f%%", s.Percent))
		c.FillText(pc.label, at(1.2), s.Label)
		angle += sweep
	}
}

// Pie draws the share of wind in electricity per country for one year.
func (r *Renderer) Pie(v *dataset.View, year int) (string, error) {
	slices, err := PieSlices(v, year)
	if err != nil {
		return "", fmt.Errorf("pie chart: %w", err)
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Wind Energy Share in Electricity for Selected Countries (%d)", year)
	p.Title.TextStyle.Font.Size = vg.Points(18)
	p.HideAxes()
	p.Add(&pieChart{
		slices: slices,
		start:  140 * math.Pi / 180,
		label: text.Style{
			Color:   color.Black,
			Font:    font.From(plot.DefaultFont, vg.Points(13)),
			XAlign:  text.XCenter,
			YAlign:  text.YCenter,
			Handler: plot.DefaultTextHandler,
		},
	})
	side := r.opt.Width
	if r.opt.Height < side {
		side = r.opt.Height
	}
	return r.save(p, fmt.Sprintf("pie_wind_share_%d", year), side, side)
}
