package chart

import (
	"fmt"
	"image/color"
	"math"

	"github.com/KaramelBytes/energystat-cli/internal/analysis"
	"github.com/KaramelBytes/energystat-cli/internal/dataset"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
)

// corrGrid adapts a correlation matrix to plotter.GridXYZ with the first
// column drawn on the top row.
type corrGrid struct {
	m *analysis.CorrMatrix
}

func (g corrGrid) Dims() (c, r int) {
	n := len(g.m.Columns)
	return n, n
}

func (g corrGrid) Z(c, r int) float64 {
	n := len(g.m.Columns)
	return g.m.Values[n-1-r][c]
}

func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }

// PairCorrelation restricts v to two countries and correlates cols over them.
func PairCorrelation(v *dataset.View, a, b string, cols []string) (*analysis.CorrMatrix, error) {
	sub := v.Countries(a, b)
	if sub.Len() == 0 {
		return nil, fmt.Errorf("no rows for %s and %s: %w", a, b, dataset.ErrEmptyResult)
	}
	return analysis.Correlate(sub, cols)
}

// Heatmap draws the annotated correlation matrix of cols for two countries.
func (r *Renderer) Heatmap(v *dataset.View, a, b string, cols []string) (string, error) {
	m, err := PairCorrelation(v, a, b, cols)
	if err != nil {
		return "", fmt.Errorf("heatmap: %w", err)
	}
	n := len(m.Columns)

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	hm := plotter.NewHeatMap(corrGrid{m: m}, cm.Palette(255))
	hm.Min, hm.Max = -1, 1
	hm.NaN = color.Gray{Y: 210}

	p := newPlot(fmt.Sprintf("Correlation Heatmap of Numeric Variables (%s & %s)", a, b), "", "")
	p.Add(hm)

	var xys plotter.XYs
	var labels []string
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			val := m.Values[row][col]
			xys = append(xys, plotter.XY{X: float64(col), Y: float64(n - 1 - row)})
			if math.IsNaN(val) {
				labels = append(labels, "NaN")
			} else {
				labels = append(labels, fmt.Sprintf("%.2f", val))
			}
		}
	}
	notes, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return "", fmt.Errorf("heatmap labels: %w", err)
	}
	for i := range notes.TextStyle {
		notes.TextStyle[i].XAlign = text.XCenter
		notes.TextStyle[i].YAlign = text.YCenter
	}
	p.Add(notes)

	yNames := make([]string, n)
	for i, c := range m.Columns {
		yNames[n-1-i] = c
	}
	p.NominalX(m.Columns...)
	p.NominalY(yNames...)
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = text.XRight
	return r.save(p, "heatmap_"+slug(a)+"_"+slug(b), r.opt.Width, r.opt.Height)
}
