package chart

import (
	"sort"

	"github.com/KaramelBytes/energystat-cli/internal/dataset"
)

type point struct {
	Year  int
	Value float64
}

// countrySeries groups non-missing (year, col) points per country, sorted by
// year. Countries keep first-seen order and appear even with no points.
func countrySeries(v *dataset.View, col string) ([]string, map[string][]point) {
	t := v.Source()
	countries := v.CountryNames()
	out := make(map[string][]point, len(countries))
	for _, r := range v.Rows() {
		y, ok := t.Float(r, dataset.ColYear)
		if !ok {
			continue
		}
		x, ok := t.Float(r, col)
		if !ok {
			continue
		}
		c := t.Text(r, dataset.ColCountry)
		out[c] = append(out[c], point{Year: int(y), Value: x})
	}
	for _, pts := range out {
		sort.SliceStable(pts, func(i, j int) bool { return pts[i].Year < pts[j].Year })
	}
	return countries, out
}

// years lists the distinct years of the view in ascending order.
func years(v *dataset.View) []int {
	t := v.Source()
	seen := map[int]struct{}{}
	var out []int
	for _, r := range v.Rows() {
		y, ok := t.Float(r, dataset.ColYear)
		if !ok {
			continue
		}
		if _, dup := seen[int(y)]; dup {
			continue
		}
		seen[int(y)] = struct{}{}
		out = append(out, int(y))
	}
	sort.Ints(out)
	return out
}
