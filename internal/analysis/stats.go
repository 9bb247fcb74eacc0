package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/energystat-cli/internal/dataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrUnknownColumn is returned when a requested column is absent or not numeric.
var ErrUnknownColumn = errors.New("unknown or non-numeric column")

// ColumnStats is the descriptive summary of one numeric column. Undefined
// statistics are NaN.
type ColumnStats struct {
	Name     string
	Count    int
	Mean     float64
	Std      float64
	Min      float64
	Q25      float64
	Q50      float64
	Q75      float64
	Max      float64
	Skew     float64
	Kurtosis float64
}

// Describe summarizes every numeric column of t in table order.
func Describe(t *dataset.Table) []ColumnStats {
	cols := t.NumericColumns()
	out := make([]ColumnStats, 0, len(cols))
	for _, name := range cols {
		out = append(out, DescribeColumn(name, t.Values(name)))
	}
	return out
}

// DescribeColumn computes count, mean, sample std (n-1), min, quartiles with
// linear interpolation, max, skewness and excess kurtosis over vals.
func DescribeColumn(name string, vals []float64) ColumnStats {
	nan := math.NaN()
	s := ColumnStats{Name: name, Count: len(vals), Mean: nan, Std: nan, Min: nan, Q25: nan, Q50: nan, Q75: nan, Max: nan}
	s.Skew = Skewness(vals)
	s.Kurtosis = Kurtosis(vals)
	if len(vals) == 0 {
		return s
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	s.Mean = stat.Mean(sorted, nil)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Q25 = quantile(sorted, 0.25)
	s.Q50 = quantile(sorted, 0.5)
	s.Q75 = quantile(sorted, 0.75)
	switch {
	case len(sorted) < 2:
	case s.Min == s.Max:
		s.Std = 0
	default:
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// Skewness is the third standardized population moment m3/m2^1.5. It is NaN
// for fewer than two values or a constant sample.
func Skewness(vals []float64) float64 {
	if degenerate(vals) {
		return math.NaN()
	}
	m2 := stat.Moment(2, vals, nil)
	return stat.Moment(3, vals, nil) / math.Pow(m2, 1.5)
}

// Kurtosis is the Fisher (excess) kurtosis m4/m2^2 - 3. It is NaN for fewer
// than two values or a constant sample.
func Kurtosis(vals []float64) float64 {
	if degenerate(vals) {
		return math.NaN()
	}
	m2 := stat.Moment(2, vals, nil)
	return stat.Moment(4, vals, nil)/(m2*m2) - 3
}

func degenerate(vals []float64) bool {
	return len(vals) < 2 || floats.Min(vals) == floats.Max(vals)
}

// CorrMatrix holds a symmetric Pearson correlation matrix.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// At returns the correlation between columns a and b, or NaN if either is absent.
func (m *CorrMatrix) At(a, b string) float64 {
	i, j := indexOf(m.Columns, a), indexOf(m.Columns, b)
	if i < 0 || j < 0 {
		return math.NaN()
	}
	return m.Values[i][j]
}

// Correlate computes the Pearson matrix for cols over the rows of v using
// pairwise-complete deletion: cell (i, j) uses every row where both columns
// are present. A diagonal cell is 1 when its column has at least two values
// and non-zero variance; any undefined cell is NaN.
func Correlate(v *dataset.View, cols []string) (*CorrMatrix, error) {
	t := v.Source()
	idx := make([]int, len(cols))
	for i, c := range cols {
		j := t.Col(c)
		if j < 0 || t.Columns[j].Kind != dataset.KindNumber {
			return nil, fmt.Errorf("correlate %q: %w", c, ErrUnknownColumn)
		}
		idx[i] = j
	}
	rows := v.Rows()
	n := len(cols)
	m := &CorrMatrix{Columns: append([]string(nil), cols...), Values: make([][]float64, n)}
	for i := range m.Values {
		m.Values[i] = make([]float64, n)
	}
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			var xs, ys []float64
			for _, r := range rows {
				x, okx := t.Float(r, cols[a])
				y, oky := t.Float(r, cols[b])
				if okx && oky {
					xs = append(xs, x)
					ys = append(ys, y)
				}
			}
			r := pearson(xs, ys)
			if a == b && !math.IsNaN(r) {
				r = 1
			}
			m.Values[a][b] = r
			m.Values[b][a] = r
		}
	}
	return m, nil
}

func pearson(xs, ys []float64) float64 {
	if degenerate(xs) || degenerate(ys) {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

// quantile interpolates linearly between closest ranks of a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Quantile exposes the linear-interpolation quantile for other packages.
// vals need not be sorted.
func Quantile(vals []float64, q float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	return quantile(sorted, q)
}
