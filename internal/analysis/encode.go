package analysis

import (
	"math"
	"strconv"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Number marshals NaN and infinities as null.
type Number float64

func (n Number) undefined() bool {
	return math.IsNaN(float64(n)) || math.IsInf(float64(n), 0)
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n.undefined() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(n), 'g', -1, 64), nil
}

func (n Number) MarshalYAML() (interface{}, error) {
	if n.undefined() {
		return nil, nil
	}
	return float64(n), nil
}

type columnDoc struct {
	Name     string `json:"name" yaml:"name"`
	Count    int    `json:"count" yaml:"count"`
	Mean     Number `json:"mean" yaml:"mean"`
	Std      Number `json:"std" yaml:"std"`
	Min      Number `json:"min" yaml:"min"`
	Q25      Number `json:"p25" yaml:"p25"`
	Q50      Number `json:"p50" yaml:"p50"`
	Q75      Number `json:"p75" yaml:"p75"`
	Max      Number `json:"max" yaml:"max"`
	Skew     Number `json:"skewness" yaml:"skewness"`
	Kurtosis Number `json:"kurtosis" yaml:"kurtosis"`
}

type corrDoc struct {
	Columns []string   `json:"columns" yaml:"columns"`
	Values  [][]Number `json:"values" yaml:"values"`
}

type summaryDoc struct {
	Name        string      `json:"name" yaml:"name"`
	Rows        int         `json:"rows" yaml:"rows"`
	Duplicates  int         `json:"duplicates" yaml:"duplicates"`
	Columns     []columnDoc `json:"columns" yaml:"columns"`
	Correlation *corrDoc    `json:"correlation,omitempty" yaml:"correlation,omitempty"`
}

func (s *Summary) doc() summaryDoc {
	d := summaryDoc{Name: s.Name, Rows: s.Rows, Duplicates: s.Duplicates}
	for _, c := range s.Stats {
		d.Columns = append(d.Columns, columnDoc{
			Name: c.Name, Count: c.Count, Mean: Number(c.Mean), Std: Number(c.Std),
			Min: Number(c.Min), Q25: Number(c.Q25), Q50: Number(c.Q50), Q75: Number(c.Q75),
			Max: Number(c.Max), Skew: Number(c.Skew), Kurtosis: Number(c.Kurtosis),
		})
	}
	if s.Corr != nil {
		cd := &corrDoc{Columns: s.Corr.Columns}
		for _, row := range s.Corr.Values {
			vals := make([]Number, len(row))
			for i, v := range row {
				vals[i] = Number(v)
			}
			cd.Values = append(cd.Values, vals)
		}
		d.Correlation = cd
	}
	return d
}

// JSON encodes the summary with undefined statistics as null.
func (s *Summary) JSON() ([]byte, error) {
	return json.MarshalIndent(s.doc(), "", "  ")
}

// YAML encodes the summary with undefined statistics as null.
func (s *Summary) YAML() ([]byte, error) {
	return yaml.Marshal(s.doc())
}
