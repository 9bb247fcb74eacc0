package dataset

// Column names the pipeline relies on.
const (
	ColCountry      = "country"
	ColYear         = "year"
	ColWind         = "wind_consumption"
	ColSolar        = "solar_consumption"
	ColGDP          = "gdp"
	ColBiofuel      = "biofuel_consumption"
	ColWindShareEle = "wind_share_elec"
)

// RequiredColumns are the columns every input file must provide.
var RequiredColumns = []string{ColCountry, ColYear, ColWind, ColSolar, ColGDP, ColBiofuel, ColWindShareEle}

// Criteria selects rows by country membership and an inclusive year range.
type Criteria struct {
	Countries []string
	YearMin   int
	YearMax   int
}

// View is a lazily evaluated row subset of a Table. It never copies or
// mutates the source; Rows recomputes the selection on every call.
type View struct {
	src   *Table
	preds []func(row int) bool
}

// All returns a view over every row of t.
func All(t *Table) *View {
	return &View{src: t}
}

// Filter returns the rows of t whose country is in c.Countries and whose
// year lies in [c.YearMin, c.YearMax]. Rows with a missing year never match.
func Filter(t *Table, c Criteria) *View {
	allowed := make(map[string]struct{}, len(c.Countries))
	for _, name := range c.Countries {
		allowed[name] = struct{}{}
	}
	yearMin, yearMax := float64(c.YearMin), float64(c.YearMax)
	return All(t).Where(func(row int) bool {
		if _, ok := allowed[t.Text(row, ColCountry)]; !ok {
			return false
		}
		y, ok := t.Float(row, ColYear)
		return ok && y >= yearMin && y <= yearMax
	})
}

// Where narrows the view with an extra row predicate.
func (v *View) Where(pred func(row int) bool) *View {
	preds := make([]func(int) bool, 0, len(v.preds)+1)
	preds = append(preds, v.preds...)
	preds = append(preds, pred)
	return &View{src: v.src, preds: preds}
}

// Countries narrows the view to the named countries.
func (v *View) Countries(names ...string) *View {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return v.Where(func(row int) bool {
		_, ok := set[v.src.Text(row, ColCountry)]
		return ok
	})
}

// Year narrows the view to a single year.
func (v *View) Year(year int) *View {
	return v.Where(func(row int) bool {
		y, ok := v.src.Float(row, ColYear)
		return ok && y == float64(year)
	})
}

// Source returns the underlying table.
func (v *View) Source() *Table { return v.src }

// Rows returns the source row indices selected by the view, in table order.
func (v *View) Rows() []int {
	var out []int
	for r := range v.src.Rows {
		if v.match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of selected rows.
func (v *View) Len() int {
	n := 0
	for r := range v.src.Rows {
		if v.match(r) {
			n++
		}
	}
	return n
}

func (v *View) match(row int) bool {
	for _, p := range v.preds {
		if !p(row) {
			return false
		}
	}
	return true
}

// Table materializes the selection into a new table sharing row storage.
func (v *View) Table() *Table {
	out := &Table{Name: v.src.Name, Columns: v.src.Columns}
	for _, r := range v.Rows() {
		out.Rows = append(out.Rows, v.src.Rows[r])
	}
	out.reindex()
	return out
}

// CountryNames lists distinct country values in first-seen order.
func (v *View) CountryNames() []string {
	var out []string
	seen := map[string]struct{}{}
	for _, r := range v.Rows() {
		c := v.src.Text(r, ColCountry)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
