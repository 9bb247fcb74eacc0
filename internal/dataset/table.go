package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the inferred type of a column.
type Kind int

const (
	KindNumber Kind = iota
	KindText
)

func (k Kind) String() string {
	if k == KindNumber {
		return "numeric"
	}
	return "text"
}

// Value is a single typed cell. Missing cells carry no payload.
type Value struct {
	Kind    Kind
	Num     float64
	Text    string
	Missing bool
}

// Column describes one table column.
type Column struct {
	Name string
	Kind Kind
}

// Table is an in-memory row-major dataset. All rows have len(Columns) cells.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]Value

	index map[string]int
}

// missingTokens are treated as absent values regardless of column kind.
var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
}

func isMissing(s string) bool {
	_, ok := missingTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// FromRecords builds a Table from a header and raw string records. Column
// kinds are inferred: a column is numeric when every non-missing cell parses
// as a number, text otherwise.
func FromRecords(name string, header []string, records [][]string, opt LoadOptions) (*Table, error) {
	t := &Table{Name: name, Columns: make([]Column, len(header))}
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			return nil, &LoadError{Path: name, Line: 1, Err: ErrMalformed, Detail: "empty column name at position " + strconv.Itoa(i+1)}
		}
		if _, dup := seen[h]; dup {
			return nil, &LoadError{Path: name, Line: 1, Err: ErrMalformed, Detail: "duplicate column " + strconv.Quote(h)}
		}
		seen[h] = struct{}{}
		t.Columns[i] = Column{Name: h, Kind: KindNumber}
	}
	for r, rec := range records {
		if len(rec) != len(header) {
			return nil, &LoadError{
				Path:   name,
				Line:   r + 2,
				Err:    ErrMalformed,
				Detail: "expected " + strconv.Itoa(len(header)) + " fields, got " + strconv.Itoa(len(rec)),
			}
		}
	}

	// First pass decides kinds, second pass types the cells.
	for j := range t.Columns {
		for _, rec := range records {
			v := rec[j]
			if isMissing(v) {
				continue
			}
			if _, ok := parseNumeric(v, opt); !ok {
				t.Columns[j].Kind = KindText
				break
			}
		}
	}
	t.Rows = make([][]Value, len(records))
	for r, rec := range records {
		row := make([]Value, len(header))
		for j, raw := range rec {
			kind := t.Columns[j].Kind
			if isMissing(raw) {
				row[j] = Value{Kind: kind, Missing: true}
				continue
			}
			if kind == KindNumber {
				x, _ := parseNumeric(raw, opt)
				row[j] = Value{Kind: KindNumber, Num: x}
				continue
			}
			row[j] = Value{Kind: KindText, Text: strings.TrimSpace(raw)}
		}
		t.Rows[r] = row
	}
	t.reindex()
	return t, nil
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		t.index[c.Name] = i
	}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Col returns the index of the named column, or -1 if absent.
func (t *Table) Col(name string) int {
	if t.index == nil {
		t.reindex()
	}
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Float returns the numeric value at (row, column). ok is false for missing
// cells, text columns and unknown columns.
func (t *Table) Float(row int, name string) (float64, bool) {
	j := t.Col(name)
	if j < 0 {
		return math.NaN(), false
	}
	return t.floatAt(row, j)
}

func (t *Table) floatAt(row, j int) (float64, bool) {
	v := t.Rows[row][j]
	if v.Missing || v.Kind != KindNumber {
		return math.NaN(), false
	}
	return v.Num, true
}

// Text returns the cell rendered as a string; missing cells yield "".
func (t *Table) Text(row int, name string) string {
	j := t.Col(name)
	if j < 0 {
		return ""
	}
	return t.Rows[row][j].String()
}

// NumericColumns lists numeric column names in table order.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, c := range t.Columns {
		if c.Kind == KindNumber {
			out = append(out, c.Name)
		}
	}
	return out
}

// Values returns the non-missing numeric values of a column in row order.
func (t *Table) Values(name string) []float64 {
	j := t.Col(name)
	if j < 0 {
		return nil
	}
	out := make([]float64, 0, len(t.Rows))
	for r := range t.Rows {
		if x, ok := t.floatAt(r, j); ok {
			out = append(out, x)
		}
	}
	return out
}

// Require checks that every named column exists.
func (t *Table) Require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if t.Col(c) < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &LoadError{Path: t.Name, Err: ErrMissingColumn, Detail: strings.Join(missing, ", ")}
	}
	return nil
}

// String renders the cell as text; missing cells render as "".
func (v Value) String() string {
	switch {
	case v.Missing:
		return ""
	case v.Kind == KindNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	default:
		return v.Text
	}
}

// parseNumeric accepts plain floats, optionally with a configured decimal
// and thousands separator.
func parseNumeric(s string, opt LoadOptions) (float64, bool) {
	raw := strings.TrimSpace(strings.ReplaceAll(s, "\u00A0", " "))
	if opt.ThousandsSeparator != 0 {
		raw = strings.ReplaceAll(raw, string(opt.ThousandsSeparator), "")
	}
	if opt.DecimalSeparator != 0 && opt.DecimalSeparator != '.' {
		raw = strings.ReplaceAll(raw, string(opt.DecimalSeparator), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
