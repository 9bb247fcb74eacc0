package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

const energyCSV = "country,year,wind_consumption,solar_consumption,gdp,biofuel_consumption,wind_share_elec\n" +
	"Canada,2015,75.1,9.2,1.5e12,11.0,4.4\n" +
	"Canada,2016,83.0,10.1,1.6e12,,5.0\n" +
	"Canada,2017,90.4,11.3,1.7e12,12.1,5.5\n" +
	"India,2016,120.0,30.0,2.2e12,1.0,3.5\n" +
	"India,2016,120.0,30.0,2.2e12,1.0,3.5\n" +
	"Brazil,2016,88.0,2.0,,5.0,6.0\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func mustLoad(t *testing.T, content string) *Table {
	t.Helper()
	tbl, err := Load(writeFile(t, "energy.csv", content), LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return tbl
}

func TestLoadCSVInfersKinds(t *testing.T) {
	tbl := mustLoad(t, energyCSV)
	if tbl.Len() != 6 {
		t.Fatalf("rows = %d, want 6", tbl.Len())
	}
	if got := tbl.Columns[tbl.Col(ColCountry)].Kind; got != KindText {
		t.Fatalf("country kind = %v, want text", got)
	}
	want := []string{ColYear, ColWind, ColSolar, ColGDP, ColBiofuel, ColWindShareEle}
	if got := tbl.NumericColumns(); !reflect.DeepEqual(got, want) {
		t.Fatalf("numeric columns = %v, want %v", got, want)
	}
	if _, ok := tbl.Float(1, ColBiofuel); ok {
		t.Fatalf("expected missing biofuel value on row 1")
	}
	if x, ok := tbl.Float(0, ColGDP); !ok || x != 1.5e12 {
		t.Fatalf("gdp row 0 = %v (%v), want 1.5e12", x, ok)
	}
	if err := tbl.Require(RequiredColumns...); err != nil {
		t.Fatalf("Require: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    error
		line    int
	}{
		{name: "ragged row", file: "bad.csv", content: "a,b\n1,2\n3\n", want: ErrMalformed, line: 3},
		{name: "empty file", file: "empty.csv", content: "", want: ErrMalformed},
		{name: "duplicate header", file: "dup.csv", content: "a,a\n1,2\n", want: ErrMalformed, line: 1},
		{name: "unsupported", file: "data.parquet", content: "x", want: ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content), LoadOptions{})
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("expected *LoadError, got %v", err)
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if tt.line > 0 && le.Line != tt.line {
				t.Fatalf("line = %d, want %d", le.Line, tt.line)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), LoadOptions{})
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist cause, got %v", err)
	}
}

func TestRequireReportsMissingColumns(t *testing.T) {
	tbl := mustLoad(t, "country,year\nCanada,2015\n")
	err := tbl.Require(RequiredColumns...)
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	if !strings.Contains(err.Error(), ColWind) {
		t.Fatalf("error should name %s: %v", ColWind, err)
	}
}

func TestLoadTSVAndLocale(t *testing.T) {
	p := writeFile(t, "energy.tsv", "country\tyear\tgdp\nCanada\t2015\t1.234,5\n")
	tbl, err := Load(p, LoadOptions{DecimalSeparator: ',', ThousandsSeparator: '.'})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if x, ok := tbl.Float(0, ColGDP); !ok || x != 1234.5 {
		t.Fatalf("gdp = %v (%v), want 1234.5", x, ok)
	}
}

func TestLoadXLSX(t *testing.T) {
	p := filepath.Join(t.TempDir(), "energy.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"country", "year", "wind_consumption"},
		{"India", 2019, 60.5},
		{"India", 2020, 62.0},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(p); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = f.Close()

	tbl, err := Load(p, LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("rows = %d, want 2", tbl.Len())
	}
	if x, ok := tbl.Float(1, ColWind); !ok || x != 62 {
		t.Fatalf("wind row 1 = %v (%v), want 62", x, ok)
	}

	_, err = Load(p, LoadOptions{Sheet: "Missing"})
	if !errors.Is(err, ErrMalformed) || !strings.Contains(err.Error(), "Sheet1") {
		t.Fatalf("expected sheet-not-found error listing sheets, got %v", err)
	}
}

func TestDropDuplicates(t *testing.T) {
	tbl := mustLoad(t, "country,year,wind_consumption\nUS,2015,10\nUS,2015,10\n")
	out, dropped := DropDuplicates(tbl)
	if out.Len() != 1 || dropped != 1 {
		t.Fatalf("rows = %d dropped = %d, want 1/1", out.Len(), dropped)
	}
	if tbl.Len() != 2 {
		t.Fatalf("input mutated: %d rows", tbl.Len())
	}
}

func TestDropDuplicatesIdempotentAndOrdered(t *testing.T) {
	tbl := mustLoad(t, energyCSV)
	once, _ := DropDuplicates(tbl)
	twice, dropped := DropDuplicates(once)
	if dropped != 0 {
		t.Fatalf("second pass dropped %d rows", dropped)
	}
	if !reflect.DeepEqual(once.Rows, twice.Rows) {
		t.Fatalf("second pass changed the table")
	}
	var got []string
	for r := range once.Rows {
		got = append(got, once.Text(r, ColCountry)+"/"+once.Text(r, ColYear))
	}
	want := []string{"Canada/2015", "Canada/2016", "Canada/2017", "India/2016", "Brazil/2016"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestRowKeySeparatesKinds(t *testing.T) {
	num := []Value{{Kind: KindNumber, Num: 1}}
	txt := []Value{{Kind: KindText, Text: "1"}}
	miss := []Value{{Kind: KindNumber, Missing: true}}
	if rowKey(num) == rowKey(txt) || rowKey(num) == rowKey(miss) {
		t.Fatalf("row keys collide across kinds")
	}
}

func TestDropDuplicatesKeepsRowsWithSeparatorBytes(t *testing.T) {
	tbl, err := FromRecords("sep", []string{"a", "b"}, [][]string{
		{"x\x1fs:y", "z"},
		{"x", "y\x1fs:z"},
	}, LoadOptions{})
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	out, dropped := DropDuplicates(tbl)
	if out.Len() != 2 || dropped != 0 {
		t.Fatalf("rows=%d dropped=%d, want 2 and 0", out.Len(), dropped)
	}
}

func TestMissingTokens(t *testing.T) {
	csv := "country,gdp\nA,1.5\nB,NA\nC,null\nD,NaN\nE,2.5\nF,n/a\nG,nan\nH,NULL\n"
	tbl := mustLoad(t, csv)
	if got := tbl.Columns[tbl.Col(ColGDP)].Kind; got != KindNumber {
		t.Fatalf("gdp kind = %v, want numeric", got)
	}
	cases := []struct {
		row  int
		want float64
		ok   bool
	}{
		{0, 1.5, true},
		{1, 0, false},
		{2, 0, false},
		{3, 0, false},
		{4, 2.5, true},
		{5, 0, false},
		{6, 0, false},
		{7, 0, false},
	}
	for _, tc := range cases {
		x, ok := tbl.Float(tc.row, ColGDP)
		if ok != tc.ok || (ok && x != tc.want) {
			t.Fatalf("row %d: got %v (%v), want %v (%v)", tc.row, x, ok, tc.want, tc.ok)
		}
	}
	if vals := tbl.Values(ColGDP); !reflect.DeepEqual(vals, []float64{1.5, 2.5}) {
		t.Fatalf("values = %v, want [1.5 2.5]", vals)
	}
}

func TestFilterSingleYear(t *testing.T) {
	tbl := mustLoad(t, energyCSV)
	v := Filter(tbl, Criteria{Countries: []string{"Canada"}, YearMin: 2016, YearMax: 2016})
	rows := v.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows = %v, want exactly one", rows)
	}
	if tbl.Text(rows[0], ColCountry) != "Canada" || tbl.Text(rows[0], ColYear) != "2016" {
		t.Fatalf("unexpected row %d", rows[0])
	}
}

func TestFilterInvariant(t *testing.T) {
	tbl := mustLoad(t, energyCSV+"Pakistan,2014,1,1,1,1,1\nPakistan,2021,1,1,1,1,1\nPakistan,,1,1,1,1,1\n")
	c := Criteria{Countries: []string{"Canada", "India", "Pakistan"}, YearMin: 2015, YearMax: 2020}
	v := Filter(tbl, c)
	if v.Len() != 5 {
		t.Fatalf("len = %d, want 5", v.Len())
	}
	for _, r := range v.Rows() {
		y, ok := tbl.Float(r, ColYear)
		if !ok || y < 2015 || y > 2020 {
			t.Fatalf("row %d year %v out of range", r, y)
		}
		if c := tbl.Text(r, ColCountry); c == "Brazil" {
			t.Fatalf("row %d has non-allowed country", r)
		}
	}
	if got := v.CountryNames(); !reflect.DeepEqual(got, []string{"Canada", "India"}) {
		t.Fatalf("countries = %v", got)
	}
}

func TestViewIsLazyAndNarrows(t *testing.T) {
	tbl := mustLoad(t, energyCSV)
	v := Filter(tbl, Criteria{Countries: []string{"Canada", "India"}, YearMin: 2015, YearMax: 2020})
	if n := v.Year(2016).Countries("India").Len(); n != 2 {
		t.Fatalf("India/2016 rows = %d, want 2", n)
	}
	if n := v.Year(2030).Len(); n != 0 {
		t.Fatalf("expected empty view, got %d", n)
	}
	// The view reads through to the source table.
	tbl.Rows = tbl.Rows[:1]
	if n := v.Len(); n != 1 {
		t.Fatalf("view did not recompute: %d", n)
	}
	m := All(tbl).Table()
	if m.Len() != 1 || m.Col(ColWind) < 0 {
		t.Fatalf("materialized table wrong: %d rows", m.Len())
	}
}

func TestSniffDelimiterByExtension(t *testing.T) {
	cases := map[string]rune{"a.tsv": '\t', "A.TSV": '\t', "a.csv": ',', "a.txt": ','}
	for name, want := range cases {
		if got := sniffDelimiter(name); got != want {
			t.Fatalf("%s: got %q, want %q", name, got, want)
		}
	}
}
