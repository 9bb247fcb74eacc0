package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/energystat-cli/internal/dataset"
	"github.com/KaramelBytes/energystat-cli/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags clears Changed state and bound values left over from a previous
// invocation. Slice flags still append after their first Set, so each test
// passes a given slice flag at most once per command.
func resetFlags() {
	for _, c := range []*cobra.Command{reportCmd, chartCmd, describeCmd} {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
	inDelimiter, inSheet, inDecimal, inThousands = "", "", "", ""
	selYearMin, selYearMax, selPieYear = 0, 0, 0
	outDir, outFormat, outPreview = "", "", false
	desFormat, desOutput, desXLSXOut = "text", "", ""
	repXLSXOut = ""
	cfg = nil
}

// runCmd executes the root command with args and returns captured stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

// isolate points HOME at a temp dir so no user config leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeEnergyCSV(t *testing.T, dir string, withGDP bool) string {
	t.Helper()
	var b strings.Builder
	header := []string{"country", "year", "wind_consumption", "solar_consumption", "gdp", "biofuel_consumption", "wind_share_elec"}
	if !withGDP {
		header = append(header[:4], header[5:]...)
	}
	b.WriteString(strings.Join(header, ",") + "\n")
	countries := []string{"United States", "United Kingdom", "Canada", "India", "Pakistan", "Brazil"}
	for ci, c := range countries {
		for y := 2013; y <= 2020; y++ {
			k := float64(ci+1) * float64(y-2012)
			fields := []string{
				c,
				fmt.Sprint(y),
				fmt.Sprintf("%.2f", 10*k+float64(ci)),
				fmt.Sprintf("%.2f", 3*k+float64(y%3)),
				fmt.Sprintf("%.0f", 1e9*float64(ci+2)+1e7*float64(y-2012)),
				fmt.Sprintf("%.2f", 2*k-float64(y%2)),
				fmt.Sprintf("%.2f", 0.5*k+1),
			}
			if !withGDP {
				fields = append(fields[:4], fields[5:]...)
			}
			b.WriteString(strings.Join(fields, ",") + "\n")
		}
	}
	// exact duplicate of the first data row
	lines := strings.SplitN(b.String(), "\n", 3)
	b.WriteString(lines[1] + "\n")

	path := filepath.Join(dir, "energy.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestCLI_ReportWritesChartsAndManifest(t *testing.T) {
	home := isolate(t)
	csvPath := writeEnergyCSV(t, home, true)
	out := filepath.Join(home, "charts")

	stdout := mustRun(t, "report", csvPath, "--out", out)
	for _, want := range []string{"Skewness and kurtosis", "Correlation matrix:", "✓ Wrote manifest"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("stdout missing %q:\n%s", want, stdout)
		}
	}

	m, err := report.LoadManifest(out)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if m.Dropped != 1 {
		t.Fatalf("expected 1 duplicate dropped, got %d", m.Dropped)
	}
	// five default countries x six years
	if m.Filtered != 30 {
		t.Fatalf("expected 30 filtered rows, got %d", m.Filtered)
	}
	if len(m.Charts) != 5 {
		t.Fatalf("expected 5 charts, got %+v (warnings %v)", m.Charts, m.Warnings)
	}
	for _, a := range m.Charts {
		info, err := os.Stat(a.Path)
		if err != nil || info.Size() == 0 {
			t.Fatalf("chart %s missing or empty at %s: %v", a.Kind, a.Path, err)
		}
	}
}

func TestCLI_ReportSkipsEmptyPieYear(t *testing.T) {
	home := isolate(t)
	csvPath := writeEnergyCSV(t, home, true)
	out := filepath.Join(home, "out")

	mustRun(t, "report", csvPath, "--out", out, "--pie-year", "1990", "--format", "svg")
	m, err := report.LoadManifest(out)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if len(m.Charts) != 4 || len(m.Warnings) != 1 {
		t.Fatalf("expected 4 charts and 1 warning, got %d and %v", len(m.Charts), m.Warnings)
	}
	if !strings.HasPrefix(m.Warnings[0], "pie") {
		t.Fatalf("expected pie warning, got %q", m.Warnings[0])
	}
	for _, a := range m.Charts {
		if filepath.Ext(a.Path) != ".svg" {
			t.Fatalf("expected svg output, got %s", a.Path)
		}
	}
}

func TestCLI_ReportSkipsAbsentCorrColumn(t *testing.T) {
	home := isolate(t)
	csvPath := writeEnergyCSV(t, home, true)
	out := filepath.Join(home, "corr")

	mustRun(t, "config", "set", "corr_columns", "year,wind_consumption,hydro_consumption")
	stdout := mustRun(t, "report", csvPath, "--out", out)
	if !strings.Contains(stdout, "Correlation matrix:") || strings.Contains(stdout, "hydro_consumption") {
		t.Fatalf("expected correlation without hydro_consumption:\n%s", stdout)
	}
	m, err := report.LoadManifest(out)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if len(m.Charts) != 5 {
		t.Fatalf("expected 5 charts, got %+v (warnings %v)", m.Charts, m.Warnings)
	}
}

func TestCLI_ReportMissingColumn(t *testing.T) {
	home := isolate(t)
	csvPath := writeEnergyCSV(t, home, false)
	_, err := runCmd(t, "report", csvPath, "--out", filepath.Join(home, "x"))
	if !errors.Is(err, dataset.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestCLI_DescribeFormats(t *testing.T) {
	home := isolate(t)
	csvPath := writeEnergyCSV(t, home, true)

	js := mustRun(t, "describe", csvPath, "--format", "json")
	if !strings.Contains(js, `"duplicates": 1`) || !strings.Contains(js, `"correlation"`) {
		t.Fatalf("unexpected json:\n%s", js)
	}
	md := mustRun(t, "describe", csvPath, "--format", "markdown")
	if !strings.Contains(md, "[DESCRIBE]") {
		t.Fatalf("unexpected markdown:\n%s", md)
	}
	if _, err := runCmd(t, "describe", csvPath, "--format", "html"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestCLI_DescribeWithoutEnergyColumns(t *testing.T) {
	home := isolate(t)
	p := filepath.Join(home, "plain.csv")
	if err := os.WriteFile(p, []byte("a,b,label\n1,2,x\n2,4,y\n3,7,z\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	xlsx := filepath.Join(home, "stats.xlsx")
	out := mustRun(t, "describe", p, "--xlsx-out", xlsx)
	if !strings.Contains(out, "✓ Wrote statistics workbook") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if _, err := os.Stat(xlsx); err != nil {
		t.Fatalf("workbook not written: %v", err)
	}
}

func TestCLI_ChartSingleKind(t *testing.T) {
	home := isolate(t)
	csvPath := writeEnergyCSV(t, home, true)
	out := filepath.Join(home, "one")

	stdout := mustRun(t, "chart", "line", csvPath, "--out", out)
	if !strings.Contains(stdout, "line_wind_trend.png") {
		t.Fatalf("unexpected output: %s", stdout)
	}
	if _, err := os.Stat(filepath.Join(out, "line_wind_trend.png")); err != nil {
		t.Fatalf("line chart missing: %v", err)
	}
	if _, err := runCmd(t, "chart", "scatter", csvPath); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home := isolate(t)

	mustRun(t, "config", "set", "year_min", "2016")
	if _, err := os.Stat(filepath.Join(home, ".energystat", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	show := mustRun(t, "config", "show")
	if !strings.Contains(show, "year_min: 2016") {
		t.Fatalf("expected saved year_min, got:\n%s", show)
	}
	if _, err := runCmd(t, "config", "set", "year_min", "2030"); err == nil {
		t.Fatalf("expected validation error for year_min after year_max")
	}
	if _, err := runCmd(t, "config", "set", "heatmap_countries", "India"); err == nil {
		t.Fatalf("expected validation error for single heatmap country")
	}
	if _, err := runCmd(t, "config", "set", "nope", "1"); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestDelimiterFlagDescribesExtensionDefault(t *testing.T) {
	for _, c := range []*cobra.Command{reportCmd, chartCmd, describeCmd} {
		fl := c.Flags().Lookup("delimiter")
		if fl == nil || !strings.Contains(fl.Usage, "tab for .tsv, comma otherwise") {
			t.Fatalf("%s --delimiter usage = %v", c.Name(), fl)
		}
	}
}
