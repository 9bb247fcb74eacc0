package analysis

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"
)

const (
	describeSheet = "describe"
	corrSheet     = "correlation"
)

// ExportXLSX writes the summary to a workbook with a describe sheet and, when
// present, a correlation sheet. Undefined statistics are left blank.
func (s *Summary) ExportXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", describeSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := []string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max", "skewness", "kurtosis"}
	for i, h := range header {
		if err := setCell(f, describeSheet, i+1, 1, h); err != nil {
			return err
		}
	}
	for r, c := range s.Stats {
		row := []interface{}{c.Name, c.Count, c.Mean, c.Std, c.Min, c.Q25, c.Q50, c.Q75, c.Max, c.Skew, c.Kurtosis}
		for i, v := range row {
			if err := setCell(f, describeSheet, i+1, r+2, v); err != nil {
				return err
			}
		}
	}

	if s.Corr != nil {
		if _, err := f.NewSheet(corrSheet); err != nil {
			return fmt.Errorf("add sheet: %w", err)
		}
		for i, name := range s.Corr.Columns {
			if err := setCell(f, corrSheet, i+2, 1, name); err != nil {
				return err
			}
			if err := setCell(f, corrSheet, 1, i+2, name); err != nil {
				return err
			}
			for j := range s.Corr.Columns {
				if err := setCell(f, corrSheet, j+2, i+2, s.Corr.Values[i][j]); err != nil {
					return err
				}
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v interface{}) error {
	if x, ok := v.(float64); ok && (math.IsNaN(x) || math.IsInf(x, 0)) {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return nil
}
