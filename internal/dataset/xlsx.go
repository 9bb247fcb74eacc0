package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

// Load reads the selected worksheet. Trailing empty cells are dropped by
// excelize, so short rows are padded; rows wider than the header are malformed.
func (xlsxLoader) Load(path string, opt LoadOptions) ([]string, [][]string, error) {
	name := filepath.Base(path)
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, &LoadError{Path: name, Err: fmt.Errorf("open xlsx: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, &LoadError{Path: name, Err: ErrMalformed, Detail: "workbook has no sheets"}
	}
	sheet := sheets[0]
	if opt.Sheet != "" {
		sheet = ""
		for _, s := range sheets {
			if strings.EqualFold(s, opt.Sheet) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, nil, &LoadError{
				Path:   name,
				Err:    ErrMalformed,
				Detail: fmt.Sprintf("sheet %q not found; available sheets: %s", opt.Sheet, strings.Join(sheets, ", ")),
			}
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, &LoadError{Path: name, Err: fmt.Errorf("read sheet %s: %w", sheet, err)}
	}
	if len(rows) == 0 {
		return nil, nil, &LoadError{Path: name, Err: ErrMalformed, Detail: "no header row"}
	}
	header := rows[0]
	records := make([][]string, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) > len(header) {
			return nil, nil, &LoadError{
				Path:   name,
				Line:   i + 2,
				Err:    ErrMalformed,
				Detail: fmt.Sprintf("expected %d fields, got %d", len(header), len(row)),
			}
		}
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		}
		records = append(records, row)
	}
	return header, records, nil
}
