package dataset

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoadOptions controls how a tabular file is read.
type LoadOptions struct {
	// Delimiter for delimited text. If 0, '\t' for .tsv and ',' otherwise.
	Delimiter rune
	// Sheet selects the XLSX worksheet by name; empty means the first sheet.
	Sheet string
	// Numeric parsing locale. Zero values mean '.' decimals and no grouping.
	DecimalSeparator   rune
	ThousandsSeparator rune
}

// Loader reads a file format into a header plus raw records.
type Loader interface {
	CanLoad(filename string) bool
	Load(path string, opt LoadOptions) (header []string, records [][]string, err error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

func init() {
	Register(delimitedLoader{})
	Register(xlsxLoader{})
}

// Load reads path into a typed Table. Any failure is returned as *LoadError.
func Load(path string, opt LoadOptions) (*Table, error) {
	name := filepath.Base(path)
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}
	if info.IsDir() {
		return nil, &LoadError{Path: name, Err: fmt.Errorf("%s is a directory", path)}
	}
	for _, l := range registry {
		if !l.CanLoad(path) {
			continue
		}
		header, records, err := l.Load(path, opt)
		if err != nil {
			if le, ok := err.(*LoadError); ok {
				return nil, le
			}
			return nil, &LoadError{Path: name, Err: err}
		}
		return FromRecords(name, header, records, opt)
	}
	return nil, &LoadError{Path: name, Err: ErrUnsupported, Detail: filepath.Ext(path)}
}
