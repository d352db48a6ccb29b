// Package parser reads tabular temperature files into a raw climate.Table.
package parser

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/tempstat-cli/internal/climate"
)

// Options controls how a file is read.
type Options struct {
	// Delimiter for CSV. If 0, .tsv means tab, otherwise sniffed from the header line.
	Delimiter rune
	// SheetName selects an XLSX sheet; empty means the first sheet.
	SheetName string
}

// Reader defines a table reader implementation.
type Reader interface {
	CanRead(filename string) bool
	Read(path string, opt Options) (climate.Table, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported table format")

// ReadTable selects a reader based on filename and returns the raw table.
func ReadTable(path string, opt Options) (climate.Table, error) {
	for _, r := range registry {
		if r.CanRead(path) {
			t, err := r.Read(path, opt)
			if err != nil {
				return climate.Table{}, err
			}
			if t.Name == "" {
				t.Name = filepath.Base(path)
			}
			return t, nil
		}
	}
	return climate.Table{}, fmt.Errorf("%w: %s (use .csv, .tsv, .txt or .xlsx)", ErrUnsupported, filepath.Base(path))
}

// LoadSeries reads path and normalizes it into a daily series.
func LoadSeries(path string, opt Options, colMap map[string]climate.Column) (*climate.Series, error) {
	t, err := ReadTable(path, opt)
	if err != nil {
		return nil, err
	}
	return climate.Load(t, colMap)
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}
