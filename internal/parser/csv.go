package parser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KaramelBytes/tempstat-cli/internal/climate"
)

type csvReader struct{}

func (csvReader) CanRead(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt")
}

func (csvReader) Read(path string, opt Options) (climate.Table, error) {
	return ReadCSVFile(path, opt.Delimiter)
}

// ReadCSVFile reads a delimited file. The first record is the header.
func ReadCSVFile(path string, delim rune) (climate.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return climate.Table{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if delim == 0 {
		delim = sniffDelimiter(path, br)
	}
	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	r.Comma = delim

	var t climate.Table
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		return t, fmt.Errorf("read header: %w", err)
	}
	t.Header = header
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return t, fmt.Errorf("read csv: %w", err)
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// sniffDelimiter picks tab for .tsv files, otherwise the most frequent of
// ',', ';' and tab in the header line.
func sniffDelimiter(path string, br *bufio.Reader) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	line, _ := br.Peek(4096)
	if i := strings.IndexByte(string(line), '\n'); i >= 0 {
		line = line[:i]
	}
	best, bestN := ',', 0
	for _, c := range []rune{',', ';', '\t'} {
		if n := strings.Count(string(line), string(c)); n > bestN {
			best, bestN = c, n
		}
	}
	return best
}
