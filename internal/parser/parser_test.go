package parser_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/tempstat-cli/internal/climate"
	"github.com/KaramelBytes/tempstat-cli/internal/parser"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestReadTable_CSVDelimiters(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		content string
		delim   rune
	}{
		{"comma", "station.csv", "DATE,TMAX,TMIN\n2024-01-01,40,20\n2024-01-02,42,22\n", 0},
		{"semicolon sniffed", "station.csv", "DATE;TMAX;TMIN\n2024-01-01;40;20\n2024-01-02;42;22\n", 0},
		{"tsv by extension", "station.tsv", "DATE\tTMAX\tTMIN\n2024-01-01\t40\t20\n2024-01-02\t42\t22\n", 0},
		{"explicit pipe", "station.txt", "DATE|TMAX|TMIN\n2024-01-01|40|20\n2024-01-02|42|22\n", '|'},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := writeFile(t, tc.file, tc.content)
			tbl, err := parser.ReadTable(p, parser.Options{Delimiter: tc.delim})
			if err != nil {
				t.Fatalf("ReadTable: %v", err)
			}
			if tbl.Name != tc.file {
				t.Fatalf("name = %q", tbl.Name)
			}
			if len(tbl.Header) != 3 || tbl.Header[1] != "TMAX" {
				t.Fatalf("header = %#v", tbl.Header)
			}
			if len(tbl.Rows) != 2 || tbl.Rows[1][2] != "22" {
				t.Fatalf("rows = %#v", tbl.Rows)
			}
		})
	}
}

func TestReadTable_RaggedAndEmpty(t *testing.T) {
	p := writeFile(t, "ragged.csv", "DATE,TMAX,TMIN,TAVG\n2024-01-01,40,20\n2024-01-02,42,22,30\n")
	tbl, err := parser.ReadTable(p, parser.Options{})
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(tbl.Rows) != 2 || len(tbl.Rows[0]) != 3 {
		t.Fatalf("rows = %#v", tbl.Rows)
	}

	empty := writeFile(t, "empty.csv", "")
	tbl, err = parser.ReadTable(empty, parser.Options{})
	if err != nil {
		t.Fatalf("ReadTable empty: %v", err)
	}
	if len(tbl.Header) != 0 || len(tbl.Rows) != 0 {
		t.Fatalf("expected empty table, got %+v", tbl)
	}
}

func TestReadTable_Unsupported(t *testing.T) {
	p := writeFile(t, "notes.docx", "x")
	if _, err := parser.ReadTable(p, parser.Options{}); !errors.Is(err, parser.ErrUnsupported) {
		t.Fatalf("err = %v", err)
	}
	if _, err := parser.ReadTable(filepath.Join(t.TempDir(), "missing.csv"), parser.Options{}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadSeries_MappedColumns(t *testing.T) {
	p := writeFile(t, "export.csv", "\ufeffObserved,High,Low\n01/03/2024,50,30\n01/02/2024,NA,28\n")
	cm, err := climate.ParseColumnMap([]string{"Observed=DATE", "High=TMAX", "Low=TMIN"})
	if err != nil {
		t.Fatalf("ParseColumnMap: %v", err)
	}
	s, err := parser.LoadSeries(p, parser.Options{}, cm)
	if err != nil {
		t.Fatalf("LoadSeries: %v", err)
	}
	if s.Len() != 2 || s.Name() != "export.csv" {
		t.Fatalf("series = %d rows named %q", s.Len(), s.Name())
	}
	first := s.At(0)
	if first.Date.Format("2006-01-02") != "2024-01-02" || !first.TAvgDerived {
		t.Fatalf("first day = %+v", first)
	}

	bad := writeFile(t, "bad.csv", "day,hi,lo\n2024-01-01,1,2\n")
	if _, err := parser.LoadSeries(bad, parser.Options{}, nil); !errors.Is(err, climate.ErrDataFormat) {
		t.Fatalf("err = %v", err)
	}
}
