package parser

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	fixtureWorkbook = `<?xml version="1.0" encoding="UTF-8"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets><sheet name="Notes" sheetId="1" r:id="rId1"/><sheet name="Daily" sheetId="2" r:id="rId2"/></sheets>
</workbook>`
	fixtureRels = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="worksheet" Target="worksheets/sheet1.xml"/>
<Relationship Id="rId2" Type="worksheet" Target="/xl/worksheets/sheet2.xml"/>
</Relationships>`
	fixtureShared = `<?xml version="1.0" encoding="UTF-8"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<si><t>DATE</t></si><si><t>TMAX</t></si><si><t>TMIN</t></si><si><t>readme</t></si>
</sst>`
	fixtureNotes = `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>
<row r="1"><c r="A1" t="s"><v>3</v></c></row>
</sheetData></worksheet>`
	// 45292 is 2024-01-01; the second row skips column C and has an inline string
	fixtureDaily = `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>
<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c><c r="C1" t="s"><v>2</v></c></row>
<row r="2"><c r="A2"><v>45292</v></c><c r="B2"><v>41.5</v></c><c r="C2"><v>20</v></c></row>
<row r="3"><c r="A3" t="inlineStr"><is><t>2024-01-02</t></is></c><c r="B3"><v>43</v></c></row>
</sheetData></worksheet>`
)

func writeWorkbook(t *testing.T, parts map[string]string) string {
	t.Helper()
	return writeWorkbookMethod(t, parts, zip.Deflate)
}

func writeWorkbookMethod(t *testing.T, parts map[string]string, method uint16) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "station.xlsx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, body := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return path
}

func fixtureParts() map[string]string {
	return map[string]string{
		"xl/workbook.xml":            fixtureWorkbook,
		"xl/_rels/workbook.xml.rels": fixtureRels,
		"xl/sharedStrings.xml":       fixtureShared,
		"xl/worksheets/sheet1.xml":   fixtureNotes,
		"xl/worksheets/sheet2.xml":   fixtureDaily,
	}
}

func TestReadXLSXFile_SheetByName(t *testing.T) {
	path := writeWorkbook(t, fixtureParts())
	tbl, err := ReadXLSXFile(path, "daily", 0)
	if err != nil {
		t.Fatalf("ReadXLSXFile: %v", err)
	}
	if strings.Join(tbl.Header, ",") != "DATE,TMAX,TMIN" {
		t.Fatalf("header = %#v", tbl.Header)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %#v", tbl.Rows)
	}
	if got := strings.Join(tbl.Rows[0], ","); got != "45292,41.5,20" {
		t.Fatalf("row 1 = %q", got)
	}
	if tbl.Rows[1][0] != "2024-01-02" || len(tbl.Rows[1]) != 2 {
		t.Fatalf("row 2 = %#v", tbl.Rows[1])
	}

	tbl, err = ReadXLSXFile(path, "", 2)
	if err != nil || len(tbl.Rows) != 2 {
		t.Fatalf("by index: %v %#v", err, tbl.Rows)
	}
}

func TestReadXLSXFile_DefaultsToFirstSheet(t *testing.T) {
	path := writeWorkbook(t, fixtureParts())
	tbl, err := ReadTable(path, Options{})
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(tbl.Header) != 1 || tbl.Header[0] != "readme" || len(tbl.Rows) != 0 {
		t.Fatalf("first sheet = %+v", tbl)
	}
}

func TestReadXLSXFile_UnknownSheet(t *testing.T) {
	path := writeWorkbook(t, fixtureParts())
	_, err := ReadXLSXFile(path, "Hourly", 0)
	if err == nil || !strings.Contains(err.Error(), "Available sheets: Notes, Daily") {
		t.Fatalf("err = %v", err)
	}
}

func TestXLSXRefHelpers(t *testing.T) {
	paths := []struct{ in, want string }{
		{"/xl/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"xl/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
	}
	for _, tt := range paths {
		if got := partPath(tt.in); got != tt.want {
			t.Errorf("partPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	refs := map[string]int{"A1": 0, "C12": 2, "Z3": 25, "AA1": 26, "ab7": 27, "": -1}
	for ref, want := range refs {
		if got := colIndexFromRef(ref); got != want {
			t.Errorf("colIndexFromRef(%q) = %d, want %d", ref, got, want)
		}
	}
}

func TestReadXLSXFile_RichTextSharedString(t *testing.T) {
	parts := fixtureParts()
	parts["xl/sharedStrings.xml"] = `<?xml version="1.0" encoding="UTF-8"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<si><r><t>DA</t></r><r><t>TE</t></r></si><si><t>TMAX</t></si><si><t>TMIN</t></si><si><t>readme</t></si>
</sst>`
	path := writeWorkbook(t, parts)
	tbl, err := ReadXLSXFile(path, "Daily", 0)
	if err != nil {
		t.Fatalf("ReadXLSXFile: %v", err)
	}
	if tbl.Header[0] != "DATE" {
		t.Fatalf("header = %#v", tbl.Header)
	}
}

func TestReadXLSXFile_CorruptEntry(t *testing.T) {
	path := writeWorkbookMethod(t, fixtureParts(), zip.Store)
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	i := bytes.Index(b, []byte("45292"))
	if i < 0 {
		t.Fatalf("stored sheet data not found")
	}
	b[i+4] = '3'
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadXLSXFile(path, "Daily", 0); err == nil || !strings.Contains(err.Error(), "xl/worksheets/sheet2.xml") {
		t.Fatalf("expected read error for the damaged sheet, got %v", err)
	}
}
