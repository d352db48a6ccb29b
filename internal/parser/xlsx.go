package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KaramelBytes/tempstat-cli/internal/climate"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

func (xlsxReader) Read(path string, opt Options) (climate.Table, error) {
	return ReadXLSXFile(path, opt.SheetName, 0)
}

// ReadXLSXFile extracts rows from the selected sheet of a .xlsx workbook.
// If sheetName is empty and sheetIndex <= 0, it defaults to the first sheet.
// sheetIndex is 1-based (Sheet1 == 1). Date cells come through as Excel
// serial numbers, which the loader understands.
func ReadXLSXFile(path string, sheetName string, sheetIndex int) (climate.Table, error) {
	var t climate.Table
	b, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read xlsx: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return t, fmt.Errorf("open xlsx: %w", err)
	}
	var wb xlsxWorkbook
	if err := decodePart(zr, "xl/workbook.xml", &wb); err != nil {
		return t, err
	}
	var rels xlsxRelationships
	if err := decodePart(zr, "xl/_rels/workbook.xml.rels", &rels); err != nil {
		return t, err
	}

	target, err := wb.sheetPart(rels, sheetName, sheetIndex)
	if err != nil {
		return t, fmt.Errorf("%w in workbook '%s'.\nAvailable sheets: %s", err, filepath.Base(path), strings.Join(wb.names(), ", "))
	}
	var ws xlsxWorksheet
	raw, err := readPart(zr, target)
	if err != nil {
		return t, err
	}
	if raw == nil {
		return t, fmt.Errorf("xlsx: sheet part %s missing in %s", target, filepath.Base(path))
	}
	if err := xml.Unmarshal(raw, &ws); err != nil {
		return t, fmt.Errorf("xlsx: parse %s: %w", target, err)
	}
	var sst xlsxSharedStrings
	if err := decodePart(zr, "xl/sharedStrings.xml", &sst); err != nil {
		return t, err
	}
	shared := sst.texts()

	for i, row := range ws.Rows {
		cells := row.values(shared)
		if i == 0 {
			t.Header = cells
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}

type xlsxWorkbook struct {
	Sheets []struct {
		Name    string `xml:"name,attr"`
		SheetID int    `xml:"sheetId,attr"`
		RID     string `xml:"id,attr"` // r:id
	} `xml:"sheets>sheet"`
}

type xlsxRelationships struct {
	Items []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type xlsxSharedStrings struct {
	Items []struct {
		T    string `xml:"t"`
		Runs []struct {
			T string `xml:"t"`
		} `xml:"r"`
	} `xml:"si"`
}

type xlsxWorksheet struct {
	Rows []xlsxRow `xml:"sheetData>row"`
}

type xlsxRow struct {
	Cells []struct {
		Ref    string `xml:"r,attr"`
		Type   string `xml:"t,attr"`
		V      string `xml:"v"`
		Inline string `xml:"is>t"`
	} `xml:"c"`
}

func (wb xlsxWorkbook) names() []string {
	out := make([]string, len(wb.Sheets))
	for i, s := range wb.Sheets {
		out[i] = s.Name
	}
	return out
}

// sheetPart resolves the zip entry of a sheet chosen by name, or by 1-based
// sheetId when name is empty. Unnamed lookups fall back to worksheets/sheetN.xml.
func (wb xlsxWorkbook) sheetPart(rels xlsxRelationships, name string, index int) (string, error) {
	targets := make(map[string]string, len(rels.Items))
	for _, r := range rels.Items {
		targets[r.ID] = r.Target
	}
	if name != "" {
		for _, s := range wb.Sheets {
			if strings.EqualFold(s.Name, name) {
				if tg, ok := targets[s.RID]; ok {
					return partPath(tg), nil
				}
			}
		}
		return "", fmt.Errorf("sheet '%s' not found", name)
	}
	if index <= 0 {
		index = 1
	}
	for _, s := range wb.Sheets {
		if s.SheetID == index {
			if tg, ok := targets[s.RID]; ok {
				return partPath(tg), nil
			}
		}
	}
	return fmt.Sprintf("xl/worksheets/sheet%d.xml", index), nil
}

// texts flattens each shared string, joining rich-text runs.
func (sst xlsxSharedStrings) texts() []string {
	out := make([]string, len(sst.Items))
	for i, si := range sst.Items {
		var sb strings.Builder
		sb.WriteString(si.T)
		for _, r := range si.Runs {
			sb.WriteString(r.T)
		}
		out[i] = sb.String()
	}
	return out
}

// values places each cell at the column its reference names, so skipped
// cells stay empty. Cells without a reference follow the previous one.
func (r xlsxRow) values(shared []string) []string {
	var out []string
	for _, c := range r.Cells {
		col := colIndexFromRef(c.Ref)
		if col < 0 {
			col = len(out)
		}
		for len(out) <= col {
			out = append(out, "")
		}
		switch c.Type {
		case "s":
			if n, err := strconv.Atoi(strings.TrimSpace(c.V)); err == nil && n >= 0 && n < len(shared) {
				out[col] = shared[n]
			}
		case "inlineStr":
			out[col] = c.Inline
		default:
			out[col] = c.V
		}
	}
	return out
}

// readPart returns the bytes of a zip entry, or nil when it does not exist.
func readPart(zr *zip.Reader, name string) ([]byte, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, nil
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("xlsx: read %s: %w", name, err)
	}
	return b, nil
}

// decodePart unmarshals an optional XML part into v; absent parts leave v zero.
func decodePart(zr *zip.Reader, name string, v any) error {
	b, err := readPart(zr, name)
	if err != nil || b == nil {
		return err
	}
	if err := xml.Unmarshal(b, v); err != nil {
		return fmt.Errorf("xlsx: parse %s: %w", name, err)
	}
	return nil
}

// colIndexFromRef maps refs like "C12" to 2 (0-based); -1 when there are no letters.
func colIndexFromRef(ref string) int {
	idx := 0
	for _, c := range strings.ToUpper(ref) {
		if c < 'A' || c > 'Z' {
			break
		}
		idx = idx*26 + int(c-'A'+1)
	}
	return idx - 1
}

// partPath turns a relationship Target into a zip entry name. Targets are
// relative to xl/ unless they already start there.
func partPath(target string) string {
	target = strings.TrimPrefix(target, "/")
	if strings.HasPrefix(target, "xl/") {
		return path.Clean(target)
	}
	return path.Join("xl", target)
}
