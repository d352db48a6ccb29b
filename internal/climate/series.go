// Package climate is the analysis engine over a daily temperature series:
// streaks, rolling extremes, seasonal and date-range rankings, threshold
// frequency and trend, freeze dates, heatmaps and day-of-year records.
package climate

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Column names a field of the Daily Series in the input table.
type Column string

const (
	ColumnDate Column = "DATE"
	ColumnTMax Column = "TMAX"
	ColumnTMin Column = "TMIN"
	ColumnTAvg Column = "TAVG"
)

var requiredColumns = []Column{ColumnDate, ColumnTMax, ColumnTMin}

// ParseColumnMap turns SRC=DST pairs into a column mapping.
func ParseColumnMap(pairs []string) (map[string]Column, error) {
	out := make(map[string]Column, len(pairs))
	for _, p := range pairs {
		src, dst, ok := strings.Cut(p, "=")
		src = strings.TrimSpace(src)
		if !ok || src == "" {
			return nil, invalidParam("column mapping", p, "use SRC=DST")
		}
		col := Column(strings.ToUpper(strings.TrimSpace(dst)))
		switch col {
		case ColumnDate, ColumnTMax, ColumnTMin, ColumnTAvg:
		default:
			return nil, invalidParam("column mapping", p, "target must be DATE, TMAX, TMIN or TAVG")
		}
		out[src] = col
	}
	return out, nil
}

// Table is the raw tabular input handed over by an ingestion collaborator.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Day is one calendar day of observations. Missing values are NaN.
type Day struct {
	Date        time.Time `json:"date" yaml:"date"`
	TMax        float64   `json:"tmax" yaml:"tmax"`
	TMin        float64   `json:"tmin" yaml:"tmin"`
	TAvg        float64   `json:"tavg" yaml:"tavg"`
	TAvgDerived bool      `json:"tavg_derived" yaml:"tavg_derived"`
}

// Value returns the requested metric.
func (d Day) Value(m Metric) float64 {
	switch m {
	case TMax:
		return d.TMax
	case TMin:
		return d.TMin
	default:
		return d.TAvg
	}
}

// Series is the chronologically ordered, duplicate-free Daily Series. It is
// never modified after Load.
type Series struct {
	name string
	days []Day
}

// NewSeries builds a series from already parsed days. Days are sorted and a
// missing TAVG (NaN) is derived from TMAX and TMIN.
func NewSeries(name string, days []Day) (*Series, error) {
	cp := make([]Day, len(days))
	for i, d := range days {
		d.Date = truncateDay(d.Date)
		if math.IsNaN(d.TAvg) {
			d.TAvg = (d.TMax + d.TMin) / 2
			d.TAvgDerived = true
		}
		cp[i] = d
	}
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Date.Before(cp[j].Date) })
	for i := 1; i < len(cp); i++ {
		if cp[i].Date.Equal(cp[i-1].Date) {
			return nil, &DataFormatError{Field: string(ColumnDate), Reason: "duplicate date " + cp[i].Date.Format("2006-01-02")}
		}
	}
	return &Series{name: name, days: cp}, nil
}

// Load validates a raw table and returns the Daily Series. colMap renames
// source headers before the DATE/TMAX/TMIN/TAVG lookup.
func Load(t Table, colMap map[string]Column) (*Series, error) {
	idx, err := resolveColumns(t.Header, colMap)
	if err != nil {
		return nil, err
	}
	tavgIdx, hasTAvg := idx[ColumnTAvg]

	type parsed struct {
		day Day
		row int
	}
	rows := make([]parsed, 0, len(t.Rows))
	for i, rec := range t.Rows {
		rowNum := i + 1
		if blankRow(rec) {
			continue
		}
		rawDate := cell(rec, idx[ColumnDate])
		date, ok := parseDate(rawDate)
		if !ok {
			return nil, &DataFormatError{Field: string(ColumnDate), Row: rowNum, Value: rawDate, Reason: "unrecognized date"}
		}
		tmax, err := requiredValue(rec, idx[ColumnTMax], ColumnTMax, rowNum)
		if err != nil {
			return nil, err
		}
		tmin, err := requiredValue(rec, idx[ColumnTMin], ColumnTMin, rowNum)
		if err != nil {
			return nil, err
		}
		d := Day{Date: date, TMax: tmax, TMin: tmin, TAvg: math.NaN()}
		if hasTAvg {
			if v, ok := parseNumeric(cell(rec, tavgIdx)); ok {
				d.TAvg = v
			}
		}
		if math.IsNaN(d.TAvg) {
			d.TAvg = (tmax + tmin) / 2
			d.TAvgDerived = true
		}
		rows = append(rows, parsed{day: d, row: rowNum})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].day.Date.Before(rows[j].day.Date) })
	days := make([]Day, len(rows))
	for i, p := range rows {
		if i > 0 && p.day.Date.Equal(rows[i-1].day.Date) {
			return nil, &DataFormatError{
				Field:  string(ColumnDate),
				Row:    p.row,
				Value:  p.day.Date.Format("2006-01-02"),
				Reason: fmt.Sprintf("duplicate date (also on row %d)", rows[i-1].row),
			}
		}
		days[i] = p.day
	}
	return &Series{name: t.Name, days: days}, nil
}

func resolveColumns(header []string, colMap map[string]Column) (map[Column]int, error) {
	idx := map[Column]int{}
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	mapping := make(map[string]Column, len(colMap))
	for src, dst := range colMap {
		mapping[strings.ToLower(strings.TrimSpace(src))] = dst
	}
	// mapped columns take priority over same-named headers
	for i, n := range names {
		if target, ok := mapping[strings.ToLower(n)]; ok {
			if _, dup := idx[target]; !dup {
				idx[target] = i
			}
		}
	}
	for i, n := range names {
		if _, mapped := mapping[strings.ToLower(n)]; mapped {
			continue
		}
		c := Column(strings.ToUpper(n))
		switch c {
		case ColumnDate, ColumnTMax, ColumnTMin, ColumnTAvg:
			if _, dup := idx[c]; !dup {
				idx[c] = i
			}
		}
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, string(c))
		}
	}
	if len(missing) > 0 {
		return nil, &DataFormatError{
			Field:  strings.Join(missing, ", "),
			Reason: fmt.Sprintf("missing required column (available: %s); map yours with SRC=DST", strings.Join(names, ", ")),
		}
	}
	return idx, nil
}

func requiredValue(rec []string, i int, c Column, row int) (float64, error) {
	raw := cell(rec, i)
	if isMissing(raw) {
		return math.NaN(), nil
	}
	v, ok := parseNumeric(raw)
	if !ok {
		return 0, &DataFormatError{Field: string(c), Row: row, Value: raw, Reason: "not a number"}
	}
	return v, nil
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func blankRow(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isMissing(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NA", "N/A", "NAN", "NULL", "M":
		return true
	}
	return false
}

var dateLayouts = []string{
	"2006-01-02", "2006/01/02", "01/02/2006", "1/2/2006", time.RFC3339,
	"2006-01-02 15:04:05", "2006-01-02 15:04", "1/2/2006 15:04", "20060102",
}

// excelEpoch is day zero of spreadsheet serial dates (1900 date system).
var excelEpoch = Date(1899, 12, 30)

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return truncateDay(t), true
		}
	}
	// XLSX cells carry dates as serial day numbers
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 1 && f < 2958466 {
		return excelEpoch.AddDate(0, 0, int(f)), true
	}
	return time.Time{}, false
}

func parseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	if isMissing(raw) {
		return math.NaN(), false
	}
	// decimal comma without a decimal point, e.g. "-3,5"
	if strings.Contains(raw, ",") && !strings.Contains(raw, ".") {
		raw = strings.ReplaceAll(raw, ",", ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Name is the dataset name, usually the source file.
func (s *Series) Name() string { return s.name }

func (s *Series) Len() int { return len(s.days) }

// At returns the i-th day in date order.
func (s *Series) At(i int) Day { return s.days[i] }

// Days returns a copy of the series.
func (s *Series) Days() []Day {
	out := make([]Day, len(s.days))
	copy(out, s.days)
	return out
}

// Value is metric m of the i-th day, NaN when missing.
func (s *Series) Value(i int, m Metric) float64 { return s.days[i].Value(m) }

// First is the earliest date, or the zero time for an empty series.
func (s *Series) First() time.Time {
	if len(s.days) == 0 {
		return time.Time{}
	}
	return s.days[0].Date
}

// Last is the latest date, or the zero time for an empty series.
func (s *Series) Last() time.Time {
	if len(s.days) == 0 {
		return time.Time{}
	}
	return s.days[len(s.days)-1].Date
}

// Years lists the distinct calendar years present, ascending.
func (s *Series) Years() []int {
	var out []int
	for _, d := range s.days {
		if y := d.Date.Year(); len(out) == 0 || out[len(out)-1] != y {
			out = append(out, y)
		}
	}
	return out
}

// covers reports whether the series spans [start, end].
func (s *Series) covers(start, end time.Time) bool {
	if len(s.days) == 0 {
		return false
	}
	return !s.First().After(start) && !s.Last().Before(end)
}

// SeriesSummary describes a loaded series.
type SeriesSummary struct {
	Name         string    `json:"name" yaml:"name"`
	Records      int       `json:"records" yaml:"records"`
	First        time.Time `json:"first" yaml:"first"`
	Last         time.Time `json:"last" yaml:"last"`
	Years        int       `json:"years" yaml:"years"`
	CalendarGaps int       `json:"calendar_gaps" yaml:"calendar_gaps"`
	MissingTMax  int       `json:"missing_tmax" yaml:"missing_tmax"`
	MissingTMin  int       `json:"missing_tmin" yaml:"missing_tmin"`
	MissingTAvg  int       `json:"missing_tavg" yaml:"missing_tavg"`
	DerivedTAvg  int       `json:"derived_tavg" yaml:"derived_tavg"`
}

// Summary counts records, gaps and missing values.
func (s *Series) Summary() SeriesSummary {
	sum := SeriesSummary{Name: s.name, Records: len(s.days), First: s.First(), Last: s.Last(), Years: len(s.Years())}
	for i, d := range s.days {
		if i > 0 && !nextDay(s.days[i-1].Date, d.Date) {
			sum.CalendarGaps++
		}
		if math.IsNaN(d.TMax) {
			sum.MissingTMax++
		}
		if math.IsNaN(d.TMin) {
			sum.MissingTMin++
		}
		if math.IsNaN(d.TAvg) {
			sum.MissingTAvg++
		}
		if d.TAvgDerived {
			sum.DerivedTAvg++
		}
	}
	return sum
}
