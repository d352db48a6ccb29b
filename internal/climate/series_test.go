package climate

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestLoad_MappingSortAndDerivedTAvg(t *testing.T) {
	tbl := Table{
		Name:   "hsv.csv",
		Header: []string{"Date", "MaxTemp", "MinTemp", "Mean"},
		Rows: [][]string{
			{"2024-01-03", "50", "30", ""},
			{"2024-01-01", "40", "20", "31"},
			{"2024-01-02", "44", "M", "abc"},
			{"", "", "", ""},
		},
	}
	cm, err := ParseColumnMap([]string{"Date=DATE", "MaxTemp=TMAX", "MinTemp=tmin", "Mean=TAVG"})
	if err != nil {
		t.Fatalf("ParseColumnMap: %v", err)
	}
	s, err := Load(tbl, cm)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}
	if !s.At(0).Date.Equal(day("2024-01-01")) || !s.Last().Equal(day("2024-01-03")) {
		t.Fatalf("series not sorted: first %v last %v", s.At(0).Date, s.Last())
	}
	if d := s.At(0); d.TAvg != 31 || d.TAvgDerived {
		t.Fatalf("given TAVG not kept: %+v", d)
	}
	if d := s.At(1); !math.IsNaN(d.TMin) || !math.IsNaN(d.TAvg) || !d.TAvgDerived {
		t.Fatalf("missing TMIN should leave a NaN derived TAVG: %+v", d)
	}
	if d := s.At(2); d.TAvg != 40 || !d.TAvgDerived {
		t.Fatalf("empty TAVG should derive (50+30)/2: %+v", d)
	}
	sum := s.Summary()
	if sum.DerivedTAvg != 2 || sum.MissingTMin != 1 || sum.Years != 1 || sum.CalendarGaps != 0 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestLoad_MissingColumn(t *testing.T) {
	_, err := Load(Table{Header: []string{"DATE", "TMAX"}, Rows: [][]string{{"2024-01-01", "1"}}}, nil)
	var fe *DataFormatError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want DataFormatError", err)
	}
	if fe.Field != "TMIN" || !strings.Contains(fe.Error(), "available: DATE, TMAX") {
		t.Fatalf("unexpected error: %v", fe)
	}
}

func TestLoad_BadValues(t *testing.T) {
	cases := []struct {
		name  string
		row   []string
		field string
	}{
		{"bad date", []string{"yesterday", "1", "2"}, "DATE"},
		{"bad tmax", []string{"2024-01-01", "hot", "2"}, "TMAX"},
		{"bad tmin", []string{"2024-01-01", "1", "cold"}, "TMIN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(Table{Header: []string{"date", "tmax", "tmin"}, Rows: [][]string{tc.row}}, nil)
			var fe *DataFormatError
			if !errors.As(err, &fe) {
				t.Fatalf("err = %v, want DataFormatError", err)
			}
			if fe.Field != tc.field || fe.Row != 1 {
				t.Fatalf("field/row = %s/%d", fe.Field, fe.Row)
			}
			if !errors.Is(err, ErrDataFormat) {
				t.Fatalf("errors.Is(ErrDataFormat) = false")
			}
		})
	}
}

func TestLoad_DuplicateDateRejected(t *testing.T) {
	_, err := Load(Table{
		Header: []string{"DATE", "TMAX", "TMIN"},
		Rows:   [][]string{{"2024-01-01", "1", "0"}, {"01/01/2024", "2", "0"}},
	}, nil)
	var fe *DataFormatError
	if !errors.As(err, &fe) || !strings.Contains(fe.Reason, "duplicate date") {
		t.Fatalf("err = %v, want duplicate date", err)
	}
}

func TestLoad_DateFormats(t *testing.T) {
	rows := [][]string{
		{"2024-01-01", "1", "0"},
		{"2024/01/02", "1", "0"},
		{"01/03/2024", "1", "0"},
		{"1/4/2024", "1", "0"},
		{"20240105", "1", "0"},
		{"45297", "1", "0"}, // spreadsheet serial for 2024-01-06
		{"2024-01-07T00:00:00Z", "-3,5", "0"},
	}
	s, err := Load(Table{Header: []string{"DATE", "TMAX", "TMIN"}, Rows: rows}, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i := 0; i < s.Len(); i++ {
		want := day("2024-01-01").AddDate(0, 0, i)
		if !s.At(i).Date.Equal(want) {
			t.Fatalf("row %d date = %v, want %v", i, s.At(i).Date, want)
		}
	}
	if s.At(6).TMax != -3.5 {
		t.Fatalf("decimal comma TMAX = %v", s.At(6).TMax)
	}
}

func TestParseColumnMap_Invalid(t *testing.T) {
	for _, bad := range [][]string{{"NoEquals"}, {"=TMAX"}, {"Foo=WIND"}} {
		if _, err := ParseColumnMap(bad); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("ParseColumnMap(%v) err = %v", bad, err)
		}
	}
}
