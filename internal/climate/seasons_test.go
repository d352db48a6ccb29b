package climate

import (
	"testing"
	"time"
)

// yearlyOffset makes each year uniformly warmer or colder: value = base + offset[year].
func yearlyOffset(base float64, offset map[int]float64) func(time.Time) float64 {
	return func(t time.Time) float64 { return base + offset[t.Year()] }
}

func TestFindExtremeSeasons_WinterFolding(t *testing.T) {
	// Dec 2020 is very cold and must land in Winter 2020-2021 together with Jan/Feb 2021.
	days := span(day("2020-01-01"), day("2022-02-28"), func(d time.Time) float64 {
		if d.Year() == 2020 && d.Month() == time.December {
			return 0
		}
		return 40
	})
	a := mustAnalyzer(t, days)
	got, err := a.FindExtremeSeasons(Winter, TAvg, Coldest, 10)
	if err != nil {
		t.Fatalf("FindExtremeSeasons: %v", err)
	}
	// Winter 2019 (Jan-Feb 2020 only), 2020 and 2021
	if len(got) != 3 {
		t.Fatalf("got %d winters: %+v", len(got), got)
	}
	w := got[0]
	if w.Year != 2020 || w.Label != "Winter 2020-2021" {
		t.Fatalf("coldest winter = %+v", w)
	}
	if !w.Start.Equal(day("2020-12-01")) || !w.End.Equal(day("2021-02-28")) || w.Days != 31+31+28 {
		t.Fatalf("winter bounds = %v..%v (%d days)", w.Start, w.End, w.Days)
	}
	if !approx(w.Mean, 40*59.0/90) || w.Min != 0 || w.Max != 40 {
		t.Fatalf("winter stats = %+v", w)
	}
	if got[1].Year != 2019 || got[2].Year != 2021 {
		t.Fatalf("ties must rank by year: %d, %d", got[1].Year, got[2].Year)
	}
	if got[1].Days != 31+29 {
		t.Fatalf("Winter 2019-2020 days = %d", got[1].Days)
	}
}

func TestFindExtremeSeasons_Summer(t *testing.T) {
	days := span(day("2010-01-01"), day("2013-12-31"), yearlyOffset(80, map[int]float64{2011: 5, 2012: -3}))
	a := mustAnalyzer(t, days)
	got, err := a.FindExtremeSeasons(Summer, TMax, Warmest, 2)
	if err != nil {
		t.Fatalf("FindExtremeSeasons: %v", err)
	}
	if len(got) != 2 || got[0].Year != 2011 || got[0].Label != "Summer 2011" || got[0].Days != 92 {
		t.Fatalf("warmest summers = %+v", got)
	}
	if got[1].Year != 2010 {
		t.Fatalf("second warmest = %+v", got[1])
	}
	if _, err := a.FindExtremeSeasons("monsoon", TMax, Warmest, 2); err == nil {
		t.Fatalf("expected error for unknown season")
	}
}

func TestFindExtremeDateRange_YearWrap(t *testing.T) {
	days := span(day("2019-01-01"), day("2022-01-03"), yearlyOffset(30, map[int]float64{2020: -10}))
	a := mustAnalyzer(t, days)
	rng, _ := NewDateRange(12, 20, 1, 5)
	got, err := a.FindExtremeDateRange(rng, TAvg, Coldest, 10)
	if err != nil {
		t.Fatalf("FindExtremeDateRange: %v", err)
	}
	// 2018 has no Dec 20 and 2021 ends before Jan 5 2022: both dropped
	if len(got) != 2 {
		t.Fatalf("got %+v", got)
	}
	c := got[0]
	if c.Year != 2020 || !c.Start.Equal(day("2020-12-20")) || !c.End.Equal(day("2021-01-05")) || c.Days != 17 {
		t.Fatalf("coldest instance = %+v", c)
	}
	// 12 days at 20 in Dec 2020 and 5 days at 30 in Jan 2021
	if !approx(c.Mean, (12*20.0+5*30)/17) {
		t.Fatalf("mean = %v", c.Mean)
	}
	if got[1].Year != 2019 || got[1].Days != 17 {
		t.Fatalf("second instance = %+v", got[1])
	}
}

func TestFindExtremeDateRange_WithinYear(t *testing.T) {
	days := span(day("2000-01-01"), day("2002-01-10"), yearlyOffset(10, map[int]float64{2001: 5}))
	a := mustAnalyzer(t, days)
	rng, _ := NewDateRange(1, 3, 1, 20)
	got, err := a.FindExtremeDateRange(rng, TMin, Warmest, 10)
	if err != nil {
		t.Fatalf("FindExtremeDateRange: %v", err)
	}
	// non-wrapping ranges keep partial instances (2002 has Jan 3-10 only)
	if len(got) != 3 || got[0].Year != 2001 || got[0].Days != 18 {
		t.Fatalf("got %+v", got)
	}
	if got[1].Year != 2000 || got[2].Year != 2002 || got[2].Days != 8 {
		t.Fatalf("tie order = %+v", got)
	}
}
