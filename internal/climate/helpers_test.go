package climate

import (
	"math"
	"testing"
	"time"
)

func mustSeries(t *testing.T, days []Day) *Series {
	t.Helper()
	s, err := NewSeries("test", days)
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}
	return s
}

func mustAnalyzer(t *testing.T, days []Day) *Analyzer {
	t.Helper()
	return NewAnalyzer(mustSeries(t, days))
}

// consecutive builds one day per value starting at start. TMAX carries the
// value, TMIN is 20 below it and TAVG is derived.
func consecutive(start time.Time, vals ...float64) []Day {
	days := make([]Day, len(vals))
	for i, v := range vals {
		days[i] = Day{Date: start.AddDate(0, 0, i), TMax: v, TMin: v - 20, TAvg: math.NaN()}
	}
	return days
}

// span builds every day in [from, to] with all three metrics set to f(date).
func span(from, to time.Time, f func(time.Time) float64) []Day {
	var days []Day
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		v := f(d)
		days = append(days, Day{Date: d, TMax: v, TMin: v, TAvg: v})
	}
	return days
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
