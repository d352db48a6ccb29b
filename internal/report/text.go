// Package report renders analysis results as text reports or JSON/YAML exports.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/KaramelBytes/tempstat-cli/internal/climate"
)

const (
	ruleWidth = 80
	barWidth  = 30
)

var monthAbbr = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Text writes human-readable reports. Units is appended to temperatures and
// DateLayout formats dates.
type Text struct {
	W          io.Writer
	Units      string
	DateLayout string
}

// NewText returns a text renderer; an empty units string means °F.
func NewText(w io.Writer, units string) *Text {
	if units == "" {
		units = "°F"
	}
	return &Text{W: w, Units: units, DateLayout: "2006-01-02"}
}

func (t *Text) date(d time.Time) string {
	if t.DateLayout == "" {
		return d.Format("2006-01-02")
	}
	return d.Format(t.DateLayout)
}

func (t *Text) flush(b *strings.Builder) error {
	_, err := io.WriteString(t.W, b.String())
	return err
}

func (t *Text) temp(v float64) string { return fmt.Sprintf("%.1f%s", v, t.Units) }

func header(b *strings.Builder, title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(b, "\n%s\n%s\n%s\n\n", rule, title, rule)
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "%s\n%s\n", title, strings.Repeat("-", 40))
}

func noResults(b *strings.Builder) {
	b.WriteString("No results: not enough data for this query.\n")
}

// WriteSummary prints what was loaded.
func (t *Text) WriteSummary(s climate.SeriesSummary) error {
	var b strings.Builder
	header(&b, fmt.Sprintf("DATASET: %s", s.Name))
	if s.Records == 0 {
		b.WriteString("Loaded 0 records\n")
		return t.flush(&b)
	}
	fmt.Fprintf(&b, "Loaded %d records from %s to %s (%d years)\n", s.Records, t.date(s.First), t.date(s.Last), s.Years)
	fmt.Fprintf(&b, "  Calendar gaps: %d\n", s.CalendarGaps)
	fmt.Fprintf(&b, "  Missing:       TMAX=%d  TMIN=%d  TAVG=%d\n", s.MissingTMax, s.MissingTMin, s.MissingTAvg)
	fmt.Fprintf(&b, "  Derived TAVG:  %d\n", s.DerivedTAvg)
	return t.flush(&b)
}

// WriteStreaks prints ranked streaks.
func (t *Text) WriteStreaks(metric climate.Metric, threshold float64, dir climate.Direction, streaks []climate.Streak) error {
	var b strings.Builder
	header(&b, fmt.Sprintf("TEMPERATURE STREAKS: %s %s %s", metric, dir, t.temp(threshold)))
	if len(streaks) == 0 {
		noResults(&b)
	}
	for i, s := range streaks {
		fmt.Fprintf(&b, "Rank #%d: %d days\n", i+1, s.Length)
		fmt.Fprintf(&b, "  Period: %s to %s\n", t.date(s.Start), t.date(s.End))
		fmt.Fprintf(&b, "  Temps:  Avg=%s  Min=%s  Max=%s\n\n", t.temp(s.Mean), t.temp(s.Min), t.temp(s.Max))
	}
	return t.flush(&b)
}

// WritePeriods prints ranked N-day periods.
func (t *Text) WritePeriods(metric climate.Metric, nDays int, extreme climate.Extreme, periods []climate.Period) error {
	var b strings.Builder
	header(&b, fmt.Sprintf("%s %d-DAY PERIODS: %s", strings.ToUpper(string(extreme)), nDays, metric))
	if len(periods) == 0 {
		noResults(&b)
	}
	for i, p := range periods {
		fmt.Fprintf(&b, "Rank #%d: %s average\n", i+1, t.temp(p.Mean))
		fmt.Fprintf(&b, "  Period: %s to %s\n", t.date(p.Start), t.date(p.End))
		fmt.Fprintf(&b, "  Range:  Min=%s  Max=%s\n\n", t.temp(p.Min), t.temp(p.Max))
	}
	return t.flush(&b)
}

// WriteSeasons prints ranked season instances.
func (t *Text) WriteSeasons(season climate.Season, metric climate.Metric, extreme climate.Extreme, seasons []climate.SeasonInstance) error {
	var b strings.Builder
	header(&b, fmt.Sprintf("%s %sS: %s", strings.ToUpper(string(extreme)), strings.ToUpper(string(season)), metric))
	if len(seasons) == 0 {
		noResults(&b)
	}
	for i, s := range seasons {
		fmt.Fprintf(&b, "Rank #%d: %s\n", i+1, s.Label)
		t.aggregate(&b, s.Mean, s.Min, s.Max, s.Start, s.End, s.Days)
	}
	return t.flush(&b)
}

// WriteDateRanges prints ranked yearly instances of a date range.
func (t *Text) WriteDateRanges(rng climate.DateRange, metric climate.Metric, extreme climate.Extreme, ranges []climate.RangeInstance) error {
	var b strings.Builder
	header(&b, fmt.Sprintf("%s %s PERIODS: %s", strings.ToUpper(string(extreme)), rng, metric))
	if len(ranges) == 0 {
		noResults(&b)
	}
	for i, r := range ranges {
		label := fmt.Sprint(r.Year)
		if rng.Wraps() {
			label = fmt.Sprintf("%d-%d", r.Year, r.Year+1)
		}
		fmt.Fprintf(&b, "Rank #%d: %s\n", i+1, label)
		t.aggregate(&b, r.Mean, r.Min, r.Max, r.Start, r.End, r.Days)
	}
	return t.flush(&b)
}

func (t *Text) aggregate(b *strings.Builder, mean, lo, hi float64, start, end time.Time, days int) {
	fmt.Fprintf(b, "  Average: %s\n", t.temp(mean))
	fmt.Fprintf(b, "  Range:   Min=%s  Max=%s\n", t.temp(lo), t.temp(hi))
	fmt.Fprintf(b, "  Period:  %s to %s (%d days)\n\n", t.date(start), t.date(end), days)
}

// WriteHistogram prints the threshold summary and a per-year bar chart.
func (t *Text) WriteHistogram(h *climate.Histogram) error {
	var b strings.Builder
	s := h.Summary
	header(&b, fmt.Sprintf("THRESHOLD ANALYSIS: %s %s %s for %s", s.Metric, s.Direction.Symbol(), t.temp(s.Threshold), s.Range))
	if len(h.ByYear) == 0 {
		noResults(&b)
		return t.flush(&b)
	}
	section(&b, "SUMMARY")
	fmt.Fprintf(&b, "  Average:  %.1f days/year (%.1f%%)\n", s.Mean, s.MeanPercentage)
	fmt.Fprintf(&b, "  Minimum:  %d days\n", s.Min)
	fmt.Fprintf(&b, "  Maximum:  %d days\n", s.Max)
	fmt.Fprintf(&b, "  Std Dev:  %.1f days\n", s.StdDev)
	fmt.Fprintf(&b, "  Years:    %d\n\n", s.Years)
	section(&b, "YEAR-BY-YEAR")
	writeBars(&b, h.ByYear)
	b.WriteString("\n")
	return t.flush(&b)
}

func writeBars(b *strings.Builder, rows []climate.YearCount) {
	most := 0
	for _, r := range rows {
		if r.Count > most {
			most = r.Count
		}
	}
	for _, r := range rows {
		n := 0
		if most > 0 {
			n = r.Count * barWidth / most
		}
		fmt.Fprintf(b, "  %d: %3d days (%5.1f%%)  %s\n", r.Year, r.Count, r.Percentage, strings.Repeat("#", n))
	}
}

// WriteFrequency prints per-year event counts and the fitted trend.
func (t *Text) WriteFrequency(ft *climate.FrequencyTrend) error {
	var b strings.Builder
	header(&b, fmt.Sprintf("EVENT FREQUENCY: %s %s %s", ft.Metric, ft.Direction.Symbol(), t.temp(ft.Threshold)))
	if len(ft.ByYear) == 0 {
		noResults(&b)
		return t.flush(&b)
	}
	section(&b, "TREND")
	fmt.Fprintf(&b, "  Slope:     %+.3f days/year\n", ft.Slope)
	fmt.Fprintf(&b, "  Direction: %s (|slope| < %g is stable)\n", ft.Trend, ft.Epsilon)
	fmt.Fprintf(&b, "  Years:     %d\n\n", len(ft.ByYear))
	section(&b, "YEAR-BY-YEAR")
	writeBars(&b, ft.ByYear)
	b.WriteString("\n")
	return t.flush(&b)
}

// WriteFreezes prints freeze dates per year followed by their summary.
func (t *Text) WriteFreezes(metric climate.Metric, threshold float64, recs []climate.FreezeRecord, sum climate.FreezeSummary) error {
	var b strings.Builder
	header(&b, fmt.Sprintf("FREEZE DATES: %s <= %s", metric, t.temp(threshold)))
	if len(recs) == 0 {
		noResults(&b)
		return t.flush(&b)
	}
	fmt.Fprintf(&b, "  %-6s %-12s %-12s %s\n", "Year", "Last spring", "First fall", "Growing season")
	for _, r := range recs {
		season := "-"
		if r.GrowingSeasonDays != nil {
			season = fmt.Sprintf("%d days", *r.GrowingSeasonDays)
		}
		fmt.Fprintf(&b, "  %-6d %-12s %-12s %s\n", r.Year, t.optDate(r.LastSpring), t.optDate(r.FirstFall), season)
	}
	b.WriteString("\n")
	section(&b, "SUMMARY")
	fmt.Fprintf(&b, "  Typical last spring freeze: %s (latest %s, %d years)\n", optMonthDay(sum.MeanLastSpring), t.optDate(sum.LatestLastSpring), sum.SpringYears)
	fmt.Fprintf(&b, "  Typical first fall freeze:  %s (earliest %s, %d years)\n", optMonthDay(sum.MeanFirstFall), t.optDate(sum.EarliestFirstFall), sum.FallYears)
	if sum.GrowingSeasonYears > 0 {
		fmt.Fprintf(&b, "  Growing season:             %.0f days avg (shortest %d, longest %d)\n",
			sum.MeanGrowingSeason, sum.ShortestGrowingSeason, sum.LongestGrowingSeason)
	}
	b.WriteString("\n")
	return t.flush(&b)
}

func (t *Text) optDate(d *time.Time) string {
	if d == nil {
		return "-"
	}
	return t.date(*d)
}

func optMonthDay(md *climate.MonthDay) string {
	if md == nil {
		return "-"
	}
	return md.String()
}

// WriteHeatmap prints the year x month grid. Months without data show a dot.
func (t *Text) WriteHeatmap(h *climate.Heatmap) error {
	var b strings.Builder
	title := fmt.Sprintf("MONTHLY %s (%s)", h.Metric, h.Mode)
	header(&b, title)
	if len(h.Cells) == 0 {
		noResults(&b)
		return t.flush(&b)
	}
	b.WriteString("Year ")
	for _, m := range monthAbbr {
		fmt.Fprintf(&b, " %6s", m)
	}
	b.WriteString("\n")
	for _, y := range h.Years {
		fmt.Fprintf(&b, "%-5d", y)
		for m := 1; m <= 12; m++ {
			c, ok := h.Cell(y, m)
			if !ok {
				fmt.Fprintf(&b, " %6s", ".")
				continue
			}
			if h.Mode == climate.Anomaly {
				fmt.Fprintf(&b, " %+6.1f", c.Value)
			} else {
				fmt.Fprintf(&b, " %6.1f", c.Value)
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("Norm ")
	normals := map[int]float64{}
	for _, n := range h.Normals {
		normals[n.Month] = n.Mean
	}
	for m := 1; m <= 12; m++ {
		if v, ok := normals[m]; ok {
			fmt.Fprintf(&b, " %6.1f", v)
		} else {
			fmt.Fprintf(&b, " %6s", ".")
		}
	}
	fmt.Fprintf(&b, "\n\nValues in %s.\n", t.Units)
	return t.flush(&b)
}

// WriteDailyRecords prints the per-day envelope, with year's values alongside
// when overlay is not nil.
func (t *Text) WriteDailyRecords(metric climate.Metric, rng *climate.DateRange, recs []climate.DailyRecord, year int, overlay []climate.OverlayPoint) error {
	var b strings.Builder
	scope := "all year"
	if rng != nil {
		scope = rng.String()
	}
	header(&b, fmt.Sprintf("DAILY RECORDS: %s, %s", metric, scope))
	if len(recs) == 0 {
		noResults(&b)
		return t.flush(&b)
	}
	byDOY := map[int]float64{}
	for _, p := range overlay {
		byDOY[p.DayOfYear] = p.Value
	}
	fmt.Fprintf(&b, "  %-6s %14s %14s %7s %5s", "Day", "Record high", "Record low", "Mean", "N")
	if overlay != nil {
		fmt.Fprintf(&b, " %7d", year)
	}
	b.WriteString("\n")
	for _, r := range recs {
		fmt.Fprintf(&b, "  %s %02d %7.1f (%d) %7.1f (%d) %7.1f %5d",
			monthAbbr[r.Month-1], r.Day, r.Max, r.MaxYear, r.Min, r.MinYear, r.Mean, r.Count)
		if overlay != nil {
			if v, ok := byDOY[r.DayOfYear]; ok {
				fmt.Fprintf(&b, " %7.1f", v)
			} else {
				fmt.Fprintf(&b, " %7s", "-")
			}
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nValues in %s.\n", t.Units)
	return t.flush(&b)
}

