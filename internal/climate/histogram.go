package climate

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// YearCount is the per-year tally of days meeting a threshold.
type YearCount struct {
	Year       int     `json:"year" yaml:"year"`
	Count      int     `json:"count" yaml:"count"`
	TotalDays  int     `json:"total_days" yaml:"total_days"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// HistogramSummary describes the distribution of per-year counts.
type HistogramSummary struct {
	Metric         Metric    `json:"metric" yaml:"metric"`
	Threshold      float64   `json:"threshold" yaml:"threshold"`
	Direction      Direction `json:"direction" yaml:"direction"`
	Range          DateRange `json:"range" yaml:"range"`
	Years          int       `json:"years" yaml:"years"`
	Mean           float64   `json:"mean" yaml:"mean"`
	Min            int       `json:"min" yaml:"min"`
	Max            int       `json:"max" yaml:"max"`
	StdDev         float64   `json:"std_dev" yaml:"std_dev"`
	MeanPercentage float64   `json:"mean_percentage" yaml:"mean_percentage"`
}

// Histogram pairs the summary with the per-year breakdown (ascending years).
type Histogram struct {
	Summary HistogramSummary `json:"summary" yaml:"summary"`
	ByYear  []YearCount      `json:"by_year" yaml:"by_year"`
}

// tally counts qualifying and valid days per key.
func (s *Series) tally(metric Metric, threshold float64, dir Direction, key func(time.Time) (int, bool)) []YearCount {
	byYear := map[int]*YearCount{}
	for i, d := range s.days {
		y, ok := key(d.Date)
		if !ok {
			continue
		}
		v := s.Value(i, metric)
		if math.IsNaN(v) {
			continue
		}
		yc := byYear[y]
		if yc == nil {
			yc = &YearCount{Year: y}
			byYear[y] = yc
		}
		yc.TotalDays++
		if dir.Meets(v, threshold) {
			yc.Count++
		}
	}
	out := make([]YearCount, 0, len(byYear))
	for _, yc := range byYear {
		yc.Percentage = float64(yc.Count) / float64(yc.TotalDays) * 100
		out = append(out, *yc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// ThresholdHistogram counts, for every year's instance of rng, the days where
// metric meets threshold in direction, and summarizes the counts across years.
func (a *Analyzer) ThresholdHistogram(rng DateRange, metric Metric, threshold float64, dir Direction) (*Histogram, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	if err := metric.validate(); err != nil {
		return nil, err
	}
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}
	if err := dir.validate(); err != nil {
		return nil, err
	}

	rows := a.series.tally(metric, threshold, dir, a.series.rangeKey(rng))
	h := &Histogram{
		Summary: HistogramSummary{Metric: metric, Threshold: threshold, Direction: dir, Range: rng, Years: len(rows)},
		ByYear:  rows,
	}
	if len(rows) == 0 {
		return h, nil
	}
	counts := make([]float64, len(rows))
	pcts := make([]float64, len(rows))
	h.Summary.Min, h.Summary.Max = rows[0].Count, rows[0].Count
	for i, r := range rows {
		counts[i] = float64(r.Count)
		pcts[i] = r.Percentage
		if r.Count < h.Summary.Min {
			h.Summary.Min = r.Count
		}
		if r.Count > h.Summary.Max {
			h.Summary.Max = r.Count
		}
	}
	mean, std := stat.MeanStdDev(counts, nil)
	if len(rows) < 2 {
		std = 0
	}
	h.Summary.Mean = mean
	h.Summary.StdDev = std
	h.Summary.MeanPercentage = stat.Mean(pcts, nil)
	a.log.Debug("threshold histogram", zap.String("range", rng.String()), zap.Int("years", len(rows)))
	return h, nil
}

// Trend labels of a FrequencyTrend.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// FrequencyTrend is the per-calendar-year event frequency and its OLS trend.
type FrequencyTrend struct {
	Metric    Metric      `json:"metric" yaml:"metric"`
	Threshold float64     `json:"threshold" yaml:"threshold"`
	Direction Direction   `json:"direction" yaml:"direction"`
	ByYear    []YearCount `json:"by_year" yaml:"by_year"`
	// Slope is in events per year, per calendar year.
	Slope     float64 `json:"slope" yaml:"slope"`
	Intercept float64 `json:"intercept" yaml:"intercept"`
	Trend     string  `json:"trend" yaml:"trend"`
	Epsilon   float64 `json:"epsilon" yaml:"epsilon"`
}

// EventFrequency counts qualifying days per calendar year and fits a least
// squares line of count against year. Fewer than two years yield a zero
// slope and a stable trend.
//
// Every calendar year in the series is fitted on its raw count, including a
// partial first or last year. A dataset that starts or ends mid-year can bias
// the slope; compare TotalDays (or Percentage) in ByYear to spot such years.
func (a *Analyzer) EventFrequency(metric Metric, threshold float64, dir Direction) (*FrequencyTrend, error) {
	if err := metric.validate(); err != nil {
		return nil, err
	}
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}
	if err := dir.validate(); err != nil {
		return nil, err
	}

	rows := a.series.tally(metric, threshold, dir, func(t time.Time) (int, bool) { return t.Year(), true })
	ft := &FrequencyTrend{Metric: metric, Threshold: threshold, Direction: dir, ByYear: rows, Trend: TrendStable, Epsilon: a.trendEpsilon}
	if len(rows) >= 2 {
		xs := make([]float64, len(rows))
		ys := make([]float64, len(rows))
		for i, r := range rows {
			xs[i] = float64(r.Year)
			ys[i] = float64(r.Count)
		}
		ft.Intercept, ft.Slope = stat.LinearRegression(xs, ys, nil, false)
	}
	switch {
	case ft.Slope > a.trendEpsilon:
		ft.Trend = TrendIncreasing
	case ft.Slope < -a.trendEpsilon:
		ft.Trend = TrendDecreasing
	}
	a.log.Debug("event frequency", zap.Int("years", len(rows)), zap.Float64("slope", ft.Slope))
	return ft, nil
}
