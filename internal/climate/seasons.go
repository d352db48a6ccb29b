package climate

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// SeasonInstance aggregates one season of one season-year.
type SeasonInstance struct {
	Season Season    `json:"season" yaml:"season"`
	Year   int       `json:"year" yaml:"year"` // anchor year; a winter is anchored to its December
	Label  string    `json:"label" yaml:"label"`
	Start  time.Time `json:"start" yaml:"start"`
	End    time.Time `json:"end" yaml:"end"`
	Mean   float64   `json:"mean" yaml:"mean"`
	Min    float64   `json:"min" yaml:"min"`
	Max    float64   `json:"max" yaml:"max"`
	Days   int       `json:"days" yaml:"days"`
}

// RangeInstance aggregates one year's instance of a DateRange.
type RangeInstance struct {
	Year  int       `json:"year" yaml:"year"` // year the instance starts in
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
	Mean  float64   `json:"mean" yaml:"mean"`
	Min   float64   `json:"min" yaml:"min"`
	Max   float64   `json:"max" yaml:"max"`
	Days  int       `json:"days" yaml:"days"`
}

// bucket collects observations of one year-keyed group in date order.
type bucket struct {
	year        int
	first, last time.Time
	acc         agg
}

// groupByYear folds the rows accepted by key into per-year buckets, sorted by year.
func (s *Series) groupByYear(metric Metric, key func(t time.Time) (int, bool)) []*bucket {
	byYear := map[int]*bucket{}
	var order []*bucket
	for i, d := range s.days {
		y, ok := key(d.Date)
		if !ok {
			continue
		}
		b := byYear[y]
		if b == nil {
			b = &bucket{year: y, first: d.Date, acc: newAgg()}
			byYear[y] = b
			order = append(order, b)
		}
		b.last = d.Date
		b.acc.add(s.Value(i, metric))
	}
	sort.Slice(order, func(i, j int) bool { return order[i].year < order[j].year })
	return order
}

// FindExtremeSeasons ranks every season-year of season by mean metric.
// Winter spans December of year Y and January-February of Y+1 and is labeled
// "Winter Y-(Y+1)". Ties rank by earlier year.
func (a *Analyzer) FindExtremeSeasons(season Season, metric Metric, extreme Extreme, topN int) ([]SeasonInstance, error) {
	if _, err := ParseSeason(string(season)); err != nil {
		return nil, err
	}
	if err := metric.validate(); err != nil {
		return nil, err
	}
	if err := extreme.validate(); err != nil {
		return nil, err
	}
	if err := validateTopN(topN); err != nil {
		return nil, err
	}

	buckets := a.series.groupByYear(metric, func(t time.Time) (int, bool) {
		s, y := SeasonOf(t)
		return y, s == season
	})
	var out []SeasonInstance
	for _, b := range buckets {
		if b.acc.n == 0 {
			continue
		}
		out = append(out, SeasonInstance{
			Season: season,
			Year:   b.year,
			Label:  SeasonLabel(season, b.year),
			Start:  b.first,
			End:    b.last,
			Mean:   b.acc.mean(),
			Min:    b.acc.min,
			Max:    b.acc.max,
			Days:   b.acc.n,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return extreme.better(out[i].Mean, out[j].Mean) })
	a.log.Debug("seasons ranked", zap.String("season", string(season)), zap.Int("instances", len(out)))
	if len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}

// rangeKey assigns dates to DateRange instances. Instances of a year-spanning
// range are kept only when the series covers both their start and end date.
func (s *Series) rangeKey(rng DateRange) func(t time.Time) (int, bool) {
	complete := map[int]bool{}
	return func(t time.Time) (int, bool) {
		if !rng.Contains(t) {
			return 0, false
		}
		y := rng.InstanceYear(t)
		if !rng.Wraps() {
			return y, true
		}
		ok, seen := complete[y]
		if !seen {
			start, end := rng.Bounds(y)
			ok = s.covers(start, end)
			complete[y] = ok
		}
		return y, ok
	}
}

// FindExtremeDateRange ranks each year's instance of rng by mean metric.
// Ties rank by earlier year.
func (a *Analyzer) FindExtremeDateRange(rng DateRange, metric Metric, extreme Extreme, topN int) ([]RangeInstance, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	if err := metric.validate(); err != nil {
		return nil, err
	}
	if err := extreme.validate(); err != nil {
		return nil, err
	}
	if err := validateTopN(topN); err != nil {
		return nil, err
	}

	var out []RangeInstance
	for _, b := range a.series.groupByYear(metric, a.series.rangeKey(rng)) {
		if b.acc.n == 0 {
			continue
		}
		out = append(out, RangeInstance{
			Year:  b.year,
			Start: b.first,
			End:   b.last,
			Mean:  b.acc.mean(),
			Min:   b.acc.min,
			Max:   b.acc.max,
			Days:  b.acc.n,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return extreme.better(out[i].Mean, out[j].Mean) })
	a.log.Debug("date range ranked", zap.String("range", rng.String()), zap.Bool("wraps", rng.Wraps()), zap.Int("instances", len(out)))
	if len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}
