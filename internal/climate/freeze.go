package climate

import (
	"time"

	"go.uber.org/zap"
)

// FreezeCutoff returns July 1, which splits each calendar year into its
// spring half (before) and fall half (on or after).
func FreezeCutoff() MonthDay { return MonthDay{Month: 7, Day: 1} }

// FreezeRecord holds one calendar year's freeze dates. Absent dates are nil,
// and GrowingSeasonDays is nil unless both dates exist.
type FreezeRecord struct {
	Year              int        `json:"year" yaml:"year"`
	LastSpring        *time.Time `json:"last_spring_freeze" yaml:"last_spring_freeze"`
	FirstFall         *time.Time `json:"first_fall_freeze" yaml:"first_fall_freeze"`
	GrowingSeasonDays *int       `json:"growing_season_days" yaml:"growing_season_days"`
}

// FreezeDates finds, per calendar year, the last day before July 1 and the
// first day on or after July 1 where metric is at or below threshold.
func (a *Analyzer) FreezeDates(metric Metric, threshold float64) ([]FreezeRecord, error) {
	if err := metric.validate(); err != nil {
		return nil, err
	}
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}

	s := a.series
	cutoff := FreezeCutoff()
	var out []FreezeRecord
	for i, d := range s.days {
		y := d.Date.Year()
		if len(out) == 0 || out[len(out)-1].Year != y {
			out = append(out, FreezeRecord{Year: y})
		}
		if !Below.Meets(s.Value(i, metric), threshold) {
			continue
		}
		rec := &out[len(out)-1]
		date := d.Date
		if date.Before(cutoff.in(y)) {
			rec.LastSpring = &date // days ascend, so the latest wins
		} else if rec.FirstFall == nil {
			rec.FirstFall = &date
		}
	}
	for i := range out {
		rec := &out[i]
		if rec.LastSpring != nil && rec.FirstFall != nil {
			n := daysBetween(*rec.LastSpring, *rec.FirstFall)
			rec.GrowingSeasonDays = &n
		}
	}
	a.log.Debug("freeze dates", zap.String("metric", string(metric)), zap.Int("years", len(out)))
	return out, nil
}

// FreezeSummary aggregates freeze records over the years where each value exists.
type FreezeSummary struct {
	Years                 int        `json:"years" yaml:"years"`
	SpringYears           int        `json:"spring_years" yaml:"spring_years"`
	FallYears             int        `json:"fall_years" yaml:"fall_years"`
	MeanLastSpring        *MonthDay  `json:"mean_last_spring,omitempty" yaml:"mean_last_spring,omitempty"`
	MeanFirstFall         *MonthDay  `json:"mean_first_fall,omitempty" yaml:"mean_first_fall,omitempty"`
	LatestLastSpring      *time.Time `json:"latest_last_spring,omitempty" yaml:"latest_last_spring,omitempty"`
	EarliestFirstFall     *time.Time `json:"earliest_first_fall,omitempty" yaml:"earliest_first_fall,omitempty"`
	GrowingSeasonYears    int        `json:"growing_season_years" yaml:"growing_season_years"`
	MeanGrowingSeason     float64    `json:"mean_growing_season" yaml:"mean_growing_season"`
	ShortestGrowingSeason int        `json:"shortest_growing_season" yaml:"shortest_growing_season"`
	LongestGrowingSeason  int        `json:"longest_growing_season" yaml:"longest_growing_season"`
}

// SummarizeFreezes computes typical freeze dates on the day-of-year axis.
func SummarizeFreezes(recs []FreezeRecord) FreezeSummary {
	sum := FreezeSummary{Years: len(recs)}
	var springDOY, fallDOY, season float64
	for _, r := range recs {
		if r.LastSpring != nil {
			sum.SpringYears++
			springDOY += float64(DayOfYear(*r.LastSpring))
			if sum.LatestLastSpring == nil || DayOfYear(*r.LastSpring) > DayOfYear(*sum.LatestLastSpring) {
				sum.LatestLastSpring = r.LastSpring
			}
		}
		if r.FirstFall != nil {
			sum.FallYears++
			fallDOY += float64(DayOfYear(*r.FirstFall))
			if sum.EarliestFirstFall == nil || DayOfYear(*r.FirstFall) < DayOfYear(*sum.EarliestFirstFall) {
				sum.EarliestFirstFall = r.FirstFall
			}
		}
		if r.GrowingSeasonDays != nil {
			n := *r.GrowingSeasonDays
			if sum.GrowingSeasonYears == 0 || n < sum.ShortestGrowingSeason {
				sum.ShortestGrowingSeason = n
			}
			if n > sum.LongestGrowingSeason {
				sum.LongestGrowingSeason = n
			}
			sum.GrowingSeasonYears++
			season += float64(n)
		}
	}
	if sum.SpringYears > 0 {
		md := AxisMonthDay(int(springDOY/float64(sum.SpringYears) + 0.5))
		sum.MeanLastSpring = &md
	}
	if sum.FallYears > 0 {
		md := AxisMonthDay(int(fallDOY/float64(sum.FallYears) + 0.5))
		sum.MeanFirstFall = &md
	}
	if sum.GrowingSeasonYears > 0 {
		sum.MeanGrowingSeason = season / float64(sum.GrowingSeasonYears)
	}
	return sum
}
