package climate

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// Streak is a maximal run of calendar-consecutive days meeting a threshold.
type Streak struct {
	Metric    Metric    `json:"metric" yaml:"metric"`
	Threshold float64   `json:"threshold" yaml:"threshold"`
	Direction Direction `json:"direction" yaml:"direction"`
	Start     time.Time `json:"start" yaml:"start"`
	End       time.Time `json:"end" yaml:"end"`
	Length    int       `json:"length" yaml:"length"`
	Mean      float64   `json:"mean" yaml:"mean"`
	Min       float64   `json:"min" yaml:"min"`
	Max       float64   `json:"max" yaml:"max"`
}

// FindStreaks returns the topN longest runs where metric is at or above
// (or at or below) threshold. A calendar gap or a missing value ends a run.
// Longer runs rank first; equal lengths rank by earlier start.
func (a *Analyzer) FindStreaks(metric Metric, threshold float64, dir Direction, topN int) ([]Streak, error) {
	if err := metric.validate(); err != nil {
		return nil, err
	}
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}
	if err := dir.validate(); err != nil {
		return nil, err
	}
	if err := validateTopN(topN); err != nil {
		return nil, err
	}

	s := a.series
	var streaks []Streak
	runStart := -1
	acc := newAgg()
	flush := func(end int) {
		if runStart < 0 {
			return
		}
		streaks = append(streaks, Streak{
			Metric:    metric,
			Threshold: threshold,
			Direction: dir,
			Start:     s.days[runStart].Date,
			End:       s.days[end].Date,
			Length:    end - runStart + 1,
			Mean:      acc.mean(),
			Min:       acc.min,
			Max:       acc.max,
		})
		runStart = -1
		acc = newAgg()
	}
	for i := range s.days {
		v := s.Value(i, metric)
		if !dir.Meets(v, threshold) {
			flush(i - 1)
			continue
		}
		if runStart >= 0 && !nextDay(s.days[i-1].Date, s.days[i].Date) {
			flush(i - 1)
		}
		if runStart < 0 {
			runStart = i
		}
		acc.add(v)
	}
	flush(len(s.days) - 1)

	sort.SliceStable(streaks, func(i, j int) bool {
		if streaks[i].Length != streaks[j].Length {
			return streaks[i].Length > streaks[j].Length
		}
		return streaks[i].Start.Before(streaks[j].Start)
	})
	a.log.Debug("streaks found", zap.String("metric", string(metric)), zap.Int("runs", len(streaks)))
	if len(streaks) > topN {
		streaks = streaks[:topN]
	}
	return streaks, nil
}
