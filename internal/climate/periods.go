package climate

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// Period is an N-day window ranked by its mean.
type Period struct {
	Metric Metric    `json:"metric" yaml:"metric"`
	Days   int       `json:"days" yaml:"days"`
	Start  time.Time `json:"start" yaml:"start"`
	End    time.Time `json:"end" yaml:"end"`
	Mean   float64   `json:"mean" yaml:"mean"`
	Min    float64   `json:"min" yaml:"min"`
	Max    float64   `json:"max" yaml:"max"`
}

type window struct {
	start, end int // row indexes, inclusive
	mean       float64
}

// FindExtremePeriods ranks every complete nDays window by its mean and picks
// the topN best ones that share no day with a better-ranked pick. A window is
// complete when its nDays rows are consecutive calendar days with valid values.
func (a *Analyzer) FindExtremePeriods(metric Metric, nDays int, extreme Extreme, topN int) ([]Period, error) {
	if err := metric.validate(); err != nil {
		return nil, err
	}
	if nDays < 1 {
		return nil, invalidParam("days", nDays, "must be at least 1")
	}
	if err := extreme.validate(); err != nil {
		return nil, err
	}
	if err := validateTopN(topN); err != nil {
		return nil, err
	}

	s := a.series
	n := s.Len()
	// prefix[i] is the sum of the first i values; runStart tracks the first
	// row of the current gap-free valid run.
	prefix := make([]float64, n+1)
	var cands []window
	runStart := 0
	for i := 0; i < n; i++ {
		v := s.Value(i, metric)
		if v != v { // NaN
			prefix[i+1] = prefix[i]
			runStart = i + 1
			continue
		}
		prefix[i+1] = prefix[i] + v
		if i > runStart && !nextDay(s.days[i-1].Date, s.days[i].Date) {
			runStart = i
		}
		if i-runStart+1 >= nDays {
			st := i - nDays + 1
			cands = append(cands, window{start: st, end: i, mean: (prefix[i+1] - prefix[st]) / float64(nDays)})
		}
	}

	sort.SliceStable(cands, func(i, j int) bool { return extreme.better(cands[i].mean, cands[j].mean) })

	used := make([]bool, n)
	var out []Period
	for _, c := range cands {
		if len(out) >= topN {
			break
		}
		if used[c.start] || used[c.end] {
			continue
		}
		acc := newAgg()
		for k := c.start; k <= c.end; k++ {
			used[k] = true
			acc.add(s.Value(k, metric))
		}
		out = append(out, Period{
			Metric: metric,
			Days:   nDays,
			Start:  s.days[c.start].Date,
			End:    s.days[c.end].Date,
			Mean:   c.mean,
			Min:    acc.min,
			Max:    acc.max,
		})
	}
	a.log.Debug("extreme periods ranked", zap.String("metric", string(metric)), zap.Int("candidates", len(cands)), zap.Int("selected", len(out)))
	return out, nil
}
