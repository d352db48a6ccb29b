package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/tempstat-cli/internal/climate"
	cfgpkg "github.com/KaramelBytes/tempstat-cli/internal/config"
	"github.com/KaramelBytes/tempstat-cli/internal/report"
)

// Query is one analysis request. Subcommands build it from flags and batch
// plans decode it from YAML; empty fields take the configured defaults.
type Query struct {
	Kind      string   `json:"kind" yaml:"kind"`
	Metric    string   `json:"metric,omitempty" yaml:"metric,omitempty"`
	Threshold *float64 `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Direction string   `json:"direction,omitempty" yaml:"direction,omitempty"`
	Extreme   string   `json:"extreme,omitempty" yaml:"extreme,omitempty"`
	Top       int      `json:"top,omitempty" yaml:"top,omitempty"`
	Days      int      `json:"days,omitempty" yaml:"days,omitempty"`
	Season    string   `json:"season,omitempty" yaml:"season,omitempty"`
	Range     string   `json:"range,omitempty" yaml:"range,omitempty"`
	Mode      string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	Year      int      `json:"year,omitempty" yaml:"year,omitempty"`
}

var queryKinds = []string{"info", "streak", "period", "season", "range", "histogram", "frequency", "freeze", "heatmap", "records"}

// withDefaults fills the unset fields that kind uses. Zero counts are unset;
// negative ones are left for the engine to reject.
func (q Query) withDefaults(c *cfgpkg.Global) Query {
	q.Kind = strings.ToLower(strings.TrimSpace(q.Kind))
	if q.Kind == "info" {
		return q
	}
	if q.Metric == "" {
		q.Metric = c.DefaultMetric
		if q.Kind == "freeze" {
			q.Metric = string(climate.TMin)
		}
	}
	switch q.Kind {
	case "streak", "histogram", "frequency":
		if q.Direction == "" {
			q.Direction = string(climate.Above)
		}
	case "freeze":
		if q.Threshold == nil {
			thr := c.FreezeThreshold
			q.Threshold = &thr
		}
	case "heatmap":
		if q.Mode == "" {
			q.Mode = string(climate.Absolute)
		}
	}
	switch q.Kind {
	case "streak", "period", "season", "range":
		if q.Top == 0 {
			q.Top = c.TopN
		}
	}
	switch q.Kind {
	case "period", "season", "range":
		if q.Extreme == "" {
			q.Extreme = string(climate.Coldest)
		}
	}
	if q.Kind == "period" && q.Days == 0 {
		q.Days = c.PeriodDays
	}
	return q
}

// outcome is a finished query: its result for export and its text rendering.
type outcome struct {
	Query  Query
	Result any
	render func(*report.Text) error
}

type freezeResult struct {
	Records []climate.FreezeRecord `json:"records" yaml:"records"`
	Summary climate.FreezeSummary  `json:"summary" yaml:"summary"`
}

type recordsResult struct {
	Records []climate.DailyRecord  `json:"records" yaml:"records"`
	Year    int                    `json:"year,omitempty" yaml:"year,omitempty"`
	Overlay []climate.OverlayPoint `json:"overlay,omitempty" yaml:"overlay,omitempty"`
}

func (q Query) threshold() (float64, error) {
	if q.Threshold == nil {
		return 0, fmt.Errorf("%s requires a threshold (--threshold)", q.Kind)
	}
	return *q.Threshold, nil
}

func (q Query) dateRange() (climate.DateRange, error) {
	if q.Range == "" {
		return climate.DateRange{}, fmt.Errorf("%s requires a date range in M/D-M/D form", q.Kind)
	}
	return climate.ParseDateRange(q.Range)
}

// runQuery validates q (already defaulted) and runs it against a.
func runQuery(a *climate.Analyzer, q Query) (*outcome, error) {
	out := &outcome{Query: q}
	if q.Kind == "info" {
		sum := a.Series().Summary()
		out.Result = sum
		out.render = func(t *report.Text) error { return t.WriteSummary(sum) }
		return out, nil
	}

	metric, err := climate.ParseMetric(q.Metric)
	if err != nil {
		return nil, err
	}
	switch q.Kind {
	case "streak":
		thr, err := q.threshold()
		if err != nil {
			return nil, err
		}
		dir, err := climate.ParseDirection(q.Direction)
		if err != nil {
			return nil, err
		}
		streaks, err := a.FindStreaks(metric, thr, dir, q.Top)
		if err != nil {
			return nil, err
		}
		out.Result = streaks
		out.render = func(t *report.Text) error { return t.WriteStreaks(metric, thr, dir, streaks) }

	case "period":
		ext, err := climate.ParseExtreme(q.Extreme)
		if err != nil {
			return nil, err
		}
		periods, err := a.FindExtremePeriods(metric, q.Days, ext, q.Top)
		if err != nil {
			return nil, err
		}
		out.Result = periods
		out.render = func(t *report.Text) error { return t.WritePeriods(metric, q.Days, ext, periods) }

	case "season":
		season, err := climate.ParseSeason(q.Season)
		if err != nil {
			return nil, err
		}
		ext, err := climate.ParseExtreme(q.Extreme)
		if err != nil {
			return nil, err
		}
		seasons, err := a.FindExtremeSeasons(season, metric, ext, q.Top)
		if err != nil {
			return nil, err
		}
		out.Result = seasons
		out.render = func(t *report.Text) error { return t.WriteSeasons(season, metric, ext, seasons) }

	case "range":
		rng, err := q.dateRange()
		if err != nil {
			return nil, err
		}
		ext, err := climate.ParseExtreme(q.Extreme)
		if err != nil {
			return nil, err
		}
		ranges, err := a.FindExtremeDateRange(rng, metric, ext, q.Top)
		if err != nil {
			return nil, err
		}
		out.Result = ranges
		out.render = func(t *report.Text) error { return t.WriteDateRanges(rng, metric, ext, ranges) }

	case "histogram":
		rng, err := q.dateRange()
		if err != nil {
			return nil, err
		}
		thr, err := q.threshold()
		if err != nil {
			return nil, err
		}
		dir, err := climate.ParseDirection(q.Direction)
		if err != nil {
			return nil, err
		}
		h, err := a.ThresholdHistogram(rng, metric, thr, dir)
		if err != nil {
			return nil, err
		}
		out.Result = h
		out.render = func(t *report.Text) error { return t.WriteHistogram(h) }

	case "frequency":
		thr, err := q.threshold()
		if err != nil {
			return nil, err
		}
		dir, err := climate.ParseDirection(q.Direction)
		if err != nil {
			return nil, err
		}
		ft, err := a.EventFrequency(metric, thr, dir)
		if err != nil {
			return nil, err
		}
		out.Result = ft
		out.render = func(t *report.Text) error { return t.WriteFrequency(ft) }

	case "freeze":
		thr, err := q.threshold()
		if err != nil {
			return nil, err
		}
		recs, err := a.FreezeDates(metric, thr)
		if err != nil {
			return nil, err
		}
		res := freezeResult{Records: recs, Summary: climate.SummarizeFreezes(recs)}
		out.Result = res
		out.render = func(t *report.Text) error { return t.WriteFreezes(metric, thr, res.Records, res.Summary) }

	case "heatmap":
		mode, err := climate.ParseHeatmapMode(q.Mode)
		if err != nil {
			return nil, err
		}
		h, err := a.Heatmap(metric, mode)
		if err != nil {
			return nil, err
		}
		out.Result = h
		out.render = func(t *report.Text) error { return t.WriteHeatmap(h) }

	case "records":
		var rng *climate.DateRange
		if q.Range != "" {
			r, err := climate.ParseDateRange(q.Range)
			if err != nil {
				return nil, err
			}
			rng = &r
		}
		recs, err := a.DailyRecords(metric, rng)
		if err != nil {
			return nil, err
		}
		res := recordsResult{Records: recs}
		if q.Year != 0 {
			res.Year = q.Year
			res.Overlay, err = a.YearOverlay(q.Year, metric, rng)
			if err != nil {
				return nil, err
			}
			if res.Overlay == nil {
				res.Overlay = []climate.OverlayPoint{}
			}
		}
		out.Result = res
		out.render = func(t *report.Text) error {
			return t.WriteDailyRecords(metric, rng, res.Records, res.Year, res.Overlay)
		}

	default:
		return nil, fmt.Errorf("unknown query kind: %q (use %s)", q.Kind, strings.Join(queryKinds, ", "))
	}
	return out, nil
}
