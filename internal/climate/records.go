package climate

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
)

// HeatmapCell is the mean of one (year, month). Value is Mean in absolute mode
// and Mean - Normal in anomaly mode.
type HeatmapCell struct {
	Year   int     `json:"year" yaml:"year"`
	Month  int     `json:"month" yaml:"month"`
	Days   int     `json:"days" yaml:"days"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Normal float64 `json:"normal" yaml:"normal"`
	Value  float64 `json:"value" yaml:"value"`
}

// MonthNormal is the long-term mean of a calendar month: the mean of that
// month's cell means over every year that has data for it.
type MonthNormal struct {
	Month int     `json:"month" yaml:"month"`
	Mean  float64 `json:"mean" yaml:"mean"`
	Years int     `json:"years" yaml:"years"`
}

// Heatmap is the year x month pivot of a metric.
type Heatmap struct {
	Metric  Metric        `json:"metric" yaml:"metric"`
	Mode    HeatmapMode   `json:"mode" yaml:"mode"`
	Years   []int         `json:"years" yaml:"years"`
	Cells   []HeatmapCell `json:"cells" yaml:"cells"`
	Normals []MonthNormal `json:"normals" yaml:"normals"`
}

// Cell looks up a (year, month) cell.
func (h *Heatmap) Cell(year, month int) (HeatmapCell, bool) {
	i := sort.Search(len(h.Cells), func(i int) bool {
		c := h.Cells[i]
		return c.Year > year || (c.Year == year && c.Month >= month)
	})
	if i < len(h.Cells) && h.Cells[i].Year == year && h.Cells[i].Month == month {
		return h.Cells[i], true
	}
	return HeatmapCell{}, false
}

// Heatmap pivots the series into monthly means per year. Cells without any
// valid value are omitted and do not contribute to the monthly normals.
func (a *Analyzer) Heatmap(metric Metric, mode HeatmapMode) (*Heatmap, error) {
	if err := metric.validate(); err != nil {
		return nil, err
	}
	if err := mode.validate(); err != nil {
		return nil, err
	}

	type ym struct{ y, m int }
	accs := map[ym]*agg{}
	var keys []ym
	s := a.series
	for i, d := range s.days {
		v := s.Value(i, metric)
		if math.IsNaN(v) {
			continue
		}
		k := ym{d.Date.Year(), int(d.Date.Month())}
		g := accs[k]
		if g == nil {
			ng := newAgg()
			g = &ng
			accs[k] = g
			keys = append(keys, k)
		}
		g.add(v)
	}

	var normals [12]agg
	h := &Heatmap{Metric: metric, Mode: mode}
	for _, k := range keys {
		h.Cells = append(h.Cells, HeatmapCell{Year: k.y, Month: k.m, Days: accs[k].n, Mean: accs[k].mean()})
		normals[k.m-1].add(accs[k].mean())
		if len(h.Years) == 0 || h.Years[len(h.Years)-1] != k.y {
			h.Years = append(h.Years, k.y)
		}
	}
	for m := range normals {
		if normals[m].n > 0 {
			h.Normals = append(h.Normals, MonthNormal{Month: m + 1, Mean: normals[m].mean(), Years: normals[m].n})
		}
	}
	for i := range h.Cells {
		c := &h.Cells[i]
		c.Normal = normals[c.Month-1].mean()
		c.Value = c.Mean
		if mode == Anomaly {
			c.Value = c.Mean - c.Normal
		}
	}
	a.log.Debug("heatmap built", zap.Int("cells", len(h.Cells)), zap.String("mode", string(mode)))
	return h, nil
}

// DailyRecord is the all-years envelope of one day-of-year slot.
type DailyRecord struct {
	DayOfYear int     `json:"day_of_year" yaml:"day_of_year"`
	Month     int     `json:"month" yaml:"month"`
	Day       int     `json:"day" yaml:"day"`
	Max       float64 `json:"max" yaml:"max"`
	MaxYear   int     `json:"max_year" yaml:"max_year"`
	Min       float64 `json:"min" yaml:"min"`
	MinYear   int     `json:"min_year" yaml:"min_year"`
	Mean      float64 `json:"mean" yaml:"mean"`
	Count     int     `json:"count" yaml:"count"`
}

// DailyRecords computes the record high, record low and mean of metric for
// every day-of-year slot, across all years. Feb 29 observations count toward
// the Feb 28 slot. With rng set, only slots inside it are returned, ordered
// along the window (a Dec 1 - Feb 28 range lists December first). On ties the
// earliest year keeps the record.
func (a *Analyzer) DailyRecords(metric Metric, rng *DateRange) ([]DailyRecord, error) {
	if err := metric.validate(); err != nil {
		return nil, err
	}
	slots := fullAxis()
	if rng != nil {
		if err := rng.Validate(); err != nil {
			return nil, err
		}
		slots = rng.axisSlots()
	}

	var recs [DaysInAxis + 1]DailyRecord
	var accs [DaysInAxis + 1]agg
	for i := range accs {
		accs[i] = newAgg()
	}
	s := a.series
	for i, d := range s.days {
		v := s.Value(i, metric)
		if math.IsNaN(v) {
			continue
		}
		doy := DayOfYear(d.Date)
		r := &recs[doy]
		if v > accs[doy].max {
			r.MaxYear = d.Date.Year()
		}
		if v < accs[doy].min {
			r.MinYear = d.Date.Year()
		}
		accs[doy].add(v)
	}

	out := make([]DailyRecord, 0, len(slots))
	for _, doy := range slots {
		g := accs[doy]
		if g.n == 0 {
			continue
		}
		md := AxisMonthDay(doy)
		r := recs[doy]
		r.DayOfYear, r.Month, r.Day = doy, md.Month, md.Day
		r.Max, r.Min, r.Mean, r.Count = g.max, g.min, g.mean(), g.n
		out = append(out, r)
	}
	a.log.Debug("daily records", zap.String("metric", string(metric)), zap.Int("slots", len(out)))
	return out, nil
}

func fullAxis() []int {
	out := make([]int, DaysInAxis)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// OverlayPoint is one observed day of a single year on the day-of-year axis.
type OverlayPoint struct {
	DayOfYear int       `json:"day_of_year" yaml:"day_of_year"`
	Date      time.Time `json:"date" yaml:"date"`
	Value     float64   `json:"value" yaml:"value"`
}

// YearOverlay extracts year's observed values aligned with DailyRecords. For
// a year-spanning rng, year is the year the window starts in. Missing days are
// left out, and Feb 29 is skipped because its slot belongs to Feb 28.
func (a *Analyzer) YearOverlay(year int, metric Metric, rng *DateRange) ([]OverlayPoint, error) {
	if err := metric.validate(); err != nil {
		return nil, err
	}
	if rng != nil {
		if err := rng.Validate(); err != nil {
			return nil, err
		}
	}

	var out []OverlayPoint
	s := a.series
	for i, d := range s.days {
		if d.Date.Month() == time.February && d.Date.Day() == 29 {
			continue
		}
		if rng != nil {
			if !rng.Contains(d.Date) || rng.InstanceYear(d.Date) != year {
				continue
			}
		} else if d.Date.Year() != year {
			continue
		}
		v := s.Value(i, metric)
		if math.IsNaN(v) {
			continue
		}
		out = append(out, OverlayPoint{DayOfYear: DayOfYear(d.Date), Date: d.Date, Value: v})
	}
	return out, nil
}
