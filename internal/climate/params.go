package climate

import (
	"math"
	"strings"
)

// Metric selects one of the daily temperature columns.
type Metric string

const (
	TMax Metric = "TMAX"
	TMin Metric = "TMIN"
	TAvg Metric = "TAVG"
)

// ParseMetric accepts TMAX, TMIN or TAVG in any case.
func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.ToUpper(strings.TrimSpace(s)))
	if err := m.validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m Metric) validate() error {
	switch m {
	case TMax, TMin, TAvg:
		return nil
	}
	return invalidParam("metric", string(m), "use TMAX, TMIN or TAVG")
}

// Direction tells whether a threshold is crossed from above or below.
// Both directions are inclusive of the threshold itself.
type Direction string

const (
	Above Direction = "above"
	Below Direction = "below"
)

func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if err := d.validate(); err != nil {
		return "", err
	}
	return d, nil
}

func (d Direction) validate() error {
	switch d {
	case Above, Below:
		return nil
	}
	return invalidParam("direction", string(d), "use above or below")
}

// Meets reports whether v satisfies the threshold condition. NaN never does.
func (d Direction) Meets(v, threshold float64) bool {
	if math.IsNaN(v) {
		return false
	}
	if d == Above {
		return v >= threshold
	}
	return v <= threshold
}

// Symbol is the comparison operator used in report headings.
func (d Direction) Symbol() string {
	if d == Above {
		return ">="
	}
	return "<="
}

// Extreme picks the ranking order of aggregated results.
type Extreme string

const (
	Coldest Extreme = "coldest"
	Warmest Extreme = "warmest"
)

func ParseExtreme(s string) (Extreme, error) {
	e := Extreme(strings.ToLower(strings.TrimSpace(s)))
	if err := e.validate(); err != nil {
		return "", err
	}
	return e, nil
}

func (e Extreme) validate() error {
	switch e {
	case Coldest, Warmest:
		return nil
	}
	return invalidParam("extreme", string(e), "use coldest or warmest")
}

// better reports whether mean a ranks ahead of mean b.
func (e Extreme) better(a, b float64) bool {
	if e == Coldest {
		return a < b
	}
	return a > b
}

// HeatmapMode selects absolute means or departures from the monthly normal.
type HeatmapMode string

const (
	Absolute HeatmapMode = "absolute"
	Anomaly  HeatmapMode = "anomaly"
)

func ParseHeatmapMode(s string) (HeatmapMode, error) {
	m := HeatmapMode(strings.ToLower(strings.TrimSpace(s)))
	if err := m.validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m HeatmapMode) validate() error {
	switch m {
	case Absolute, Anomaly:
		return nil
	}
	return invalidParam("mode", string(m), "use absolute or anomaly")
}

func validateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return invalidParam("threshold", threshold, "must be a finite number")
	}
	return nil
}

func validateTopN(n int) error {
	if n < 1 {
		return invalidParam("top_n", n, "must be at least 1")
	}
	return nil
}
