package climate

import (
	"math"

	"go.uber.org/zap"
)

// DefaultTrendEpsilon is the slope magnitude (events/year per year) below
// which a frequency trend is reported as stable.
const DefaultTrendEpsilon = 0.01

// Analyzer runs analyses over one immutable Series. Every method is a pure
// function of the series and its arguments, so an Analyzer may be shared
// between goroutines.
type Analyzer struct {
	series       *Series
	log          *zap.Logger
	trendEpsilon float64
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger routes debug output of the engine to l.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.log = l
		}
	}
}

// WithTrendEpsilon overrides DefaultTrendEpsilon. Non-positive values are ignored.
func WithTrendEpsilon(eps float64) Option {
	return func(a *Analyzer) {
		if eps > 0 {
			a.trendEpsilon = eps
		}
	}
}

// NewAnalyzer wraps s. A nil series is treated as empty.
func NewAnalyzer(s *Series, opts ...Option) *Analyzer {
	if s == nil {
		s = &Series{}
	}
	a := &Analyzer{series: s, log: zap.NewNop(), trendEpsilon: DefaultTrendEpsilon}
	for _, o := range opts {
		o(a)
	}
	sum := s.Summary()
	a.log.Debug("series loaded",
		zap.String("name", sum.Name),
		zap.Int("records", sum.Records),
		zap.Time("first", sum.First),
		zap.Time("last", sum.Last),
		zap.Int("gaps", sum.CalendarGaps),
		zap.Int("derived_tavg", sum.DerivedTAvg),
	)
	return a
}

// Series returns the analyzed series.
func (a *Analyzer) Series() *Series { return a.series }

// agg accumulates mean/min/max over valid values.
type agg struct {
	n        int
	sum      float64
	min, max float64
}

func newAgg() agg { return agg{min: math.Inf(1), max: math.Inf(-1)} }

func (g *agg) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	g.n++
	g.sum += v
	if v < g.min {
		g.min = v
	}
	if v > g.max {
		g.max = v
	}
}

func (g agg) mean() float64 {
	if g.n == 0 {
		return math.NaN()
	}
	return g.sum / float64(g.n)
}
