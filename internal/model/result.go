package model

import (
	"fmt"
	"time"

	"github.com/guregu/null/v6"
)

// Metric names in the order they appear in a bundle.
const (
	MetricChange1D         = "change_1d"
	MetricChange5D         = "change_5d"
	MetricChange30D        = "change_30d"
	MetricVolatility30D    = "volatility_30d"
	MetricAvgVolume30D     = "avg_volume_30d"
	MetricTotalReturn      = "total_return"
	MetricAnnualizedReturn = "annualized_return"
	MetricTrend            = "trend"
	MetricShares           = "shares"
	MetricFinalValue       = "final_value"
	MetricProfit           = "profit"
	MetricProfitPct        = "profit_pct"
)

// Trend labels.
const (
	TrendBullish = "Bullish"
	TrendBearish = "Bearish"
)

// Metric is one entry of a MetricsBundle. Numeric metrics fill Value,
// categorical ones fill Label. Err is ErrInsufficientData when the series is
// too short for this metric.
type Metric struct {
	Name  string
	Value null.Float
	Label string
	Unit  string
	Err   error
}

// Defined reports whether the metric could be computed.
func (m Metric) Defined() bool { return m.Err == nil }

var metricTitles = map[string]string{
	MetricChange1D:         "1D Change",
	MetricChange5D:         "5D Change",
	MetricChange30D:        "30D Change",
	MetricVolatility30D:    "30D Volatility",
	MetricAvgVolume30D:     "30D Avg Volume",
	MetricTotalReturn:      "Total Return",
	MetricAnnualizedReturn: "Annualized Return",
	MetricTrend:            "Trend",
	MetricShares:           "Shares",
	MetricFinalValue:       "Final Value",
	MetricProfit:           "Profit",
	MetricProfitPct:        "Profit %",
}

// Title is the human-readable metric name.
func (m Metric) Title() string {
	if t, ok := metricTitles[m.Name]; ok {
		return t
	}
	return m.Name
}

// Text renders the value for reports. Undefined metrics read "n/a".
func (m Metric) Text() string {
	switch {
	case !m.Defined():
		return "n/a"
	case m.Label != "":
		return m.Label
	case !m.Value.Valid:
		return "n/a"
	}
	v := m.Value.Float64
	switch m.Unit {
	case "%":
		return fmt.Sprintf("%.2f%%", v)
	case "$":
		return fmt.Sprintf("$%.2f", v)
	}
	if m.Name == MetricShares {
		return fmt.Sprintf("%.4f", v)
	}
	return fmt.Sprintf("%.0f", v)
}

// MetricsBundle is an ordered set of metrics. It is always produced once a
// series is available, even if some entries are undefined.
type MetricsBundle struct {
	Metrics []Metric
}

// Get looks a metric up by name.
func (b *MetricsBundle) Get(name string) (Metric, bool) {
	for _, m := range b.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

func (b *MetricsBundle) add(m Metric) { b.Metrics = append(b.Metrics, m) }

// AddValue appends a numeric metric.
func (b *MetricsBundle) AddValue(name, unit string, v float64) {
	b.add(Metric{Name: name, Unit: unit, Value: null.FloatFrom(v)})
}

// AddLabel appends a categorical metric.
func (b *MetricsBundle) AddLabel(name, label string) {
	b.add(Metric{Name: name, Label: label})
}

// AddUndefined appends a metric that could not be computed.
func (b *MetricsBundle) AddUndefined(name, unit string, err error) {
	b.add(Metric{Name: name, Unit: unit, Err: err})
}

// PriceSummary describes the close prices of a series.
type PriceSummary struct {
	Max    float64
	Min    float64
	Mean   float64
	Median float64
}

// ProjectedPrice is one row of a projection table.
type ProjectedPrice struct {
	Date  time.Time
	Price float64
}

// ProjectionTable holds the moving-average extrapolation. Err is set when the
// series had no defined moving-average value to seed from.
type ProjectionTable struct {
	MAType MAType
	Rows   []ProjectedPrice
	Err    error
}

// Result is everything the engine derives from one series.
type Result struct {
	Metrics    MetricsBundle
	Summary    PriceSummary
	Projection ProjectionTable
	SMA        []null.Float
	EMA        []null.Float
}

// Report bundles a result with the request context for presentation layers.
type Report struct {
	Symbol      string
	Config      AnalyticsConfig
	Requested   DateRange
	Resolved    DateRange
	Series      *Series
	Result      *Result
	GeneratedAt time.Time
}
