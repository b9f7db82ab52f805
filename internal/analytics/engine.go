// Package analytics derives metrics, a price summary and a short projection
// from a single OHLCV series. Everything here is pure: no I/O, no shared state.
package analytics

import (
	"fmt"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"

	"StockPulse/internal/calculator"
	"StockPulse/internal/calendar"
	"StockPulse/internal/model"
)

// Lookbacks, in bars.
const (
	ChangeShortBars = 5
	ChangeLongBars  = 30
	VolatilityBars  = 30
	VolumeBars      = 30
)

// Analyze validates its inputs and computes the full result. Only bad
// configuration or an unusable series fail the call; metrics that need more
// history are marked ErrInsufficientData inside the bundle.
func Analyze(series *model.Series, cfg model.AnalyticsConfig) (*model.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}

	closes := series.Closes()
	sma, err := calculator.SMA(closes, cfg.WindowSize)
	if err != nil {
		return nil, fmt.Errorf("sma: %w", err)
	}
	ema, err := calculator.EMA(closes, cfg.WindowSize)
	if err != nil {
		return nil, fmt.Errorf("ema: %w", err)
	}
	ma := sma
	if cfg.MAType == model.EMA {
		ma = ema
	}

	res := &model.Result{SMA: sma, EMA: ema}
	res.Metrics = buildMetrics(series, closes, ma, cfg)
	res.Summary = summarize(closes)
	res.Projection = project(series, ma, cfg)
	return res, nil
}

func buildMetrics(series *model.Series, closes []float64, ma []null.Float, cfg model.AnalyticsConfig) model.MetricsBundle {
	var b model.MetricsBundle

	changes := []struct {
		name string
		lag  int
	}{
		{model.MetricChange1D, 1},
		{model.MetricChange5D, ChangeShortBars},
		{model.MetricChange30D, ChangeLongBars},
	}
	for _, c := range changes {
		if v, err := calculator.PercentChange(closes, c.lag); err != nil {
			b.AddUndefined(c.name, "%", insufficient(c.name, c.lag+1, len(closes)))
		} else {
			b.AddValue(c.name, "%", v)
		}
	}

	if v, err := volatility(closes); err != nil {
		b.AddUndefined(model.MetricVolatility30D, "%", insufficient(model.MetricVolatility30D, VolatilityBars+1, len(closes)))
	} else {
		b.AddValue(model.MetricVolatility30D, "%", v)
	}

	if tail, err := calculator.Tail(series.Volumes(), VolumeBars); err != nil {
		b.AddUndefined(model.MetricAvgVolume30D, "", insufficient(model.MetricAvgVolume30D, VolumeBars, len(closes)))
	} else {
		avg, _ := calculator.Mean(tail)
		b.AddValue(model.MetricAvgVolume30D, "", avg)
	}

	first, last := series.First(), series.Last()
	b.AddValue(model.MetricTotalReturn, "%", calculator.TotalReturn(first.Close, last.Close))

	days := calendar.DaysBetween(first.Time, last.Time)
	if v, err := calculator.AnnualizedReturn(first.Close, last.Close, days); err != nil {
		b.AddUndefined(model.MetricAnnualizedReturn, "%", err)
	} else {
		b.AddValue(model.MetricAnnualizedReturn, "%", v)
	}

	if lastMA := ma[len(ma)-1]; !lastMA.Valid {
		b.AddUndefined(model.MetricTrend, "", insufficient(model.MetricTrend, cfg.WindowSize, len(closes)))
	} else {
		b.AddLabel(model.MetricTrend, classifyTrend(last.Close, lastMA.Float64))
	}

	addProfit(&b, first.Open, last.Close, cfg.Investment)
	return b
}

// volatility is the sample stdev of the trailing one-bar percent returns.
func volatility(closes []float64) (float64, error) {
	window, err := calculator.Tail(closes, VolatilityBars+1)
	if err != nil {
		return 0, err
	}
	return calculator.SampleStdDev(calculator.PercentReturns(window))
}

// classifyTrend calls a tie Bearish: the close must be strictly above the average.
func classifyTrend(price, ma float64) string {
	if price > ma {
		return model.TrendBullish
	}
	return model.TrendBearish
}

// addProfit buys at the first open and marks to the last close.
func addProfit(b *model.MetricsBundle, entryOpen, exitClose, investment float64) {
	inv := decimal.NewFromFloat(investment)
	shares := inv.Div(decimal.NewFromFloat(entryOpen))
	final := shares.Mul(decimal.NewFromFloat(exitClose))
	profit := final.Sub(inv)
	pct := profit.Div(inv).Mul(decimal.NewFromInt(100))

	b.AddValue(model.MetricShares, "", shares.InexactFloat64())
	b.AddValue(model.MetricFinalValue, "$", final.InexactFloat64())
	b.AddValue(model.MetricProfit, "$", profit.InexactFloat64())
	b.AddValue(model.MetricProfitPct, "%", pct.InexactFloat64())
}

func summarize(closes []float64) model.PriceSummary {
	lo, hi, _ := calculator.MinMax(closes)
	mean, _ := calculator.Mean(closes)
	median, _ := calculator.Median(closes)
	return model.PriceSummary{Max: hi, Min: lo, Mean: mean, Median: median}
}

func project(series *model.Series, ma []null.Float, cfg model.AnalyticsConfig) model.ProjectionTable {
	table := model.ProjectionTable{MAType: cfg.MAType}
	if cfg.ProjectionHorizon == 0 {
		return table
	}
	seed := calculator.LastDefined(ma, cfg.WindowSize)
	prices, err := calculator.Project(cfg.MAType, seed, cfg.WindowSize, cfg.ProjectionHorizon)
	if err != nil {
		table.Err = fmt.Errorf("projection: %w", err)
		return table
	}
	dates := calendar.BusinessDaysAfter(series.Last().Time, cfg.ProjectionHorizon)
	table.Rows = make([]model.ProjectedPrice, len(prices))
	for i := range prices {
		table.Rows[i] = model.ProjectedPrice{Date: dates[i], Price: prices[i]}
	}
	return table
}

func insufficient(metric string, need, have int) error {
	return fmt.Errorf("%w: %s needs %d bars, have %d", model.ErrInsufficientData, metric, need, have)
}
