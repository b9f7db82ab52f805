package collector

import (
	"context"
	"sort"
	"time"

	"StockPulse/internal/calendar"
	"StockPulse/internal/model"
)

// Fetcher retrieves daily bars for an inclusive date range. An empty result
// may be reported either as no bars or as an error wrapping
// model.ErrNoDataAvailable.
type Fetcher interface {
	FetchHistory(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error)
	Name() string
}

// normalizeBars truncates bar times to their date, sorts them and keeps the
// last bar seen for any given day.
func normalizeBars(bars []model.OHLCV) []model.OHLCV {
	for i := range bars {
		bars[i].Time = calendar.Day(bars[i].Time)
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && out[n-1].Time.Equal(b.Time) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

// clipBars drops bars outside [start, end].
func clipBars(bars []model.OHLCV, start, end time.Time) []model.OHLCV {
	start, end = calendar.Day(start), calendar.Day(end)
	out := bars[:0]
	for _, b := range bars {
		if b.Time.Before(start) || b.Time.After(end) {
			continue
		}
		out = append(out, b)
	}
	return out
}
