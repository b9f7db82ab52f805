package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"StockPulse/internal/model"
)

// FinanceGoFetcher implements Fetcher with the piquette/finance-go chart client.
type FinanceGoFetcher struct{}

func NewFinanceGoFetcher() *FinanceGoFetcher { return &FinanceGoFetcher{} }

func (f *FinanceGoFetcher) Name() string { return "finance-go" }

type chartResult struct {
	bars []model.OHLCV
	err  error
}

// FetchHistory runs the blocking chart iterator in its own goroutine so the
// caller's context can abandon it.
func (f *FinanceGoFetcher) FetchHistory(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error) {
	done := make(chan chartResult, 1)
	go func() {
		bars, err := f.iterate(symbol, start, end)
		done <- chartResult{bars: bars, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		if len(r.bars) == 0 {
			return nil, fmt.Errorf("finance-go: %s: %w", symbol, model.ErrNoDataAvailable)
		}
		return clipBars(normalizeBars(r.bars), start, end), nil
	}
}

func (f *FinanceGoFetcher) iterate(symbol string, start, end time.Time) ([]model.OHLCV, error) {
	until := end.AddDate(0, 0, 1)
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&until),
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	var bars []model.OHLCV
	for iter.Next() {
		b := iter.Bar()
		bar := model.OHLCV{
			Time:   time.Unix(int64(b.Timestamp), 0).UTC(),
			Open:   b.Open.InexactFloat64(),
			High:   b.High.InexactFloat64(),
			Low:    b.Low.InexactFloat64(),
			Close:  b.Close.InexactFloat64(),
			Volume: int64(b.Volume),
		}
		if bar.Open <= 0 || bar.Close <= 0 {
			continue
		}
		bars = append(bars, bar)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("finance-go chart %s: %w", symbol, err)
	}
	return bars, nil
}
