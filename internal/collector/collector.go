package collector

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"StockPulse/internal/analytics"
	"StockPulse/internal/calendar"
	"StockPulse/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	mu sync.Mutex

	// Bars is served clipped to the requested range.
	Bars []model.OHLCV
	// Err, when set, is returned by every call.
	Err error
	// EmptyCalls makes the first N calls return no bars.
	EmptyCalls int
	// Calls records every requested range.
	Calls []model.DateRange
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(ctx context.Context, _ string, start, end time.Time) ([]model.OHLCV, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, model.DateRange{Start: start, End: end})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Calls) <= m.EmptyCalls {
		return nil, nil
	}
	bars := append([]model.OHLCV(nil), m.Bars...)
	return clipBars(bars, start, end), nil
}

// CallCount returns how many times FetchHistory ran.
func (m *MockFetcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// GenerateMockBars lays count gently rising bars on business days ending at end.
func GenerateMockBars(basePrice float64, end time.Time, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	day := calendar.Day(end)
	if !calendar.IsBusinessDay(day) {
		day = calendar.PrevBusinessDay(day)
	}
	for i := count - 1; i >= 0; i-- {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   day,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
		day = calendar.PrevBusinessDay(day)
	}
	return bars
}

// Collector orchestrates range resolution, retrieval and analysis.
type Collector struct {
	Loader *Loader
	// Now is the clock used to resolve presets.
	Now func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, maxRetries int, timeout time.Duration) *Collector {
	return &Collector{
		Loader: &Loader{Fetcher: fetcher, MaxRetries: maxRetries, Timeout: timeout},
		Now:    time.Now,
	}
}

// Collect runs one full analysis request. Configuration problems are returned
// before anything is fetched.
func (c *Collector) Collect(ctx context.Context, cfg model.AnalyticsConfig) (*model.Report, error) {
	if err := cfg.ValidateRequest(); err != nil {
		return nil, err
	}
	symbol := NormalizeSymbol(cfg.Ticker)

	requested, err := ResolveRange(cfg.Preset, c.Now(), cfg.CustomStart, cfg.CustomEnd)
	if err != nil {
		return nil, err
	}

	series, resolved, err := c.Loader.Load(ctx, symbol, cfg.Preset, requested)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", symbol, err)
	}
	log.Printf("[INFO] %s: %d bars for %s via %s", symbol, series.Len(), resolved, c.Loader.Fetcher.Name())

	res, err := analytics.Analyze(series, cfg)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", symbol, err)
	}
	for _, m := range res.Metrics.Metrics {
		if !m.Defined() {
			log.Printf("[WARN] %s: %s unavailable: %v", symbol, m.Name, m.Err)
		}
	}
	if res.Projection.Err != nil {
		log.Printf("[WARN] %s: %v", symbol, res.Projection.Err)
	}

	return &model.Report{
		Symbol:      symbol,
		Config:      cfg,
		Requested:   requested,
		Resolved:    resolved,
		Series:      series,
		Result:      res,
		GeneratedAt: c.Now(),
	}, nil
}
