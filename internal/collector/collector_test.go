package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockPulse/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// wednesday is the fixed "today" for range tests.
var wednesday = day(2024, 3, 13)

func TestResolveRange(t *testing.T) {
	tests := []struct {
		preset model.DatePreset
		start  time.Time
	}{
		{model.PresetLastDay, day(2024, 3, 12)},
		{model.PresetLastWeek, day(2024, 3, 6)},
		{model.PresetLastMonth, day(2024, 2, 13)},
		{model.PresetLastYear, day(2023, 3, 13)},
	}
	for _, tt := range tests {
		r, err := ResolveRange(tt.preset, wednesday.Add(15*time.Hour), time.Time{}, time.Time{})
		if err != nil {
			t.Fatalf("%s: %v", tt.preset, err)
		}
		if !r.Start.Equal(tt.start) || !r.End.Equal(wednesday) {
			t.Errorf("%s: got %s, want %s → %s", tt.preset, r, tt.start.Format("2006-01-02"), wednesday.Format("2006-01-02"))
		}
	}

	r, err := ResolveRange(model.PresetCustom, wednesday, day(2024, 1, 2), day(2024, 2, 1))
	if err != nil || !r.Start.Equal(day(2024, 1, 2)) || !r.End.Equal(day(2024, 2, 1)) {
		t.Errorf("custom: got %s, %v", r, err)
	}
	if _, err := ResolveRange(model.PresetCustom, wednesday, day(2024, 3, 1), day(2024, 2, 1)); !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Errorf("custom start after end: expected ErrInvalidConfiguration, got %v", err)
	}
	if _, err := ResolveRange("last_decade", wednesday, time.Time{}, time.Time{}); !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Errorf("unknown preset: expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestLoader_LastDayExhaustsRetries(t *testing.T) {
	mock := &MockFetcher{EmptyCalls: 100}
	l := &Loader{Fetcher: mock, MaxRetries: 3}
	rng := model.DateRange{Start: day(2024, 3, 12), End: wednesday}

	_, _, err := l.Load(context.Background(), "AAPL", model.PresetLastDay, rng)
	if !errors.Is(err, model.ErrNoDataAvailable) {
		t.Fatalf("expected ErrNoDataAvailable, got %v", err)
	}
	if n := mock.CallCount(); n != 4 {
		t.Fatalf("expected 1 attempt + 3 retries, got %d calls", n)
	}
	want := []model.DateRange{
		{Start: day(2024, 3, 12), End: day(2024, 3, 13)},
		{Start: day(2024, 3, 11), End: day(2024, 3, 12)},
		{Start: day(2024, 3, 8), End: day(2024, 3, 11)},
		{Start: day(2024, 3, 7), End: day(2024, 3, 8)},
	}
	for i, w := range want {
		got := mock.Calls[i]
		if !got.Start.Equal(w.Start) || !got.End.Equal(w.End) {
			t.Errorf("call %d: got %s, want %s", i, got, w)
		}
	}
}

func TestLoader_OtherPresetsOnlyShiftEnd(t *testing.T) {
	mock := &MockFetcher{EmptyCalls: 2, Bars: GenerateMockBars(100, wednesday, 30)}
	l := &Loader{Fetcher: mock, MaxRetries: 3}
	rng := model.DateRange{Start: day(2024, 2, 13), End: day(2024, 3, 11)} // Monday

	series, resolved, err := l.Load(context.Background(), "AAPL", model.PresetLastMonth, rng)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !resolved.Start.Equal(rng.Start) {
		t.Errorf("start moved to %s", resolved.Start.Format("2006-01-02"))
	}
	if want := day(2024, 3, 7); !resolved.End.Equal(want) {
		t.Errorf("end = %s, want %s (two business days back)", resolved.End.Format("2006-01-02"), want.Format("2006-01-02"))
	}
	if series.Len() == 0 || series.Last().Time.After(resolved.End) {
		t.Errorf("series not clipped to resolved range: %d bars, last %s", series.Len(), series.Last().Time)
	}
}

func TestLoader_ErrorsAreRetriedThenSurfaced(t *testing.T) {
	boom := errors.New("connection reset")
	mock := &MockFetcher{Err: boom}
	l := &Loader{Fetcher: mock, MaxRetries: 2}
	_, _, err := l.Load(context.Background(), "AAPL", model.PresetLastYear,
		model.DateRange{Start: day(2023, 3, 13), End: wednesday})
	if !errors.Is(err, model.ErrNoDataAvailable) || !errors.Is(err, boom) {
		t.Errorf("expected ErrNoDataAvailable wrapping the cause, got %v", err)
	}
	if n := mock.CallCount(); n != 3 {
		t.Errorf("expected 3 calls, got %d", n)
	}
}

func TestLoader_StopsWhenRangeCollapses(t *testing.T) {
	mock := &MockFetcher{EmptyCalls: 100}
	l := &Loader{Fetcher: mock, MaxRetries: 10}
	_, _, err := l.Load(context.Background(), "AAPL", model.PresetCustom,
		model.DateRange{Start: day(2024, 3, 12), End: wednesday})
	if !errors.Is(err, model.ErrNoDataAvailable) {
		t.Fatalf("expected ErrNoDataAvailable, got %v", err)
	}
	if n := mock.CallCount(); n != 2 {
		t.Errorf("expected 2 calls before start passes end, got %d", n)
	}
}

func TestLoader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mock := &MockFetcher{}
	l := &Loader{Fetcher: mock, MaxRetries: 3}
	_, _, err := l.Load(ctx, "AAPL", model.PresetLastDay, model.DateRange{Start: day(2024, 3, 12), End: wednesday})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if n := mock.CallCount(); n != 0 {
		t.Errorf("expected no fetch on a cancelled context, got %d", n)
	}
}

type stallFetcher struct{ calls int }

func (s *stallFetcher) Name() string { return "stall" }

func (s *stallFetcher) FetchHistory(ctx context.Context, _ string, _, _ time.Time) ([]model.OHLCV, error) {
	s.calls++
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestLoader_PerFetchTimeout(t *testing.T) {
	f := &stallFetcher{}
	l := &Loader{Fetcher: f, MaxRetries: 1, Timeout: 10 * time.Millisecond}
	_, _, err := l.Load(context.Background(), "AAPL", model.PresetLastWeek,
		model.DateRange{Start: day(2024, 3, 6), End: wednesday})
	if !errors.Is(err, model.ErrNoDataAvailable) || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected ErrNoDataAvailable wrapping DeadlineExceeded, got %v", err)
	}
	if f.calls != 2 {
		t.Errorf("expected the timed-out fetch to be retried once, got %d calls", f.calls)
	}
}

func TestCollector_Collect(t *testing.T) {
	mock := &MockFetcher{Bars: GenerateMockBars(4000, wednesday, 300)}
	c := NewCollector(mock, 3, time.Second)
	c.Now = func() time.Time { return wednesday }

	cfg := model.AnalyticsConfig{
		Ticker:            " spx ",
		Investment:        1000,
		WindowSize:        20,
		MAType:            model.SMA,
		ProjectionHorizon: 5,
		Preset:            model.PresetLastYear,
	}
	rep, err := c.Collect(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if rep.Symbol != "^GSPC" {
		t.Errorf("symbol = %q, want ^GSPC", rep.Symbol)
	}
	if rep.Series.Len() == 0 || rep.Series.First().Time.Before(rep.Requested.Start) {
		t.Errorf("series not limited to the requested year: %d bars", rep.Series.Len())
	}
	trend, ok := rep.Result.Metrics.Get(model.MetricTrend)
	if !ok || !trend.Defined() {
		t.Errorf("trend missing or undefined: %+v", trend)
	}
	if len(rep.Result.Projection.Rows) != 5 {
		t.Errorf("expected 5 projection rows, got %d", len(rep.Result.Projection.Rows))
	}
}

func TestCollector_InvalidConfigSkipsFetch(t *testing.T) {
	mock := &MockFetcher{Bars: GenerateMockBars(100, wednesday, 50)}
	c := NewCollector(mock, 3, 0)
	bad := []model.AnalyticsConfig{
		{Ticker: "AAPL", Investment: 1000, WindowSize: 0, MAType: model.SMA, Preset: model.PresetLastYear},
		{Ticker: "AAPL", Investment: 0, WindowSize: 20, MAType: model.SMA, Preset: model.PresetLastYear},
		{Ticker: "", Investment: 1000, WindowSize: 20, MAType: model.SMA, Preset: model.PresetLastYear},
		{Ticker: "AAPL", Investment: 1000, WindowSize: 20, MAType: model.SMA, Preset: model.PresetCustom,
			CustomStart: day(2024, 3, 1), CustomEnd: day(2024, 2, 1)},
	}
	for i, cfg := range bad {
		if _, err := c.Collect(context.Background(), cfg); !errors.Is(err, model.ErrInvalidConfiguration) {
			t.Errorf("config %d: expected ErrInvalidConfiguration, got %v", i, err)
		}
	}
	if n := mock.CallCount(); n != 0 {
		t.Errorf("expected no fetches, got %d", n)
	}
}

func TestNormalizeSymbol(t *testing.T) {
	tests := map[string]string{
		"aapl":    "AAPL",
		"  msft ": "MSFT",
		"sp500":   "^GSPC",
		"^GSPC":   "^GSPC",
	}
	for in, want := range tests {
		if got := NormalizeSymbol(in); got != want {
			t.Errorf("NormalizeSymbol(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateMockBars(t *testing.T) {
	bars := GenerateMockBars(100, day(2024, 3, 16), 10) // Saturday
	if len(bars) != 10 {
		t.Fatalf("expected 10 bars, got %d", len(bars))
	}
	if !bars[9].Time.Equal(day(2024, 3, 15)) {
		t.Errorf("last bar on %s, want the preceding Friday", bars[9].Time.Format("Mon 2006-01-02"))
	}
	s := &model.Series{Bars: bars}
	if err := s.Validate(); err != nil {
		t.Errorf("generated bars invalid: %v", err)
	}
}

func TestNewFetcher(t *testing.T) {
	for provider, want := range map[string]string{
		"":           "yahoo",
		"yahoo":      "yahoo",
		"finance-go": "finance-go",
		"mock":       "mock",
	} {
		f, err := NewFetcher(provider, "", "", "")
		if err != nil {
			t.Fatalf("NewFetcher(%q): %v", provider, err)
		}
		if f.Name() != want {
			t.Errorf("NewFetcher(%q).Name() = %q, want %q", provider, f.Name(), want)
		}
	}
	if _, err := NewFetcher("rest", "", "", ""); !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Errorf("rest without base url: err = %v, want ErrInvalidConfiguration", err)
	}
	if _, err := NewFetcher("bloomberg", "", "", ""); !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Errorf("unknown provider: err = %v, want ErrInvalidConfiguration", err)
	}
}
