package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"StockPulse/internal/calendar"
	"StockPulse/internal/model"
)

// DefaultMaxRetries bounds how many times an empty range is shifted back.
const DefaultMaxRetries = 3

// ResolveRange turns a preset into concrete dates relative to now.
func ResolveRange(preset model.DatePreset, now, customStart, customEnd time.Time) (model.DateRange, error) {
	end := calendar.Day(now)
	switch preset {
	case model.PresetLastDay:
		return model.DateRange{Start: calendar.PrevBusinessDay(end), End: end}, nil
	case model.PresetLastWeek:
		return model.DateRange{Start: end.AddDate(0, 0, -7), End: end}, nil
	case model.PresetLastMonth:
		return model.DateRange{Start: end.AddDate(0, -1, 0), End: end}, nil
	case model.PresetLastYear:
		return model.DateRange{Start: end.AddDate(-1, 0, 0), End: end}, nil
	case model.PresetCustom:
		if customStart.IsZero() || customEnd.IsZero() {
			return model.DateRange{}, fmt.Errorf("%w: custom range needs both dates", model.ErrInvalidConfiguration)
		}
		r := model.DateRange{Start: calendar.Day(customStart), End: calendar.Day(customEnd)}
		if r.Start.After(r.End) {
			return model.DateRange{}, fmt.Errorf("%w: start %s is after end %s",
				model.ErrInvalidConfiguration, r.Start.Format(model.DateFormat), r.End.Format(model.DateFormat))
		}
		return r, nil
	}
	return model.DateRange{}, fmt.Errorf("%w: unknown date range preset %q", model.ErrInvalidConfiguration, preset)
}

// Loader fetches a series, stepping the range back a business day at a time
// while the source has nothing for it.
type Loader struct {
	Fetcher    Fetcher
	MaxRetries int
	// Timeout bounds each individual fetch; zero means no extra bound.
	Timeout time.Duration
}

// Load tries rng first and then up to MaxRetries earlier ranges. Every retry
// moves End back one business day; for PresetLastDay Start moves too. The
// range actually served is returned alongside the series.
func (l *Loader) Load(ctx context.Context, symbol string, preset model.DatePreset, rng model.DateRange) (*model.Series, model.DateRange, error) {
	retries := l.MaxRetries
	if retries < 0 {
		retries = 0
	}

	var lastErr error
	attempts := 0
	for attempts <= retries {
		if err := ctx.Err(); err != nil {
			return nil, rng, err
		}
		attempts++

		bars, err := l.fetch(ctx, symbol, rng)
		if err == nil && len(bars) > 0 {
			series := &model.Series{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}
			return series, rng, nil
		}
		if err == nil {
			err = model.ErrNoDataAvailable
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, rng, ctxErr
		}
		lastErr = err

		if attempts > retries {
			break
		}
		next := shiftBack(preset, rng)
		if next.Start.After(next.End) {
			break
		}
		log.Printf("[WARN] %s: no bars for %s via %s (attempt %d/%d): %v, retrying with %s",
			symbol, rng, l.Fetcher.Name(), attempts, retries+1, err, next)
		rng = next
	}
	return nil, rng, fmt.Errorf("%w: %s after %d attempt(s), last range %s: %w",
		model.ErrNoDataAvailable, symbol, attempts, rng, lastErr)
}

func (l *Loader) fetch(ctx context.Context, symbol string, rng model.DateRange) ([]model.OHLCV, error) {
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}
	bars, err := l.Fetcher.FetchHistory(ctx, symbol, rng.Start, rng.End)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("fetch %s timed out after %v: %w", symbol, l.Timeout, err)
	}
	return bars, err
}

func shiftBack(preset model.DatePreset, rng model.DateRange) model.DateRange {
	next := model.DateRange{Start: rng.Start, End: calendar.PrevBusinessDay(rng.End)}
	if preset == model.PresetLastDay {
		next.Start = calendar.PrevBusinessDay(rng.Start)
	}
	return next
}
