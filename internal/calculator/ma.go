package calculator

import (
	"errors"

	"github.com/guregu/null/v6"
	"github.com/markcheno/go-talib"

	"StockPulse/internal/model"
)

var errWindow = errors.New("window must be positive")

// SMA computes the trailing simple moving average of prices. Entries before
// index window-1 have no value.
func SMA(prices []float64, window int) ([]null.Float, error) {
	if window <= 0 {
		return nil, errWindow
	}
	out := make([]null.Float, len(prices))
	if len(prices) < window {
		return out, nil
	}
	raw := talib.Sma(prices, window)
	for i := window - 1; i < len(prices); i++ {
		out[i] = null.FloatFrom(raw[i])
	}
	return out, nil
}

// EMA computes the exponential moving average with alpha = 2/(window+1),
// seeded with the first price. Every entry has a value.
func EMA(prices []float64, window int) ([]null.Float, error) {
	if window <= 0 {
		return nil, errWindow
	}
	out := make([]null.Float, len(prices))
	if len(prices) == 0 {
		return out, nil
	}
	alpha := Alpha(window)
	ema := prices[0]
	out[0] = null.FloatFrom(ema)
	for i := 1; i < len(prices); i++ {
		ema = alpha*prices[i] + (1-alpha)*ema
		out[i] = null.FloatFrom(ema)
	}
	return out, nil
}

// Alpha is the EMA smoothing factor for a window.
func Alpha(window int) float64 {
	return 2.0 / float64(window+1)
}

// MovingAverage dispatches on the configured type.
func MovingAverage(kind model.MAType, prices []float64, window int) ([]null.Float, error) {
	switch kind {
	case model.SMA:
		return SMA(prices, window)
	case model.EMA:
		return EMA(prices, window)
	}
	return nil, errors.New("unknown moving average type " + string(kind))
}

// LastDefined returns up to n of the newest defined values, oldest first.
func LastDefined(values []null.Float, n int) []float64 {
	var out []float64
	for i := len(values) - 1; i >= 0 && len(out) < n; i-- {
		if values[i].Valid {
			out = append(out, values[i].Float64)
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
