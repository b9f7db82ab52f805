package calculator

import (
	"errors"
	"math"
	"sort"

	"github.com/markcheno/go-talib"

	"StockPulse/internal/model"
)

// PercentChange returns the percent change of the last value versus the value
// lag positions earlier. It needs at least lag+1 values.
func PercentChange(values []float64, lag int) (float64, error) {
	if lag <= 0 {
		return 0, errors.New("lag must be positive")
	}
	if len(values) < lag+1 {
		return 0, model.ErrInsufficientData
	}
	roc := talib.Roc(values, lag)
	return roc[len(roc)-1], nil
}

// PercentReturns returns the one-step percent changes of values, so the
// result is one shorter than the input.
func PercentReturns(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	return talib.Roc(values, 1)[1:]
}

// Mean returns the arithmetic mean. Empty input yields an error.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, model.ErrInsufficientData
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// SampleStdDev uses the n-1 denominator. It needs at least two values.
func SampleStdDev(values []float64) (float64, error) {
	if len(values) < 2 {
		return 0, model.ErrInsufficientData
	}
	mean, _ := Mean(values)
	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1)), nil
}

// Median returns the middle value, or the mean of the two middle values.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, model.ErrInsufficientData
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}
	return (sorted[mid-1] + sorted[mid]) / 2, nil
}

// MinMax scans values for the smallest and largest entries.
func MinMax(values []float64) (lo, hi float64, err error) {
	if len(values) == 0 {
		return 0, 0, model.ErrInsufficientData
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, nil
}

// Tail returns the last n values, or nil with ErrInsufficientData if there are fewer.
func Tail(values []float64, n int) ([]float64, error) {
	if n <= 0 || len(values) < n {
		return nil, model.ErrInsufficientData
	}
	return values[len(values)-n:], nil
}
