package calculator

import (
	"fmt"
	"math"

	"StockPulse/internal/model"
)

// DaysPerYear is the average calendar-year length used for annualizing.
const DaysPerYear = 365.25

// TotalReturn is the percent change from first to last.
func TotalReturn(first, last float64) float64 {
	return (last - first) / first * 100
}

// AnnualizedReturn compounds the first-to-last growth over daysElapsed
// calendar days into a yearly percent rate.
func AnnualizedReturn(first, last, daysElapsed float64) (float64, error) {
	if daysElapsed <= 0 {
		return 0, fmt.Errorf("%w: series spans %.2f days", model.ErrInsufficientData, daysElapsed)
	}
	return (math.Pow(last/first, DaysPerYear/daysElapsed) - 1) * 100, nil
}
