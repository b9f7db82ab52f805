package model

import (
	"fmt"
	"time"
)

// OHLCV represents a single daily bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Series holds an ordered run of bars for one symbol.
type Series struct {
	Symbol    string
	Bars      []OHLCV
	FetchedAt time.Time
}

// Len returns the number of bars.
func (s *Series) Len() int { return len(s.Bars) }

// Closes extracts the close prices in order.
func (s *Series) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Volumes extracts the volumes in order as floats.
func (s *Series) Volumes() []float64 {
	vols := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		vols[i] = float64(b.Volume)
	}
	return vols
}

// First returns the oldest bar. The series must be non-empty.
func (s *Series) First() OHLCV { return s.Bars[0] }

// Last returns the newest bar. The series must be non-empty.
func (s *Series) Last() OHLCV { return s.Bars[len(s.Bars)-1] }

// Validate checks that the series is non-empty, strictly increasing in time
// and carries positive prices and non-negative volumes.
func (s *Series) Validate() error {
	if s == nil || len(s.Bars) == 0 {
		return ErrNoDataAvailable
	}
	for i, b := range s.Bars {
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			return fmt.Errorf("%w: bar %d (%s) has a non-positive price", ErrInvalidSeries, i, b.Time.Format(DateFormat))
		}
		if b.Volume < 0 {
			return fmt.Errorf("%w: bar %d (%s) has a negative volume", ErrInvalidSeries, i, b.Time.Format(DateFormat))
		}
		if i > 0 && !b.Time.After(s.Bars[i-1].Time) {
			return fmt.Errorf("%w: bar %d (%s) is not after its predecessor", ErrInvalidSeries, i, b.Time.Format(DateFormat))
		}
	}
	return nil
}

// DateFormat is the layout used for dates in configs, logs and reports.
const DateFormat = "2006-01-02"

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) String() string {
	return r.Start.Format(DateFormat) + " → " + r.End.Format(DateFormat)
}
