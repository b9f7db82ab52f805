package model

import "errors"

var (
	// ErrNoDataAvailable means retrieval returned nothing, even after retries.
	ErrNoDataAvailable = errors.New("no data available")
	// ErrInsufficientData marks a metric that needs more history than the series has.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrInvalidConfiguration is returned before any fetch is attempted.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvalidSeries means the bars break ordering or positivity rules.
	ErrInvalidSeries = errors.New("invalid series")
)
