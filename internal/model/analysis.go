package model

import (
	"fmt"
	"strings"
	"time"
)

// MAType selects the moving-average flavour.
type MAType string

const (
	SMA MAType = "SMA"
	EMA MAType = "EMA"
)

// ParseMAType accepts "sma"/"ema" in any case.
func ParseMAType(s string) (MAType, error) {
	switch MAType(strings.ToUpper(strings.TrimSpace(s))) {
	case SMA:
		return SMA, nil
	case EMA:
		return EMA, nil
	}
	return "", fmt.Errorf("%w: unknown moving average type %q (want SMA or EMA)", ErrInvalidConfiguration, s)
}

// DatePreset names a retrieval window relative to today.
type DatePreset string

const (
	PresetLastDay   DatePreset = "last_day"
	PresetLastWeek  DatePreset = "last_week"
	PresetLastMonth DatePreset = "last_month"
	PresetLastYear  DatePreset = "last_year"
	PresetCustom    DatePreset = "custom"
)

// ParseDatePreset validates a preset name.
func ParseDatePreset(s string) (DatePreset, error) {
	p := DatePreset(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PresetLastDay, PresetLastWeek, PresetLastMonth, PresetLastYear, PresetCustom:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown date range preset %q", ErrInvalidConfiguration, s)
}

const (
	DefaultWindowSize        = 20
	DefaultProjectionHorizon = 5
)

// AnalyticsConfig carries every knob of one analysis request.
type AnalyticsConfig struct {
	Ticker            string
	Investment        float64
	WindowSize        int
	MAType            MAType
	ProjectionHorizon int
	Preset            DatePreset
	CustomStart       time.Time
	CustomEnd         time.Time
}

// Validate rejects configurations the engine cannot run with.
func (c AnalyticsConfig) Validate() error {
	if c.WindowSize <= 0 {
		return fmt.Errorf("%w: window_size must be positive, got %d", ErrInvalidConfiguration, c.WindowSize)
	}
	if c.Investment <= 0 {
		return fmt.Errorf("%w: investment must be positive, got %g", ErrInvalidConfiguration, c.Investment)
	}
	if c.ProjectionHorizon < 0 {
		return fmt.Errorf("%w: projection_horizon must not be negative, got %d", ErrInvalidConfiguration, c.ProjectionHorizon)
	}
	if c.MAType != SMA && c.MAType != EMA {
		return fmt.Errorf("%w: ma_type must be SMA or EMA, got %q", ErrInvalidConfiguration, c.MAType)
	}
	if c.Preset == PresetCustom {
		if c.CustomStart.IsZero() || c.CustomEnd.IsZero() {
			return fmt.Errorf("%w: custom range needs both custom_start and custom_end", ErrInvalidConfiguration)
		}
		if c.CustomStart.After(c.CustomEnd) {
			return fmt.Errorf("%w: custom_start %s is after custom_end %s", ErrInvalidConfiguration,
				c.CustomStart.Format(DateFormat), c.CustomEnd.Format(DateFormat))
		}
	}
	return nil
}

// ValidateRequest additionally checks the fields only needed for retrieval.
func (c AnalyticsConfig) ValidateRequest() error {
	if strings.TrimSpace(c.Ticker) == "" {
		return fmt.Errorf("%w: ticker is required", ErrInvalidConfiguration)
	}
	if _, err := ParseDatePreset(string(c.Preset)); err != nil {
		return err
	}
	return c.Validate()
}
