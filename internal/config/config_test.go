package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"StockPulse/internal/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "DATA_PROVIDER", "DATA_BASE_URL",
		"DATA_API_KEY", "HTTPS_PROXY", "STOCKPULSE_TICKER", "STOCKPULSE_INVESTMENT",
		"STOCKPULSE_WINDOW", "STOCKPULSE_MA_TYPE", "STOCKPULSE_PRESET", "CRON_ANALYSIS",
	} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Analysis.Ticker != "AAPL" {
		t.Errorf("ticker = %q, want AAPL", cfg.Analysis.Ticker)
	}
	if *cfg.Analysis.Investment != 1000 {
		t.Errorf("investment = %v, want 1000", *cfg.Analysis.Investment)
	}
	if *cfg.Analysis.WindowSize != 20 || cfg.Analysis.MAType != "SMA" {
		t.Errorf("window/ma = %d/%s, want 20/SMA", *cfg.Analysis.WindowSize, cfg.Analysis.MAType)
	}
	if *cfg.Analysis.ProjectionHorizon != 5 {
		t.Errorf("horizon = %d, want 5", *cfg.Analysis.ProjectionHorizon)
	}
	if cfg.Analysis.DateRangePreset != "last_year" {
		t.Errorf("preset = %q, want last_year", cfg.Analysis.DateRangePreset)
	}
	if cfg.DataSource.Provider != ProviderYahoo || cfg.Retries() != 3 || cfg.DataSource.FetchTimeout != 30*time.Second {
		t.Errorf("data source defaults wrong: %+v", cfg.DataSource)
	}
	if len(cfg.Schedule.Watchlist) != 1 || cfg.Schedule.Watchlist[0] != "AAPL" {
		t.Errorf("watchlist = %v, want [AAPL]", cfg.Schedule.Watchlist)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
data_source:
  provider: rest
  base_url: http://bars.local
  fetch_timeout: 5s
analysis:
  ticker: MSFT
  investment: 2500
  window_size: 10
  ma_type: ema
  projection_horizon: 0
  date_range_preset: custom
  custom_start: "2023-01-02"
  custom_end: "2023-06-30"
schedule:
  watchlist: [MSFT, SPX500]
`)
	t.Setenv("STOCKPULSE_TICKER", "NVDA")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Analysis.Ticker != "NVDA" {
		t.Errorf("env should override ticker, got %q", cfg.Analysis.Ticker)
	}
	if cfg.DataSource.FetchTimeout != 5*time.Second {
		t.Errorf("fetch_timeout = %v, want 5s", cfg.DataSource.FetchTimeout)
	}

	ac, err := cfg.AnalyticsConfig()
	if err != nil {
		t.Fatalf("AnalyticsConfig: %v", err)
	}
	if ac.MAType != model.EMA || ac.WindowSize != 10 || ac.Investment != 2500 {
		t.Errorf("unexpected analytics config %+v", ac)
	}
	if ac.ProjectionHorizon != 0 {
		t.Errorf("explicit zero horizon should be kept, got %d", ac.ProjectionHorizon)
	}
	wantStart := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	if !ac.CustomStart.Equal(wantStart) {
		t.Errorf("custom start = %v, want %v", ac.CustomStart, wantStart)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_ExplicitZerosAreKept(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
data_source:
  max_retries: 0
analysis:
  window_size: 0
  investment: 0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Retries() != 0 {
		t.Errorf("max_retries = %d, want 0", cfg.Retries())
	}
	if *cfg.Analysis.WindowSize != 0 || *cfg.Analysis.Investment != 0 {
		t.Errorf("window/investment = %d/%v, want 0/0", *cfg.Analysis.WindowSize, *cfg.Analysis.Investment)
	}
	if err := cfg.Validate(); !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Errorf("Validate() = %v, want ErrInvalidConfiguration", err)
	}

	// Retries alone may be switched off.
	path = writeConfig(t, "data_source:\n  max_retries: 0\n")
	if cfg, err = Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil || cfg.Retries() != 0 {
		t.Errorf("retries off: Validate() = %v, retries = %d", err, cfg.Retries())
	}
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	if _, err := Load(writeConfig(t, "analysis: [unclosed")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative window", func(c *Config) { c.Analysis.WindowSize = intPtr(-1) }},
		{"negative investment", func(c *Config) { inv := -5.0; c.Analysis.Investment = &inv }},
		{"zero window", func(c *Config) { c.Analysis.WindowSize = intPtr(0) }},
		{"zero investment", func(c *Config) { inv := 0.0; c.Analysis.Investment = &inv }},
		{"bad ma type", func(c *Config) { c.Analysis.MAType = "WMA" }},
		{"bad preset", func(c *Config) { c.Analysis.DateRangePreset = "forever" }},
		{"custom without dates", func(c *Config) { c.Analysis.DateRangePreset = "custom" }},
		{"custom reversed", func(c *Config) {
			c.Analysis.DateRangePreset = "custom"
			c.Analysis.CustomStart = "2024-02-01"
			c.Analysis.CustomEnd = "2024-01-01"
		}},
		{"negative horizon", func(c *Config) { h := -1; c.Analysis.ProjectionHorizon = &h }},
		{"unknown provider", func(c *Config) { c.DataSource.Provider = "ftp" }},
		{"rest without url", func(c *Config) { c.DataSource.Provider = ProviderREST }},
		{"negative retries", func(c *Config) { c.DataSource.MaxRetries = intPtr(-1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, model.ErrInvalidConfiguration) {
				t.Errorf("Validate() = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestValidateBot(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()
	if err := cfg.ValidateBot(); !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Errorf("missing token: err = %v", err)
	}
	cfg.Telegram.BotToken = "tok"
	if err := cfg.ValidateBot(); !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Errorf("missing chat id: err = %v", err)
	}
	cfg.Telegram.ChatID = "42"
	if err := cfg.ValidateBot(); err != nil {
		t.Errorf("ValidateBot: %v", err)
	}
}
