package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"StockPulse/internal/model"
)

// Provider names accepted in data_source.provider.
const (
	ProviderYahoo     = "yahoo"
	ProviderFinanceGo = "finance-go"
	ProviderREST      = "rest"
	ProviderMock      = "mock"
)

// Defaults for settings without a model-level default.
const (
	DefaultMaxRetries = 3
	DefaultInvestment = 1000.0
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider     string        `yaml:"provider"`
		BaseURL      string        `yaml:"base_url"`
		APIKey       string        `yaml:"api_key"`
		MaxRetries   *int          `yaml:"max_retries"`
		FetchTimeout time.Duration `yaml:"fetch_timeout"`
	} `yaml:"data_source"`
	Analysis struct {
		Ticker            string  `yaml:"ticker"`
		Investment        *float64 `yaml:"investment"`
		WindowSize        *int     `yaml:"window_size"`
		MAType            string   `yaml:"ma_type"`
		ProjectionHorizon *int     `yaml:"projection_horizon"`
		DateRangePreset   string   `yaml:"date_range_preset"`
		CustomStart       string   `yaml:"custom_start"`
		CustomEnd         string   `yaml:"custom_end"`
	} `yaml:"analysis"`
	Schedule struct {
		AnalysisCron string   `yaml:"analysis_cron"`
		Watchlist    []string `yaml:"watchlist"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads .env (if present), then the YAML file, then applies environment
// variable overrides and defaults. A missing YAML file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		c.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		c.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		c.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("STOCKPULSE_TICKER"); v != "" {
		c.Analysis.Ticker = v
	}
	if v := os.Getenv("STOCKPULSE_INVESTMENT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Analysis.Investment = &f
		} else {
			log.Printf("[WARN] ignoring STOCKPULSE_INVESTMENT=%q: %v", v, err)
		}
	}
	if v := os.Getenv("STOCKPULSE_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Analysis.WindowSize = &n
		} else {
			log.Printf("[WARN] ignoring STOCKPULSE_WINDOW=%q: %v", v, err)
		}
	}
	if v := os.Getenv("STOCKPULSE_MA_TYPE"); v != "" {
		c.Analysis.MAType = v
	}
	if v := os.Getenv("STOCKPULSE_PRESET"); v != "" {
		c.Analysis.DateRangePreset = v
	}
	if v := os.Getenv("CRON_ANALYSIS"); v != "" {
		c.Schedule.AnalysisCron = v
	}
}

// applyDefaults fills unset fields. Numeric fields are pointers so an explicit
// zero survives: Validate rejects it where zero is invalid.
func (c *Config) applyDefaults() {
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = ProviderYahoo
	}
	if c.DataSource.MaxRetries == nil {
		c.DataSource.MaxRetries = intPtr(DefaultMaxRetries)
	}
	if c.DataSource.FetchTimeout == 0 {
		c.DataSource.FetchTimeout = 30 * time.Second
	}
	if c.Analysis.Ticker == "" {
		c.Analysis.Ticker = "AAPL"
	}
	if c.Analysis.Investment == nil {
		inv := DefaultInvestment
		c.Analysis.Investment = &inv
	}
	if c.Analysis.WindowSize == nil {
		c.Analysis.WindowSize = intPtr(model.DefaultWindowSize)
	}
	if c.Analysis.MAType == "" {
		c.Analysis.MAType = string(model.SMA)
	}
	if c.Analysis.ProjectionHorizon == nil {
		c.Analysis.ProjectionHorizon = intPtr(model.DefaultProjectionHorizon)
	}
	if c.Analysis.DateRangePreset == "" {
		c.Analysis.DateRangePreset = string(model.PresetLastYear)
	}
	if c.Schedule.AnalysisCron == "" {
		c.Schedule.AnalysisCron = "0 0 22 * * 1-5"
	}
	if len(c.Schedule.Watchlist) == 0 {
		c.Schedule.Watchlist = []string{c.Analysis.Ticker}
	}
}

// AnalyticsConfig converts the analysis section into an engine config.
func (c *Config) AnalyticsConfig() (model.AnalyticsConfig, error) {
	maType, err := model.ParseMAType(c.Analysis.MAType)
	if err != nil {
		return model.AnalyticsConfig{}, err
	}
	preset, err := model.ParseDatePreset(c.Analysis.DateRangePreset)
	if err != nil {
		return model.AnalyticsConfig{}, err
	}
	out := model.AnalyticsConfig{
		Ticker: c.Analysis.Ticker,
		MAType: maType,
		Preset: preset,
	}
	if c.Analysis.Investment != nil {
		out.Investment = *c.Analysis.Investment
	}
	if c.Analysis.WindowSize != nil {
		out.WindowSize = *c.Analysis.WindowSize
	}
	if c.Analysis.ProjectionHorizon != nil {
		out.ProjectionHorizon = *c.Analysis.ProjectionHorizon
	}
	if preset == model.PresetCustom {
		if out.CustomStart, err = parseDate("custom_start", c.Analysis.CustomStart); err != nil {
			return model.AnalyticsConfig{}, err
		}
		if out.CustomEnd, err = parseDate("custom_end", c.Analysis.CustomEnd); err != nil {
			return model.AnalyticsConfig{}, err
		}
	}
	return out, nil
}

// Retries returns data_source.max_retries; zero disables retrying.
func (c *Config) Retries() int {
	if c.DataSource.MaxRetries == nil {
		return DefaultMaxRetries
	}
	return *c.DataSource.MaxRetries
}

func intPtr(n int) *int { return &n }

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(model.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q: want YYYY-MM-DD", model.ErrInvalidConfiguration, field, s)
	}
	return t, nil
}

// Validate checks everything needed to run an analysis.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case ProviderYahoo, ProviderFinanceGo, ProviderMock:
	case ProviderREST:
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("%w: data_source.base_url is required for the rest provider", model.ErrInvalidConfiguration)
		}
	default:
		return fmt.Errorf("%w: unknown data_source.provider %q", model.ErrInvalidConfiguration, c.DataSource.Provider)
	}
	if c.Retries() < 0 {
		return fmt.Errorf("%w: data_source.max_retries must not be negative", model.ErrInvalidConfiguration)
	}
	ac, err := c.AnalyticsConfig()
	if err != nil {
		return err
	}
	return ac.ValidateRequest()
}

// ValidateBot checks the settings the watch mode needs on top of Validate.
func (c *Config) ValidateBot() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("%w: telegram.bot_token is required", model.ErrInvalidConfiguration)
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("%w: telegram.chat_id is required", model.ErrInvalidConfiguration)
	}
	if len(c.Schedule.Watchlist) == 0 {
		return fmt.Errorf("%w: schedule.watchlist is empty", model.ErrInvalidConfiguration)
	}
	return nil
}
