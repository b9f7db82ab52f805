package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"StockPulse/internal/config"
	"StockPulse/internal/display"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [SYMBOL]",
		Short: "Analyze one ticker and print the report",
		Long: `Analyze one ticker. Flags override the analysis section of the config file.
Example: stockpulse analyze MSFT --preset last_month --ma ema --window 10`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Analysis.Ticker = args[0]
			}
			applyAnalyzeFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}
			ac, err := cfg.AnalyticsConfig()
			if err != nil {
				return err
			}

			col, err := newCollector(cfg)
			if err != nil {
				return err
			}
			report, err := col.Collect(cmd.Context(), ac)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), display.Render(report))
			return nil
		},
	}

	cmd.Flags().String("preset", "", "Date range preset: last_day, last_week, last_month, last_year, custom")
	cmd.Flags().String("start", "", "Custom range start (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "Custom range end (YYYY-MM-DD)")
	cmd.Flags().String("ma", "", "Moving average type: SMA or EMA")
	cmd.Flags().Int("window", 0, "Moving average window")
	cmd.Flags().Float64("investment", 0, "Hypothetical investment amount")
	cmd.Flags().Int("horizon", 0, "Business days to project")
	cmd.Flags().String("provider", "", "Data provider: yahoo, finance-go, rest, mock")
	return cmd
}

func applyAnalyzeFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("preset") {
		cfg.Analysis.DateRangePreset, _ = f.GetString("preset")
	}
	if f.Changed("start") || f.Changed("end") {
		cfg.Analysis.CustomStart, _ = f.GetString("start")
		cfg.Analysis.CustomEnd, _ = f.GetString("end")
		if !f.Changed("preset") {
			cfg.Analysis.DateRangePreset = "custom"
		}
	}
	if f.Changed("ma") {
		cfg.Analysis.MAType, _ = f.GetString("ma")
	}
	if f.Changed("window") {
		w, _ := f.GetInt("window")
		cfg.Analysis.WindowSize = &w
	}
	if f.Changed("investment") {
		inv, _ := f.GetFloat64("investment")
		cfg.Analysis.Investment = &inv
	}
	if f.Changed("horizon") {
		h, _ := f.GetInt("horizon")
		cfg.Analysis.ProjectionHorizon = &h
	}
	if f.Changed("provider") {
		cfg.DataSource.Provider, _ = f.GetString("provider")
	}
}
