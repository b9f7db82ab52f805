package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"StockPulse/internal/collector"
	"StockPulse/internal/config"
)

var version = "dev"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stockpulse",
		Short: "StockPulse - price history analytics",
		Long: `StockPulse fetches daily OHLCV history for a ticker and reports returns,
volatility, trend, a price summary and a moving-average projection.`,
		SilenceUsage: true,
	}

	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	root.PersistentFlags().String("config", defaultPath, "Configuration file path")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

func newCollector(cfg *config.Config) (*collector.Collector, error) {
	fetcher, err := collector.NewFetcher(cfg.DataSource.Provider, cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())
	return collector.NewCollector(fetcher, cfg.Retries(), cfg.DataSource.FetchTimeout), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("stockpulse %s\n", version)
		},
	}
}
