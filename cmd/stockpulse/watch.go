package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"StockPulse/internal/notifier"
	"StockPulse/internal/scheduler"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the scheduled watchlist analysis and Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Println("[INFO] StockPulse starting...")
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}
			if err := cfg.ValidateBot(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}
			base, err := cfg.AnalyticsConfig()
			if err != nil {
				return err
			}

			col, err := newCollector(cfg)
			if err != nil {
				return err
			}
			tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, os.Getenv("TELEGRAM_API_URL"))

			// Context for graceful shutdown
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			sched := scheduler.NewScheduler(ctx, col, tn, base, cfg.Schedule.Watchlist)
			if err := sched.Register(cfg.Schedule.AnalysisCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			go tn.StartPolling(ctx, sched.HandleCommand)
			log.Println("[INFO] Telegram polling started")

			if os.Getenv("RUN_ON_START") == "true" {
				log.Println("[INFO] RUN_ON_START enabled, analyzing watchlist now")
				sched.Trigger()
			}

			log.Printf("[INFO] StockPulse is watching %v. Press Ctrl+C to stop.", cfg.Schedule.Watchlist)
			<-ctx.Done()
			log.Println("[INFO] shutdown signal received, stopping...")
			return nil
		},
	}
}
