package scheduler

import (
	"context"
	"fmt"
	"html"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"StockPulse/internal/model"
	"StockPulse/internal/notifier"
)

// Analyzer runs one analysis request.
type Analyzer interface {
	Collect(ctx context.Context, cfg model.AnalyticsConfig) (*model.Report, error)
}

// Sender delivers formatted messages.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages the periodic watchlist analysis and chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Analyzer  Analyzer
	Notifier  Sender
	Base      model.AnalyticsConfig
	Watchlist []string
	Ctx       context.Context

	// running serializes watchlist runs; manual tracks Trigger goroutines for Stop.
	running sync.Mutex
	manual  sync.WaitGroup
}

// NewScheduler creates a new Scheduler. base supplies every analysis setting
// except the ticker.
func NewScheduler(ctx context.Context, an Analyzer, sender Sender, base model.AnalyticsConfig, watchlist []string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Analyzer:  an,
		Notifier:  sender,
		Base:      base,
		Watchlist: watchlist,
		Ctx:       ctx,
	}
}

// Register adds the watchlist analysis job.
func (s *Scheduler) Register(analysisCron string) error {
	if _, err := s.Cron.AddFunc(analysisCron, s.analysisTask); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs, including ones
// started by /run.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.manual.Wait()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the watchlist analysis immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.analysisTask()
}

// Trigger starts a watchlist analysis in the background. Stop waits for it.
func (s *Scheduler) Trigger() {
	s.manual.Add(1)
	go func() {
		defer s.manual.Done()
		s.analysisTask()
	}()
}

func (s *Scheduler) analysisTask() {
	s.running.Lock()
	defer s.running.Unlock()
	log.Printf("[INFO] running watchlist analysis (%d symbols)", len(s.Watchlist))
	for _, symbol := range s.Watchlist {
		if s.Ctx.Err() != nil {
			return
		}
		cfg := s.Base
		cfg.Ticker = symbol
		s.trySend(s.analyze(s.Ctx, cfg))
	}
}

func (s *Scheduler) analyze(ctx context.Context, cfg model.AnalyticsConfig) string {
	report, err := s.Analyzer.Collect(ctx, cfg)
	if err != nil {
		log.Printf("[ERROR] analyze %s: %v", cfg.Ticker, err)
		return notifier.FormatError(cfg.Ticker, err)
	}
	return notifier.FormatReport(report)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.HelpText()
	}
	switch strings.ToLower(fields[0]) {
	case "/analyze":
		cfg, err := s.parseAnalyze(fields[1:])
		if err != nil {
			return "⚠️ " + html.EscapeString(err.Error()) + "\n\n" + notifier.HelpText()
		}
		return s.analyze(ctx, cfg)
	case "/watchlist":
		return "Watchlist: " + strings.Join(s.Watchlist, ", ")
	case "/run":
		s.Trigger()
		return "Running watchlist analysis…"
	default:
		return notifier.HelpText()
	}
}

// parseAnalyze reads "SYMBOL [preset] [sma|ema] [window]"; options may come
// in any order after the symbol.
func (s *Scheduler) parseAnalyze(args []string) (model.AnalyticsConfig, error) {
	cfg := s.Base
	if len(args) == 0 {
		return cfg, fmt.Errorf("%w: /analyze needs a symbol", model.ErrInvalidConfiguration)
	}
	cfg.Ticker = args[0]
	for _, a := range args[1:] {
		if n, err := strconv.Atoi(a); err == nil {
			cfg.WindowSize = n
			continue
		}
		if t, err := model.ParseMAType(a); err == nil {
			cfg.MAType = t
			continue
		}
		p, err := model.ParseDatePreset(a)
		if err != nil {
			return cfg, err
		}
		if p == model.PresetCustom {
			return cfg, fmt.Errorf("%w: custom ranges are not supported in chat", model.ErrInvalidConfiguration)
		}
		cfg.Preset = p
	}
	return cfg, nil
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
