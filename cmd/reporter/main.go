package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"MarketSweep/internal/collector"
	"MarketSweep/internal/config"
	"MarketSweep/internal/notifier"
	"MarketSweep/internal/recorder"
	"MarketSweep/internal/report"
	"MarketSweep/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketSweep reporter starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	spec, _ := cfg.CronSpec()

	// Init fetcher
	fetcher := collector.NewCoinGeckoFetcher(cfg.Market.BaseURL, cfg.Market.APIKey, cfg.Proxy)
	fetcher.VsCurrency = cfg.Market.VsCurrency
	fetcher.Order = cfg.Market.Order
	fetcher.PerPage = cfg.Market.PerPage
	fetcher.Page = cfg.Market.Page
	log.Printf("[INFO] data source: %s", fetcher.Name())

	col := collector.NewCollector(fetcher, cfg.Market.VsCurrency)

	// Init mail notifier
	mn, err := notifier.NewMailNotifier(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Sender, cfg.Mail.Password, cfg.Mail.Recipient)
	if err != nil {
		log.Fatalf("[FATAL] init mail notifier: %v", err)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, report.NewExporter(cfg.Output.Dir), mn, rec)
	if err := sched.RegisterDaily(spec); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if cfg.Schedule.RunOnStart {
		log.Println("[INFO] RUN_ON_START enabled, executing report now")
		go sched.RunNow()
	}

	log.Printf("[INFO] MarketSweep reporter is running, daily at %s. Press Ctrl+C to stop.", cfg.Schedule.DailyAt)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] MarketSweep reporter stopped")
}
