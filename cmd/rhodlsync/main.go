package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"rhodlsync/internal/collector"
	"rhodlsync/internal/config"
	"rhodlsync/internal/model"
	"rhodlsync/internal/notifier"
	"rhodlsync/internal/pipeline"
	"rhodlsync/internal/recorder"
	"rhodlsync/internal/scheduler"
	"rhodlsync/internal/sheets"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfgPath := flag.String("config", "configs/config.yaml", "path to the YAML config file")
	appendMode := flag.Bool("append", false, "append only rows newer than the last synced date (default: rewrite columns A:B)")
	outfile := flag.String("outfile", "", "override the local JSON artifact path")
	daemon := flag.Bool("daemon", false, "keep running and sync on the configured cron schedule")
	flag.Parse()

	if v := os.Getenv("CONFIG_PATH"); v != "" && *cfgPath == "configs/config.yaml" {
		*cfgPath = v
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	if *outfile != "" {
		cfg.Cache.Path = *outfile
	}

	mode := model.ModeRewrite
	if *appendMode {
		mode = model.ModeAppend
	}
	log.Printf("[INFO] rhodlsync starting (%s mode)", mode)

	// Init fetcher
	fetcher := collector.NewCoinGlassFetcher(cfg.CoinGlass.BaseURL, cfg.CoinGlass.APIKey,
		cfg.CoinGlass.MaxRetries, cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init recorder (cursor + run history)
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

	// Open the worksheet
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ws, err := sheets.Open(ctx, cfg.Sheet.CredentialsFile, cfg.Sheet.ID, cfg.Sheet.Worksheet)
	if err != nil {
		log.Fatalf("[FATAL] open worksheet: %v", err)
	}

	pipe := &pipeline.Pipeline{
		Fetcher:   fetcher,
		Cutoff:    cfg.Filter.CutoffDate,
		CachePath: cfg.Cache.Path,
		Syncer:    sheets.NewSyncer(ws, rec),
		Recorder:  rec,
		Notifier:  notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy),
	}

	if !*daemon {
		if _, err := pipe.Run(mode); err != nil {
			log.Fatalf("[FATAL] sync: %v", err)
		}
		log.Println("[INFO] rhodlsync done")
		return
	}

	sched := scheduler.NewScheduler(pipe, mode)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	log.Println("[INFO] rhodlsync is running. Press Ctrl+C to stop.")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] rhodlsync stopped")
}
