package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vitos/stock_level_scanner/internal/config"
	"github.com/vitos/stock_level_scanner/internal/infrastructure/logger"
	"github.com/vitos/stock_level_scanner/internal/infrastructure/marketdata"
	"github.com/vitos/stock_level_scanner/internal/infrastructure/storage"
	"github.com/vitos/stock_level_scanner/internal/scheduler"
	"github.com/vitos/stock_level_scanner/internal/usecase"
	"github.com/vitos/stock_level_scanner/internal/web"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Environment + Config
	// A missing .env is fine; the platform injects env vars in prod.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Init Logger
	log, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Encoding)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config", zap.Error(err))
	}
	if cfg.Auth.CronToken == "" {
		// Not fatal: the scan endpoint reports this per-request.
		log.Warn("CRON_TOKEN not configured, scan requests will be rejected")
	}

	// 3. Init Storage
	store, err := storage.NewSQLiteStore(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatal("Failed to init sqlite", zap.Error(err))
	}
	defer store.Close()

	// 4. Init Market Data Provider
	finnhub := marketdata.NewFinnhubAdapter(cfg.Finnhub.Token, cfg.Finnhub.BaseURL)

	// 5. Init Scan Service
	scanService := usecase.NewScanService(finnhub, cfg.Scan.Symbols, cfg.Scan.Resolution, log)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 6. Optional Trade Stream
	var prices web.PriceSource
	if cfg.Stream.Enabled {
		stream := marketdata.NewFinnhubStream(cfg.Finnhub.Token, cfg.Finnhub.WSURL, log)
		if err := stream.Connect(cfg.Scan.Symbols); err != nil {
			log.Error("Failed to connect trade stream", zap.Error(err))
		} else {
			prices = stream
			defer stream.Close()
		}
	}

	// 7. Optional Built-in Scheduler
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Schedule.Cron != "" {
		sched := scheduler.New(ctx, scanService, store, log)
		if err := sched.Register(cfg.Schedule.Cron); err != nil {
			log.Fatal("Failed to register schedule", zap.Error(err))
		}
		sched.Start()
		defer sched.Stop()
		log.Info("Built-in scheduler enabled", zap.String("cron", cfg.Schedule.Cron))
	}

	// 8. Start Server
	server := web.NewServer(cfg.Server.Port, cfg.Auth.CronToken, scanService, store, prices, log)
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// 9. Wait for Shutdown
	<-stop

	log.Info("Shutting down...")
	server.Shutdown(context.Background())
}
