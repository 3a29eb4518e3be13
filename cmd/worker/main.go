package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"investwise/internal/app"
	"investwise/internal/config"
	"investwise/internal/database"
	"investwise/internal/events"
	"investwise/internal/logger"
)

// The worker consumes wealth.recompute events published after sales and
// writes a fresh snapshot for each.
func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Worker error: %v", err)
	}
}

func run() error {
	log := logger.Get()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if len(cfg.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() { _ = dbManager.Close() }()

	svc, err := app.Build(ctx, cfg, dbManager.DB())
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}
	defer func() { _ = svc.Close() }()

	consumer := events.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, svc.Valuation, cfg.RecomputeTimeout)
	defer func() {
		if err := consumer.Close(); err != nil {
			log.Warnw("consumer close failed", "error", err)
		}
	}()

	log.Infow("recompute worker started",
		"topic", cfg.KafkaTopic,
		"group_id", cfg.KafkaGroupID,
		"brokers", cfg.KafkaBrokers,
	)
	return consumer.Run(ctx)
}
