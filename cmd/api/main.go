package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"investwise/internal/app"
	"investwise/internal/config"
	"investwise/internal/database"
	"investwise/internal/events"
	"investwise/internal/handlers"
	"investwise/internal/logger"
	"investwise/internal/server"
	"investwise/internal/services"
	"investwise/internal/validator"
)

// @title           InvestWise API
// @version         1.0
// @description     InvestWise tracks a stock portfolio as a purchase and sale ledger and values it against live market data.

// @host      localhost:5000
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Pipeline API key.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

// recomputer is a services.Recomputer that can be drained on shutdown.
type recomputer interface {
	services.Recomputer
	Close() error
}

type asyncCloser struct{ *events.AsyncRecomputer }

func (a asyncCloser) Close() error {
	a.Wait()
	return nil
}

func newRecomputer(cfg *config.Config, valuation services.ValuationServicer) recomputer {
	if cfg.RecomputeMode == "kafka" {
		return events.NewKafkaRecomputer(cfg.KafkaBrokers, cfg.KafkaTopic, "investwise-api")
	}
	return asyncCloser{events.NewAsyncRecomputer(valuation, cfg.RecomputeTimeout)}
}

func run() error {
	log := logger.Get()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() { _ = dbManager.Close() }()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	svc, err := app.Build(ctx, appConfig, dbManager.DB())
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}
	defer func() { _ = svc.Close() }()

	rec := newRecomputer(appConfig, svc.Valuation)
	svc.Portfolio.SetRecomputer(rec)
	defer func() {
		if err := rec.Close(); err != nil {
			log.Warnw("recomputer close failed", "error", err)
		}
	}()

	validator.Register()

	router := server.NewRouter(server.Handlers{
		Portfolio: handlers.NewPortfolioHandler(svc.Portfolio),
		Wealth:    handlers.NewWealthHandler(svc.Valuation),
		Market:    handlers.NewMarketHandler(svc.Market),
		Profile:   handlers.NewUserProfileHandler(svc.Profile),
	}, server.Options{
		AuthEnabled:     appConfig.AuthEnabled,
		JWTSecret:       appConfig.JWTSecret,
		PipelineAPIKeys: appConfig.PipelineAPIKeys,
		CORSOrigins:     appConfig.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting InvestWise backend server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
