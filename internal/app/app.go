// Package app wires configuration into the provider clients, quote cache and
// services shared by the API server and the recompute worker.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"investwise/internal/config"
	"investwise/internal/logger"
	"investwise/internal/pricing"
	"investwise/internal/provider"
	"investwise/internal/services"
)

// Services is the assembled service layer.
type Services struct {
	Audit     services.AuditServicer
	Portfolio interface {
		services.PortfolioServicer
		services.Ledger
		SetRecomputer(services.Recomputer)
	}
	Valuation services.ValuationServicer
	Market    services.MarketServicer
	Profile   services.UserProfileServicer

	closers []func() error
}

// Close releases connections opened by Build.
func (s *Services) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewQuoteCache selects the quote cache backend named by cfg.CacheBackend.
// The returned closer is nil when the backend holds no connection.
func NewQuoteCache(ctx context.Context, cfg *config.Config, db *gorm.DB) (pricing.Cache, func() error, error) {
	switch cfg.CacheBackend {
	case "memory":
		return pricing.NewMemoryCache(), nil, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		return pricing.NewRedisCache(client), client.Close, nil
	default:
		return pricing.NewDBCache(db), nil, nil
	}
}

// Build creates the provider clients and services. Sales trigger no
// recompute until the caller wires one with Portfolio.SetRecomputer.
func Build(ctx context.Context, cfg *config.Config, db *gorm.DB) (*Services, error) {
	httpClient := &http.Client{Timeout: cfg.SourceTimeout + 5*time.Second}
	av := provider.NewAlphaVantage(httpClient, cfg.AlphaVantageURL, cfg.AlphaVantageAPIKey)
	tiingo := provider.NewTiingo(httpClient, cfg.TiingoURL, cfg.TiingoAPIKey)
	predictor := provider.NewPredictor(httpClient, cfg.PredictorURL)

	cache, closeCache, err := NewQuoteCache(ctx, cfg, db)
	if err != nil {
		return nil, err
	}

	resolver := pricing.NewResolver(cache,
		[]pricing.Source{provider.IntradayQuotes{AV: av}, provider.DailyQuotes{AV: av}},
		pricing.Options{SourceTimeout: cfg.SourceTimeout, Concurrency: cfg.PriceConcurrency})

	audit := services.NewAuditService(db)
	portfolio := services.NewPortfolioService(db, audit, nil)
	s := &Services{
		Audit:     audit,
		Portfolio: portfolio,
		Valuation: services.NewValuationService(db, portfolio, resolver, provider.DailyCloses{AV: av}),
		Market:    services.NewMarketService(db, av, tiingo, predictor),
		Profile:   services.NewUserProfileService(db, audit),
	}
	if closeCache != nil {
		s.closers = append(s.closers, closeCache)
	}

	logger.Get().Infow("services ready",
		"cache_backend", cfg.CacheBackend,
		"source_timeout", cfg.SourceTimeout.String(),
		"price_concurrency", cfg.PriceConcurrency,
	)
	return s, nil
}
