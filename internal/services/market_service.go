package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "investwise/internal/errors"
	"investwise/internal/logger"
	"investwise/internal/models"
	"investwise/internal/pricing"
	"investwise/internal/provider"
)

// StockData is the Alpha Vantage surface used by the market endpoints.
type StockData interface {
	LatestIntraday(ctx context.Context, ticker string) (provider.IntradayBar, error)
	LatestDaily(ctx context.Context, ticker string) (provider.DailyBar, error)
	DailyHistory(ctx context.Context, ticker string) ([]provider.DailyBar, error)
	NewsSentiment(ctx context.Context, ticker string) ([]provider.Article, error)
}

// TickerDirectory is the Tiingo surface used by the market endpoints.
type TickerDirectory interface {
	Search(ctx context.Context, query string) (any, error)
	LatestOpenClose(ctx context.Context, ticker string) (provider.OpenClose, error)
}

// Forecaster forwards feature payloads to the remote prediction model.
type Forecaster interface {
	Predict(ctx context.Context, payload json.RawMessage) (json.RawMessage, error)
}

var (
	_ StockData       = (*provider.AlphaVantage)(nil)
	_ TickerDirectory = (*provider.Tiingo)(nil)
	_ Forecaster      = (*provider.Predictor)(nil)
)

// marketService proxies market data providers.
type marketService struct {
	db        *gorm.DB
	stocks    StockData
	directory TickerDirectory
	predictor Forecaster
	loc       *time.Location
	now       func() time.Time
}

// NewMarketService creates a MarketServicer. Open/close bars are cached in
// daily_stock_prices until local midnight.
func NewMarketService(db *gorm.DB, stocks StockData, directory TickerDirectory, predictor Forecaster) *marketService {
	return &marketService{
		db:        db,
		stocks:    stocks,
		directory: directory,
		predictor: predictor,
		loc:       time.Local,
		now:       time.Now,
	}
}

var _ MarketServicer = (*marketService)(nil)

// upstreamError maps provider failures onto API errors.
func upstreamError(err error) error {
	if errors.Is(err, provider.ErrNoData) {
		return apperrors.Wrap(apperrors.ErrMarketDataNotFound, err)
	}
	return apperrors.Wrap(apperrors.ErrUpstreamUnavailable, err)
}

func requireTicker(ticker string) (string, error) {
	t := normalizeTicker(ticker)
	if t == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Ticker symbol is required")
	}
	return t, nil
}

// Search returns the directory's raw search payload.
func (s *marketService) Search(ctx context.Context, query string) (any, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Search query is required")
	}
	result, err := s.directory.Search(ctx, query)
	if err != nil {
		logger.Get().Warnw("ticker search failed", "query", query, "error", err)
		return nil, upstreamError(err)
	}
	return result, nil
}

// LatestOpenClose returns today's open/close, from the cache when present.
func (s *marketService) LatestOpenClose(ctx context.Context, ticker string) (*provider.OpenClose, error) {
	ticker, err := requireTicker(ticker)
	if err != nil {
		return nil, err
	}
	now := s.now().In(s.loc)
	day := pricing.DayKey(now)
	db := s.db.WithContext(ctx)

	var row models.DailyStockPrice
	err = db.Where("ticker = ? AND date = ? AND kind = ?", ticker, day, models.PriceKindBar).First(&row).Error
	switch {
	case err == nil:
		return &provider.OpenClose{Date: row.Date, Open: row.Open, Close: row.Close}, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		logger.Get().Warnw("open/close cache read failed", "ticker", ticker, "error", err)
	}

	oc, err := s.directory.LatestOpenClose(ctx, ticker)
	if err != nil {
		logger.Get().Warnw("latest open/close unavailable", "ticker", ticker, "error", err)
		return nil, upstreamError(err)
	}

	row = models.DailyStockPrice{
		Ticker:    ticker,
		Date:      day,
		Kind:      models.PriceKindBar,
		Price:     oc.Close,
		Open:      oc.Open,
		Close:     oc.Close,
		Source:    "tiingo",
		ExpiresAt: pricing.NextMidnight(now),
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}, {Name: "date"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "open", "close", "source", "expires_at"}),
	}).Create(&row).Error; err != nil {
		logger.Get().Warnw("open/close cache write failed", "ticker", ticker, "error", err)
	}
	return &oc, nil
}

// LatestDaily returns the newest adjusted daily bar.
func (s *marketService) LatestDaily(ctx context.Context, ticker string) (*provider.DailyBar, error) {
	ticker, err := requireTicker(ticker)
	if err != nil {
		return nil, err
	}
	bar, err := s.stocks.LatestDaily(ctx, ticker)
	if err != nil {
		logger.Get().Warnw("daily bar unavailable", "ticker", ticker, "error", err)
		return nil, upstreamError(err)
	}
	return &bar, nil
}

// LatestIntraday returns the newest 5-minute bar.
func (s *marketService) LatestIntraday(ctx context.Context, ticker string) (*provider.IntradayBar, error) {
	ticker, err := requireTicker(ticker)
	if err != nil {
		return nil, err
	}
	bar, err := s.stocks.LatestIntraday(ctx, ticker)
	if err != nil {
		logger.Get().Warnw("intraday bar unavailable", "ticker", ticker, "error", err)
		return nil, upstreamError(err)
	}
	return &bar, nil
}

// PriceHistory returns the full daily history, newest first.
func (s *marketService) PriceHistory(ctx context.Context, ticker string) ([]provider.DailyBar, error) {
	ticker, err := requireTicker(ticker)
	if err != nil {
		return nil, err
	}
	bars, err := s.stocks.DailyHistory(ctx, ticker)
	if err != nil {
		logger.Get().Warnw("price history unavailable", "ticker", ticker, "error", err)
		return nil, upstreamError(err)
	}
	return bars, nil
}

func parseScore(raw string) float64 {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}

// Sentiment summarizes the newest article mentioning ticker.
func (s *marketService) Sentiment(ctx context.Context, ticker string) (*SentimentSummary, error) {
	ticker, err := requireTicker(ticker)
	if err != nil {
		return nil, err
	}
	feed, err := s.stocks.NewsSentiment(ctx, ticker)
	if err != nil {
		logger.Get().Warnw("sentiment unavailable", "ticker", ticker, "error", err)
		return nil, upstreamError(err)
	}
	if len(feed) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrMarketDataNotFound, "No sentiment data found for this ticker")
	}

	latest := feed[0]
	summary := &SentimentSummary{
		Ticker:                ticker,
		OverallSentimentScore: latest.OverallSentimentScore,
		Title:                 latest.Title,
		PublishedAt:           latest.TimePublished,
	}
	for _, ts := range latest.TickerSentiment {
		if ts.Ticker == ticker {
			summary.TickerSentimentScore = parseScore(ts.TickerSentimentScore)
			break
		}
	}
	return summary, nil
}

// NewsByTicker returns articles per ticker. Tickers without news are omitted.
func (s *marketService) NewsByTicker(ctx context.Context, tickers []string) (map[string][]NewsItem, error) {
	var distinct []string
	seen := make(map[string]bool)
	for _, t := range tickers {
		t = normalizeTicker(t)
		if t != "" && !seen[t] {
			seen[t] = true
			distinct = append(distinct, t)
		}
	}
	if len(distinct) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "No tickers provided")
	}

	out := make(map[string][]NewsItem, len(distinct))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, ticker := range distinct {
		g.Go(func() error {
			feed, err := s.stocks.NewsSentiment(gctx, ticker)
			if errors.Is(err, provider.ErrNoData) {
				return nil
			}
			if err != nil {
				return err
			}

			items := make([]NewsItem, 0, len(feed))
			for _, art := range feed {
				item := NewsItem{
					Title:            art.Title,
					URL:              art.URL,
					Summary:          art.Summary,
					SentimentLabel:   art.OverallSentimentLabel,
					SentimentScore:   art.OverallSentimentScore,
					TickerSentiments: []provider.TickerSentiment{},
					PublishedDate:    art.TimePublished,
				}
				for _, ts := range art.TickerSentiment {
					if ts.Ticker == ticker {
						item.TickerSentiments = append(item.TickerSentiments, ts)
					}
				}
				items = append(items, item)
			}

			mu.Lock()
			out[ticker] = items
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Get().Warnw("news feed unavailable", "tickers", distinct, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrUpstreamUnavailable, err)
	}
	return out, nil
}

// Predict forwards payload to the predictor and returns its answer verbatim.
func (s *marketService) Predict(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	if len(payload) == 0 || !json.Valid(payload) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Prediction payload must be valid JSON")
	}
	result, err := s.predictor.Predict(ctx, payload)
	if err != nil {
		logger.Get().Errorw("prediction request failed", "error", err)
		return nil, apperrors.Wrap(apperrors.ErrUpstreamUnavailable, err)
	}
	return result, nil
}
