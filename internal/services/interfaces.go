package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"investwise/internal/models"
	"investwise/internal/pagination"
	"investwise/internal/provider"
)

// PortfolioServicer defines the contract for the purchase/sale ledger.
type PortfolioServicer interface {
	RecordPurchase(ctx context.Context, userID string, in PurchaseInput) (*models.PurchaseLot, error)
	RecordSale(ctx context.Context, userID string, in SaleInput) (*SaleResult, error)
	ListOpenLots(ctx context.Context, userID string) ([]OpenLot, error)
	Aggregate(ctx context.Context, userID string) ([]Holding, error)
	ListPurchases(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.PurchaseLot], error)
	ListSales(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.SaleEvent], error)
	EnsurePortfolio(ctx context.Context, userID string) (bool, error)
}

// Ledger is the read side of the portfolio the valuation engine depends on.
type Ledger interface {
	HoldingsAsOf(ctx context.Context, userID string, asOf *time.Time) ([]Holding, error)
	PurchaseDates(ctx context.Context, userID string) ([]time.Time, error)
}

// Position is one priced holding inside a valuation.
type Position struct {
	Ticker   string          `json:"ticker"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Value    decimal.Decimal `json:"value"`
	Source   string          `json:"source,omitempty"`
	Status   string          `json:"status"`
}

// Valuation is the outcome of computeAndSnapshot.
type Valuation struct {
	Snapshot           models.WealthSnapshot  `json:"snapshot"`
	Status             models.ValuationStatus `json:"status"`
	UnavailableTickers []string               `json:"unavailableTickers"`
	Positions          []Position             `json:"positions"`
}

// BackfillResult summarizes a historical rebuild.
type BackfillResult struct {
	UserID    string                  `json:"userId"`
	Snapshots []models.WealthSnapshot `json:"snapshots"`
	Degraded  int                     `json:"degraded"`
}

// ValuationServicer defines the contract for wealth snapshots.
type ValuationServicer interface {
	ComputeAndSnapshot(ctx context.Context, userID, trigger string) (*Valuation, error)
	Backfill(ctx context.Context, userID string) (*BackfillResult, error)
	Latest(ctx context.Context, userID string) (*models.WealthSnapshot, error)
	History(ctx context.Context, userID string) ([]models.WealthSnapshot, error)
	CreateInitial(ctx context.Context, userID string) (*models.WealthSnapshot, bool, error)
}

// Recomputer schedules an asynchronous valuation for a user.
type Recomputer interface {
	Trigger(userID string)
}

// SentimentSummary is the headline sentiment of the newest article about a ticker.
type SentimentSummary struct {
	Ticker                string  `json:"ticker"`
	OverallSentimentScore float64 `json:"overallSentimentScore"`
	TickerSentimentScore  float64 `json:"tickerSentimentScore"`
	Title                 string  `json:"title,omitempty"`
	PublishedAt           string  `json:"publishedAt,omitempty"`
}

// NewsItem is one article as returned by the news feed endpoint.
type NewsItem struct {
	Title            string                     `json:"title"`
	URL              string                     `json:"url"`
	Summary          string                     `json:"summary"`
	SentimentLabel   string                     `json:"sentiment_label"`
	SentimentScore   float64                    `json:"sentiment_score"`
	TickerSentiments []provider.TickerSentiment `json:"ticker_sentiments"`
	PublishedDate    string                     `json:"published_date"`
}

// MarketServicer defines the contract for market data passthrough.
type MarketServicer interface {
	Search(ctx context.Context, query string) (any, error)
	LatestOpenClose(ctx context.Context, ticker string) (*provider.OpenClose, error)
	LatestDaily(ctx context.Context, ticker string) (*provider.DailyBar, error)
	LatestIntraday(ctx context.Context, ticker string) (*provider.IntradayBar, error)
	PriceHistory(ctx context.Context, ticker string) ([]provider.DailyBar, error)
	Sentiment(ctx context.Context, ticker string) (*SentimentSummary, error)
	NewsByTicker(ctx context.Context, tickers []string) (map[string][]NewsItem, error)
	Predict(ctx context.Context, payload json.RawMessage) (json.RawMessage, error)
}

// UserProfileServicer defines the contract for user profiles.
type UserProfileServicer interface {
	CreateProfile(ctx context.Context, in ProfileInput) (*models.UserProfile, bool, error)
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, userID, action, resourceType, resourceID string, changes map[string]interface{})
}
