package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceKind separates resolved valuation quotes from open/close bars kept for
// the market endpoints.
type PriceKind string

const (
	PriceKindQuote PriceKind = "quote"
	PriceKindBar   PriceKind = "bar"
)

// DailyStockPrice caches one price row per (ticker, trading day, kind).
type DailyStockPrice struct {
	Record
	Ticker    string          `gorm:"not null;uniqueIndex:idx_daily_price" json:"ticker"`
	Date      string          `gorm:"type:varchar(10);not null;uniqueIndex:idx_daily_price" json:"date"`
	Kind      PriceKind       `gorm:"type:varchar(8);not null;uniqueIndex:idx_daily_price" json:"kind"`
	Price     decimal.Decimal `gorm:"type:numeric(20,6)" json:"price"`
	Open      decimal.Decimal `gorm:"type:numeric(20,6)" json:"open"`
	Close     decimal.Decimal `gorm:"type:numeric(20,6)" json:"close"`
	Source    string          `json:"source"`
	ExpiresAt time.Time       `gorm:"not null" json:"expiresAt"`
}
