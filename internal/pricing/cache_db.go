package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"investwise/internal/models"
)

// DBCache stores quotes in the daily_stock_prices table, one row per
// (ticker, day). Rows are kept after expiry as a price history.
type DBCache struct {
	db  *gorm.DB
	now func() time.Time
}

// NewDBCache creates a database-backed cache.
func NewDBCache(db *gorm.DB) *DBCache {
	return &DBCache{db: db, now: time.Now}
}

// Get returns the quote for (ticker, day) if the row has not expired.
func (c *DBCache) Get(ctx context.Context, ticker, day string) (Quote, bool, error) {
	var row models.DailyStockPrice
	err := c.db.WithContext(ctx).
		Where("ticker = ? AND date = ? AND kind = ?", ticker, day, models.PriceKindQuote).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Quote{}, false, nil
	}
	if err != nil {
		return Quote{}, false, fmt.Errorf("db cache get: %w", err)
	}
	if !c.now().Before(row.ExpiresAt) {
		return Quote{}, false, nil
	}
	return Quote{Price: row.Price, Source: row.Source}, true, nil
}

// Set upserts the row for (ticker, day).
func (c *DBCache) Set(ctx context.Context, ticker, day string, q Quote, expiresAt time.Time) error {
	row := models.DailyStockPrice{
		Ticker:    ticker,
		Date:      day,
		Kind:      models.PriceKindQuote,
		Price:     q.Price,
		Close:     q.Price,
		Source:    q.Source,
		ExpiresAt: expiresAt,
	}
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}, {Name: "date"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "close", "source", "expires_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("db cache set: %w", err)
	}
	return nil
}
