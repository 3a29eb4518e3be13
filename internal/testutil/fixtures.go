package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"investwise/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewUserID returns a unique user identifier for a test.
func NewUserID() string {
	return fmt.Sprintf("user-%d", nextID())
}

// Dec parses a decimal literal, panicking on malformed input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestPortfolio creates the portfolio marker for a fresh user.
func CreateTestPortfolio(t *testing.T, db *gorm.DB) string {
	t.Helper()

	userID := NewUserID()
	if err := db.Create(&models.Portfolio{UserID: userID}).Error; err != nil {
		t.Fatalf("failed to create test portfolio: %v", err)
	}
	return userID
}

// CreateTestLot appends a purchase lot directly to the ledger.
func CreateTestLot(t *testing.T, db *gorm.DB, userID, ticker string, date time.Time, quantity, price, fees string) *models.PurchaseLot {
	t.Helper()

	lot := &models.PurchaseLot{
		UserID:        userID,
		Ticker:        ticker,
		Name:          fmt.Sprintf("%s Corp", ticker),
		AssetType:     models.AssetTypeStock,
		PurchaseDate:  date,
		Quantity:      Dec(quantity),
		PurchasePrice: Dec(price),
		BrokerageFees: Dec(fees),
		TotalCost:     models.LotCost(Dec(quantity), Dec(price), Dec(fees)),
	}
	if err := db.Create(lot).Error; err != nil {
		t.Fatalf("failed to create test lot: %v", err)
	}
	return lot
}

// CreateTestSale appends a sale event directly to the ledger, bypassing holding checks.
func CreateTestSale(t *testing.T, db *gorm.DB, userID, ticker string, date time.Time, quantity, price, fees string) *models.SaleEvent {
	t.Helper()

	sale := &models.SaleEvent{
		UserID:         userID,
		Ticker:         ticker,
		SellDate:       date,
		QuantitySold:   Dec(quantity),
		SellingPrice:   Dec(price),
		BrokerageFees:  Dec(fees),
		TotalSaleValue: models.SaleValue(Dec(quantity), Dec(price), Dec(fees)),
	}
	if err := db.Create(sale).Error; err != nil {
		t.Fatalf("failed to create test sale: %v", err)
	}
	return sale
}

// CreateTestSnapshot persists a wealth snapshot at the given instant.
func CreateTestSnapshot(t *testing.T, db *gorm.DB, userID string, at time.Time, wealth, invested string) *models.WealthSnapshot {
	t.Helper()

	snap := &models.WealthSnapshot{
		UserID:          userID,
		CalculationDate: at,
		TotalWealth:     Dec(wealth),
		TotalInvested:   Dec(invested),
		Status:          models.ValuationComplete,
	}
	if err := db.Create(snap).Error; err != nil {
		t.Fatalf("failed to create test snapshot: %v", err)
	}
	return snap
}
