package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValuationStatus reports whether every holding was priced.
type ValuationStatus string

const (
	ValuationComplete ValuationStatus = "complete"
	ValuationDegraded ValuationStatus = "degraded"
)

// WealthSnapshot is a point-in-time valuation of a user's portfolio.
// Snapshots are never deleted; (user_id, calculation_date) is unique.
type WealthSnapshot struct {
	Record
	UserID          string          `gorm:"not null;uniqueIndex:idx_snapshot_user_date" json:"userId"`
	CalculationDate time.Time       `gorm:"not null;uniqueIndex:idx_snapshot_user_date" json:"calculationDate"`
	TotalWealth     decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"totalWealth"`
	TotalInvested   decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"totalInvested"`
	Status          ValuationStatus `gorm:"not null;default:complete" json:"status"`
}
