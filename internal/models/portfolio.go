package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetType classifies what a purchase lot holds.
type AssetType string

const (
	AssetTypeStock AssetType = "stock"
	AssetTypeETF   AssetType = "etf"
	AssetTypeFund  AssetType = "mutual_fund"
	AssetTypeBond  AssetType = "bond"
	AssetTypeOther AssetType = "other"
)

// Portfolio marks that a user owns a ledger. Lots and sales hang off the user ID.
type Portfolio struct {
	Record
	UserID string `gorm:"not null;uniqueIndex" json:"userId"`
}

// PurchaseLot is one immutable buy record.
type PurchaseLot struct {
	Record
	UserID        string          `gorm:"not null;index:idx_lot_user_ticker" json:"userId"`
	Ticker        string          `gorm:"not null;index:idx_lot_user_ticker" json:"ticker"`
	Name          string          `json:"name"`
	AssetType     AssetType       `gorm:"not null;default:stock" json:"assetType"`
	PurchaseDate  time.Time       `gorm:"not null" json:"purchaseDate"`
	Quantity      decimal.Decimal `gorm:"type:numeric(20,6);not null" json:"quantity"`
	PurchasePrice decimal.Decimal `gorm:"type:numeric(20,6);not null" json:"purchasePrice"`
	BrokerageFees decimal.Decimal `gorm:"type:numeric(20,6);not null;default:0" json:"brokerageFees"`
	TotalCost     decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"totalCost"`
}

// SaleEvent is one immutable sell record.
type SaleEvent struct {
	Record
	UserID         string          `gorm:"not null;index:idx_sale_user_ticker" json:"userId"`
	Ticker         string          `gorm:"not null;index:idx_sale_user_ticker" json:"ticker"`
	SellDate       time.Time       `gorm:"not null" json:"sellDate"`
	QuantitySold   decimal.Decimal `gorm:"type:numeric(20,6);not null" json:"quantitySold"`
	SellingPrice   decimal.Decimal `gorm:"type:numeric(20,6);not null" json:"sellingPrice"`
	BrokerageFees  decimal.Decimal `gorm:"type:numeric(20,6);not null;default:0" json:"brokerageFees"`
	TotalSaleValue decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"totalSaleValue"`
}

// LotCost is quantity*price + fees rounded to cents.
func LotCost(quantity, price, fees decimal.Decimal) decimal.Decimal {
	return quantity.Mul(price).Add(fees).Round(2)
}

// SaleValue is quantity*price - fees rounded to cents.
func SaleValue(quantity, price, fees decimal.Decimal) decimal.Decimal {
	return quantity.Mul(price).Sub(fees).Round(2)
}
