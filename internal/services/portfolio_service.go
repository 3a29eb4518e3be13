package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "investwise/internal/errors"
	"investwise/internal/logger"
	"investwise/internal/metrics"
	"investwise/internal/models"
	"investwise/internal/pagination"
)

// PurchaseInput is a lot to append to the ledger.
type PurchaseInput struct {
	Ticker        string
	Name          string
	AssetType     models.AssetType
	PurchaseDate  time.Time
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
	BrokerageFees decimal.Decimal
}

// SaleInput is a sale to check against holdings and append to the ledger.
type SaleInput struct {
	Ticker        string
	SellDate      time.Time
	QuantitySold  decimal.Decimal
	SellingPrice  decimal.Decimal
	BrokerageFees decimal.Decimal
}

// SaleResult is the recorded sale and the holding left behind. Holding is nil
// when the sale closed the position.
type SaleResult struct {
	Sale              models.SaleEvent `json:"sale"`
	Holding           *Holding         `json:"holding"`
	RemainingQuantity decimal.Decimal  `json:"remainingQuantity"`
}

// portfolioService owns the purchase lots and sale events.
type portfolioService struct {
	db         *gorm.DB
	audit      AuditServicer
	recomputer Recomputer
	locks      *keyedMutex
}

// NewPortfolioService creates the ledger service. recomputer may be nil, in
// which case sales do not schedule a valuation.
func NewPortfolioService(db *gorm.DB, audit AuditServicer, recomputer Recomputer) *portfolioService {
	return &portfolioService{db: db, audit: audit, recomputer: recomputer, locks: newKeyedMutex()}
}

var (
	_ PortfolioServicer = (*portfolioService)(nil)
	_ Ledger            = (*portfolioService)(nil)
)

// SetRecomputer wires the recompute trigger after construction; the valuation
// service it drives depends on this ledger.
func (s *portfolioService) SetRecomputer(r Recomputer) {
	s.recomputer = r
}

func normalizeTicker(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}

func validateAmounts(quantity, price, fees decimal.Decimal) error {
	switch {
	case !quantity.IsPositive():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Quantity must be greater than zero")
	case price.IsNegative():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Price must not be negative")
	case fees.IsNegative():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Brokerage fees must not be negative")
	}
	return nil
}

// ensurePortfolio creates the marker inside tx when absent and reports whether it did.
func ensurePortfolio(tx *gorm.DB, userID string) (bool, error) {
	var p models.Portfolio
	res := tx.Where(models.Portfolio{UserID: userID}).FirstOrCreate(&p)
	if res.Error != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *portfolioService) portfolioExists(tx *gorm.DB, userID string) error {
	var count int64
	if err := tx.Model(&models.Portfolio{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrPortfolioNotFound
	}
	return nil
}

// EnsurePortfolio creates an empty portfolio for the user if none exists.
func (s *portfolioService) EnsurePortfolio(ctx context.Context, userID string) (bool, error) {
	return ensurePortfolio(s.db.WithContext(ctx), userID)
}

// RecordPurchase validates and appends a purchase lot.
func (s *portfolioService) RecordPurchase(ctx context.Context, userID string, in PurchaseInput) (*models.PurchaseLot, error) {
	ticker := normalizeTicker(in.Ticker)
	if userID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "userId is required")
	}
	if ticker == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Ticker is required")
	}
	if in.PurchaseDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Purchase date is required")
	}
	if err := validateAmounts(in.Quantity, in.PurchasePrice, in.BrokerageFees); err != nil {
		return nil, err
	}

	assetType := in.AssetType
	if assetType == "" {
		assetType = models.AssetTypeStock
	}

	lot := &models.PurchaseLot{
		UserID:        userID,
		Ticker:        ticker,
		Name:          strings.TrimSpace(in.Name),
		AssetType:     assetType,
		PurchaseDate:  in.PurchaseDate.UTC(),
		Quantity:      in.Quantity,
		PurchasePrice: in.PurchasePrice,
		BrokerageFees: in.BrokerageFees,
		TotalCost:     models.LotCost(in.Quantity, in.PurchasePrice, in.BrokerageFees),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ensurePortfolio(tx, userID); err != nil {
			return err
		}
		if err := tx.Create(lot).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		metrics.RecordLedgerEvent("purchase", "error")
		return nil, err
	}
	metrics.RecordLedgerEvent("purchase", "recorded")

	s.audit.Log(ctx, userID, "RECORD_PURCHASE", "purchase_lot", lot.ID, map[string]interface{}{
		"ticker":   lot.Ticker,
		"quantity": lot.Quantity.String(),
		"price":    lot.PurchasePrice.String(),
	})
	return lot, nil
}

// RecordSale checks the derived holding and appends the sale. Sales on the
// same (user, ticker) are serialized in-process and, on PostgreSQL, across
// processes with a transaction-scoped advisory lock.
func (s *portfolioService) RecordSale(ctx context.Context, userID string, in SaleInput) (*SaleResult, error) {
	ticker := normalizeTicker(in.Ticker)
	if userID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "userId is required")
	}
	if ticker == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Ticker is required")
	}
	if err := validateAmounts(in.QuantitySold, in.SellingPrice, in.BrokerageFees); err != nil {
		return nil, err
	}
	sellDate := in.SellDate
	if sellDate.IsZero() {
		sellDate = time.Now()
	}

	key := userID + "|" + ticker
	unlock := s.locks.Lock(key)
	defer unlock()

	var result *SaleResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		if err := s.portfolioExists(tx, userID); err != nil {
			return err
		}

		lots, sales, err := loadLedger(tx, userID, ticker)
		if err != nil {
			return err
		}
		holdings, err := FoldHoldings(lots, sales, nil)
		if err != nil {
			return err
		}
		if len(holdings) == 0 {
			return apperrors.ErrHoldingNotFound
		}
		held := holdings[0].TotalQuantity
		if held.LessThan(in.QuantitySold) {
			return apperrors.WithMessage(apperrors.ErrInsufficientHolding,
				fmt.Sprintf("Cannot sell %s shares of %s, only %s held", in.QuantitySold, ticker, held))
		}

		sale := models.SaleEvent{
			UserID:         userID,
			Ticker:         ticker,
			SellDate:       sellDate.UTC(),
			QuantitySold:   in.QuantitySold,
			SellingPrice:   in.SellingPrice,
			BrokerageFees:  in.BrokerageFees,
			TotalSaleValue: models.SaleValue(in.QuantitySold, in.SellingPrice, in.BrokerageFees),
		}
		if err := checkSaleDated(lots, sales, sale); err != nil {
			return err
		}
		if err := tx.Create(&sale).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		after, err := FoldHoldings(lots, append(sales, sale), nil)
		if err != nil {
			return err
		}
		result = &SaleResult{Sale: sale, RemainingQuantity: decimal.Zero}
		if len(after) > 0 {
			result.Holding = &after[0]
			result.RemainingQuantity = after[0].TotalQuantity
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.StatusCode < 500 {
			metrics.RecordLedgerEvent("sale", "rejected")
		} else {
			metrics.RecordLedgerEvent("sale", "error")
		}
		return nil, err
	}
	metrics.RecordLedgerEvent("sale", "recorded")

	s.audit.Log(ctx, userID, "RECORD_SALE", "sale_event", result.Sale.ID, map[string]interface{}{
		"ticker":    ticker,
		"quantity":  in.QuantitySold.String(),
		"price":     in.SellingPrice.String(),
		"remaining": result.RemainingQuantity.String(),
	})

	if s.recomputer != nil {
		s.recomputer.Trigger(userID)
	}
	logger.Get().Infow("sale recorded", "user_id", userID, "ticker", ticker, "remaining", result.RemainingQuantity.String())
	return result, nil
}

// checkSaleDated rejects a sale that would oversell the holding on its own
// sell date or on the date of any later sale. Holdings only drop on sale
// dates, so those are the points where the ledger can go negative.
func checkSaleDated(lots []models.PurchaseLot, sales []models.SaleEvent, sale models.SaleEvent) error {
	candidate := append(append([]models.SaleEvent(nil), sales...), sale)

	holdings, err := FoldHoldings(lots, sales, &sale.SellDate)
	if err != nil {
		return err
	}
	held := decimal.Zero
	if len(holdings) > 0 {
		held = holdings[0].TotalQuantity
	}
	if held.LessThan(sale.QuantitySold) {
		return apperrors.WithMessage(apperrors.ErrInsufficientHolding,
			fmt.Sprintf("Cannot sell %s shares of %s on %s, only %s held on that date",
				sale.QuantitySold, sale.Ticker, sale.SellDate.Format("2006-01-02"), held))
	}

	for _, later := range sales {
		if later.SellDate.Before(sale.SellDate) {
			continue
		}
		asOf := later.SellDate
		if _, err := FoldLedger(lots, candidate, &asOf); err != nil {
			return apperrors.WithMessage(apperrors.ErrInsufficientHolding,
				fmt.Sprintf("Cannot sell %s shares of %s on %s, the sale on %s would no longer be covered",
					sale.QuantitySold, sale.Ticker, sale.SellDate.Format("2006-01-02"), later.SellDate.Format("2006-01-02")))
		}
	}
	return nil
}

// loadLedger returns a user's lots and sales in insertion order. An empty
// ticker loads every ticker.
func loadLedger(tx *gorm.DB, userID, ticker string) ([]models.PurchaseLot, []models.SaleEvent, error) {
	lotQuery := tx.Where("user_id = ?", userID)
	saleQuery := tx.Where("user_id = ?", userID)
	if ticker != "" {
		lotQuery = lotQuery.Where("ticker = ?", ticker)
		saleQuery = saleQuery.Where("ticker = ?", ticker)
	}

	var lots []models.PurchaseLot
	if err := lotQuery.Order("created_at ASC").Order("id ASC").Find(&lots).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var sales []models.SaleEvent
	if err := saleQuery.Order("created_at ASC").Order("id ASC").Find(&sales).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return lots, sales, nil
}

// ListOpenLots returns lots with quantity left after FIFO consumption.
func (s *portfolioService) ListOpenLots(ctx context.Context, userID string) ([]OpenLot, error) {
	db := s.db.WithContext(ctx)
	if err := s.portfolioExists(db, userID); err != nil {
		return nil, err
	}
	lots, sales, err := loadLedger(db, userID, "")
	if err != nil {
		return nil, err
	}
	open, err := FoldLedger(lots, sales, nil)
	if err != nil {
		return nil, err
	}
	if open == nil {
		open = []OpenLot{}
	}
	return open, nil
}

// Aggregate returns the active holdings of an existing portfolio.
func (s *portfolioService) Aggregate(ctx context.Context, userID string) ([]Holding, error) {
	db := s.db.WithContext(ctx)
	if err := s.portfolioExists(db, userID); err != nil {
		return nil, err
	}
	return s.HoldingsAsOf(ctx, userID, nil)
}

// HoldingsAsOf folds the ledger up to asOf (nil = everything). A user without
// a portfolio has no holdings.
func (s *portfolioService) HoldingsAsOf(ctx context.Context, userID string, asOf *time.Time) ([]Holding, error) {
	lots, sales, err := loadLedger(s.db.WithContext(ctx), userID, "")
	if err != nil {
		return nil, err
	}
	return FoldHoldings(lots, sales, asOf)
}

// PurchaseDates returns the distinct UTC purchase days, ascending.
func (s *portfolioService) PurchaseDates(ctx context.Context, userID string) ([]time.Time, error) {
	var dates []time.Time
	if err := s.db.WithContext(ctx).Model(&models.PurchaseLot{}).
		Where("user_id = ?", userID).
		Order("purchase_date ASC").
		Pluck("purchase_date", &dates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var days []time.Time
	seen := make(map[string]bool)
	for _, d := range dates {
		y, m, dd := d.UTC().Date()
		day := time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
		key := day.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true
		days = append(days, day)
	}
	return days, nil
}

// ListPurchases returns purchase history, newest first.
func (s *portfolioService) ListPurchases(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.PurchaseLot], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.WithContext(ctx).Model(&models.PurchaseLot{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var lots []models.PurchaseLot
	if err := base.Scopes(pagination.NewestFirst("purchase_date"), pagination.Paginate(page)).Find(&lots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(lots, page, totalItems)
	return &result, nil
}

// ListSales returns sale history, newest first.
func (s *portfolioService) ListSales(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.SaleEvent], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.WithContext(ctx).Model(&models.SaleEvent{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var sales []models.SaleEvent
	if err := base.Scopes(pagination.NewestFirst("sell_date"), pagination.Paginate(page)).Find(&sales).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(sales, page, totalItems)
	return &result, nil
}
