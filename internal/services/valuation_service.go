package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "investwise/internal/errors"
	"investwise/internal/logger"
	"investwise/internal/metrics"
	"investwise/internal/models"
	"investwise/internal/pricing"
)

// Valuation triggers, used as metric labels.
const (
	TriggerManual   = "manual"
	TriggerSale     = "sale"
	TriggerBackfill = "backfill"
)

// PriceResolver is the part of pricing.Resolver the valuation engine uses.
type PriceResolver interface {
	ResolveAll(ctx context.Context, tickers []string) map[string]pricing.Resolution
	LoadHistory(ctx context.Context, src pricing.History, tickers []string) map[string]pricing.Series
}

var _ PriceResolver = (*pricing.Resolver)(nil)

// valuationService values holdings and persists wealth snapshots.
type valuationService struct {
	db      *gorm.DB
	ledger  Ledger
	prices  PriceResolver
	history pricing.History
	now     func() time.Time
}

// NewValuationService creates the valuation engine. history may be nil, in
// which case backfilled snapshots carry invested cost only.
func NewValuationService(db *gorm.DB, ledger Ledger, prices PriceResolver, history pricing.History) *valuationService {
	return &valuationService{db: db, ledger: ledger, prices: prices, history: history, now: time.Now}
}

var _ ValuationServicer = (*valuationService)(nil)

func tickersOf(holdings []Holding) []string {
	out := make([]string, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, h.Ticker)
	}
	return out
}

// ComputeAndSnapshot values current holdings at resolved prices and appends a
// snapshot at the current instant. Unpriced tickers contribute nothing to
// totalWealth and mark the valuation degraded.
func (s *valuationService) ComputeAndSnapshot(ctx context.Context, userID, trigger string) (*Valuation, error) {
	if userID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "userId is required")
	}
	if trigger == "" {
		trigger = TriggerManual
	}

	holdings, err := s.ledger.HoldingsAsOf(ctx, userID, nil)
	if err != nil {
		metrics.RecordValuation(trigger, "error")
		return nil, err
	}

	val := &Valuation{
		Status:             models.ValuationComplete,
		UnavailableTickers: []string{},
		Positions:          []Position{},
	}

	wealth, invested := decimal.Zero, decimal.Zero
	if len(holdings) > 0 {
		resolutions := s.prices.ResolveAll(ctx, tickersOf(holdings))
		for _, h := range holdings {
			invested = invested.Add(h.TotalCost)

			res, ok := resolutions[h.Ticker]
			pos := Position{Ticker: h.Ticker, Quantity: h.TotalQuantity, Status: string(pricing.StatusUnavailable)}
			if ok && res.Resolved() {
				pos.Price = res.Price
				pos.Value = res.Price.Mul(h.TotalQuantity).Round(2)
				pos.Source = res.Source
				pos.Status = string(pricing.StatusResolved)
				wealth = wealth.Add(res.Price.Mul(h.TotalQuantity))
			} else {
				val.Status = models.ValuationDegraded
				val.UnavailableTickers = append(val.UnavailableTickers, h.Ticker)
			}
			val.Positions = append(val.Positions, pos)
		}
	}

	val.Snapshot = models.WealthSnapshot{
		UserID:          userID,
		CalculationDate: s.now().UTC(),
		TotalWealth:     wealth.Round(2),
		TotalInvested:   invested.Round(2),
		Status:          val.Status,
	}
	if err := s.db.WithContext(ctx).Create(&val.Snapshot).Error; err != nil {
		metrics.RecordValuation(trigger, "error")
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	metrics.RecordValuation(trigger, string(val.Status))
	logger.With("user_id", userID, "trigger", trigger).Infow("wealth snapshot recorded",
		"total_wealth", val.Snapshot.TotalWealth.String(),
		"total_invested", val.Snapshot.TotalInvested.String(),
		"status", val.Status,
		"unavailable", len(val.UnavailableTickers),
	)
	return val, nil
}

// upsertSnapshot writes snap at its (user, calculation date), overwriting
// totals of an existing row.
func upsertSnapshot(db *gorm.DB, snap *models.WealthSnapshot) error {
	var existing models.WealthSnapshot
	result := db.Where("user_id = ? AND calculation_date = ?", snap.UserID, snap.CalculationDate).First(&existing)
	switch {
	case result.Error == nil:
		if err := db.Model(&existing).Updates(map[string]interface{}{
			"total_wealth":   snap.TotalWealth,
			"total_invested": snap.TotalInvested,
			"status":         snap.Status,
		}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		snap.ID = existing.ID
		snap.CreatedAt = existing.CreatedAt
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		if err := db.Create(snap).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	default:
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return nil
}

func utcMidnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Backfill rebuilds one snapshot per distinct purchase day, valuing the
// holdings of that day at the close on or before it. Rerunning overwrites the
// same rows.
func (s *valuationService) Backfill(ctx context.Context, userID string) (*BackfillResult, error) {
	if userID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "userId is required")
	}

	days, err := s.ledger.PurchaseDates(ctx, userID)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	result := &BackfillResult{UserID: userID, Snapshots: []models.WealthSnapshot{}}

	if len(days) == 0 {
		snap := models.WealthSnapshot{
			UserID:          userID,
			CalculationDate: utcMidnight(s.now()),
			TotalWealth:     decimal.Zero,
			TotalInvested:   decimal.Zero,
			Status:          models.ValuationComplete,
		}
		if err := upsertSnapshot(db, &snap); err != nil {
			return nil, err
		}
		result.Snapshots = append(result.Snapshots, snap)
		metrics.RecordValuation(TriggerBackfill, string(snap.Status))
		return result, nil
	}

	holdingsByDay := make([][]Holding, len(days))
	var tickers []string
	for i, day := range days {
		holdings, err := s.ledger.HoldingsAsOf(ctx, userID, &day)
		if err != nil {
			return nil, err
		}
		holdingsByDay[i] = holdings
		tickers = append(tickers, tickersOf(holdings)...)
	}

	series := map[string]pricing.Series{}
	if s.history != nil {
		series = s.prices.LoadHistory(ctx, s.history, tickers)
	}

	for i, day := range days {
		key := day.Format("2006-01-02")
		snap := models.WealthSnapshot{
			UserID:          userID,
			CalculationDate: day,
			Status:          models.ValuationComplete,
		}
		wealth, invested := decimal.Zero, decimal.Zero
		for _, h := range holdingsByDay[i] {
			invested = invested.Add(h.TotalCost)
			if closePrice, ok := series[h.Ticker].OnOrBefore(key); ok {
				wealth = wealth.Add(closePrice.Mul(h.TotalQuantity))
			} else {
				snap.Status = models.ValuationDegraded
			}
		}
		snap.TotalWealth = wealth.Round(2)
		snap.TotalInvested = invested.Round(2)

		if err := upsertSnapshot(db, &snap); err != nil {
			return nil, err
		}
		if snap.Status == models.ValuationDegraded {
			result.Degraded++
		}
		metrics.RecordValuation(TriggerBackfill, string(snap.Status))
		result.Snapshots = append(result.Snapshots, snap)
	}

	logger.With("user_id", userID).Infow("wealth backfill complete",
		"snapshots", len(result.Snapshots),
		"degraded", result.Degraded,
	)
	return result, nil
}

// Latest returns the most recent snapshot.
func (s *valuationService) Latest(ctx context.Context, userID string) (*models.WealthSnapshot, error) {
	var snap models.WealthSnapshot
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("calculation_date DESC").
		First(&snap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWealthSnapshotAbsent
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &snap, nil
}

// History returns the last snapshot of each UTC month over the trailing
// twelve months, oldest first.
func (s *valuationService) History(ctx context.Context, userID string) ([]models.WealthSnapshot, error) {
	since := s.now().UTC().AddDate(0, -12, 0)

	var snaps []models.WealthSnapshot
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND calculation_date >= ?", userID, since).
		Order("calculation_date ASC").
		Find(&snaps).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	type month struct {
		year int
		m    time.Month
	}
	latest := make(map[month]models.WealthSnapshot)
	for _, snap := range snaps {
		at := snap.CalculationDate.UTC()
		key := month{at.Year(), at.Month()}
		if cur, ok := latest[key]; !ok || !at.Before(cur.CalculationDate) {
			latest[key] = snap
		}
	}

	out := make([]models.WealthSnapshot, 0, len(latest))
	for _, snap := range latest {
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CalculationDate.Before(out[j].CalculationDate)
	})
	return out, nil
}

// CreateInitial records a zero snapshot unless the user already has one.
func (s *valuationService) CreateInitial(ctx context.Context, userID string) (*models.WealthSnapshot, bool, error) {
	if userID == "" {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "userId is required")
	}

	var snap models.WealthSnapshot
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).Order("calculation_date ASC").First(&snap).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		snap = models.WealthSnapshot{
			UserID:          userID,
			CalculationDate: s.now().UTC(),
			TotalWealth:     decimal.Zero,
			TotalInvested:   decimal.Zero,
			Status:          models.ValuationComplete,
		}
		if err := tx.Create(&snap).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &snap, created, nil
}
