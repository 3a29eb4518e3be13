package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	apperrors "investwise/internal/errors"
	"investwise/internal/models"
)

// Holding is the derived position in one ticker.
type Holding struct {
	Ticker               string           `json:"ticker"`
	Name                 string           `json:"name"`
	AssetType            models.AssetType `json:"assetType"`
	TotalQuantity        decimal.Decimal  `json:"totalQuantity"`
	TotalCost            decimal.Decimal  `json:"totalCost"`
	AveragePurchasePrice decimal.Decimal  `json:"averagePurchasePrice"`
}

// OpenLot is a purchase lot with the quantity left after FIFO consumption.
type OpenLot struct {
	models.PurchaseLot
	RemainingQuantity decimal.Decimal `json:"remainingQuantity"`
	RemainingCost     decimal.Decimal `json:"remainingCost"`
}

// AveragePrice divides cost by quantity. A zero quantity means the ledger or
// the caller produced an impossible holding.
func AveragePrice(totalCost, totalQuantity decimal.Decimal) (decimal.Decimal, error) {
	if totalQuantity.IsZero() {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrDataIntegrity, "Cannot average a holding with zero quantity")
	}
	return totalCost.Div(totalQuantity).Round(4), nil
}

// endOfDay returns the last instant of t's UTC calendar day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
}

// FoldLedger consumes sales against lots FIFO by purchase date (ties keep the
// given order, which callers supply as insertion order) and returns the open
// lots in ticker first-seen order. A non-nil asOf ignores events dated after
// that UTC day.
func FoldLedger(lots []models.PurchaseLot, sales []models.SaleEvent, asOf *time.Time) ([]OpenLot, error) {
	var cutoff time.Time
	if asOf != nil {
		cutoff = endOfDay(*asOf)
	}
	include := func(t time.Time) bool { return asOf == nil || !t.After(cutoff) }

	var order []string
	byTicker := make(map[string][]models.PurchaseLot)
	for _, lot := range lots {
		if !include(lot.PurchaseDate) {
			continue
		}
		if !lot.Quantity.IsPositive() {
			return nil, apperrors.Wrap(apperrors.ErrDataIntegrity,
				fmt.Errorf("lot %s for %s has non-positive quantity %s", lot.ID, lot.Ticker, lot.Quantity))
		}
		if _, ok := byTicker[lot.Ticker]; !ok {
			order = append(order, lot.Ticker)
		}
		byTicker[lot.Ticker] = append(byTicker[lot.Ticker], lot)
	}

	sold := make(map[string]decimal.Decimal)
	for _, sale := range sales {
		if !include(sale.SellDate) {
			continue
		}
		sold[sale.Ticker] = sold[sale.Ticker].Add(sale.QuantitySold)
	}
	for ticker, q := range sold {
		if _, ok := byTicker[ticker]; !ok && q.IsPositive() {
			return nil, apperrors.Wrap(apperrors.ErrDataIntegrity,
				fmt.Errorf("sales of %s %s without any purchase", q, ticker))
		}
	}

	var open []OpenLot
	for _, ticker := range order {
		tickerLots := byTicker[ticker]
		sort.SliceStable(tickerLots, func(i, j int) bool {
			return tickerLots[i].PurchaseDate.Before(tickerLots[j].PurchaseDate)
		})

		remainingToConsume := sold[ticker]
		for _, lot := range tickerLots {
			consumed := decimal.Min(lot.Quantity, remainingToConsume)
			remainingToConsume = remainingToConsume.Sub(consumed)

			remaining := lot.Quantity.Sub(consumed)
			if !remaining.IsPositive() {
				continue
			}
			open = append(open, OpenLot{
				PurchaseLot:       lot,
				RemainingQuantity: remaining,
				RemainingCost:     remainingCost(lot, remaining),
			})
		}
		if remainingToConsume.IsPositive() {
			return nil, apperrors.Wrap(apperrors.ErrDataIntegrity,
				fmt.Errorf("sales of %s exceed purchases by %s", ticker, remainingToConsume))
		}
	}
	return open, nil
}

// remainingCost is remaining*price plus the lot's full brokerage fee. The fee
// stays with the lot until its last share is sold.
func remainingCost(lot models.PurchaseLot, remaining decimal.Decimal) decimal.Decimal {
	return remaining.Mul(lot.PurchasePrice).Add(lot.BrokerageFees)
}

// AggregateOpenLots sums open lots per ticker, keeping first-seen order.
func AggregateOpenLots(open []OpenLot) ([]Holding, error) {
	var order []string
	byTicker := make(map[string]*Holding)
	for _, lot := range open {
		h, ok := byTicker[lot.Ticker]
		if !ok {
			h = &Holding{Ticker: lot.Ticker, Name: lot.Name, AssetType: lot.AssetType}
			byTicker[lot.Ticker] = h
			order = append(order, lot.Ticker)
		}
		h.TotalQuantity = h.TotalQuantity.Add(lot.RemainingQuantity)
		h.TotalCost = h.TotalCost.Add(lot.RemainingCost)
	}

	holdings := make([]Holding, 0, len(order))
	for _, ticker := range order {
		h := byTicker[ticker]
		h.TotalCost = h.TotalCost.Round(2)
		avg, err := AveragePrice(h.TotalCost, h.TotalQuantity)
		if err != nil {
			return nil, err
		}
		h.AveragePurchasePrice = avg
		holdings = append(holdings, *h)
	}
	return holdings, nil
}

// FoldHoldings derives the active holdings from a ledger.
func FoldHoldings(lots []models.PurchaseLot, sales []models.SaleEvent, asOf *time.Time) ([]Holding, error) {
	open, err := FoldLedger(lots, sales, asOf)
	if err != nil {
		return nil, err
	}
	return AggregateOpenLots(open)
}
