package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"investwise/internal/models"
	"investwise/internal/pricing"
	"investwise/internal/testutil"
)

// priceSource is a pricing.Source with per-ticker prices; absent tickers fail.
type priceSource struct {
	name   string
	prices map[string]string
}

func (p *priceSource) Name() string { return p.name }

func (p *priceSource) LatestPrice(_ context.Context, ticker string) (decimal.Decimal, error) {
	raw, ok := p.prices[ticker]
	if !ok {
		return decimal.Zero, errors.New("no data")
	}
	return decimal.RequireFromString(raw), nil
}

// closeHistory is a pricing.History backed by fixed series.
type closeHistory map[string]map[string]string

func (h closeHistory) CloseSeries(_ context.Context, ticker string) (map[string]decimal.Decimal, error) {
	raw, ok := h[ticker]
	if !ok {
		return nil, errors.New("no history")
	}
	out := make(map[string]decimal.Decimal, len(raw))
	for day, v := range raw {
		out[day] = decimal.RequireFromString(v)
	}
	return out, nil
}

type valuationFixture struct {
	ledger *portfolioService
	svc    *valuationService
	done   func()
}

func newValuationFixture(t *testing.T, history pricing.History, sources ...pricing.Source) valuationFixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ledger := NewPortfolioService(db, NewAuditService(db), nil)
	resolver := pricing.NewResolver(nil, sources, pricing.Options{SourceTimeout: time.Second, Concurrency: 2, Location: time.UTC})
	svc := NewValuationService(db, ledger, resolver, history)
	return valuationFixture{ledger: ledger, svc: svc, done: func() { testutil.TeardownTestDB(t, db) }}
}

func countSnapshots(t *testing.T, f valuationFixture, userID string) int64 {
	t.Helper()
	var n int64
	f.svc.db.Model(&models.WealthSnapshot{}).Where("user_id = ?", userID).Count(&n)
	return n
}

func TestComputeAndSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("values_resolved_holdings", func(t *testing.T) {
		f := newValuationFixture(t, nil, &priceSource{name: "intraday", prices: map[string]string{"ACME": "120"}})
		defer f.done()
		userID := testutil.NewUserID()
		acmePurchases(t, f.ledger, userID)

		val, err := f.svc.ComputeAndSnapshot(ctx, userID, TriggerManual)
		testutil.AssertNoError(t, err)

		if !val.Snapshot.TotalWealth.Equal(testutil.Dec("1800")) {
			t.Errorf("expected wealth 1800, got %s", val.Snapshot.TotalWealth)
		}
		if !val.Snapshot.TotalInvested.Equal(testutil.Dec("1560")) {
			t.Errorf("expected invested 1560, got %s", val.Snapshot.TotalInvested)
		}
		if val.Status != models.ValuationComplete || len(val.UnavailableTickers) != 0 {
			t.Errorf("expected complete valuation, got %s %v", val.Status, val.UnavailableTickers)
		}
		if len(val.Positions) != 1 || val.Positions[0].Source != "intraday" {
			t.Errorf("unexpected positions %+v", val.Positions)
		}
	})

	t.Run("falls_back_to_daily", func(t *testing.T) {
		f := newValuationFixture(t, nil,
			&priceSource{name: "intraday", prices: map[string]string{}},
			&priceSource{name: "daily", prices: map[string]string{"ACME": "110"}},
		)
		defer f.done()
		userID := testutil.NewUserID()
		acmePurchases(t, f.ledger, userID)

		val, err := f.svc.ComputeAndSnapshot(ctx, userID, TriggerManual)
		testutil.AssertNoError(t, err)
		if !val.Snapshot.TotalWealth.Equal(testutil.Dec("1650")) || val.Positions[0].Source != "daily" {
			t.Errorf("expected 1650 from daily, got %s from %s", val.Snapshot.TotalWealth, val.Positions[0].Source)
		}
	})

	t.Run("all_sources_fail_is_degraded", func(t *testing.T) {
		f := newValuationFixture(t, nil,
			&priceSource{name: "intraday", prices: map[string]string{}},
			&priceSource{name: "daily", prices: map[string]string{}},
		)
		defer f.done()
		userID := testutil.NewUserID()
		acmePurchases(t, f.ledger, userID)

		val, err := f.svc.ComputeAndSnapshot(ctx, userID, TriggerManual)
		testutil.AssertNoError(t, err)
		if !val.Snapshot.TotalWealth.IsZero() {
			t.Errorf("expected zero wealth, got %s", val.Snapshot.TotalWealth)
		}
		if !val.Snapshot.TotalInvested.Equal(testutil.Dec("1560")) {
			t.Errorf("expected full invested 1560, got %s", val.Snapshot.TotalInvested)
		}
		if val.Status != models.ValuationDegraded || len(val.UnavailableTickers) != 1 || val.UnavailableTickers[0] != "ACME" {
			t.Errorf("expected degraded with ACME unavailable, got %s %v", val.Status, val.UnavailableTickers)
		}
	})

	t.Run("zero_daily_price_is_a_resolution", func(t *testing.T) {
		f := newValuationFixture(t, nil,
			&priceSource{name: "intraday", prices: map[string]string{"ACME": "0"}},
			&priceSource{name: "daily", prices: map[string]string{"ACME": "0"}},
		)
		defer f.done()
		userID := testutil.NewUserID()
		acmePurchases(t, f.ledger, userID)

		val, err := f.svc.ComputeAndSnapshot(ctx, userID, TriggerManual)
		testutil.AssertNoError(t, err)
		if val.Status != models.ValuationComplete || len(val.UnavailableTickers) != 0 {
			t.Errorf("expected complete with no unavailable tickers, got %s %v", val.Status, val.UnavailableTickers)
		}
		testutil.AssertDecimalEqual(t, "0", val.Snapshot.TotalWealth)
		testutil.AssertDecimalEqual(t, "1560", val.Snapshot.TotalInvested)
	})

	t.Run("empty_portfolio_records_one_zero_snapshot", func(t *testing.T) {
		f := newValuationFixture(t, nil)
		defer f.done()
		userID := testutil.NewUserID()

		val, err := f.svc.ComputeAndSnapshot(ctx, userID, TriggerManual)
		testutil.AssertNoError(t, err)
		if !val.Snapshot.TotalWealth.IsZero() || !val.Snapshot.TotalInvested.IsZero() {
			t.Errorf("expected {0,0}, got {%s,%s}", val.Snapshot.TotalWealth, val.Snapshot.TotalInvested)
		}
		if n := countSnapshots(t, f, userID); n != 1 {
			t.Errorf("expected exactly 1 snapshot, got %d", n)
		}
	})

	t.Run("sale_leaves_prior_snapshots_untouched", func(t *testing.T) {
		f := newValuationFixture(t, nil, &priceSource{name: "intraday", prices: map[string]string{"ACME": "120"}})
		defer f.done()
		userID := testutil.NewUserID()
		acmePurchases(t, f.ledger, userID)

		before, err := f.svc.ComputeAndSnapshot(ctx, userID, TriggerManual)
		testutil.AssertNoError(t, err)

		_, err = f.ledger.RecordSale(ctx, userID, SaleInput{Ticker: "ACME", QuantitySold: testutil.Dec("12"), SellingPrice: testutil.Dec("120")})
		testutil.AssertNoError(t, err)

		f.svc.now = func() time.Time { return time.Now().Add(time.Second) }
		after, err := f.svc.ComputeAndSnapshot(ctx, userID, TriggerSale)
		testutil.AssertNoError(t, err)
		if !after.Snapshot.TotalInvested.Equal(testutil.Dec("335")) {
			t.Errorf("expected invested 335 after sale, got %s", after.Snapshot.TotalInvested)
		}

		var prior models.WealthSnapshot
		f.svc.db.First(&prior, "id = ?", before.Snapshot.ID)
		if !prior.TotalInvested.Equal(testutil.Dec("1560")) {
			t.Errorf("expected prior snapshot to keep 1560, got %s", prior.TotalInvested)
		}
		if n := countSnapshots(t, f, userID); n != 2 {
			t.Errorf("expected 2 snapshots, got %d", n)
		}
	})

	t.Run("requires_user", func(t *testing.T) {
		f := newValuationFixture(t, nil)
		defer f.done()

		_, err := f.svc.ComputeAndSnapshot(ctx, "", TriggerManual)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestBackfill(t *testing.T) {
	ctx := context.Background()
	history := closeHistory{
		"ACME": {"2024-01-10": "100", "2024-02-09": "115", "2024-02-12": "118"},
	}

	t.Run("one_snapshot_per_purchase_day", func(t *testing.T) {
		f := newValuationFixture(t, history)
		defer f.done()
		userID := testutil.NewUserID()
		acmePurchases(t, f.ledger, userID)

		res, err := f.svc.Backfill(ctx, userID)
		testutil.AssertNoError(t, err)
		if len(res.Snapshots) != 2 || res.Degraded != 0 {
			t.Fatalf("expected 2 complete snapshots, got %d (%d degraded)", len(res.Snapshots), res.Degraded)
		}

		first, second := res.Snapshots[0], res.Snapshots[1]
		if !first.CalculationDate.Equal(testutil.Day(2024, 1, 10)) || !first.TotalWealth.Equal(testutil.Dec("1000")) || !first.TotalInvested.Equal(testutil.Dec("1005")) {
			t.Errorf("unexpected first snapshot %+v", first)
		}
		// 2024-02-10 is a Saturday, so the Friday close applies.
		if !second.TotalWealth.Equal(testutil.Dec("1725")) || !second.TotalInvested.Equal(testutil.Dec("1560")) {
			t.Errorf("unexpected second snapshot %+v", second)
		}
	})

	t.Run("rerun_overwrites_per_date", func(t *testing.T) {
		f := newValuationFixture(t, history)
		defer f.done()
		userID := testutil.NewUserID()
		acmePurchases(t, f.ledger, userID)

		_, err := f.svc.Backfill(ctx, userID)
		testutil.AssertNoError(t, err)

		f.svc.history = closeHistory{"ACME": {"2024-01-10": "90", "2024-02-09": "95"}}
		res, err := f.svc.Backfill(ctx, userID)
		testutil.AssertNoError(t, err)

		if n := countSnapshots(t, f, userID); n != 2 {
			t.Fatalf("expected 2 snapshots after rerun, got %d", n)
		}
		var stored models.WealthSnapshot
		f.svc.db.Where("user_id = ? AND calculation_date = ?", userID, testutil.Day(2024, 1, 10)).First(&stored)
		if !stored.TotalWealth.Equal(testutil.Dec("900")) {
			t.Errorf("expected second run value 900, got %s", stored.TotalWealth)
		}
		if !res.Snapshots[1].TotalWealth.Equal(testutil.Dec("1425")) {
			t.Errorf("expected 1425, got %s", res.Snapshots[1].TotalWealth)
		}
	})

	t.Run("missing_history_is_degraded", func(t *testing.T) {
		f := newValuationFixture(t, closeHistory{})
		defer f.done()
		userID := testutil.NewUserID()
		acmePurchases(t, f.ledger, userID)

		res, err := f.svc.Backfill(ctx, userID)
		testutil.AssertNoError(t, err)
		if res.Degraded != 2 || !res.Snapshots[0].TotalWealth.IsZero() {
			t.Errorf("expected 2 degraded zero-wealth snapshots, got %+v", res)
		}
	})

	t.Run("backdated_sales_stay_consistent", func(t *testing.T) {
		f := newValuationFixture(t, history)
		defer f.done()
		userID := testutil.NewUserID()
		acmePurchases(t, f.ledger, userID)

		_, err := f.ledger.RecordSale(ctx, userID, SaleInput{
			Ticker: "ACME", SellDate: testutil.Day(2024, 1, 20), QuantitySold: testutil.Dec("4"), SellingPrice: testutil.Dec("100"),
		})
		testutil.AssertNoError(t, err)
		_, err = f.ledger.RecordSale(ctx, userID, SaleInput{
			Ticker: "ACME", SellDate: testutil.Day(2024, 2, 1), QuantitySold: testutil.Dec("12"), SellingPrice: testutil.Dec("100"),
		})
		testutil.AssertAppError(t, err, "INSUFFICIENT_HOLDING")

		res, err := f.svc.Backfill(ctx, userID)
		testutil.AssertNoError(t, err)
		if len(res.Snapshots) != 2 {
			t.Fatalf("expected 2 snapshots, got %d", len(res.Snapshots))
		}
		// 6 of the first lot with its fee plus the second lot, at the 2024-02-09 close.
		second := res.Snapshots[1]
		if !second.TotalInvested.Equal(testutil.Dec("1160")) || !second.TotalWealth.Equal(testutil.Dec("1265")) {
			t.Errorf("unexpected second snapshot %+v", second)
		}
	})

	t.Run("no_purchases_writes_zero_today", func(t *testing.T) {
		f := newValuationFixture(t, history)
		defer f.done()
		f.svc.now = func() time.Time { return time.Date(2024, 5, 6, 17, 45, 0, 0, time.UTC) }
		userID := testutil.NewUserID()

		for i := 0; i < 2; i++ {
			res, err := f.svc.Backfill(ctx, userID)
			testutil.AssertNoError(t, err)
			if len(res.Snapshots) != 1 || !res.Snapshots[0].CalculationDate.Equal(testutil.Day(2024, 5, 6)) {
				t.Errorf("expected a zero snapshot at 2024-05-06, got %+v", res.Snapshots)
			}
		}
		if n := countSnapshots(t, f, userID); n != 1 {
			t.Errorf("expected 1 snapshot, got %d", n)
		}
	})
}

func TestLatestAndHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("latest_missing", func(t *testing.T) {
		f := newValuationFixture(t, nil)
		defer f.done()

		_, err := f.svc.Latest(ctx, testutil.NewUserID())
		testutil.AssertAppError(t, err, "SNAPSHOT_NOT_FOUND")
	})

	t.Run("latest_returns_newest", func(t *testing.T) {
		f := newValuationFixture(t, nil)
		defer f.done()
		userID := testutil.NewUserID()
		testutil.CreateTestSnapshot(t, f.svc.db, userID, testutil.Day(2024, 1, 1), "10", "10")
		testutil.CreateTestSnapshot(t, f.svc.db, userID, testutil.Day(2024, 3, 1), "30", "30")
		testutil.CreateTestSnapshot(t, f.svc.db, userID, testutil.Day(2024, 2, 1), "20", "20")

		snap, err := f.svc.Latest(ctx, userID)
		testutil.AssertNoError(t, err)
		if !snap.TotalWealth.Equal(testutil.Dec("30")) {
			t.Errorf("expected March snapshot, got %s", snap.TotalWealth)
		}
	})

	t.Run("history_keeps_last_per_month", func(t *testing.T) {
		f := newValuationFixture(t, nil)
		defer f.done()
		f.svc.now = func() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) }
		userID := testutil.NewUserID()

		testutil.CreateTestSnapshot(t, f.svc.db, userID, testutil.Day(2023, 5, 1), "1", "1")
		testutil.CreateTestSnapshot(t, f.svc.db, userID, testutil.Day(2024, 4, 20), "42", "40")
		testutil.CreateTestSnapshot(t, f.svc.db, userID, testutil.Day(2024, 4, 2), "41", "40")
		testutil.CreateTestSnapshot(t, f.svc.db, userID, testutil.Day(2024, 1, 31), "11", "10")
		testutil.CreateTestSnapshot(t, f.svc.db, userID, testutil.Day(2024, 1, 5), "10", "10")
		testutil.CreateTestSnapshot(t, f.svc.db, userID, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), "60", "50")

		hist, err := f.svc.History(ctx, userID)
		testutil.AssertNoError(t, err)

		want := []string{"11", "42", "60"}
		if len(hist) != len(want) {
			t.Fatalf("expected %d entries, got %d", len(want), len(hist))
		}
		for i, w := range want {
			if !hist[i].TotalWealth.Equal(testutil.Dec(w)) {
				t.Errorf("entry %d: expected %s, got %s", i, w, hist[i].TotalWealth)
			}
			if i > 0 && !hist[i-1].CalculationDate.Before(hist[i].CalculationDate) {
				t.Errorf("entries out of order at %d", i)
			}
		}
	})
}

func TestCreateInitial(t *testing.T) {
	ctx := context.Background()
	f := newValuationFixture(t, nil)
	defer f.done()
	userID := testutil.NewUserID()

	snap, created, err := f.svc.CreateInitial(ctx, userID)
	testutil.AssertNoError(t, err)
	if !created || !snap.TotalWealth.IsZero() {
		t.Errorf("expected a new zero snapshot, got created=%v %+v", created, snap)
	}

	again, created, err := f.svc.CreateInitial(ctx, userID)
	testutil.AssertNoError(t, err)
	if created || again.ID != snap.ID {
		t.Errorf("expected existing snapshot, got created=%v id=%s", created, again.ID)
	}
	if n := countSnapshots(t, f, userID); n != 1 {
		t.Errorf("expected 1 snapshot, got %d", n)
	}
}
