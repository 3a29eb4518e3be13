package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"investwise/internal/models"
	"investwise/internal/testutil"
)

// fakeRedis keeps values in a map and records the TTL of every write.
type fakeRedis struct {
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestRedisCache(t *testing.T) {
	now := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

	t.Run("round_trip_with_ttl_to_midnight", func(t *testing.T) {
		fake := newFakeRedis()
		c := NewRedisCache(fake)
		c.now = fixedClock(now)

		q := Quote{Price: decimal.RequireFromString("121.25"), Source: "intraday"}
		testutil.AssertNoError(t, c.Set(context.Background(), "ACME", "2024-03-01", q, NextMidnight(now)))

		if ttl := fake.ttls["quote:ACME:2024-03-01"]; ttl != 6*time.Hour {
			t.Errorf("ttl = %s, want 6h", ttl)
		}

		got, ok, err := c.Get(context.Background(), "ACME", "2024-03-01")
		testutil.AssertNoError(t, err)
		if !ok {
			t.Fatal("expected a hit")
		}
		testutil.AssertDecimalEqual(t, "121.25", got.Price)
		if got.Source != "intraday" {
			t.Errorf("source = %q, want intraday", got.Source)
		}
	})

	t.Run("miss_is_not_an_error", func(t *testing.T) {
		c := NewRedisCache(newFakeRedis())
		_, ok, err := c.Get(context.Background(), "ACME", "2024-03-01")
		testutil.AssertNoError(t, err)
		if ok {
			t.Error("expected a miss")
		}
	})

	t.Run("expired_quote_is_dropped", func(t *testing.T) {
		fake := newFakeRedis()
		c := NewRedisCache(fake)
		c.now = fixedClock(now)

		testutil.AssertNoError(t, c.Set(context.Background(), "ACME", "2024-03-01", Quote{}, now.Add(-time.Minute)))
		if len(fake.values) != 0 {
			t.Errorf("expected nothing written, got %v", fake.values)
		}
	})

	t.Run("transport_error_surfaces", func(t *testing.T) {
		fake := newFakeRedis()
		fake.err = errors.New("connection refused")
		c := NewRedisCache(fake)

		_, _, err := c.Get(context.Background(), "ACME", "2024-03-01")
		if err == nil || !strings.Contains(err.Error(), "connection refused") {
			t.Errorf("expected connection error, got %v", err)
		}
	})

	t.Run("corrupt_value_surfaces", func(t *testing.T) {
		fake := newFakeRedis()
		fake.values["quote:ACME:2024-03-01"] = "{"
		c := NewRedisCache(fake)

		_, _, err := c.Get(context.Background(), "ACME", "2024-03-01")
		var syntaxErr *json.SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Errorf("expected *json.SyntaxError, got %T: %v", err, err)
		}
	})
}

func TestDBCache(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	now := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	c := NewDBCache(db)
	c.now = fixedClock(now)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "ACME", "2024-03-01")
	testutil.AssertNoError(t, err)
	if ok {
		t.Fatal("expected a miss on an empty table")
	}

	testutil.AssertNoError(t, c.Set(ctx, "ACME", "2024-03-01", Quote{Price: decimal.NewFromInt(120), Source: "daily"}, NextMidnight(now)))
	testutil.AssertNoError(t, c.Set(ctx, "ACME", "2024-03-01", Quote{Price: decimal.NewFromInt(125), Source: "intraday"}, NextMidnight(now)))

	got, ok, err := c.Get(ctx, "ACME", "2024-03-01")
	testutil.AssertNoError(t, err)
	if !ok {
		t.Fatal("expected a hit")
	}
	testutil.AssertDecimalEqual(t, "125", got.Price)
	if got.Source != "intraday" {
		t.Errorf("source = %q, want intraday", got.Source)
	}

	var rows int64
	testutil.AssertNoError(t, db.Model(&models.DailyStockPrice{}).Where("ticker = ?", "ACME").Count(&rows).Error)
	if rows != 1 {
		t.Errorf("expected 1 row after upsert, got %d", rows)
	}

	t.Run("expired_row_misses", func(t *testing.T) {
		c.now = fixedClock(now.Add(7 * time.Hour))
		_, ok, err := c.Get(ctx, "ACME", "2024-03-01")
		testutil.AssertNoError(t, err)
		if ok {
			t.Error("expected a miss after midnight")
		}
	})
}
