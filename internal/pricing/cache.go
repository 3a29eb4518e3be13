package pricing

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a cached price and the source that produced it.
type Quote struct {
	Price  decimal.Decimal `json:"price"`
	Source string          `json:"source"`
}

// Cache stores at most one quote per (ticker, calendar day).
type Cache interface {
	Get(ctx context.Context, ticker, day string) (Quote, bool, error)
	Set(ctx context.Context, ticker, day string, q Quote, expiresAt time.Time) error
}

// NextMidnight returns the first instant of the day after t, in t's location.
func NextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

// DayKey formats t as the calendar date used for cache keys.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

type memoryEntry struct {
	quote     Quote
	expiresAt time.Time
}

// MemoryCache is a process-local Cache. Entries vanish at their expiry.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func memoryKey(ticker, day string) string { return ticker + "|" + day }

// Get returns the quote for (ticker, day) if present and unexpired.
func (c *MemoryCache) Get(_ context.Context, ticker, day string) (Quote, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := memoryKey(ticker, day)
	e, ok := c.entries[key]
	if !ok {
		return Quote{}, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return Quote{}, false, nil
	}
	return e.quote, true, nil
}

// Set stores q until expiresAt and sweeps expired entries.
func (c *MemoryCache) Set(_ context.Context, ticker, day string, q Quote, expiresAt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[memoryKey(ticker, day)] = memoryEntry{quote: q, expiresAt: expiresAt}
	return nil
}

// Len reports the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
