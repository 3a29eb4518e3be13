// Package pricing resolves a current price per ticker through a daily quote
// cache and an ordered chain of market data sources.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"investwise/internal/logger"
	"investwise/internal/metrics"
)

// Status distinguishes a resolved price from an unavailable one, so a
// legitimately zero price is never confused with a failure.
type Status string

const (
	StatusResolved    Status = "resolved"
	StatusUnavailable Status = "unavailable"
)

// SourceCache names cache hits in resolutions.
const SourceCache = "cache"

// Source returns the latest price for a ticker.
type Source interface {
	Name() string
	LatestPrice(ctx context.Context, ticker string) (decimal.Decimal, error)
}

// Attempt records the outcome of one source call.
type Attempt struct {
	Source   string        `json:"source"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Resolution is the result of resolving one ticker.
type Resolution struct {
	Ticker   string          `json:"ticker"`
	Price    decimal.Decimal `json:"price"`
	Source   string          `json:"source,omitempty"`
	Status   Status          `json:"status"`
	Attempts []Attempt       `json:"attempts,omitempty"`
}

// Resolved reports whether a price was obtained.
func (r Resolution) Resolved() bool { return r.Status == StatusResolved }

// Options tunes a Resolver.
type Options struct {
	// SourceTimeout bounds every individual source call. Zero means 10s.
	SourceTimeout time.Duration
	// Concurrency bounds ResolveAll fan-out. Zero means 4.
	Concurrency int
	// Location defines calendar days and cache expiry. Nil means time.Local.
	Location *time.Location
}

// Resolver implements cache-then-fallback price resolution.
type Resolver struct {
	cache   Cache
	sources []Source
	timeout time.Duration
	limit   int
	loc     *time.Location
	now     func() time.Time
}

// NewResolver builds a Resolver that consults sources in order after the cache.
// A nil cache disables caching.
func NewResolver(cache Cache, sources []Source, opts Options) *Resolver {
	r := &Resolver{
		cache:   cache,
		sources: sources,
		timeout: opts.SourceTimeout,
		limit:   opts.Concurrency,
		loc:     opts.Location,
		now:     time.Now,
	}
	if r.timeout <= 0 {
		r.timeout = 10 * time.Second
	}
	if r.limit <= 0 {
		r.limit = 4
	}
	if r.loc == nil {
		r.loc = time.Local
	}
	return r
}

// Resolve returns the price for ticker. Source failures are recorded on the
// Resolution as attempts; Resolve itself never fails.
func (r *Resolver) Resolve(ctx context.Context, ticker string) Resolution {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	res := Resolution{Ticker: ticker, Status: StatusUnavailable}
	log := logger.With("ticker", ticker)

	now := r.now().In(r.loc)
	day := DayKey(now)

	if r.cache != nil {
		q, ok, err := r.cache.Get(ctx, ticker, day)
		switch {
		case err != nil:
			log.Warnw("quote cache read failed", "error", err)
		case ok:
			res.Price = q.Price
			res.Source = SourceCache
			res.Status = StatusResolved
			metrics.RecordPriceResolution(SourceCache, string(StatusResolved))
			return res
		}
	}

	for i, src := range r.sources {
		if ctx.Err() != nil {
			res.Attempts = append(res.Attempts, Attempt{Source: src.Name(), Error: ctx.Err().Error()})
			break
		}

		price, took, err := r.call(ctx, src, ticker)
		attempt := Attempt{Source: src.Name(), Duration: took}
		final := i == len(r.sources)-1
		switch {
		case err != nil:
		case price.IsNegative():
			err = fmt.Errorf("negative price %s", price)
		case price.IsZero() && !final:
			err = errors.New("zero price, trying next source")
		}
		metrics.ObservePriceSource(src.Name(), err == nil, took)

		if err != nil {
			attempt.Error = err.Error()
			res.Attempts = append(res.Attempts, attempt)
			log.Infow("price source failed, falling through", "source", src.Name(), "error", err)
			continue
		}

		res.Attempts = append(res.Attempts, attempt)
		res.Price = price
		res.Source = src.Name()
		res.Status = StatusResolved
		break
	}

	if !res.Resolved() {
		metrics.RecordPriceResolution("none", string(StatusUnavailable))
		log.Warnw("price unavailable from every source", "attempts", len(res.Attempts))
		return res
	}

	metrics.RecordPriceResolution(res.Source, string(StatusResolved))
	if r.cache != nil {
		q := Quote{Price: res.Price, Source: res.Source}
		if err := r.cache.Set(ctx, ticker, day, q, NextMidnight(now)); err != nil {
			log.Warnw("quote cache write failed", "error", err)
		}
	}
	return res
}

func (r *Resolver) call(ctx context.Context, src Source, ticker string) (decimal.Decimal, time.Duration, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	price, err := src.LatestPrice(callCtx, ticker)
	return price, time.Since(start), err
}

// ResolveAll resolves the distinct tickers concurrently, bounded by the
// configured concurrency. The map is keyed by upper-cased ticker.
func (r *Resolver) ResolveAll(ctx context.Context, tickers []string) map[string]Resolution {
	out := make(map[string]Resolution, len(tickers))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(r.limit)

	seen := make(map[string]bool, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true

		g.Go(func() error {
			res := r.Resolve(ctx, t)
			mu.Lock()
			out[t] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}
