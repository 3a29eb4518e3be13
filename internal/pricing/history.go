package pricing

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"investwise/internal/logger"
)

// History returns daily closing prices keyed by YYYY-MM-DD.
type History interface {
	CloseSeries(ctx context.Context, ticker string) (map[string]decimal.Decimal, error)
}

// DatedClose is one closing price.
type DatedClose struct {
	Day   string
	Close decimal.Decimal
}

// Series is a chronologically ascending run of closes.
type Series []DatedClose

// NewSeries sorts closes by day, dropping non-positive prices.
func NewSeries(closes map[string]decimal.Decimal) Series {
	s := make(Series, 0, len(closes))
	for day, c := range closes {
		if c.IsPositive() {
			s = append(s, DatedClose{Day: day, Close: c})
		}
	}
	sort.Slice(s, func(i, j int) bool { return s[i].Day < s[j].Day })
	return s
}

// OnOrBefore returns the latest close dated on or before day. Weekends and
// holidays therefore resolve to the preceding trading day.
func (s Series) OnOrBefore(day string) (decimal.Decimal, bool) {
	i := sort.Search(len(s), func(i int) bool { return s[i].Day > day })
	if i == 0 {
		return decimal.Zero, false
	}
	return s[i-1].Close, true
}

// LoadHistory fetches series for the distinct tickers with bounded concurrency.
// Tickers whose fetch fails are absent from the result.
func (r *Resolver) LoadHistory(ctx context.Context, src History, tickers []string) map[string]Series {
	out := make(map[string]Series, len(tickers))
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
			// Full histories are large; allow a few source timeouts for the download.
			callCtx, cancel := context.WithTimeout(ctx, 3*r.timeout)
			defer cancel()

			closes, err := src.CloseSeries(callCtx, t)
			if err != nil {
				logger.With("ticker", t).Warnw("price history unavailable", "error", err)
				return nil
			}
			mu.Lock()
			out[t] = NewSeries(closes)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}
