package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	alphaVantageBaseURL = "https://www.alphavantage.co/query"
	alphaVantageName    = "alphavantage"

	intradaySeriesKey = "Time Series (5min)"
	dailySeriesKey    = "Time Series (Daily)"
)

// IntradayBar is one 5-minute OHLCV bar.
type IntradayBar struct {
	Timestamp string          `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    int64           `json:"volume"`
}

// DailyBar is one adjusted daily bar.
type DailyBar struct {
	Date             string          `json:"date"`
	Open             decimal.Decimal `json:"open"`
	High             decimal.Decimal `json:"high"`
	Low              decimal.Decimal `json:"low"`
	Close            decimal.Decimal `json:"close"`
	AdjustedClose    decimal.Decimal `json:"adjusted_close"`
	Volume           int64           `json:"volume"`
	DividendAmount   decimal.Decimal `json:"dividend_amount"`
	SplitCoefficient decimal.Decimal `json:"split_coefficient"`
}

// TickerSentiment is the per-ticker slice of a news article's sentiment.
type TickerSentiment struct {
	Ticker               string `json:"ticker"`
	RelevanceScore       string `json:"relevance_score"`
	TickerSentimentScore string `json:"ticker_sentiment_score"`
	TickerSentimentLabel string `json:"ticker_sentiment_label"`
}

// Article is one entry of the NEWS_SENTIMENT feed.
type Article struct {
	Title                 string            `json:"title"`
	URL                   string            `json:"url"`
	Summary               string            `json:"summary"`
	TimePublished         string            `json:"time_published"`
	OverallSentimentScore float64           `json:"overall_sentiment_score"`
	OverallSentimentLabel string            `json:"overall_sentiment_label"`
	TickerSentiment       []TickerSentiment `json:"ticker_sentiment"`
}

// AlphaVantage is a client for the Alpha Vantage query API.
type AlphaVantage struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	apiKey     string
}

// NewAlphaVantage creates an Alpha Vantage client. An empty baseURL selects the public endpoint.
func NewAlphaVantage(httpClient *http.Client, baseURL, apiKey string) *AlphaVantage {
	if baseURL == "" {
		baseURL = alphaVantageBaseURL
	}
	return &AlphaVantage{httpClient: httpClient, baseURL: baseURL, apiKey: apiKey}
}

func (a *AlphaVantage) query(ctx context.Context, params url.Values) (any, error) {
	params.Set("apikey", a.apiKey)
	payload, err := getJSON(ctx, a.httpClient, alphaVantageName, a.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// Rate limiting and bad symbols come back as 200 with a message body.
	if obj, ok := payload.(map[string]any); ok {
		for _, key := range []string{"Error Message", "Note", "Information"} {
			if msg, ok := obj[key].(string); ok && msg != "" {
				return nil, fmt.Errorf("%s: %s: %w", alphaVantageName, msg, ErrNoData)
			}
		}
	}
	return payload, nil
}

// series extracts a time series object and its keys sorted newest first.
func series(payload any, key string) (map[string]any, []string, error) {
	ts, err := lookupObject(fmt.Sprintf("$[%q]", key), payload)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: missing %q: %w", alphaVantageName, key, ErrNoData)
	}
	if len(ts) == 0 {
		return nil, nil, fmt.Errorf("%s: empty %q: %w", alphaVantageName, key, ErrNoData)
	}
	keys := make([]string, 0, len(ts))
	for k := range ts {
		keys = append(keys, k)
	}
	// Timestamps are ISO formatted, so lexical order is chronological.
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return ts, keys, nil
}

func parseIntradayBar(ts string, raw any) (IntradayBar, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return IntradayBar{}, fmt.Errorf("%s: bar %s is not an object: %w", alphaVantageName, ts, ErrBadResponse)
	}
	closePrice, err := toDecimal(obj["4. close"])
	if err != nil {
		return IntradayBar{}, fmt.Errorf("%s: bar %s close: %w: %v", alphaVantageName, ts, ErrBadResponse, err)
	}
	return IntradayBar{
		Timestamp: ts,
		Open:      field(obj, "1. open"),
		High:      field(obj, "2. high"),
		Low:       field(obj, "3. low"),
		Close:     closePrice,
		Volume:    field(obj, "5. volume").IntPart(),
	}, nil
}

func parseDailyBar(date string, raw any) (DailyBar, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return DailyBar{}, fmt.Errorf("%s: bar %s is not an object: %w", alphaVantageName, date, ErrBadResponse)
	}
	closePrice, err := toDecimal(obj["4. close"])
	if err != nil {
		return DailyBar{}, fmt.Errorf("%s: bar %s close: %w: %v", alphaVantageName, date, ErrBadResponse, err)
	}
	return DailyBar{
		Date:             date,
		Open:             field(obj, "1. open"),
		High:             field(obj, "2. high"),
		Low:              field(obj, "3. low"),
		Close:            closePrice,
		AdjustedClose:    field(obj, "5. adjusted close"),
		Volume:           field(obj, "6. volume").IntPart(),
		DividendAmount:   field(obj, "7. dividend amount"),
		SplitCoefficient: field(obj, "8. split coefficient"),
	}, nil
}

// LatestIntraday returns the most recent 5-minute bar.
func (a *AlphaVantage) LatestIntraday(ctx context.Context, ticker string) (IntradayBar, error) {
	payload, err := a.query(ctx, url.Values{
		"function":   {"TIME_SERIES_INTRADAY"},
		"symbol":     {ticker},
		"interval":   {"5min"},
		"outputsize": {"compact"},
	})
	if err != nil {
		return IntradayBar{}, err
	}
	ts, keys, err := series(payload, intradaySeriesKey)
	if err != nil {
		return IntradayBar{}, err
	}
	return parseIntradayBar(keys[0], ts[keys[0]])
}

// LatestDaily returns the most recent adjusted daily bar.
func (a *AlphaVantage) LatestDaily(ctx context.Context, ticker string) (DailyBar, error) {
	bars, err := a.dailySeries(ctx, ticker, "compact", 1)
	if err != nil {
		return DailyBar{}, err
	}
	return bars[0], nil
}

// DailyHistory returns the full adjusted daily history, newest first.
func (a *AlphaVantage) DailyHistory(ctx context.Context, ticker string) ([]DailyBar, error) {
	return a.dailySeries(ctx, ticker, "full", 0)
}

// dailySeries parses up to limit bars (0 = all). Malformed bars are skipped
// unless none survive.
func (a *AlphaVantage) dailySeries(ctx context.Context, ticker, outputSize string, limit int) ([]DailyBar, error) {
	payload, err := a.query(ctx, url.Values{
		"function":   {"TIME_SERIES_DAILY_ADJUSTED"},
		"symbol":     {ticker},
		"outputsize": {outputSize},
	})
	if err != nil {
		return nil, err
	}
	ts, keys, err := series(payload, dailySeriesKey)
	if err != nil {
		return nil, err
	}

	var bars []DailyBar
	var firstErr error
	for _, date := range keys {
		bar, err := parseDailyBar(date, ts[date])
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		bars = append(bars, bar)
		if limit > 0 && len(bars) == limit {
			break
		}
	}
	if len(bars) == 0 {
		return nil, firstErr
	}
	return bars, nil
}

// NewsSentiment returns the NEWS_SENTIMENT feed for one ticker.
func (a *AlphaVantage) NewsSentiment(ctx context.Context, ticker string) ([]Article, error) {
	payload, err := a.query(ctx, url.Values{
		"function": {"NEWS_SENTIMENT"},
		"tickers":  {ticker},
	})
	if err != nil {
		return nil, err
	}
	raw, err := lookup("$.feed", payload)
	if err != nil {
		return nil, fmt.Errorf("%s: missing feed: %w", alphaVantageName, ErrNoData)
	}
	items, ok := raw.([]any)
	if !ok {
		// lookup unwraps one-element lists
		items = []any{raw}
	}

	articles := make([]Article, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		articles = append(articles, parseArticle(obj))
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("%s: empty feed: %w", alphaVantageName, ErrNoData)
	}
	return articles, nil
}

func parseArticle(obj map[string]any) Article {
	str := func(k string) string { s, _ := obj[k].(string); return s }
	score, _ := field(obj, "overall_sentiment_score").Float64()

	art := Article{
		Title:                 str("title"),
		URL:                   str("url"),
		Summary:               str("summary"),
		TimePublished:         str("time_published"),
		OverallSentimentScore: score,
		OverallSentimentLabel: str("overall_sentiment_label"),
	}
	if list, ok := obj["ticker_sentiment"].([]any); ok {
		for _, entry := range list {
			ts, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			get := func(k string) string { s, _ := ts[k].(string); return s }
			art.TickerSentiment = append(art.TickerSentiment, TickerSentiment{
				Ticker:               strings.ToUpper(get("ticker")),
				RelevanceScore:       get("relevance_score"),
				TickerSentimentScore: get("ticker_sentiment_score"),
				TickerSentimentLabel: get("ticker_sentiment_label"),
			})
		}
	}
	return art
}

// IntradayQuotes adapts the intraday endpoint to a latest-price source.
type IntradayQuotes struct{ AV *AlphaVantage }

// Name identifies the source in resolutions and metrics.
func (IntradayQuotes) Name() string { return "intraday" }

// LatestPrice returns the close of the newest intraday bar.
func (q IntradayQuotes) LatestPrice(ctx context.Context, ticker string) (decimal.Decimal, error) {
	bar, err := q.AV.LatestIntraday(ctx, ticker)
	if err != nil {
		return decimal.Zero, err
	}
	return bar.Close, nil
}

// DailyQuotes adapts the daily adjusted endpoint to a latest-price source.
type DailyQuotes struct{ AV *AlphaVantage }

// Name identifies the source in resolutions and metrics.
func (DailyQuotes) Name() string { return "daily" }

// LatestPrice returns the close of the newest daily bar.
func (q DailyQuotes) LatestPrice(ctx context.Context, ticker string) (decimal.Decimal, error) {
	bar, err := q.AV.LatestDaily(ctx, ticker)
	if err != nil {
		return decimal.Zero, err
	}
	return bar.Close, nil
}

// DailyCloses adapts the full daily history to a close-by-date series.
type DailyCloses struct{ AV *AlphaVantage }

// CloseSeries returns the close for every trading day Alpha Vantage reports.
func (h DailyCloses) CloseSeries(ctx context.Context, ticker string) (map[string]decimal.Decimal, error) {
	bars, err := h.AV.DailyHistory(ctx, ticker)
	if err != nil {
		return nil, err
	}
	out := make(map[string]decimal.Decimal, len(bars))
	for _, b := range bars {
		out[b.Date] = b.Close
	}
	return out, nil
}
