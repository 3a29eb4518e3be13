package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	tiingoBaseURL = "https://api.tiingo.com"
	tiingoName    = "tiingo"
)

// OpenClose is the latest daily open and close for a ticker.
type OpenClose struct {
	Date  string          `json:"date"`
	Open  decimal.Decimal `json:"open"`
	Close decimal.Decimal `json:"close"`
}

// Tiingo is a client for the Tiingo REST API.
type Tiingo struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	apiKey     string
}

// NewTiingo creates a Tiingo client. An empty baseURL selects the public endpoint.
func NewTiingo(httpClient *http.Client, baseURL, apiKey string) *Tiingo {
	if baseURL == "" {
		baseURL = tiingoBaseURL
	}
	return &Tiingo{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

func (t *Tiingo) header() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Authorization", "Token "+t.apiKey)
	return h
}

// Search runs a ticker/company search and returns the provider payload as-is.
func (t *Tiingo) Search(ctx context.Context, query string) (any, error) {
	u := t.baseURL + "/tiingo/utilities/search?query=" + url.QueryEscape(query)
	return getJSON(ctx, t.httpClient, tiingoName, u, t.header())
}

// LatestOpenClose returns the most recent daily open/close.
func (t *Tiingo) LatestOpenClose(ctx context.Context, ticker string) (OpenClose, error) {
	u := t.baseURL + "/tiingo/daily/" + url.PathEscape(strings.ToLower(ticker)) + "/prices"
	payload, err := getJSON(ctx, t.httpClient, tiingoName, u, t.header())
	if err != nil {
		return OpenClose{}, err
	}

	rows, ok := payload.([]any)
	if !ok || len(rows) == 0 {
		return OpenClose{}, fmt.Errorf("%s: no prices for %s: %w", tiingoName, ticker, ErrNoData)
	}
	row, ok := rows[0].(map[string]any)
	if !ok {
		return OpenClose{}, fmt.Errorf("%s: price row is not an object: %w", tiingoName, ErrBadResponse)
	}
	closePrice, err := toDecimal(row["close"])
	if err != nil {
		return OpenClose{}, fmt.Errorf("%s: close: %w: %v", tiingoName, ErrBadResponse, err)
	}

	date, _ := row["date"].(string)
	if len(date) >= 10 {
		date = date[:10]
	}
	return OpenClose{Date: date, Open: field(row, "open"), Close: closePrice}, nil
}
