package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "investwise/internal/errors"
	"investwise/internal/provider"
	"investwise/internal/services"
	"investwise/internal/testutil"
)

func setupMarketRouter(handler *MarketHandler) *gin.Engine {
	r := gin.New()
	r.GET("/search/:query", handler.Search)
	r.GET("/stock/latest/:ticker", handler.GetLatestOpenClose)
	r.POST("/stock/latest/:ticker", handler.GetLatestDaily)
	r.POST("/stock/intraday/:ticker", handler.GetIntraday)
	r.POST("/stock/sentiment/:ticker", handler.GetSentiment)
	r.POST("/fetch-price-data", handler.FetchPriceData)
	r.POST("/news-sentiment", handler.NewsSentiment)
	r.POST("/predict", handler.Predict)
	return r
}

func TestMarketHandler_Search(t *testing.T) {
	var gotQuery string
	svc := &mockMarketService{
		searchFn: func(_ context.Context, query string) (any, error) {
			gotQuery = query
			return []any{map[string]any{"ticker": "aapl"}}, nil
		},
	}
	r := setupMarketRouter(NewMarketHandler(svc))

	rec := doRequest(r, "GET", "/search/apple", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotQuery != "apple" {
		t.Errorf("expected query apple, got %q", gotQuery)
	}
	if len(parseJSONArray(t, rec)) != 1 {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestMarketHandler_TickerRoutes(t *testing.T) {
	svc := &mockMarketService{
		latestOpenCloseFn: func(context.Context, string) (*provider.OpenClose, error) {
			return &provider.OpenClose{Date: "2024-03-01", Open: testutil.Dec("10.5"), Close: testutil.Dec("11")}, nil
		},
		latestDailyFn: func(context.Context, string) (*provider.DailyBar, error) {
			return &provider.DailyBar{Date: "2024-03-01", Close: testutil.Dec("11"), Volume: 100}, nil
		},
		latestIntradayFn: func(context.Context, string) (*provider.IntradayBar, error) {
			return nil, apperrors.ErrMarketDataNotFound
		},
		sentimentFn: func(_ context.Context, ticker string) (*services.SentimentSummary, error) {
			return nil, apperrors.Wrap(apperrors.ErrUpstreamUnavailable, context.DeadlineExceeded)
		},
	}
	r := setupMarketRouter(NewMarketHandler(svc))

	cases := []struct {
		name   string
		method string
		path   string
		status int
		check  func(t *testing.T, body map[string]interface{})
	}{
		{"open close", "GET", "/stock/latest/ACME", http.StatusOK, func(t *testing.T, body map[string]interface{}) {
			if body["open"] != 10.5 || body["close"] != float64(11) {
				t.Errorf("unexpected open/close %v", body)
			}
		}},
		{"daily bar", "POST", "/stock/latest/ACME", http.StatusOK, func(t *testing.T, body map[string]interface{}) {
			if body["volume"] != float64(100) {
				t.Errorf("unexpected bar %v", body)
			}
		}},
		{"intraday not found", "POST", "/stock/intraday/ACME", http.StatusNotFound, func(t *testing.T, body map[string]interface{}) {
			assertErrorCode(t, body, "MARKET_DATA_NOT_FOUND")
		}},
		{"sentiment upstream down", "POST", "/stock/sentiment/ACME", http.StatusBadGateway, func(t *testing.T, body map[string]interface{}) {
			assertErrorCode(t, body, "UPSTREAM_UNAVAILABLE")
		}},
		{"invalid ticker", "GET", "/stock/latest/AC$ME", http.StatusBadRequest, func(t *testing.T, body map[string]interface{}) {
			assertErrorCode(t, body, "INVALID_INPUT")
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(r, tc.method, tc.path, "")
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
			tc.check(t, parseJSON(t, rec))
		})
	}
}

func TestMarketHandler_FetchPriceData(t *testing.T) {
	t.Run("returns the history", func(t *testing.T) {
		svc := &mockMarketService{
			priceHistoryFn: func(context.Context, string) ([]provider.DailyBar, error) {
				return []provider.DailyBar{{Date: "2024-03-01"}, {Date: "2024-02-29"}}, nil
			},
		}
		r := setupMarketRouter(NewMarketHandler(svc))

		rec := doRequest(r, "POST", "/fetch-price-data", `{"ticker":"ACME"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if len(parseJSONArray(t, rec)) != 2 {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("returns 400 without ticker", func(t *testing.T) {
		r := setupMarketRouter(NewMarketHandler(&mockMarketService{}))

		rec := doRequest(r, "POST", "/fetch-price-data", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestMarketHandler_NewsSentiment(t *testing.T) {
	t.Run("returns articles keyed by ticker", func(t *testing.T) {
		var got []string
		svc := &mockMarketService{
			newsByTickerFn: func(_ context.Context, tickers []string) (map[string][]services.NewsItem, error) {
				got = tickers
				return map[string][]services.NewsItem{"ACME": {{Title: "Acme soars"}}}, nil
			},
		}
		r := setupMarketRouter(NewMarketHandler(svc))

		rec := doRequest(r, "POST", "/news-sentiment", `{"tickers":["ACME","INIT"]}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if len(got) != 2 {
			t.Errorf("expected 2 tickers, got %v", got)
		}
		items := parseJSON(t, rec)["ACME"].([]interface{})
		if items[0].(map[string]interface{})["title"] != "Acme soars" {
			t.Errorf("unexpected items %v", items)
		}
	})

	t.Run("rejects empty list", func(t *testing.T) {
		r := setupMarketRouter(NewMarketHandler(&mockMarketService{}))

		rec := doRequest(r, "POST", "/news-sentiment", `{"tickers":[]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestMarketHandler_Predict(t *testing.T) {
	t.Run("returns model output verbatim", func(t *testing.T) {
		var got json.RawMessage
		svc := &mockMarketService{
			predictFn: func(_ context.Context, payload json.RawMessage) (json.RawMessage, error) {
				got = payload
				return json.RawMessage(`{"prediction":[1.5,2.5]}`), nil
			},
		}
		r := setupMarketRouter(NewMarketHandler(svc))

		rec := doRequest(r, "POST", "/predict", `{"features":[[1,2,3]]}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if string(got) != `{"features":[[1,2,3]]}` {
			t.Errorf("payload not forwarded verbatim: %s", got)
		}
		if rec.Body.String() != `{"prediction":[1.5,2.5]}` {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("rejects non JSON", func(t *testing.T) {
		r := setupMarketRouter(NewMarketHandler(&mockMarketService{}))

		rec := doRequest(r, "POST", "/predict", `features=1`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("maps predictor failure to 502", func(t *testing.T) {
		svc := &mockMarketService{
			predictFn: func(context.Context, json.RawMessage) (json.RawMessage, error) {
				return nil, apperrors.ErrUpstreamUnavailable
			},
		}
		r := setupMarketRouter(NewMarketHandler(svc))

		rec := doRequest(r, "POST", "/predict", `{}`)

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
	})
}
