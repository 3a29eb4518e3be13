package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"investwise/internal/events"
	"investwise/internal/handlers"
	"investwise/internal/middleware"
	"investwise/internal/pricing"
	"investwise/internal/provider"
	"investwise/internal/services"
	"investwise/internal/testutil"
	"investwise/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

const testSecret = "router-test-secret"

// acmeIntraday prices every ticker at 120.
const acmeIntraday = `{"Time Series (5min)": {"2024-03-01 16:00:00": {"1. open": "119", "2. high": "121", "3. low": "118", "4. close": "120", "5. volume": "10"}}}`

type testApp struct {
	Router     *gin.Engine
	Recomputer *events.AsyncRecomputer
}

func setupApp(t *testing.T, opts Options) *testApp {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(acmeIntraday))
	}))
	t.Cleanup(upstream.Close)

	av := provider.NewAlphaVantage(upstream.Client(), upstream.URL, "test-key")
	tiingo := provider.NewTiingo(upstream.Client(), upstream.URL, "test-key")
	predictor := provider.NewPredictor(upstream.Client(), upstream.URL)

	audit := services.NewAuditService(db)
	portfolio := services.NewPortfolioService(db, audit, nil)
	resolver := pricing.NewResolver(pricing.NewMemoryCache(),
		[]pricing.Source{provider.IntradayQuotes{AV: av}, provider.DailyQuotes{AV: av}},
		pricing.Options{SourceTimeout: 2 * time.Second, Location: time.UTC})
	valuation := services.NewValuationService(db, portfolio, resolver, provider.DailyCloses{AV: av})
	recomputer := events.NewAsyncRecomputer(valuation, 5*time.Second)
	portfolio.SetRecomputer(recomputer)

	router := NewRouter(Handlers{
		Portfolio: handlers.NewPortfolioHandler(portfolio),
		Wealth:    handlers.NewWealthHandler(valuation),
		Market:    handlers.NewMarketHandler(services.NewMarketService(db, av, tiingo, predictor)),
		Profile:   handlers.NewUserProfileHandler(services.NewUserProfileService(db, audit)),
	}, opts)
	return &testApp{Router: router, Recomputer: recomputer}
}

func (a *testApp) request(method, path, body, token string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, _ := parseJSON(t, rec)["error"].(map[string]interface{})
	code, _ := errObj["code"].(string)
	return code
}

func TestRouter_Infrastructure(t *testing.T) {
	app := setupApp(t, Options{CORSOrigins: []string{"*"}})

	t.Run("health", func(t *testing.T) {
		rec := app.request("GET", "/api/health", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("metrics", func(t *testing.T) {
		app.request("GET", "/api/health", "", "")
		rec := app.request("GET", "/metrics", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "go_goroutines") {
			t.Error("expected runtime metrics in exposition")
		}
	})

	t.Run("swagger doc", func(t *testing.T) {
		rec := app.request("GET", "/swagger/doc.json", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "/portfolio/sell") {
			t.Error("expected sell route in swagger doc")
		}
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/nope", "", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "NOT_FOUND" {
			t.Errorf("expected NOT_FOUND, got %q", code)
		}
	})

	t.Run("cors preflight", func(t *testing.T) {
		rec := app.request("OPTIONS", "/api/v1/portfolio/sell", "", "",
			"Origin", "http://localhost:3000",
			"Access-Control-Request-Method", "POST")
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("expected wildcard origin, got %q", got)
		}
	})

	t.Run("pipeline without keys", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/pipeline/total-wealth/backfill", `{"userId":"u1"}`, "")
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})
}

func TestRouter_Auth(t *testing.T) {
	app := setupApp(t, Options{AuthEnabled: true, JWTSecret: testSecret, PipelineAPIKeys: []string{"k1"}})
	token, err := middleware.GenerateAccessToken(testSecret, "u1", "u1@example.com", time.Hour)
	testutil.AssertNoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/portfolio/aggregate/u1", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("own profile", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/user-profile/create", `{"userId":"u1"}`, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		profile := parseJSON(t, rec)["userProfile"].(map[string]interface{})
		if profile["email"] != "u1@example.com" {
			t.Errorf("expected email from token, got %v", profile["email"])
		}
	})

	t.Run("another user's data", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/total-wealth/u2", "", token)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("pipeline with key", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/pipeline/total-wealth/backfill", `{"userId":"u1"}`, "", "X-API-Key", "k1")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("pipeline with wrong key", func(t *testing.T) {
		rec := app.request("POST", "/api/v1/pipeline/total-wealth/backfill", `{"userId":"u1"}`, "", "X-API-Key", "nope")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestRouter_PortfolioValuationFlow(t *testing.T) {
	app := setupApp(t, Options{})

	rec := app.request("POST", "/api/v1/user-profile/create", `{"userId":"u1","email":"u1@example.com"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create profile: expected 201, got %d", rec.Code)
	}

	for _, body := range []string{
		`{"userId":"u1","stock":{"ticker":"ACME","name":"Acme","purchaseDate":"2024-01-10","quantity":10,"purchasePrice":100,"brokerageFees":5}}`,
		`{"userId":"u1","stock":{"ticker":"ACME","name":"Acme","purchaseDate":"2024-02-10","quantity":5,"purchasePrice":110,"brokerageFees":5}}`,
	} {
		if rec := app.request("POST", "/api/v1/portfolio/addDetails", body, ""); rec.Code != http.StatusOK {
			t.Fatalf("addDetails: expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec = app.request("GET", "/api/v1/portfolio/aggregate/u1", "", "")
	var holdings []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &holdings); err != nil || len(holdings) != 1 {
		t.Fatalf("unexpected aggregate %s", rec.Body.String())
	}
	if holdings[0]["totalQuantity"] != float64(15) || holdings[0]["totalCost"] != float64(1560) || holdings[0]["averagePurchasePrice"] != float64(104) {
		t.Errorf("unexpected holding %v", holdings[0])
	}

	rec = app.request("POST", "/api/v1/total-wealth/update", `{"userId":"u1"}`, "")
	result := parseJSON(t, rec)
	if result["totalWealth"] != float64(1800) || result["totalInvested"] != float64(1560) || result["status"] != "complete" {
		t.Errorf("unexpected valuation %v", result)
	}

	rec = app.request("POST", "/api/v1/portfolio/sell", `{"userId":"u1","ticker":"ACME","sellDate":"2024-03-01","quantitySold":12,"sellPrice":120,"brokerageFees":3}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("sell: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := parseJSON(t, rec)["remainingQuantity"]; got != float64(3) {
		t.Errorf("expected 3 remaining, got %v", got)
	}
	app.Recomputer.Wait()

	rec = app.request("GET", "/api/v1/total-wealth/u1", "", "")
	latest := parseJSON(t, rec)
	if latest["totalInvested"] != float64(335) || latest["totalWealth"] != float64(360) {
		t.Errorf("expected recomputed snapshot 360/335, got %v", latest)
	}

	rec = app.request("POST", "/api/v1/portfolio/sell", `{"userId":"u1","ticker":"ACME","quantitySold":20,"sellPrice":120,"brokerageFees":0}`, "")
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "INSUFFICIENT_HOLDING" {
		t.Errorf("oversell: expected 400 INSUFFICIENT_HOLDING, got %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/portfolio/u1/sales", "", "")
	if got := parseJSON(t, rec)["totalItems"]; got != float64(1) {
		t.Errorf("expected 1 sale, got %v", got)
	}
}
