package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"investwise/internal/middleware"
	"investwise/internal/models"
	"investwise/internal/pagination"
	"investwise/internal/provider"
	"investwise/internal/services"
	"investwise/internal/validator"
)

// --- mock services ---

type mockPortfolioService struct {
	recordPurchaseFn  func(ctx context.Context, userID string, in services.PurchaseInput) (*models.PurchaseLot, error)
	recordSaleFn      func(ctx context.Context, userID string, in services.SaleInput) (*services.SaleResult, error)
	listOpenLotsFn    func(ctx context.Context, userID string) ([]services.OpenLot, error)
	aggregateFn       func(ctx context.Context, userID string) ([]services.Holding, error)
	listPurchasesFn   func(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.PurchaseLot], error)
	listSalesFn       func(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.SaleEvent], error)
	ensurePortfolioFn func(ctx context.Context, userID string) (bool, error)
}

var _ services.PortfolioServicer = (*mockPortfolioService)(nil)

func (m *mockPortfolioService) RecordPurchase(ctx context.Context, userID string, in services.PurchaseInput) (*models.PurchaseLot, error) {
	if m.recordPurchaseFn != nil {
		return m.recordPurchaseFn(ctx, userID, in)
	}
	return &models.PurchaseLot{}, nil
}

func (m *mockPortfolioService) RecordSale(ctx context.Context, userID string, in services.SaleInput) (*services.SaleResult, error) {
	if m.recordSaleFn != nil {
		return m.recordSaleFn(ctx, userID, in)
	}
	return &services.SaleResult{}, nil
}

func (m *mockPortfolioService) ListOpenLots(ctx context.Context, userID string) ([]services.OpenLot, error) {
	if m.listOpenLotsFn != nil {
		return m.listOpenLotsFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockPortfolioService) Aggregate(ctx context.Context, userID string) ([]services.Holding, error) {
	if m.aggregateFn != nil {
		return m.aggregateFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockPortfolioService) ListPurchases(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.PurchaseLot], error) {
	if m.listPurchasesFn != nil {
		return m.listPurchasesFn(ctx, userID, page)
	}
	resp := pagination.NewPageResponse[models.PurchaseLot](nil, page, 0)
	return &resp, nil
}

func (m *mockPortfolioService) ListSales(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.SaleEvent], error) {
	if m.listSalesFn != nil {
		return m.listSalesFn(ctx, userID, page)
	}
	resp := pagination.NewPageResponse[models.SaleEvent](nil, page, 0)
	return &resp, nil
}

func (m *mockPortfolioService) EnsurePortfolio(ctx context.Context, userID string) (bool, error) {
	if m.ensurePortfolioFn != nil {
		return m.ensurePortfolioFn(ctx, userID)
	}
	return false, nil
}

type mockValuationService struct {
	computeAndSnapshotFn func(ctx context.Context, userID, trigger string) (*services.Valuation, error)
	backfillFn           func(ctx context.Context, userID string) (*services.BackfillResult, error)
	latestFn             func(ctx context.Context, userID string) (*models.WealthSnapshot, error)
	historyFn            func(ctx context.Context, userID string) ([]models.WealthSnapshot, error)
	createInitialFn      func(ctx context.Context, userID string) (*models.WealthSnapshot, bool, error)
}

var _ services.ValuationServicer = (*mockValuationService)(nil)

func (m *mockValuationService) ComputeAndSnapshot(ctx context.Context, userID, trigger string) (*services.Valuation, error) {
	if m.computeAndSnapshotFn != nil {
		return m.computeAndSnapshotFn(ctx, userID, trigger)
	}
	return &services.Valuation{Status: models.ValuationComplete}, nil
}

func (m *mockValuationService) Backfill(ctx context.Context, userID string) (*services.BackfillResult, error) {
	if m.backfillFn != nil {
		return m.backfillFn(ctx, userID)
	}
	return &services.BackfillResult{UserID: userID}, nil
}

func (m *mockValuationService) Latest(ctx context.Context, userID string) (*models.WealthSnapshot, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, userID)
	}
	return &models.WealthSnapshot{UserID: userID}, nil
}

func (m *mockValuationService) History(ctx context.Context, userID string) ([]models.WealthSnapshot, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockValuationService) CreateInitial(ctx context.Context, userID string) (*models.WealthSnapshot, bool, error) {
	if m.createInitialFn != nil {
		return m.createInitialFn(ctx, userID)
	}
	return &models.WealthSnapshot{UserID: userID}, true, nil
}

type mockMarketService struct {
	searchFn          func(ctx context.Context, query string) (any, error)
	latestOpenCloseFn func(ctx context.Context, ticker string) (*provider.OpenClose, error)
	latestDailyFn     func(ctx context.Context, ticker string) (*provider.DailyBar, error)
	latestIntradayFn  func(ctx context.Context, ticker string) (*provider.IntradayBar, error)
	priceHistoryFn    func(ctx context.Context, ticker string) ([]provider.DailyBar, error)
	sentimentFn       func(ctx context.Context, ticker string) (*services.SentimentSummary, error)
	newsByTickerFn    func(ctx context.Context, tickers []string) (map[string][]services.NewsItem, error)
	predictFn         func(ctx context.Context, payload json.RawMessage) (json.RawMessage, error)
}

var _ services.MarketServicer = (*mockMarketService)(nil)

func (m *mockMarketService) Search(ctx context.Context, query string) (any, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return []any{}, nil
}

func (m *mockMarketService) LatestOpenClose(ctx context.Context, ticker string) (*provider.OpenClose, error) {
	if m.latestOpenCloseFn != nil {
		return m.latestOpenCloseFn(ctx, ticker)
	}
	return &provider.OpenClose{}, nil
}

func (m *mockMarketService) LatestDaily(ctx context.Context, ticker string) (*provider.DailyBar, error) {
	if m.latestDailyFn != nil {
		return m.latestDailyFn(ctx, ticker)
	}
	return &provider.DailyBar{}, nil
}

func (m *mockMarketService) LatestIntraday(ctx context.Context, ticker string) (*provider.IntradayBar, error) {
	if m.latestIntradayFn != nil {
		return m.latestIntradayFn(ctx, ticker)
	}
	return &provider.IntradayBar{}, nil
}

func (m *mockMarketService) PriceHistory(ctx context.Context, ticker string) ([]provider.DailyBar, error) {
	if m.priceHistoryFn != nil {
		return m.priceHistoryFn(ctx, ticker)
	}
	return []provider.DailyBar{}, nil
}

func (m *mockMarketService) Sentiment(ctx context.Context, ticker string) (*services.SentimentSummary, error) {
	if m.sentimentFn != nil {
		return m.sentimentFn(ctx, ticker)
	}
	return &services.SentimentSummary{Ticker: ticker}, nil
}

func (m *mockMarketService) NewsByTicker(ctx context.Context, tickers []string) (map[string][]services.NewsItem, error) {
	if m.newsByTickerFn != nil {
		return m.newsByTickerFn(ctx, tickers)
	}
	return map[string][]services.NewsItem{}, nil
}

func (m *mockMarketService) Predict(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	if m.predictFn != nil {
		return m.predictFn(ctx, payload)
	}
	return payload, nil
}

type mockUserProfileService struct {
	createProfileFn func(ctx context.Context, in services.ProfileInput) (*models.UserProfile, bool, error)
	getProfileFn    func(ctx context.Context, userID string) (*models.UserProfile, error)
}

var _ services.UserProfileServicer = (*mockUserProfileService)(nil)

func (m *mockUserProfileService) CreateProfile(ctx context.Context, in services.ProfileInput) (*models.UserProfile, bool, error) {
	if m.createProfileFn != nil {
		return m.createProfileFn(ctx, in)
	}
	return &models.UserProfile{UserID: in.UserID, Email: in.Email}, true, nil
}

func (m *mockUserProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(ctx, userID)
	}
	return &models.UserProfile{UserID: userID}, nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// injectUserID simulates a verified bearer token for uid.
func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Set("email", uid+"@example.com")
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
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

func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
