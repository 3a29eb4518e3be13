package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "investwise/internal/errors"
	"investwise/internal/services"
	"investwise/internal/validator"
)

// maxPredictBody caps the feature payload forwarded to the predictor.
const maxPredictBody = 1 << 20

// MarketHandler handles market data passthrough requests.
type MarketHandler struct {
	marketService services.MarketServicer
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketService services.MarketServicer) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

// TickerRequest names one ticker in a request body.
type TickerRequest struct {
	Ticker string `json:"ticker" binding:"required,ticker"`
}

// NewsRequest names the tickers to fetch news for.
type NewsRequest struct {
	Tickers []string `json:"tickers" binding:"required,min=1,max=20,dive,ticker"`
}

// tickerParam reads and checks the :ticker path parameter.
func tickerParam(c *gin.Context) (string, error) {
	ticker := c.Param("ticker")
	if !validator.IsTicker(ticker) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Ticker symbol is required")
	}
	return ticker, nil
}

// Search handles ticker search.
// @Summary     Search tickers
// @Description Search the provider's ticker directory; the response is the provider's JSON
// @Tags        market
// @Produce     json
// @Param       query path string true "Search text"
// @Success     200 {array}  object "Matches"
// @Failure     502 {object} ErrorResponse "Provider unavailable"
// @Router      /search/{query} [get]
func (h *MarketHandler) Search(c *gin.Context) {
	result, err := h.marketService.Search(c.Request.Context(), c.Param("query"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetLatestOpenClose handles the cached daily open/close.
// @Summary     Latest open and close
// @Description Most recent daily open and close, cached until midnight
// @Tags        market
// @Produce     json
// @Param       ticker path string true "Ticker"
// @Success     200 {object} provider.OpenClose "Open and close"
// @Failure     400 {object} ErrorResponse "Invalid ticker"
// @Failure     404 {object} ErrorResponse "No data"
// @Failure     502 {object} ErrorResponse "Provider unavailable"
// @Router      /stock/latest/{ticker} [get]
func (h *MarketHandler) GetLatestOpenClose(c *gin.Context) {
	ticker, err := tickerParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	result, err := h.marketService.LatestOpenClose(c.Request.Context(), ticker)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetLatestDaily handles the latest daily adjusted bar.
// @Summary     Latest daily bar
// @Description Most recent daily adjusted OHLCV bar
// @Tags        market
// @Produce     json
// @Param       ticker path string true "Ticker"
// @Success     200 {object} provider.DailyBar "Daily bar"
// @Failure     400 {object} ErrorResponse "Invalid ticker"
// @Failure     404 {object} ErrorResponse "No data"
// @Failure     502 {object} ErrorResponse "Provider unavailable"
// @Router      /stock/latest/{ticker} [post]
func (h *MarketHandler) GetLatestDaily(c *gin.Context) {
	ticker, err := tickerParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	result, err := h.marketService.LatestDaily(c.Request.Context(), ticker)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetIntraday handles the latest 5-minute bar.
// @Summary     Latest intraday bar
// @Description Most recent 5-minute OHLCV bar
// @Tags        market
// @Produce     json
// @Param       ticker path string true "Ticker"
// @Success     200 {object} provider.IntradayBar "Intraday bar"
// @Failure     400 {object} ErrorResponse "Invalid ticker"
// @Failure     404 {object} ErrorResponse "No data"
// @Failure     502 {object} ErrorResponse "Provider unavailable"
// @Router      /stock/intraday/{ticker} [post]
func (h *MarketHandler) GetIntraday(c *gin.Context) {
	ticker, err := tickerParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	result, err := h.marketService.LatestIntraday(c.Request.Context(), ticker)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetSentiment handles the headline sentiment for one ticker.
// @Summary     Ticker sentiment
// @Description Overall and ticker-specific sentiment of the newest article
// @Tags        market
// @Produce     json
// @Param       ticker path string true "Ticker"
// @Success     200 {object} services.SentimentSummary "Sentiment"
// @Failure     400 {object} ErrorResponse "Invalid ticker"
// @Failure     404 {object} ErrorResponse "No articles"
// @Failure     502 {object} ErrorResponse "Provider unavailable"
// @Router      /stock/sentiment/{ticker} [post]
func (h *MarketHandler) GetSentiment(c *gin.Context) {
	ticker, err := tickerParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	result, err := h.marketService.Sentiment(c.Request.Context(), ticker)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// FetchPriceData handles the full daily history for a ticker.
// @Summary     Price history
// @Description Full daily adjusted history, newest first
// @Tags        market
// @Accept      json
// @Produce     json
// @Param       request body TickerRequest true "Ticker"
// @Success     200 {array}  provider.DailyBar "Daily bars"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "No data"
// @Failure     502 {object} ErrorResponse "Provider unavailable"
// @Router      /fetch-price-data [post]
func (h *MarketHandler) FetchPriceData(c *gin.Context) {
	var req TickerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	result, err := h.marketService.PriceHistory(c.Request.Context(), req.Ticker)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// NewsSentiment handles the news feed for several tickers.
// @Summary     News sentiment
// @Description Articles per ticker with the sentiment entries for that ticker
// @Tags        market
// @Accept      json
// @Produce     json
// @Param       request body NewsRequest true "Tickers"
// @Success     200 {object} map[string][]services.NewsItem "Articles by ticker"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     502 {object} ErrorResponse "Provider unavailable"
// @Router      /news-sentiment [post]
func (h *MarketHandler) NewsSentiment(c *gin.Context) {
	var req NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	result, err := h.marketService.NewsByTicker(c.Request.Context(), req.Tickers)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Predict handles forwarding features to the prediction model.
// @Summary     Predict
// @Description Forward a feature payload to the prediction model and return its JSON verbatim
// @Tags        market
// @Accept      json
// @Produce     json
// @Param       request body object true "Feature payload"
// @Success     200 {object} object "Model response"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     502 {object} ErrorResponse "Predictor unavailable"
// @Router      /predict [post]
func (h *MarketHandler) Predict(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPredictBody))
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}
	if !json.Valid(body) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Request body must be JSON"))
		return
	}

	result, err := h.marketService.Predict(c.Request.Context(), json.RawMessage(body))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", result)
}
