package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "investwise/internal/errors"
	"investwise/internal/models"
	"investwise/internal/pagination"
	"investwise/internal/services"
)

// PortfolioHandler handles ledger requests.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// StockDetails is one purchase as submitted by the client.
type StockDetails struct {
	Ticker        string           `json:"ticker" binding:"required,ticker"`
	Name          string           `json:"name" binding:"max=200"`
	AssetType     models.AssetType `json:"assetType" binding:"asset_type"`
	PurchaseDate  string           `json:"purchaseDate" binding:"required"`
	Quantity      decimal.Decimal  `json:"quantity"`
	PurchasePrice decimal.Decimal  `json:"purchasePrice"`
	BrokerageFees decimal.Decimal  `json:"brokerageFees"`
}

// AddDetailsRequest represents the request payload for recording a purchase.
type AddDetailsRequest struct {
	UserID string       `json:"userId" binding:"required"`
	Stock  StockDetails `json:"stock"`
}

// SellRequest represents the request payload for recording a sale.
type SellRequest struct {
	UserID        string          `json:"userId" binding:"required"`
	Ticker        string          `json:"ticker" binding:"required,ticker"`
	SellDate      string          `json:"sellDate"`
	QuantitySold  decimal.Decimal `json:"quantitySold"`
	SellPrice     decimal.Decimal `json:"sellPrice"`
	BrokerageFees decimal.Decimal `json:"brokerageFees"`
}

// PortfolioResponse lists a user's open lots.
type PortfolioResponse struct {
	UserID string             `json:"userId"`
	Stocks []services.OpenLot `json:"stocks"`
}

// AddDetailsResponse acknowledges a recorded purchase.
type AddDetailsResponse struct {
	Message string             `json:"message"`
	Lot     models.PurchaseLot `json:"lot"`
}

// SellResponse acknowledges a recorded sale.
type SellResponse struct {
	Message string `json:"message"`
	services.SaleResult
}

// GetPortfolio handles listing a user's open lots.
// @Summary     Get portfolio
// @Description List purchase lots that still hold shares after FIFO consumption by sales
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       userId path string true "User ID"
// @Success     200 {object} PortfolioResponse "Open lots"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/{userId} [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	userID, err := authorizeUser(c, c.Param("userId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	lots, err := h.portfolioService.ListOpenLots(requestContext(c), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if lots == nil {
		lots = []services.OpenLot{}
	}

	c.JSON(http.StatusOK, PortfolioResponse{UserID: userID, Stocks: lots})
}

// GetAggregate handles the per-ticker holdings summary.
// @Summary     Aggregate holdings
// @Description Total quantity, invested cost and weighted average price per ticker
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       userId path string true "User ID"
// @Success     200 {array}  services.Holding "Holdings"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/aggregate/{userId} [get]
func (h *PortfolioHandler) GetAggregate(c *gin.Context) {
	userID, err := authorizeUser(c, c.Param("userId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdings, err := h.portfolioService.Aggregate(requestContext(c), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if holdings == nil {
		holdings = []services.Holding{}
	}

	c.JSON(http.StatusOK, holdings)
}

// AddDetails handles recording a purchase lot.
// @Summary     Record purchase
// @Description Append a purchase lot to the user's ledger, creating the portfolio if needed
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddDetailsRequest true "Purchase details"
// @Success     200 {object} AddDetailsResponse "Purchase recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/addDetails [post]
func (h *PortfolioHandler) AddDetails(c *gin.Context) {
	var req AddDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	userID, err := authorizeUser(c, req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	purchaseDate, err := parseDate("purchaseDate", req.Stock.PurchaseDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	lot, err := h.portfolioService.RecordPurchase(requestContext(c), userID, services.PurchaseInput{
		Ticker:        req.Stock.Ticker,
		Name:          req.Stock.Name,
		AssetType:     req.Stock.AssetType,
		PurchaseDate:  purchaseDate,
		Quantity:      req.Stock.Quantity,
		PurchasePrice: req.Stock.PurchasePrice,
		BrokerageFees: req.Stock.BrokerageFees,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, AddDetailsResponse{Message: "Stock details added successfully", Lot: *lot})
}

// Sell handles recording a sale against a holding.
// @Summary     Record sale
// @Description Sell shares of a held ticker; the wealth snapshot is recomputed in the background
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SellRequest true "Sale details"
// @Success     200 {object} SellResponse "Sale recorded"
// @Failure     400 {object} ErrorResponse "Invalid input or oversell"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Portfolio or holding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/sell [post]
func (h *PortfolioHandler) Sell(c *gin.Context) {
	var req SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	userID, err := authorizeUser(c, req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	sellDate, err := parseDate("sellDate", req.SellDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.portfolioService.RecordSale(requestContext(c), userID, services.SaleInput{
		Ticker:        req.Ticker,
		SellDate:      sellDate,
		QuantitySold:  req.QuantitySold,
		SellingPrice:  req.SellPrice,
		BrokerageFees: req.BrokerageFees,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SellResponse{
		Message:    "Stock sale recorded and portfolio updated successfully",
		SaleResult: *result,
	})
}

// ListPurchases handles the paginated purchase history.
// @Summary     List purchases
// @Description Paginated purchase lots, newest first
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       userId   path  string true  "User ID"
// @Param       page     query int    false "Page number (default 1)"
// @Param       pageSize query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.PurchaseLot] "Paginated purchases"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/{userId}/purchases [get]
func (h *PortfolioHandler) ListPurchases(c *gin.Context) {
	userID, page, err := h.pagedRequest(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.portfolioService.ListPurchases(requestContext(c), userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListSales handles the paginated sale history.
// @Summary     List sales
// @Description Paginated sale events, newest first
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       userId   path  string true  "User ID"
// @Param       page     query int    false "Page number (default 1)"
// @Param       pageSize query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.SaleEvent] "Paginated sales"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/{userId}/sales [get]
func (h *PortfolioHandler) ListSales(c *gin.Context) {
	userID, page, err := h.pagedRequest(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.portfolioService.ListSales(requestContext(c), userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PortfolioHandler) pagedRequest(c *gin.Context) (string, pagination.PageRequest, error) {
	var page pagination.PageRequest
	userID, err := authorizeUser(c, c.Param("userId"))
	if err != nil {
		return "", page, err
	}
	if err := c.ShouldBindQuery(&page); err != nil {
		return "", page, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	page.Defaults()
	return userID, page, nil
}
