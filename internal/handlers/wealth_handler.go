package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"investwise/internal/models"
	"investwise/internal/services"
)

// WealthHandler handles wealth snapshot requests.
type WealthHandler struct {
	valuationService services.ValuationServicer
}

// NewWealthHandler creates a new WealthHandler.
func NewWealthHandler(valuationService services.ValuationServicer) *WealthHandler {
	return &WealthHandler{valuationService: valuationService}
}

// WealthResponse is one snapshot as rendered to clients.
type WealthResponse struct {
	TotalWealth     decimal.Decimal        `json:"totalWealth"`
	TotalInvested   decimal.Decimal        `json:"totalInvested"`
	CalculationDate time.Time              `json:"calculationDate"`
	Status          models.ValuationStatus `json:"status"`
}

// UpdateResponse is the outcome of an on-demand valuation.
type UpdateResponse struct {
	WealthResponse
	UnavailableTickers []string            `json:"unavailableTickers"`
	Positions          []services.Position `json:"positions"`
}

// CreateWealthResponse acknowledges the initial snapshot.
type CreateWealthResponse struct {
	Message  string         `json:"message"`
	Snapshot WealthResponse `json:"snapshot"`
}

func toWealthResponse(s models.WealthSnapshot) WealthResponse {
	return WealthResponse{
		TotalWealth:     s.TotalWealth,
		TotalInvested:   s.TotalInvested,
		CalculationDate: s.CalculationDate,
		Status:          s.Status,
	}
}

// Update handles an on-demand valuation.
// @Summary     Recompute total wealth
// @Description Price every holding and append a new wealth snapshot
// @Tags        total-wealth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UserRequest true "User"
// @Success     200 {object} UpdateResponse "Valuation"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /total-wealth/update [post]
func (h *WealthHandler) Update(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	userID, err := authorizeUser(c, req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	valuation, err := h.valuationService.ComputeAndSnapshot(requestContext(c), userID, services.TriggerManual)
	if err != nil {
		respondWithError(c, err)
		return
	}

	unavailable := valuation.UnavailableTickers
	if unavailable == nil {
		unavailable = []string{}
	}
	positions := valuation.Positions
	if positions == nil {
		positions = []services.Position{}
	}
	c.JSON(http.StatusOK, UpdateResponse{
		WealthResponse:     toWealthResponse(valuation.Snapshot),
		UnavailableTickers: unavailable,
		Positions:          positions,
	})
}

// GetLatest handles fetching the most recent snapshot.
// @Summary     Latest total wealth
// @Description Most recent wealth snapshot without recomputing
// @Tags        total-wealth
// @Produce     json
// @Security    BearerAuth
// @Param       userId path string true "User ID"
// @Success     200 {object} WealthResponse "Latest snapshot"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "No wealth data"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /total-wealth/{userId} [get]
func (h *WealthHandler) GetLatest(c *gin.Context) {
	userID, err := authorizeUser(c, c.Param("userId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshot, err := h.valuationService.Latest(requestContext(c), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toWealthResponse(*snapshot))
}

// GetHistory handles the monthly wealth series.
// @Summary     Wealth history
// @Description Latest snapshot per calendar month over the trailing twelve months
// @Tags        total-wealth
// @Produce     json
// @Security    BearerAuth
// @Param       userId path string true "User ID"
// @Success     200 {array}  WealthResponse "Monthly series"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /total-wealth/history/{userId} [get]
func (h *WealthHandler) GetHistory(c *gin.Context) {
	userID, err := authorizeUser(c, c.Param("userId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshots, err := h.valuationService.History(requestContext(c), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	out := make([]WealthResponse, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, toWealthResponse(s))
	}
	c.JSON(http.StatusOK, out)
}

// Create handles seeding the initial zero snapshot.
// @Summary     Create initial wealth entry
// @Description Idempotently seed a zero snapshot for a new user
// @Tags        total-wealth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UserRequest true "User"
// @Success     201 {object} CreateWealthResponse "Created"
// @Success     200 {object} CreateWealthResponse "Already exists"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /total-wealth/create [post]
func (h *WealthHandler) Create(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	userID, err := authorizeUser(c, req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshot, created, err := h.valuationService.CreateInitial(requestContext(c), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if !created {
		c.JSON(http.StatusOK, CreateWealthResponse{Message: "TotalWealth entry already exists", Snapshot: toWealthResponse(*snapshot)})
		return
	}
	c.JSON(http.StatusCreated, CreateWealthResponse{Message: "Initial TotalWealth entry created successfully", Snapshot: toWealthResponse(*snapshot)})
}

// Backfill handles rebuilding the historical series from the ledger.
// @Summary     Backfill wealth history
// @Description Upsert one snapshot per purchase date valued at that day's close
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body UserRequest true "User"
// @Success     200 {object} services.BackfillResult "Backfill summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /pipeline/total-wealth/backfill [post]
func (h *WealthHandler) Backfill(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.valuationService.Backfill(requestContext(c), req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
