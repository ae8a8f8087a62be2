package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fxHandler handles exchange rates and FX period close.
type fxHandler struct {
	fxRateService  portssvc.FxRateSvcFacade
	fxCloseService portssvc.FxCloseSvcFacade
}

func newFxHandler(rates portssvc.FxRateSvcFacade, closer portssvc.FxCloseSvcFacade) *fxHandler {
	return &fxHandler{
		fxRateService:  rates,
		fxCloseService: closer,
	}
}

// registerFxRoutes registers routes related to exchange rates and revaluation.
func registerFxRoutes(rg *gin.RouterGroup, rates portssvc.FxRateSvcFacade, closer portssvc.FxCloseSvcFacade) {
	h := newFxHandler(rates, closer)

	fxRates := rg.Group("/fx-rates")
	{
		fxRates.POST("", h.createRate)
		fxRates.GET("/latest", h.latestRate)
	}

	fx := rg.Group("/fx")
	{
		fx.GET("/exposure", h.exposure)
		fx.POST("/close", h.closePeriod)
	}
}

// createRate godoc
// @Summary Record an exchange rate
// @Description Stores a dated base->quote rate. Rates are never updated in place.
// @Tags fx
// @Accept  json
// @Produce  json
// @Param   rate body dto.CreateFxRateRequest true "Rate"
// @Success 201 {object} dto.FxRateResponse
// @Failure 400 {object} map[string]string "Invalid currency or non-positive rate"
// @Security BearerAuth
// @Router /fx-rates [post]
func (h *fxHandler) createRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "request format", err)
		return
	}
	_, userID, ok := identity(c, logger)
	if !ok {
		return
	}

	rate, err := h.fxRateService.CreateRate(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create exchange rate")
		return
	}

	logger.Info("Exchange rate created", slog.String("base", rate.BaseCode), slog.String("quote", rate.QuoteCode), slog.String("rate", rate.Rate.String()))
	c.JSON(http.StatusCreated, dto.ToFxRateResponse(rate))
}

// latestRate godoc
// @Summary Latest exchange rate
// @Tags fx
// @Produce  json
// @Param   base query string true "Base currency"
// @Param   quote query string true "Quote currency"
// @Param   asOf query string false "Rate date upper bound (YYYY-MM-DD)"
// @Success 200 {object} dto.FxRateResponse
// @Failure 404 {object} map[string]string "No rate recorded"
// @Security BearerAuth
// @Router /fx-rates/latest [get]
func (h *fxHandler) latestRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.LatestRateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, logger, "query parameters", err)
		return
	}
	if _, _, ok := identity(c, logger); !ok {
		return
	}

	rate, err := h.fxRateService.LatestRate(c.Request.Context(), q.BaseCode, q.QuoteCode, dto.EndOfDay(q.AsOf))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToFxRateResponse(rate))
}

// exposure godoc
// @Summary Unrealized FX exposure
// @Description Revalues open foreign-currency invoices at the latest rate on or before the date
// @Tags fx
// @Produce  json
// @Param   to query string false "Valuation date (YYYY-MM-DD)"
// @Success 200 {object} domain.ExposureReport
// @Security BearerAuth
// @Router /fx/exposure [get]
func (h *fxHandler) exposure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.AsOfQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, logger, "query parameters", err)
		return
	}
	tenantID, _, ok := identity(c, logger)
	if !ok {
		return
	}

	report, err := h.fxCloseService.UnrealizedExposure(c.Request.Context(), tenantID, dto.EndOfDay(q.To))
	if err != nil {
		respondError(c, logger, err, "Failed to compute FX exposure")
		return
	}
	c.JSON(http.StatusOK, report)
}

// closePeriod godoc
// @Summary Close unrealized FX
// @Description Posts one adjustment entry for the net unrealized gain or loss. The body is optional.
// @Tags fx
// @Accept  json
// @Produce  json
// @Param   close body dto.ClosePeriodRequest false "Closing date"
// @Success 200 {object} domain.PeriodCloseResult
// @Failure 422 {object} map[string]string "Receivable or FX accounts not configured"
// @Security BearerAuth
// @Router /fx/close [post]
func (h *fxHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ClosePeriodRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, logger, "request format", err)
		return
	}
	tenantID, userID, ok := identity(c, logger)
	if !ok {
		return
	}

	result, err := h.fxCloseService.ClosePeriod(c.Request.Context(), tenantID, req.AsOf, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to close FX period")
		return
	}

	logger.Info("FX period close processed", slog.Bool("posted", result.Entry != nil), slog.String("total_gain", result.TotalGain.String()), slog.String("total_loss", result.TotalLoss.String()))
	c.JSON(http.StatusOK, result)
}
