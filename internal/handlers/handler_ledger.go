package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/SscSPs/backoffice_ledger/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	rg.GET("/ledger", h.generalLedger)
	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/financial-statements", h.financialStatements)
	}
}

// generalLedger godoc
// @Summary General ledger
// @Description Lists posted lines ordered by entry date, optionally filtered by account and date range
// @Tags ledger
// @Produce  json
// @Param   accountID query string false "Account ID"
// @Param   from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param   limit query int false "Page size (1-1000); omit for all lines"
// @Param   pageToken query string false "Token from a previous page"
// @Success 200 {object} dto.LedgerResponse
// @Security BearerAuth
// @Router /ledger [get]
func (h *ledgerHandler) generalLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.LedgerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, logger, "query parameters", err)
		return
	}
	tenantID, _, ok := identity(c, logger)
	if !ok {
		return
	}

	lines, err := h.ledgerService.GeneralLedger(c.Request.Context(), tenantID, q.ToLedgerFilter())
	if err != nil {
		respondError(c, logger, err, "Failed to load general ledger")
		return
	}
	page, next, err := pagination.Page(lines, q.Limit, q.PageToken, func(l domain.LedgerLine) (time.Time, string) {
		return l.Date, l.LineID
	})
	if err != nil {
		badRequest(c, logger, "page token", err)
		return
	}
	c.JSON(http.StatusOK, dto.LedgerResponse{Lines: page, NextPageToken: next})
}

// trialBalance godoc
// @Summary Trial balance
// @Tags reports
// @Produce  json
// @Param   to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} domain.TrialBalance
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *ledgerHandler) trialBalance(c *gin.Context) {
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

	tb, err := h.ledgerService.TrialBalance(c.Request.Context(), tenantID, dto.EndOfDay(q.To))
	if err != nil {
		respondError(c, logger, err, "Failed to build trial balance")
		return
	}
	c.JSON(http.StatusOK, tb)
}

// financialStatements godoc
// @Summary Financial statements
// @Description Balance sheet, P&L, cashflow and equity changes over all entries up to the date
// @Tags reports
// @Produce  json
// @Param   to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} domain.FinancialStatements
// @Security BearerAuth
// @Router /reports/financial-statements [get]
func (h *ledgerHandler) financialStatements(c *gin.Context) {
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

	statements, err := h.ledgerService.FinancialStatements(c.Request.Context(), tenantID, dto.EndOfDay(q.To))
	if err != nil {
		respondError(c, logger, err, "Failed to build financial statements")
		return
	}
	c.JSON(http.StatusOK, statements)
}
