package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// billingHandler handles invoices and payments.
type billingHandler struct {
	billingService portssvc.BillingSvcFacade
}

func newBillingHandler(billingService portssvc.BillingSvcFacade) *billingHandler {
	return &billingHandler{billingService: billingService}
}

func registerBillingRoutes(rg *gin.RouterGroup, billingService portssvc.BillingSvcFacade) {
	h := newBillingHandler(billingService)

	projects := rg.Group("/projects/:projectID")
	{
		projects.POST("/invoices", h.createInvoice)
		projects.GET("/invoices", h.listProjectInvoices)
		projects.GET("/revenue", h.revenueSummary)
	}

	invoices := rg.Group("/invoices")
	{
		invoices.GET("/:id", h.getInvoice)
		invoices.POST("/:id/issue", h.issueInvoice)
		invoices.POST("/:id/cancel", h.cancelInvoice)
		invoices.POST("/:id/payments", h.recordPayment)
	}
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Creates an invoice for a project. Unless created as DRAFT, the receivable and revenue are posted with it.
// @Tags billing
// @Accept  json
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice"
// @Success 201 {object} dto.InvoiceResultResponse
// @Failure 400 {object} map[string]string "Invalid items or currency"
// @Failure 409 {object} map[string]string "Invoice number already used"
// @Failure 422 {object} map[string]string "Strict FX mode and no rate"
// @Security BearerAuth
// @Router /projects/{projectID}/invoices [post]
func (h *billingHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "request format", err)
		return
	}
	tenantID, userID, ok := identity(c, logger)
	if !ok {
		return
	}

	projectID := c.Param("projectID")
	logger = logger.With(slog.String("project_id", projectID), slog.String("invoice_no", req.InvoiceNo))
	logger.Info("Received request to create invoice")

	result, err := h.billingService.CreateInvoice(c.Request.Context(), tenantID, projectID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create invoice")
		return
	}

	logger.Info("Invoice created", slog.String("invoice_id", result.Invoice.InvoiceID), slog.Bool("journal_posted", result.Posting.JournalPosted))
	c.JSON(http.StatusCreated, dto.ToInvoiceResultResponse(result))
}

// listProjectInvoices godoc
// @Summary List a project's invoices
// @Tags billing
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Success 200 {object} dto.ListInvoicesResponse
// @Security BearerAuth
// @Router /projects/{projectID}/invoices [get]
func (h *billingHandler) listProjectInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := identity(c, logger)
	if !ok {
		return
	}

	summaries, err := h.billingService.ListProjectInvoices(c.Request.Context(), tenantID, c.Param("projectID"))
	if err != nil {
		respondError(c, logger, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoicesResponse(summaries))
}

// revenueSummary godoc
// @Summary Collected revenue of a project
// @Tags billing
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Param   from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} domain.RevenueSummary
// @Security BearerAuth
// @Router /projects/{projectID}/revenue [get]
func (h *billingHandler) revenueSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.RevenueSummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, logger, "query parameters", err)
		return
	}
	tenantID, _, ok := identity(c, logger)
	if !ok {
		return
	}

	summary, err := h.billingService.RevenueSummary(c.Request.Context(), tenantID, c.Param("projectID"), q.From, dto.EndOfDay(q.To))
	if err != nil {
		respondError(c, logger, err, "Failed to summarise revenue")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags billing
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *billingHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _, ok := identity(c, logger)
	if !ok {
		return
	}

	summary, err := h.billingService.GetInvoice(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceSummaryResponse(summary))
}

// issueInvoice godoc
// @Summary Issue a draft invoice
// @Tags billing
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResultResponse
// @Failure 400 {object} map[string]string "Invoice is not a draft"
// @Security BearerAuth
// @Router /invoices/{id}/issue [post]
func (h *billingHandler) issueInvoice(c *gin.Context) {
	h.transition(c, "issue", h.billingService.IssueInvoice)
}

// cancelInvoice godoc
// @Summary Cancel an invoice
// @Description Cancels an unpaid invoice and reverses its receivable posting
// @Tags billing
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResultResponse
// @Failure 400 {object} map[string]string "Invoice is paid or already cancelled"
// @Security BearerAuth
// @Router /invoices/{id}/cancel [post]
func (h *billingHandler) cancelInvoice(c *gin.Context) {
	h.transition(c, "cancel", h.billingService.CancelInvoice)
}

type invoiceTransition func(ctx context.Context, tenantID, invoiceID, userID string) (*domain.InvoiceResult, error)

func (h *billingHandler) transition(c *gin.Context, action string, apply invoiceTransition) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, userID, ok := identity(c, logger)
	if !ok {
		return
	}

	invoiceID := c.Param("id")
	logger = logger.With(slog.String("invoice_id", invoiceID), slog.String("action", action))

	result, err := apply(c.Request.Context(), tenantID, invoiceID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to "+action+" invoice")
		return
	}

	logger.Info("Invoice transitioned", slog.String("status", string(result.Invoice.Status)), slog.Bool("journal_posted", result.Posting.JournalPosted))
	c.JSON(http.StatusOK, dto.ToInvoiceResultResponse(result))
}

// recordPayment godoc
// @Summary Record a payment
// @Description Applies a payment, recomputes the invoice status and posts the settlement with any realized FX difference
// @Tags billing
// @Accept  json
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment"
// @Success 201 {object} domain.PaymentResult
// @Failure 400 {object} map[string]string "Invoice does not accept payments"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id}/payments [post]
func (h *billingHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "request format", err)
		return
	}
	tenantID, userID, ok := identity(c, logger)
	if !ok {
		return
	}

	invoiceID := c.Param("id")
	logger = logger.With(slog.String("invoice_id", invoiceID))

	result, err := h.billingService.RecordPayment(c.Request.Context(), tenantID, invoiceID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded", slog.String("payment_id", result.Payment.PaymentID), slog.String("invoice_status", string(result.InvoiceStatus)))
	c.JSON(http.StatusCreated, result)
}
