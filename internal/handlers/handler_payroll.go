package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type payrollHandler struct {
	payrollService portssvc.PayrollPostingSvc
}

func registerPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollPostingSvc) {
	h := &payrollHandler{payrollService: payrollService}
	rg.POST("/payroll/accruals", h.postAccrual)
}

// postAccrual godoc
// @Summary Post a payroll accrual
// @Description Debits payroll expense and credits staff payable for a completed run. Missing accounts skip the posting.
// @Tags payroll
// @Accept  json
// @Produce  json
// @Param   run body dto.PostPayrollRequest true "Payroll run"
// @Success 200 {object} domain.PostingOutcome
// @Security BearerAuth
// @Router /payroll/accruals [post]
func (h *payrollHandler) postAccrual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "request format", err)
		return
	}
	tenantID, userID, ok := identity(c, logger)
	if !ok {
		return
	}

	outcome, err := h.payrollService.PostPayrollAccrual(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to post payroll accrual")
		return
	}

	logger.Info("Payroll accrual processed", slog.String("run_id", req.RunID), slog.Bool("journal_posted", outcome.JournalPosted))
	c.JSON(http.StatusOK, outcome)
}
