package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostPayrollRequest summarises a completed payroll run for the ledger.
type PostPayrollRequest struct {
	RunID       string          `json:"runID" binding:"required"`
	Year        int             `json:"year" binding:"required,min=2000,max=2100"`
	Month       int             `json:"month" binding:"required,min=1,max=12"`
	TotalNetPay decimal.Decimal `json:"totalNetPay"`
	Date        time.Time       `json:"date" binding:"required"`
}
