package services

import (
	"context"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
)

// PayrollPostingSvc posts the accrual of a completed payroll run.
type PayrollPostingSvc interface {
	PostPayrollAccrual(ctx context.Context, tenantID string, req dto.PostPayrollRequest, userID string) (*domain.PostingOutcome, error)
}
