package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
)

// ReportingReader aggregates posted journal lines.
type ReportingReader interface {
	// GetTrialBalanceRows sums debit and credit per account over entries dated
	// on or before asOf (all entries when nil). Accounts without lines are omitted.
	GetTrialBalanceRows(ctx context.Context, tenantID string, asOf *time.Time) ([]domain.TrialBalanceRow, error)
}
