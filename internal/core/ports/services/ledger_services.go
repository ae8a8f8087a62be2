package services

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade derives reports from posted journal lines.
type LedgerSvcFacade interface {
	// GeneralLedger lists lines sorted by entry date.
	GeneralLedger(ctx context.Context, tenantID string, filter domain.LedgerFilter) ([]domain.LedgerLine, error)

	// TrialBalance aggregates debits and credits per account up to asOf.
	TrialBalance(ctx context.Context, tenantID string, asOf *time.Time) (*domain.TrialBalance, error)

	// FinancialStatements computes balance sheet, P&L, cashflow and equity
	// changes over all entries up to asOf.
	FinancialStatements(ctx context.Context, tenantID string, asOf *time.Time) (*domain.FinancialStatements, error)

	// AccountBalance returns the signed balance of one account up to asOf.
	AccountBalance(ctx context.Context, tenantID, accountID string, asOf *time.Time) (decimal.Decimal, error)
}
