package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// cashAccountPrefix marks ASSET accounts treated as cash/bank in the cashflow view.
const cashAccountPrefix = "10"

type ledgerService struct {
	BaseService
	store portsrepo.Store
}

// NewLedgerService creates the ledger query service.
func NewLedgerService(store portsrepo.Store) portssvc.LedgerSvcFacade {
	return &ledgerService{store: store}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) GeneralLedger(ctx context.Context, tenantID string, filter domain.LedgerFilter) ([]domain.LedgerLine, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, apperrors.NewValidationError("from date must not be after to date")
	}

	lines, err := s.store.Journals().ListLedgerLines(ctx, tenantID, filter.From, filter.To)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger lines", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list ledger lines: %w", err)
	}

	if filter.AccountID != nil {
		lines = slices.DeleteFunc(lines, func(l domain.LedgerLine) bool {
			return l.AccountID != *filter.AccountID
		})
	}
	slices.SortStableFunc(lines, func(a, b domain.LedgerLine) int {
		return a.Date.Compare(b.Date)
	})
	if lines == nil {
		lines = []domain.LedgerLine{}
	}
	return lines, nil
}

func (s *ledgerService) TrialBalance(ctx context.Context, tenantID string, asOf *time.Time) (*domain.TrialBalance, error) {
	rows, err := s.store.Reporting().GetTrialBalanceRows(ctx, tenantID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate trial balance", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to aggregate trial balance: %w", err)
	}

	slices.SortFunc(rows, func(a, b domain.TrialBalanceRow) int {
		return cmp.Compare(a.Code, b.Code)
	})

	tb := &domain.TrialBalance{
		AsOf:        asOf,
		Rows:        rows,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	if tb.Rows == nil {
		tb.Rows = []domain.TrialBalanceRow{}
	}
	for _, r := range rows {
		tb.TotalDebit = tb.TotalDebit.Add(r.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(r.Credit)
	}
	tb.TotalDebit = accounting.Round2(tb.TotalDebit)
	tb.TotalCredit = accounting.Round2(tb.TotalCredit)

	if !tb.TotalDebit.Equal(tb.TotalCredit) {
		s.LogWarn(ctx, "Trial balance totals differ",
			slog.String("tenant_id", tenantID),
			slog.String("debit", tb.TotalDebit.String()),
			slog.String("credit", tb.TotalCredit.String()))
	}
	return tb, nil
}

func (s *ledgerService) FinancialStatements(ctx context.Context, tenantID string, asOf *time.Time) (*domain.FinancialStatements, error) {
	lines, err := s.store.Journals().ListLedgerLines(ctx, tenantID, nil, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger lines", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list ledger lines: %w", err)
	}

	balances := map[string]*domain.StatementRow{}
	equityChanges := map[string]*domain.StatementRow{}
	bump := func(m map[string]*domain.StatementRow, l domain.LedgerLine, delta decimal.Decimal) {
		row, ok := m[l.AccountID]
		if !ok {
			row = &domain.StatementRow{
				AccountID:   l.AccountID,
				Code:        l.AccountCode,
				Name:        l.AccountName,
				AccountType: l.AccountType,
				Amount:      decimal.Zero,
			}
			m[l.AccountID] = row
		}
		row.Amount = row.Amount.Add(delta)
	}

	cash := domain.CashflowReport{Inflows: decimal.Zero, Outflows: decimal.Zero}
	for _, l := range lines {
		switch l.AccountType {
		case domain.Asset, domain.Liability, domain.Equity:
			bump(balances, l, l.Debit.Sub(l.Credit))
		case domain.Revenue:
			bump(balances, l, l.Credit.Sub(l.Debit))
		case domain.Expense:
			bump(balances, l, l.Debit.Sub(l.Credit))
		}
		if l.AccountType == domain.Equity {
			bump(equityChanges, l, l.Credit.Sub(l.Debit))
		}
		if l.AccountType == domain.Asset && strings.HasPrefix(l.AccountCode, cashAccountPrefix) {
			cash.Inflows = cash.Inflows.Add(l.Debit)
			cash.Outflows = cash.Outflows.Add(l.Credit)
		}
	}

	fs := &domain.FinancialStatements{AsOf: asOf}
	bs := &fs.BalanceSheet
	pl := &fs.ProfitLoss
	bs.TotalAssets, bs.TotalLiabilities, bs.TotalEquity = decimal.Zero, decimal.Zero, decimal.Zero
	pl.TotalRevenue, pl.TotalExpense = decimal.Zero, decimal.Zero
	bs.Assets, bs.Liabilities, bs.Equity = []domain.StatementRow{}, []domain.StatementRow{}, []domain.StatementRow{}
	pl.Revenue, pl.Expenses = []domain.StatementRow{}, []domain.StatementRow{}

	for _, row := range sortedRows(balances) {
		switch row.AccountType {
		case domain.Asset:
			bs.Assets = append(bs.Assets, row)
			bs.TotalAssets = bs.TotalAssets.Add(row.Amount)
		case domain.Liability:
			bs.Liabilities = append(bs.Liabilities, row)
			bs.TotalLiabilities = bs.TotalLiabilities.Add(row.Amount)
		case domain.Equity:
			bs.Equity = append(bs.Equity, row)
			bs.TotalEquity = bs.TotalEquity.Add(row.Amount)
		case domain.Revenue:
			pl.Revenue = append(pl.Revenue, row)
			pl.TotalRevenue = pl.TotalRevenue.Add(row.Amount)
		case domain.Expense:
			pl.Expenses = append(pl.Expenses, row)
			pl.TotalExpense = pl.TotalExpense.Add(row.Amount)
		}
	}
	pl.NetIncome = pl.TotalRevenue.Sub(pl.TotalExpense)

	cash.Net = cash.Inflows.Sub(cash.Outflows)
	fs.Cashflow = cash

	fs.EquityChanges.Rows = sortedRows(equityChanges)
	fs.EquityChanges.TotalChange = decimal.Zero
	for _, row := range fs.EquityChanges.Rows {
		fs.EquityChanges.TotalChange = fs.EquityChanges.TotalChange.Add(row.Amount)
	}
	return fs, nil
}

// sortedRows returns the rows ordered by account code, rounded to cents.
func sortedRows(m map[string]*domain.StatementRow) []domain.StatementRow {
	rows := make([]domain.StatementRow, 0, len(m))
	for _, r := range m {
		row := *r
		row.Amount = accounting.Round2(row.Amount)
		rows = append(rows, row)
	}
	slices.SortFunc(rows, func(a, b domain.StatementRow) int {
		return cmp.Compare(a.Code, b.Code)
	})
	return rows
}

func (s *ledgerService) AccountBalance(ctx context.Context, tenantID, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	account, err := s.store.Accounts().FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, apperrors.NewNotFoundError("account %s not found", accountID)
		}
		return decimal.Zero, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}

	lines, err := s.store.Journals().ListLedgerLines(ctx, tenantID, nil, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list ledger lines: %w", err)
	}
	debit, credit := decimal.Zero, decimal.Zero
	for _, l := range lines {
		if l.AccountID == accountID {
			debit = debit.Add(l.Debit)
			credit = credit.Add(l.Credit)
		}
	}
	return accounting.Round2(accounting.SignedBalance(account.AccountType, debit, credit)), nil
}
