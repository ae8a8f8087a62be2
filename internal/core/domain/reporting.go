package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerFilter narrows a general ledger query. Date bounds apply to the entry date.
type LedgerFilter struct {
	AccountID *string
	From      *time.Time
	To        *time.Time
}

// LedgerLine is a journal line denormalized with its entry and account.
type LedgerLine struct {
	EntryID       string           `json:"entryID"`
	Date          time.Time        `json:"date"`
	Reference     string           `json:"reference"`
	Description   string           `json:"description"`
	LineID        string           `json:"lineID"`
	LineNo        int              `json:"lineNo"`
	AccountID     string           `json:"accountID"`
	AccountCode   string           `json:"accountCode"`
	AccountName   string           `json:"accountName"`
	AccountType   AccountType      `json:"accountType"`
	Debit         decimal.Decimal  `json:"debit"`
	Credit        decimal.Decimal  `json:"credit"`
	Memo          string           `json:"memo"`
	ForeignAmount *decimal.Decimal `json:"foreignAmount,omitempty"`
	ForeignCode   *string          `json:"foreignCode,omitempty"`
	FxRate        *decimal.Decimal `json:"fxRate,omitempty"`
}

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance is the per-account debit/credit aggregate, sorted by code.
type TrialBalance struct {
	AsOf        *time.Time        `json:"asOf,omitempty"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// StatementRow is an account and its bucketed amount in a financial statement.
type StatementRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Amount      decimal.Decimal `json:"amount"`
}

// BalanceSheetReport holds ASSET/LIABILITY/EQUITY balances as Σ(debit − credit).
type BalanceSheetReport struct {
	Assets           []StatementRow  `json:"assets"`
	Liabilities      []StatementRow  `json:"liabilities"`
	Equity           []StatementRow  `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}

// PAndLReport represents a profit and loss report
type PAndLReport struct {
	Revenue      []StatementRow  `json:"revenue"`
	Expenses     []StatementRow  `json:"expenses"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetIncome    decimal.Decimal `json:"netIncome"`
}

// CashflowReport sums movements on cash/bank accounts (ASSET codes prefixed "10").
type CashflowReport struct {
	Inflows  decimal.Decimal `json:"inflows"`
	Outflows decimal.Decimal `json:"outflows"`
	Net      decimal.Decimal `json:"net"`
}

// EquityChangesReport lists equity movements as Σ(credit − debit).
type EquityChangesReport struct {
	Rows        []StatementRow  `json:"rows"`
	TotalChange decimal.Decimal `json:"totalChange"`
}

// FinancialStatements bundles the statements computed in a single pass.
type FinancialStatements struct {
	AsOf          *time.Time          `json:"asOf,omitempty"`
	BalanceSheet  BalanceSheetReport  `json:"balanceSheet"`
	ProfitLoss    PAndLReport         `json:"profitLoss"`
	Cashflow      CashflowReport      `json:"cashflow"`
	EquityChanges EquityChangesReport `json:"equity"`
}
