package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five ledger account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether balances of this type grow with debits.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account represents a ledger account within a tenant's chart of accounts.
// Accounts are never deleted; IsActive=false retires them.
type Account struct {
	AccountID          string      `json:"accountID"`
	TenantID           string      `json:"tenantID"`
	Code               string      `json:"code"` // unique per tenant
	Name               string      `json:"name"`
	AccountType        AccountType `json:"accountType"`
	IsRetainedEarnings bool        `json:"isRetainedEarnings"`
	IsActive           bool        `json:"isActive"`
	AuditFields
}
