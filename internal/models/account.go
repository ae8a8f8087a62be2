package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID          string      `db:"account_id"`
	TenantID           string      `db:"tenant_id"`
	Code               string      `db:"code"`
	Name               string      `db:"name"`
	AccountType        AccountType `db:"account_type"`
	IsRetainedEarnings bool        `db:"is_retained_earnings"`
	IsActive           bool        `db:"is_active"`
	AuditFields
}

// AccountRole is a row of the account_roles table.
type AccountRole struct {
	TenantID  string `db:"tenant_id"`
	Role      string `db:"role"`
	AccountID string `db:"account_id"`
	AuditFields
}
