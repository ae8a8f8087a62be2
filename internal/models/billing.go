package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a row of the invoices table.
type Invoice struct {
	InvoiceID      string              `db:"invoice_id"`
	TenantID       string              `db:"tenant_id"`
	ProjectID      string              `db:"project_id"`
	InvoiceNo      string              `db:"invoice_no"`
	IssueDate      time.Time           `db:"issue_date"`
	DueDate        sql.NullTime        `db:"due_date"`
	Notes          string              `db:"notes"`
	TotalAmount    decimal.Decimal     `db:"total_amount"`
	CurrencyCode   string              `db:"currency_code"`
	FxRate         decimal.Decimal     `db:"fx_rate"`
	ForeignAmount  decimal.NullDecimal `db:"foreign_amount"`
	Status         string              `db:"status"`
	JournalEntryID sql.NullString      `db:"journal_entry_id"`
	AuditFields
}

// InvoiceItem is a row of the invoice_items table.
type InvoiceItem struct {
	ItemID      string          `db:"item_id"`
	InvoiceID   string          `db:"invoice_id"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	LineTotal   decimal.Decimal `db:"line_total"`
}

// Payment is a row of the payments table.
type Payment struct {
	PaymentID      string              `db:"payment_id"`
	TenantID       string              `db:"tenant_id"`
	ProjectID      string              `db:"project_id"`
	InvoiceID      string              `db:"invoice_id"`
	Amount         decimal.Decimal     `db:"amount"`
	PaidDate       time.Time           `db:"paid_date"`
	CurrencyCode   string              `db:"currency_code"`
	FxRate         decimal.Decimal     `db:"fx_rate"`
	ForeignAmount  decimal.NullDecimal `db:"foreign_amount"`
	Method         string              `db:"method"`
	Reference      string              `db:"reference"`
	JournalEntryID sql.NullString      `db:"journal_entry_id"`
	AuditFields
}
