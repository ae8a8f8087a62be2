package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the cached lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft         InvoiceStatus = "DRAFT"
	InvoiceSent          InvoiceStatus = "SENT"
	InvoicePartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoicePaid          InvoiceStatus = "PAID"
	InvoiceCancelled     InvoiceStatus = "CANCELLED"
)

// AcceptsPayments reports whether payments may be applied in this state.
func (s InvoiceStatus) AcceptsPayments() bool {
	return s == InvoiceSent || s == InvoicePartiallyPaid || s == InvoicePaid
}

// Invoice is a bill issued to a project/client. TotalAmount is in the tenant
// base currency; ForeignAmount is the item total in CurrencyCode.
type Invoice struct {
	InvoiceID      string           `json:"invoiceID"`
	TenantID       string           `json:"tenantID"`
	ProjectID      string           `json:"projectID"`
	InvoiceNo      string           `json:"invoiceNo"`
	IssueDate      time.Time        `json:"issueDate"`
	DueDate        *time.Time       `json:"dueDate,omitempty"`
	Notes          string           `json:"notes"`
	Items          []InvoiceItem    `json:"items"`
	TotalAmount    decimal.Decimal  `json:"totalAmount"`
	CurrencyCode   string           `json:"currencyCode"`
	FxRate         decimal.Decimal  `json:"fxRate"`
	ForeignAmount  *decimal.Decimal `json:"foreignAmount,omitempty"`
	Status         InvoiceStatus    `json:"status"`
	JournalEntryID *string          `json:"journalEntryID,omitempty"`
	AuditFields
}

// InvoiceItem is a single billed line.
type InvoiceItem struct {
	ItemID      string          `json:"itemID"`
	InvoiceID   string          `json:"invoiceID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// Payment is a receipt applied to one invoice. Amount is in base currency.
type Payment struct {
	PaymentID      string           `json:"paymentID"`
	TenantID       string           `json:"tenantID"`
	ProjectID      string           `json:"projectID"`
	InvoiceID      string           `json:"invoiceID"`
	Amount         decimal.Decimal  `json:"amount"`
	PaidDate       time.Time        `json:"paidDate"`
	CurrencyCode   string           `json:"currencyCode"`
	FxRate         decimal.Decimal  `json:"fxRate"`
	ForeignAmount  *decimal.Decimal `json:"foreignAmount,omitempty"`
	Method         string           `json:"method"`
	Reference      string           `json:"reference"`
	JournalEntryID *string          `json:"journalEntryID,omitempty"`
	AuditFields
}

// InvoiceResult is an invoice together with the outcome of its AR posting.
type InvoiceResult struct {
	Invoice Invoice        `json:"invoice"`
	Posting PostingOutcome `json:"posting"`
}

// PaymentResult is a recorded payment with the invoice's recomputed status
// and the outcome of the settlement posting.
type PaymentResult struct {
	Payment       Payment         `json:"payment"`
	InvoiceStatus InvoiceStatus   `json:"invoiceStatus"`
	Collected     decimal.Decimal `json:"collected"`
	Posting       PostingOutcome  `json:"posting"`
}

// InvoiceSummary is an invoice with its collected and outstanding base amounts.
type InvoiceSummary struct {
	Invoice
	Collected   decimal.Decimal `json:"collected"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// RevenueSummary totals the payments collected for a project over a period.
type RevenueSummary struct {
	ProjectID    string          `json:"projectID"`
	From         *time.Time      `json:"from,omitempty"`
	To           *time.Time      `json:"to,omitempty"`
	Collected    decimal.Decimal `json:"collected"`
	PaymentCount int             `json:"paymentCount"`
}
