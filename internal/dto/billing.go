package dto

import (
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is a single billed line.
type InvoiceItemRequest struct {
	Description string          `json:"description" binding:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// CreateInvoiceRequest defines the data needed to create an invoice.
// CurrencyCode defaults to the tenant base currency; FxRate is resolved
// from the latest rate when omitted.
type CreateInvoiceRequest struct {
	InvoiceNo    string               `json:"invoiceNo" binding:"required,max=50"`
	IssueDate    time.Time            `json:"issueDate" binding:"required"`
	DueDate      *time.Time           `json:"dueDate"`
	Notes        string               `json:"notes" binding:"max=2000"`
	CurrencyCode string               `json:"currencyCode" binding:"omitempty,len=3"`
	FxRate       *decimal.Decimal     `json:"fxRate"`
	Status       domain.InvoiceStatus `json:"status" binding:"omitempty,oneof=DRAFT SENT"`
	Items        []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// RecordPaymentRequest defines a payment applied to an invoice. Amount is
// expressed in CurrencyCode (invoice currency when omitted).
type RecordPaymentRequest struct {
	Amount       decimal.Decimal  `json:"amount"`
	PaidDate     time.Time        `json:"paidDate" binding:"required"`
	CurrencyCode string           `json:"currencyCode" binding:"omitempty,len=3"`
	FxRate       *decimal.Decimal `json:"fxRate"`
	Method       string           `json:"method" binding:"max=50"`
	Reference    string           `json:"reference" binding:"max=100"`
}

// RevenueSummaryQuery bounds a revenue summary by paid date.
type RevenueSummaryQuery struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	domain.Invoice
	Collected   *decimal.Decimal `json:"collected,omitempty"`
	Outstanding *decimal.Decimal `json:"outstanding,omitempty"`
}

// InvoiceResultResponse is an invoice plus its posting outcome.
type InvoiceResultResponse struct {
	Invoice InvoiceResponse       `json:"invoice"`
	Posting domain.PostingOutcome `json:"posting"`
}

// ListInvoicesResponse wraps a project's invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// ToInvoiceResultResponse converts an InvoiceResult.
func ToInvoiceResultResponse(r *domain.InvoiceResult) InvoiceResultResponse {
	return InvoiceResultResponse{
		Invoice: InvoiceResponse{Invoice: r.Invoice},
		Posting: r.Posting,
	}
}

// ToInvoiceSummaryResponse converts an invoice with collection totals.
func ToInvoiceSummaryResponse(s *domain.InvoiceSummary) InvoiceResponse {
	collected, outstanding := s.Collected, s.Outstanding
	return InvoiceResponse{Invoice: s.Invoice, Collected: &collected, Outstanding: &outstanding}
}

// ToListInvoicesResponse converts invoice summaries.
func ToListInvoicesResponse(summaries []domain.InvoiceSummary) ListInvoicesResponse {
	resp := ListInvoicesResponse{Invoices: make([]InvoiceResponse, len(summaries))}
	for i := range summaries {
		resp.Invoices[i] = ToInvoiceSummaryResponse(&summaries[i])
	}
	return resp
}
