package services

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
)

// InvoiceSvc manages the invoice lifecycle.
type InvoiceSvc interface {
	// CreateInvoice persists an invoice. Unless created as DRAFT, the AR and
	// revenue recognition entry is posted in the same transaction.
	CreateInvoice(ctx context.Context, tenantID, projectID string, req dto.CreateInvoiceRequest, userID string) (*domain.InvoiceResult, error)

	// IssueInvoice moves a DRAFT invoice to SENT and posts its recognition entry.
	IssueInvoice(ctx context.Context, tenantID, invoiceID, userID string) (*domain.InvoiceResult, error)

	// CancelInvoice cancels a non-PAID invoice and reverses its recognition entry.
	CancelInvoice(ctx context.Context, tenantID, invoiceID, userID string) (*domain.InvoiceResult, error)

	GetInvoice(ctx context.Context, tenantID, invoiceID string) (*domain.InvoiceSummary, error)
	ListProjectInvoices(ctx context.Context, tenantID, projectID string) ([]domain.InvoiceSummary, error)
}

// PaymentSvc applies payments to invoices.
type PaymentSvc interface {
	// RecordPayment stores a payment, recomputes the invoice status from the
	// full payment set and posts the settlement entry, all in one transaction.
	RecordPayment(ctx context.Context, tenantID, invoiceID string, req dto.RecordPaymentRequest, userID string) (*domain.PaymentResult, error)

	// RevenueSummary totals collected payments of a project by paid date.
	RevenueSummary(ctx context.Context, tenantID, projectID string, from, to *time.Time) (*domain.RevenueSummary, error)
}

// BillingSvcFacade combines invoice and payment services.
type BillingSvcFacade interface {
	InvoiceSvc
	PaymentSvc
}
