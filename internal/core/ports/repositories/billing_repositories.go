package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceReader defines read operations for invoices.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its items.
	FindInvoiceByID(ctx context.Context, tenantID, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceByIDForUpdate retrieves an invoice and locks its row until
	// the surrounding transaction ends.
	FindInvoiceByIDForUpdate(ctx context.Context, tenantID, invoiceID string) (*domain.Invoice, error)

	// ListInvoicesByProject lists a project's invoices, newest issue date first.
	ListInvoicesByProject(ctx context.Context, tenantID, projectID string) ([]domain.Invoice, error)

	// ListOpenForeignInvoices lists SENT and PARTIALLY_PAID invoices whose
	// currency differs from baseCurrency and that carry a foreign amount.
	ListOpenForeignInvoices(ctx context.Context, tenantID, baseCurrency string) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoices.
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice and its items. A repeated invoice
	// number within the tenant yields apperrors.ErrDuplicate.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice writes the mutable fields: status, journal entry link and audit fields.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error
}

// PaymentReader defines read operations for payments.
type PaymentReader interface {
	ListPaymentsByInvoice(ctx context.Context, tenantID, invoiceID string) ([]domain.Payment, error)

	// SumPaymentsByInvoices returns the collected base amount per invoice id.
	SumPaymentsByInvoices(ctx context.Context, tenantID string, invoiceIDs []string) (map[string]decimal.Decimal, error)

	// ListPaymentsByProject lists payments of a project paid within [from, to].
	ListPaymentsByProject(ctx context.Context, tenantID, projectID string, from, to *time.Time) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payments.
type PaymentWriter interface {
	SavePayment(ctx context.Context, payment domain.Payment) error
}

// BillingRepositoryFacade combines invoice and payment access.
type BillingRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
	PaymentReader
	PaymentWriter
}
