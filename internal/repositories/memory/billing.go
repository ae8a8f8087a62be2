package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

type billingRepo struct{ *Store }

func (r billingRepo) FindInvoiceByID(_ context.Context, tenantID, invoiceID string) (*domain.Invoice, error) {
	var (
		inv domain.Invoice
		ok  bool
	)
	r.read(func(st *state) {
		inv, ok = st.invoices[invoiceID]
	})
	if !ok || inv.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}
	inv.Items = append([]domain.InvoiceItem(nil), inv.Items...)
	return &inv, nil
}

// FindInvoiceByIDForUpdate relies on transactions being serialized.
func (r billingRepo) FindInvoiceByIDForUpdate(ctx context.Context, tenantID, invoiceID string) (*domain.Invoice, error) {
	return r.FindInvoiceByID(ctx, tenantID, invoiceID)
}

func (r billingRepo) ListInvoicesByProject(_ context.Context, tenantID, projectID string) ([]domain.Invoice, error) {
	var out []domain.Invoice
	r.read(func(st *state) {
		for _, inv := range st.invoices {
			if inv.TenantID == tenantID && inv.ProjectID == projectID {
				out = append(out, inv)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].IssueDate.Equal(out[j].IssueDate) {
			return out[i].IssueDate.After(out[j].IssueDate)
		}
		return out[i].InvoiceNo > out[j].InvoiceNo
	})
	return out, nil
}

func (r billingRepo) ListOpenForeignInvoices(_ context.Context, tenantID, baseCurrency string) ([]domain.Invoice, error) {
	var out []domain.Invoice
	r.read(func(st *state) {
		for _, inv := range st.invoices {
			if inv.TenantID != tenantID || inv.ForeignAmount == nil || inv.CurrencyCode == baseCurrency {
				continue
			}
			if inv.Status == domain.InvoiceSent || inv.Status == domain.InvoicePartiallyPaid {
				out = append(out, inv)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].IssueDate.Equal(out[j].IssueDate) {
			return out[i].IssueDate.Before(out[j].IssueDate)
		}
		return out[i].InvoiceNo < out[j].InvoiceNo
	})
	return out, nil
}

func (r billingRepo) SaveInvoice(_ context.Context, invoice domain.Invoice) error {
	return r.write(func(st *state) error {
		for _, inv := range st.invoices {
			if inv.TenantID == invoice.TenantID && inv.InvoiceNo == invoice.InvoiceNo {
				return apperrors.ErrDuplicate
			}
		}
		invoice.Items = append([]domain.InvoiceItem(nil), invoice.Items...)
		st.invoices[invoice.InvoiceID] = invoice
		return nil
	})
}

func (r billingRepo) UpdateInvoice(_ context.Context, invoice domain.Invoice) error {
	return r.write(func(st *state) error {
		stored, ok := st.invoices[invoice.InvoiceID]
		if !ok || stored.TenantID != invoice.TenantID {
			return apperrors.ErrNotFound
		}
		stored.Status = invoice.Status
		stored.JournalEntryID = invoice.JournalEntryID
		stored.LastUpdatedAt = invoice.LastUpdatedAt
		stored.LastUpdatedBy = invoice.LastUpdatedBy
		st.invoices[invoice.InvoiceID] = stored
		return nil
	})
}

func (r billingRepo) ListPaymentsByInvoice(_ context.Context, tenantID, invoiceID string) ([]domain.Payment, error) {
	var out []domain.Payment
	r.read(func(st *state) {
		for _, p := range st.payments {
			if p.TenantID == tenantID && p.InvoiceID == invoiceID {
				out = append(out, p)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaidDate.Before(out[j].PaidDate) })
	return out, nil
}

func (r billingRepo) SumPaymentsByInvoices(_ context.Context, tenantID string, invoiceIDs []string) (map[string]decimal.Decimal, error) {
	sums := make(map[string]decimal.Decimal, len(invoiceIDs))
	for _, id := range invoiceIDs {
		sums[id] = decimal.Zero
	}
	r.read(func(st *state) {
		for _, p := range st.payments {
			if sum, ok := sums[p.InvoiceID]; ok && p.TenantID == tenantID {
				sums[p.InvoiceID] = sum.Add(p.Amount)
			}
		}
	})
	return sums, nil
}

func (r billingRepo) ListPaymentsByProject(_ context.Context, tenantID, projectID string, from, to *time.Time) ([]domain.Payment, error) {
	var out []domain.Payment
	r.read(func(st *state) {
		for _, p := range st.payments {
			if p.TenantID == tenantID && p.ProjectID == projectID && inRange(p.PaidDate, from, to) {
				out = append(out, p)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaidDate.Before(out[j].PaidDate) })
	return out, nil
}

func (r billingRepo) SavePayment(_ context.Context, payment domain.Payment) error {
	return r.write(func(st *state) error {
		if _, ok := st.invoices[payment.InvoiceID]; !ok {
			return apperrors.ErrNotFound
		}
		st.payments = append(st.payments, payment)
		return nil
	})
}
