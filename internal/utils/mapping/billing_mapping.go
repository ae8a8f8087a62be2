package mapping

import (
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/models"
)

// ToModelInvoice converts a domain Invoice to its header and item rows.
func ToModelInvoice(d domain.Invoice) (models.Invoice, []models.InvoiceItem) {
	inv := models.Invoice{
		InvoiceID:      d.InvoiceID,
		TenantID:       d.TenantID,
		ProjectID:      d.ProjectID,
		InvoiceNo:      d.InvoiceNo,
		IssueDate:      d.IssueDate,
		DueDate:        toNullTime(d.DueDate),
		Notes:          d.Notes,
		TotalAmount:    d.TotalAmount,
		CurrencyCode:   d.CurrencyCode,
		FxRate:         d.FxRate,
		ForeignAmount:  toNullDecimal(d.ForeignAmount),
		Status:         string(d.Status),
		JournalEntryID: toNullString(d.JournalEntryID),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	items := make([]models.InvoiceItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = models.InvoiceItem{
			ItemID:      it.ItemID,
			InvoiceID:   it.InvoiceID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		}
	}
	return inv, items
}

// ToDomainInvoice assembles a domain Invoice from its rows.
func ToDomainInvoice(m models.Invoice, items []models.InvoiceItem) domain.Invoice {
	d := domain.Invoice{
		InvoiceID:      m.InvoiceID,
		TenantID:       m.TenantID,
		ProjectID:      m.ProjectID,
		InvoiceNo:      m.InvoiceNo,
		IssueDate:      m.IssueDate,
		DueDate:        fromNullTime(m.DueDate),
		Notes:          m.Notes,
		Items:          make([]domain.InvoiceItem, len(items)),
		TotalAmount:    m.TotalAmount,
		CurrencyCode:   m.CurrencyCode,
		FxRate:         m.FxRate,
		ForeignAmount:  fromNullDecimal(m.ForeignAmount),
		Status:         domain.InvoiceStatus(m.Status),
		JournalEntryID: fromNullString(m.JournalEntryID),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	for i, it := range items {
		d.Items[i] = domain.InvoiceItem{
			ItemID:      it.ItemID,
			InvoiceID:   it.InvoiceID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		}
	}
	return d
}

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:      d.PaymentID,
		TenantID:       d.TenantID,
		ProjectID:      d.ProjectID,
		InvoiceID:      d.InvoiceID,
		Amount:         d.Amount,
		PaidDate:       d.PaidDate,
		CurrencyCode:   d.CurrencyCode,
		FxRate:         d.FxRate,
		ForeignAmount:  toNullDecimal(d.ForeignAmount),
		Method:         d.Method,
		Reference:      d.Reference,
		JournalEntryID: toNullString(d.JournalEntryID),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:      m.PaymentID,
		TenantID:       m.TenantID,
		ProjectID:      m.ProjectID,
		InvoiceID:      m.InvoiceID,
		Amount:         m.Amount,
		PaidDate:       m.PaidDate,
		CurrencyCode:   m.CurrencyCode,
		FxRate:         m.FxRate,
		ForeignAmount:  fromNullDecimal(m.ForeignAmount),
		Method:         m.Method,
		Reference:      m.Reference,
		JournalEntryID: fromNullString(m.JournalEntryID),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
