package mapping

import (
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to its header and line rows.
func ToModelJournalEntry(d domain.JournalEntry) (models.JournalEntry, []models.JournalLine) {
	entry := models.JournalEntry{
		EntryID:     d.EntryID,
		TenantID:    d.TenantID,
		EntryDate:   d.Date,
		Reference:   d.Reference,
		Description: d.Description,
		ReversalOf:  toNullString(d.ReversalOf),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	lines := make([]models.JournalLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = ToModelJournalLine(l)
	}
	return entry, lines
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:        d.LineID,
		EntryID:       d.EntryID,
		LineNo:        d.LineNo,
		AccountID:     d.AccountID,
		Debit:         d.Debit,
		Credit:        d.Credit,
		ForeignAmount: toNullDecimal(d.ForeignAmount),
		ForeignCode:   toNullString(d.ForeignCode),
		FxRate:        toNullDecimal(d.FxRate),
		Memo:          d.Memo,
	}
}

// ToDomainJournalEntry assembles a domain JournalEntry from its rows.
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	d := domain.JournalEntry{
		EntryID:     m.EntryID,
		TenantID:    m.TenantID,
		Date:        m.EntryDate,
		Reference:   m.Reference,
		Description: m.Description,
		ReversalOf:  fromNullString(m.ReversalOf),
		Lines:       make([]domain.JournalLine, len(lines)),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	for i, l := range lines {
		d.Lines[i] = ToDomainJournalLine(l)
	}
	return d
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:        m.LineID,
		EntryID:       m.EntryID,
		LineNo:        m.LineNo,
		AccountID:     m.AccountID,
		Debit:         m.Debit,
		Credit:        m.Credit,
		ForeignAmount: fromNullDecimal(m.ForeignAmount),
		ForeignCode:   fromNullString(m.ForeignCode),
		FxRate:        fromNullDecimal(m.FxRate),
		Memo:          m.Memo,
	}
}
