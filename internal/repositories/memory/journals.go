package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
)

type journalRepo struct{ *Store }

func (r journalRepo) FindEntryByID(_ context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	var found *domain.JournalEntry
	r.read(func(st *state) {
		for _, e := range st.entries {
			if e.EntryID == entryID && e.TenantID == tenantID {
				found = &e
				return
			}
		}
	})
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	found.Lines = append([]domain.JournalLine(nil), found.Lines...)
	return found, nil
}

func (r journalRepo) ListLedgerLines(_ context.Context, tenantID string, from, to *time.Time) ([]domain.LedgerLine, error) {
	var out []domain.LedgerLine
	r.read(func(st *state) {
		// entries is append-only, so slice order is creation order
		entries := make([]domain.JournalEntry, 0, len(st.entries))
		for _, e := range st.entries {
			if e.TenantID == tenantID && inRange(e.Date, from, to) {
				entries = append(entries, e)
			}
		}
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })

		for _, e := range entries {
			for _, l := range e.Lines {
				acc := st.accounts[l.AccountID]
				out = append(out, domain.LedgerLine{
					EntryID:       e.EntryID,
					Date:          e.Date,
					Reference:     e.Reference,
					Description:   e.Description,
					LineID:        l.LineID,
					LineNo:        l.LineNo,
					AccountID:     l.AccountID,
					AccountCode:   acc.Code,
					AccountName:   acc.Name,
					AccountType:   acc.AccountType,
					Debit:         l.Debit,
					Credit:        l.Credit,
					Memo:          l.Memo,
					ForeignAmount: l.ForeignAmount,
					ForeignCode:   l.ForeignCode,
					FxRate:        l.FxRate,
				})
			}
		}
	})
	return out, nil
}

func (r journalRepo) SaveEntry(_ context.Context, entry domain.JournalEntry) error {
	return r.write(func(st *state) error {
		for _, e := range st.entries {
			if e.EntryID == entry.EntryID {
				return apperrors.ErrDuplicate
			}
		}
		entry.Lines = append([]domain.JournalLine(nil), entry.Lines...)
		st.entries = append(st.entries, entry)
		return nil
	})
}
