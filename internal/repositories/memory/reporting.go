package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
)

type reportingRepo struct{ *Store }

func (r reportingRepo) GetTrialBalanceRows(_ context.Context, tenantID string, asOf *time.Time) ([]domain.TrialBalanceRow, error) {
	rows := make(map[string]*domain.TrialBalanceRow)
	r.read(func(st *state) {
		for _, e := range st.entries {
			if e.TenantID != tenantID || !inRange(e.Date, nil, asOf) {
				continue
			}
			for _, l := range e.Lines {
				row, ok := rows[l.AccountID]
				if !ok {
					acc := st.accounts[l.AccountID]
					row = &domain.TrialBalanceRow{
						AccountID:   l.AccountID,
						Code:        acc.Code,
						Name:        acc.Name,
						AccountType: acc.AccountType,
					}
					rows[l.AccountID] = row
				}
				row.Debit = row.Debit.Add(l.Debit)
				row.Credit = row.Credit.Add(l.Credit)
			}
		}
	})

	out := make([]domain.TrialBalanceRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
