package memory

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
)

type fxRateRepo struct{ *Store }

func (r fxRateRepo) FindLatestRate(_ context.Context, baseCode, quoteCode string, asOf *time.Time) (*domain.FxRate, error) {
	var latest *domain.FxRate
	r.read(func(st *state) {
		for _, rate := range st.rates {
			rate := rate // per-iteration copy: latest keeps &rate across iterations
			if rate.BaseCode != baseCode || rate.QuoteCode != quoteCode {
				continue
			}
			if asOf != nil && rate.Date.After(*asOf) {
				continue
			}
			// ties on date go to the most recently stored rate
			if latest == nil || !rate.Date.Before(latest.Date) {
				latest = &rate
			}
		}
	})
	if latest == nil {
		return nil, apperrors.ErrNotFound
	}
	return latest, nil
}

func (r fxRateRepo) SaveFxRate(_ context.Context, rate domain.FxRate) error {
	return r.write(func(st *state) error {
		st.rates = append(st.rates, rate)
		return nil
	})
}
