package memory

import (
	"context"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
)

type tenantRepo struct{ *Store }

func (r tenantRepo) FindTenantSettings(_ context.Context, tenantID string) (*domain.TenantSettings, error) {
	var (
		settings domain.TenantSettings
		ok       bool
	)
	r.read(func(st *state) {
		settings, ok = st.tenants[tenantID]
	})
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &settings, nil
}

func (r tenantRepo) SaveTenantSettings(_ context.Context, settings domain.TenantSettings) error {
	return r.write(func(st *state) error {
		st.tenants[settings.TenantID] = settings
		return nil
	})
}
