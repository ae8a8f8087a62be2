package repositories

import (
	"context"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
)

// TenantRepositoryFacade reads and writes per-tenant ledger settings.
type TenantRepositoryFacade interface {
	// FindTenantSettings returns apperrors.ErrNotFound for tenants with no settings row.
	FindTenantSettings(ctx context.Context, tenantID string) (*domain.TenantSettings, error)

	// SaveTenantSettings inserts or replaces the tenant's settings.
	SaveTenantSettings(ctx context.Context, settings domain.TenantSettings) error
}
