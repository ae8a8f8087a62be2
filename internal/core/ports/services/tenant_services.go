package services

import (
	"context"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
)

// TenantSettingsReaderSvc resolves the effective settings of a tenant.
type TenantSettingsReaderSvc interface {
	// GetSettings returns the stored settings, or the configured defaults when
	// the tenant has none.
	GetSettings(ctx context.Context, tenantID string) (domain.TenantSettings, error)
}

// TenantSettingsSvc reads and updates tenant settings.
type TenantSettingsSvc interface {
	TenantSettingsReaderSvc
	UpdateSettings(ctx context.Context, tenantID string, req dto.UpdateTenantSettingsRequest, userID string) (*domain.TenantSettings, error)
}
