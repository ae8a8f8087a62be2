package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice_ledger/internal/models"
	"github.com/SscSPs/backoffice_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type pgxTenantRepository struct {
	BaseRepository
}

var _ portsrepo.TenantRepositoryFacade = (*pgxTenantRepository)(nil)

func (r *pgxTenantRepository) FindTenantSettings(ctx context.Context, tenantID string) (*domain.TenantSettings, error) {
	query := `
		SELECT tenant_id, base_currency_code, strict_fx_rates,
			created_at, created_by, last_updated_at, last_updated_by
		FROM tenants
		WHERE tenant_id = $1;
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenant %s: %w", tenantID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.TenantSettings])
	if err != nil {
		return nil, notFoundOr(err, "failed to scan tenant %s", tenantID)
	}
	settings := mapping.ToDomainTenantSettings(m)
	return &settings, nil
}

// SaveTenantSettings upserts the tenant row; created_* survive an update.
func (r *pgxTenantRepository) SaveTenantSettings(ctx context.Context, settings domain.TenantSettings) error {
	m := mapping.ToModelTenantSettings(settings)
	query := `
		INSERT INTO tenants (tenant_id, base_currency_code, strict_fx_rates,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id) DO UPDATE
		SET base_currency_code = EXCLUDED.base_currency_code,
			strict_fx_rates = EXCLUDED.strict_fx_rates,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db.Exec(ctx, query,
		m.TenantID, m.BaseCurrencyCode, m.StrictFxRates,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save tenant settings %s: %w", m.TenantID, err)
	}
	return nil
}
