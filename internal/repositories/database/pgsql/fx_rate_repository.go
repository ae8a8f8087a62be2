package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice_ledger/internal/models"
	"github.com/SscSPs/backoffice_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// pgxFxRateRepository stores dated base->quote rates. Rates are append-only.
type pgxFxRateRepository struct {
	BaseRepository
}

var _ portsrepo.FxRateRepositoryFacade = (*pgxFxRateRepository)(nil)

// SaveFxRate inserts a rate.
func (r *pgxFxRateRepository) SaveFxRate(ctx context.Context, rate domain.FxRate) error {
	m := mapping.ToModelFxRate(rate)
	query := `
		INSERT INTO fx_rates (rate_id, base_code, quote_code, rate, rate_date,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		m.RateID, m.BaseCode, m.QuoteCode, m.Rate, m.RateDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save fx rate %s/%s: %w", m.BaseCode, m.QuoteCode, err)
	}
	return nil
}

// FindLatestRate returns the newest rate dated on or before asOf (any date when nil).
// Rates sharing a date resolve to the one stored last.
func (r *pgxFxRateRepository) FindLatestRate(ctx context.Context, baseCode, quoteCode string, asOf *time.Time) (*domain.FxRate, error) {
	query := `
		SELECT rate_id, base_code, quote_code, rate, rate_date,
			created_at, created_by, last_updated_at, last_updated_by
		FROM fx_rates
		WHERE base_code = $1 AND quote_code = $2
			AND ($3::timestamptz IS NULL OR rate_date <= $3)
		ORDER BY rate_date DESC, created_at DESC
		LIMIT 1;
	`
	rows, err := r.db.Query(ctx, query, baseCode, quoteCode, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query fx rate %s/%s: %w", baseCode, quoteCode, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.FxRate])
	if err != nil {
		return nil, notFoundOr(err, "failed to scan fx rate %s/%s", baseCode, quoteCode)
	}
	rate := mapping.ToDomainFxRate(m)
	return &rate, nil
}
