package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice_ledger/internal/models"
	"github.com/SscSPs/backoffice_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type pgxAccountRepository struct {
	BaseRepository
}

var _ portsrepo.AccountRepositoryFacade = (*pgxAccountRepository)(nil)

const accountColumns = `account_id, tenant_id, code, name, account_type, is_retained_earnings, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveAccount inserts a new account.
func (r *pgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db.Exec(ctx, query,
		m.AccountID, m.TenantID, m.Code, m.Name, m.AccountType, m.IsRetainedEarnings, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *pgxAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = $2;`
	return r.findOne(ctx, query, tenantID, accountID)
}

// FindAccountByCode retrieves an account by its code.
func (r *pgxAccountRepository) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND code = $2;`
	return r.findOne(ctx, query, tenantID, code)
}

func (r *pgxAccountRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Account, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, notFoundOr(err, "failed to scan account")
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r *pgxAccountRepository) list(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *pgxAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	accounts, err := r.list(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE tenant_id = $1 AND account_id = ANY($2);`,
		tenantID, accountIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		out[a.AccountID] = a
	}
	return out, nil
}

// FindAccountsByCodes retrieves multiple accounts keyed by code.
func (r *pgxAccountRepository) FindAccountsByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}
	accounts, err := r.list(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE tenant_id = $1 AND code = ANY($2);`,
		tenantID, codes)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		out[a.Code] = a
	}
	return out, nil
}

func (r *pgxAccountRepository) ListActiveAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	return r.list(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE tenant_id = $1 AND is_active ORDER BY code;`,
		tenantID)
}

// DeactivateAccount marks an account as inactive.
func (r *pgxAccountRepository) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1 AND account_id = $2;
	`
	tag, err := r.db.Exec(ctx, query, tenantID, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *pgxAccountRepository) ListRoleMappings(ctx context.Context, tenantID string) ([]domain.AccountRoleMapping, error) {
	query := `
		SELECT tenant_id, role, account_id, created_at, created_by, last_updated_at, last_updated_by
		FROM account_roles
		WHERE tenant_id = $1
		ORDER BY role;
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query role mappings: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountRole])
	if err != nil {
		return nil, fmt.Errorf("failed to scan role mappings: %w", err)
	}
	out := make([]domain.AccountRoleMapping, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainAccountRole(m)
	}
	return out, nil
}

// SaveRoleMapping upserts the (tenant, role) binding.
func (r *pgxAccountRepository) SaveRoleMapping(ctx context.Context, roleMapping domain.AccountRoleMapping) error {
	m := mapping.ToModelAccountRole(roleMapping)
	query := `
		INSERT INTO account_roles (tenant_id, role, account_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, role) DO UPDATE
		SET account_id = EXCLUDED.account_id,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db.Exec(ctx, query,
		m.TenantID, m.Role, m.AccountID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to save role mapping %s: %w", m.Role, err)
	}
	return nil
}
