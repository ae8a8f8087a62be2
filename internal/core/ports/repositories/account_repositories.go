package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account of the tenant by id.
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account of the tenant by its code.
	FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves several accounts of the tenant. Unknown ids are absent from the map.
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountsByCodes retrieves accounts of the tenant keyed by code.
	FindAccountsByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error)

	// ListActiveAccounts lists active accounts ordered by code ascending.
	ListActiveAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A code collision yields apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, tenantID, accountID, userID string, now time.Time) error
}

// AccountRoleRepository stores explicit role-to-account bindings.
type AccountRoleRepository interface {
	ListRoleMappings(ctx context.Context, tenantID string) ([]domain.AccountRoleMapping, error)

	// SaveRoleMapping inserts or replaces the binding for (tenant, role).
	SaveRoleMapping(ctx context.Context, mapping domain.AccountRoleMapping) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountRoleRepository
}
