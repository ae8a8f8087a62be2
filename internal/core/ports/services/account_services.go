package services

import (
	"context"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account of the tenant by id.
	GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by code. apperrors.ErrNotFound when absent.
	FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error)

	// ListActiveAccounts lists active accounts ordered by code.
	ListActiveAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account. apperrors.ErrDuplicate on a code collision.
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, tenantID, accountID, userID string) error
}

// RoleResolverSvc resolves the well-known accounts used by automated postings.
type RoleResolverSvc interface {
	// ResolveRoles returns every role that maps to an active account. An
	// explicit mapping wins; otherwise the conventional code is used.
	ResolveRoles(ctx context.Context, tenantID string) (domain.RoleMap, error)
}

// AccountRoleSvc manages explicit role mappings.
type AccountRoleSvc interface {
	RoleResolverSvc

	// AssignRole binds a role to an account of the tenant.
	AssignRole(ctx context.Context, tenantID string, req dto.AssignRoleRequest, userID string) (*domain.AccountRoleMapping, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountRoleSvc
}
