package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountClock overrides the clock used for audit timestamps.
func WithAccountClock(clock Clock) AccountServiceOption {
	return func(s *accountService) {
		s.Clock = clock
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, apperrors.NewValidationError("account code is required")
	}

	now := s.now()
	account := domain.Account{
		AccountID:          uuid.NewString(),
		TenantID:           tenantID,
		Code:               code,
		Name:               strings.TrimSpace(req.Name),
		AccountType:        req.AccountType,
		IsRetainedEarnings: req.IsRetainedEarnings,
		IsActive:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, "Account code already exists",
				slog.String("tenant_id", tenantID),
				slog.String("code", code))
			return nil, apperrors.NewDuplicateError("account code %s already exists", code)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("code", code),
		slog.String("type", string(account.AccountType)))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account %s not found", accountID)
		}
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	return account, nil
}

func (s *accountService) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, tenantID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account with code %s not found", code)
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	return account, nil
}

func (s *accountService) ListActiveAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListActiveAccounts(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string) error {
	account, err := s.GetAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return nil
	}
	if err := s.accountRepo.DeactivateAccount(ctx, tenantID, accountID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID), slog.String("code", account.Code))
	return nil
}

func (s *accountService) AssignRole(ctx context.Context, tenantID string, req dto.AssignRoleRequest, userID string) (*domain.AccountRoleMapping, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if !req.Role.IsValid() {
		return nil, apperrors.NewValidationError("unknown account role %s", req.Role)
	}
	account, err := s.GetAccountByID(ctx, tenantID, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, apperrors.NewValidationError("account %s is inactive", account.Code)
	}

	now := s.now()
	mapping := domain.AccountRoleMapping{
		TenantID:  tenantID,
		Role:      req.Role,
		AccountID: account.AccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.accountRepo.SaveRoleMapping(ctx, mapping); err != nil {
		s.LogError(ctx, err, "Failed to save role mapping", slog.String("role", string(req.Role)))
		return nil, fmt.Errorf("failed to save role mapping: %w", err)
	}

	s.LogInfo(ctx, "Account role assigned",
		slog.String("role", string(req.Role)),
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &mapping, nil
}

func (s *accountService) ResolveRoles(ctx context.Context, tenantID string) (domain.RoleMap, error) {
	mappings, err := s.accountRepo.ListRoleMappings(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list role mappings: %w", err)
	}

	explicit := make(map[domain.AccountRole]string, len(mappings))
	mappedIDs := make([]string, 0, len(mappings))
	for _, m := range mappings {
		explicit[m.Role] = m.AccountID
		mappedIDs = append(mappedIDs, m.AccountID)
	}

	var defaultCodes []string
	for _, role := range domain.AllAccountRoles {
		if _, ok := explicit[role]; !ok {
			defaultCodes = append(defaultCodes, domain.DefaultRoleCodes[role])
		}
	}

	byID := map[string]domain.Account{}
	if len(mappedIDs) > 0 {
		if byID, err = s.accountRepo.FindAccountsByIDs(ctx, tenantID, mappedIDs); err != nil {
			return nil, fmt.Errorf("failed to load mapped accounts: %w", err)
		}
	}
	byCode := map[string]domain.Account{}
	if len(defaultCodes) > 0 {
		if byCode, err = s.accountRepo.FindAccountsByCodes(ctx, tenantID, defaultCodes); err != nil {
			return nil, fmt.Errorf("failed to load conventional accounts: %w", err)
		}
	}

	roles := make(domain.RoleMap, len(domain.AllAccountRoles))
	for _, role := range domain.AllAccountRoles {
		var (
			acc domain.Account
			ok  bool
		)
		if id, mapped := explicit[role]; mapped {
			acc, ok = byID[id]
		} else {
			acc, ok = byCode[domain.DefaultRoleCodes[role]]
		}
		// Inactive accounts cannot be posted to, so the role counts as missing.
		if ok && acc.IsActive {
			roles[role] = acc
		}
	}
	return roles, nil
}
