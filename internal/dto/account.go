package dto

import (
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code               string             `json:"code" binding:"required,max=20"`
	Name               string             `json:"name" binding:"required,max=255"`
	AccountType        domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	IsRetainedEarnings bool               `json:"isRetainedEarnings"`
}

// AssignRoleRequest binds a well-known role to an account.
type AssignRoleRequest struct {
	Role      domain.AccountRole `json:"role" binding:"required,oneof=AR BANK REVENUE PAYROLL_EXPENSE STAFF_PAYABLE FX_GAIN FX_LOSS"`
	AccountID string             `json:"accountID" binding:"required"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID          string             `json:"accountID"`
	Code               string             `json:"code"`
	Name               string             `json:"name"`
	AccountType        domain.AccountType `json:"accountType"`
	IsRetainedEarnings bool               `json:"isRetainedEarnings"`
	IsActive           bool               `json:"isActive"`
	CreatedAt          time.Time          `json:"createdAt"`
	CreatedBy          string             `json:"createdBy"`
}

// ListAccountsResponse wraps the active chart of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// RoleMapResponse lists the resolved role accounts.
type RoleMapResponse struct {
	Roles   map[domain.AccountRole]AccountResponse `json:"roles"`
	Missing []domain.AccountRole                   `json:"missing"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:          acc.AccountID,
		Code:               acc.Code,
		Name:               acc.Name,
		AccountType:        acc.AccountType,
		IsRetainedEarnings: acc.IsRetainedEarnings,
		IsActive:           acc.IsActive,
		CreatedAt:          acc.CreatedAt,
		CreatedBy:          acc.CreatedBy,
	}
}

// ToListAccountsResponse converts accounts to ListAccountsResponse.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	resp := ListAccountsResponse{Accounts: make([]AccountResponse, len(accounts))}
	for i := range accounts {
		resp.Accounts[i] = ToAccountResponse(&accounts[i])
	}
	return resp
}

// ToRoleMapResponse converts a resolved role map.
func ToRoleMapResponse(roles domain.RoleMap) RoleMapResponse {
	resp := RoleMapResponse{
		Roles:   make(map[domain.AccountRole]AccountResponse, len(roles)),
		Missing: roles.Missing(domain.AllAccountRoles...),
	}
	for role, acc := range roles {
		resp.Roles[role] = ToAccountResponse(&acc)
	}
	return resp
}
