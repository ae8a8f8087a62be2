package mapping

import (
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:          d.AccountID,
		TenantID:           d.TenantID,
		Code:               d.Code,
		Name:               d.Name,
		AccountType:        models.AccountType(d.AccountType),
		IsRetainedEarnings: d.IsRetainedEarnings,
		IsActive:           d.IsActive,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:          m.AccountID,
		TenantID:           m.TenantID,
		Code:               m.Code,
		Name:               m.Name,
		AccountType:        domain.AccountType(m.AccountType),
		IsRetainedEarnings: m.IsRetainedEarnings,
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}

// ToModelAccountRole converts a role mapping.
func ToModelAccountRole(d domain.AccountRoleMapping) models.AccountRole {
	return models.AccountRole{
		TenantID:    d.TenantID,
		Role:        string(d.Role),
		AccountID:   d.AccountID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountRole converts a role mapping row.
func ToDomainAccountRole(m models.AccountRole) domain.AccountRoleMapping {
	return domain.AccountRoleMapping{
		TenantID:    m.TenantID,
		Role:        domain.AccountRole(m.Role),
		AccountID:   m.AccountID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
