package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
)

type accountRepo struct{ *Store }

func (r accountRepo) FindAccountByID(_ context.Context, tenantID, accountID string) (*domain.Account, error) {
	var (
		acc domain.Account
		ok  bool
	)
	r.read(func(st *state) {
		acc, ok = st.accounts[accountID]
	})
	if !ok || acc.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (r accountRepo) FindAccountByCode(_ context.Context, tenantID, code string) (*domain.Account, error) {
	var found *domain.Account
	r.read(func(st *state) {
		for _, acc := range st.accounts {
			if acc.TenantID == tenantID && acc.Code == code {
				found = &acc
				return
			}
		}
	})
	if found == nil {
		return nil, apperrors.ErrNotFound
	}
	return found, nil
}

func (r accountRepo) FindAccountsByIDs(_ context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	r.read(func(st *state) {
		for _, id := range accountIDs {
			if acc, ok := st.accounts[id]; ok && acc.TenantID == tenantID {
				out[id] = acc
			}
		}
	})
	return out, nil
}

func (r accountRepo) FindAccountsByCodes(_ context.Context, tenantID string, codes []string) (map[string]domain.Account, error) {
	wanted := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		wanted[c] = struct{}{}
	}
	out := make(map[string]domain.Account, len(codes))
	r.read(func(st *state) {
		for _, acc := range st.accounts {
			if _, ok := wanted[acc.Code]; ok && acc.TenantID == tenantID {
				out[acc.Code] = acc
			}
		}
	})
	return out, nil
}

func (r accountRepo) ListActiveAccounts(_ context.Context, tenantID string) ([]domain.Account, error) {
	var out []domain.Account
	r.read(func(st *state) {
		for _, acc := range st.accounts {
			if acc.TenantID == tenantID && acc.IsActive {
				out = append(out, acc)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r accountRepo) SaveAccount(_ context.Context, account domain.Account) error {
	return r.write(func(st *state) error {
		for _, acc := range st.accounts {
			if acc.TenantID == account.TenantID && acc.Code == account.Code {
				return apperrors.ErrDuplicate
			}
		}
		st.accounts[account.AccountID] = account
		return nil
	})
}

func (r accountRepo) DeactivateAccount(_ context.Context, tenantID, accountID, userID string, now time.Time) error {
	return r.write(func(st *state) error {
		acc, ok := st.accounts[accountID]
		if !ok || acc.TenantID != tenantID {
			return apperrors.ErrNotFound
		}
		acc.IsActive = false
		acc.LastUpdatedAt = now
		acc.LastUpdatedBy = userID
		st.accounts[accountID] = acc
		return nil
	})
}

func (r accountRepo) ListRoleMappings(_ context.Context, tenantID string) ([]domain.AccountRoleMapping, error) {
	var out []domain.AccountRoleMapping
	r.read(func(st *state) {
		for _, m := range st.roles[tenantID] {
			out = append(out, m)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Role < out[j].Role })
	return out, nil
}

func (r accountRepo) SaveRoleMapping(_ context.Context, mapping domain.AccountRoleMapping) error {
	return r.write(func(st *state) error {
		m, ok := st.roles[mapping.TenantID]
		if !ok {
			m = make(map[domain.AccountRole]domain.AccountRoleMapping)
			st.roles[mapping.TenantID] = m
		}
		m[mapping.Role] = mapping
		return nil
	})
}
