package domain_test

import (
	"testing"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoleMap_Missing(t *testing.T) {
	roles := domain.RoleMap{
		domain.RoleAccountsReceivable: {AccountID: "ar", Code: "1200"},
		domain.RoleRevenue:            {AccountID: "rev", Code: "4000"},
	}

	acc, ok := roles.Lookup(domain.RoleAccountsReceivable)
	assert.True(t, ok)
	assert.Equal(t, "ar", acc.AccountID)

	assert.Empty(t, roles.Missing(domain.RoleAccountsReceivable, domain.RoleRevenue))
	assert.Equal(t,
		[]domain.AccountRole{domain.RoleBank, domain.RoleFxGain},
		roles.Missing(domain.RoleBank, domain.RoleRevenue, domain.RoleFxGain))
}

func TestDefaultRoleCodesCoverAllRoles(t *testing.T) {
	for _, r := range domain.AllAccountRoles {
		assert.True(t, r.IsValid(), "role %s has no default code", r)
	}
	assert.False(t, domain.AccountRole("PETTY_CASH").IsValid())
}

func TestJournalEntry_Totals(t *testing.T) {
	entry := domain.JournalEntry{Lines: []domain.JournalLine{
		{AccountID: "a", Debit: decimal.RequireFromString("100.10")},
		{AccountID: "b", Credit: decimal.RequireFromString("60.05")},
		{AccountID: "a", Credit: decimal.RequireFromString("40.05")},
	}}

	debit, credit := entry.Totals()
	assert.True(t, debit.Equal(decimal.RequireFromString("100.10")))
	assert.True(t, credit.Equal(decimal.RequireFromString("100.10")))
	assert.Equal(t, []string{"a", "b"}, entry.AccountIDs())
}

func TestInvoiceStatus_AcceptsPayments(t *testing.T) {
	tests := []struct {
		status domain.InvoiceStatus
		want   bool
	}{
		{domain.InvoiceDraft, false},
		{domain.InvoiceSent, true},
		{domain.InvoicePartiallyPaid, true},
		{domain.InvoicePaid, true},
		{domain.InvoiceCancelled, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.AcceptsPayments())
		})
	}
}

func TestAccountType(t *testing.T) {
	assert.True(t, domain.Asset.IsDebitNormal())
	assert.True(t, domain.Expense.IsDebitNormal())
	assert.False(t, domain.Revenue.IsDebitNormal())
	assert.False(t, domain.AccountType("INCOME").IsValid())
}
