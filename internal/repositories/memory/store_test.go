package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func account(id, code string) domain.Account {
	return domain.Account{AccountID: id, TenantID: "t1", Code: code, Name: code, AccountType: domain.Asset, IsActive: true}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Accounts().SaveAccount(ctx, account("a1", "1010")))

	boom := errors.New("boom")
	err := store.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		require.NoError(t, tx.Accounts().SaveAccount(ctx, account("a2", "1200")))
		require.NoError(t, tx.Journals().SaveEntry(ctx, domain.JournalEntry{EntryID: "e1", TenantID: "t1", Date: time.Now()}))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	_, err = store.Accounts().FindAccountByID(ctx, "t1", "a2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = store.Journals().FindEntryByID(ctx, "t1", "e1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = store.Accounts().FindAccountByID(ctx, "t1", "a1")
	assert.NoError(t, err)
}

func TestNestedWithTxActsAsSavepoint(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	err := store.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		require.NoError(t, tx.Accounts().SaveAccount(ctx, account("a1", "1010")))
		inner := tx.(portsrepo.TransactionManager).WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
			require.NoError(t, tx.Accounts().SaveAccount(ctx, account("a2", "1200")))
			return errors.New("inner failure")
		})
		assert.Error(t, inner)
		return nil
	})

	require.NoError(t, err)
	accounts, err := store.Accounts().ListActiveAccounts(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "1010", accounts[0].Code)
}

func TestDuplicateCodesAreRejected(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Accounts().SaveAccount(ctx, account("a1", "1010")))

	err := store.Accounts().SaveAccount(ctx, account("a2", "1010"))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	other := account("a3", "1010")
	other.TenantID = "t2"
	assert.NoError(t, store.Accounts().SaveAccount(ctx, other))
}

func TestFindLatestRateHonoursAsOf(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	jan := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.FxRates().SaveFxRate(ctx, domain.FxRate{RateID: "r1", BaseCode: "USD", QuoteCode: "SAR", Rate: decimal.RequireFromString("3.75"), Date: jan}))
	require.NoError(t, store.FxRates().SaveFxRate(ctx, domain.FxRate{RateID: "r2", BaseCode: "USD", QuoteCode: "SAR", Rate: decimal.RequireFromString("3.80"), Date: mar}))

	latest, err := store.FxRates().FindLatestRate(ctx, "USD", "SAR", nil)
	require.NoError(t, err)
	assert.Equal(t, "r2", latest.RateID)

	feb := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	asOf, err := store.FxRates().FindLatestRate(ctx, "USD", "SAR", &feb)
	require.NoError(t, err)
	assert.Equal(t, "r1", asOf.RateID)

	_, err = store.FxRates().FindLatestRate(ctx, "SAR", "USD", nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSumPaymentsByInvoices(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Billing().SaveInvoice(ctx, domain.Invoice{InvoiceID: "i1", TenantID: "t1", InvoiceNo: "INV-1", Status: domain.InvoiceSent}))
	for _, amt := range []string{"600", "400"} {
		require.NoError(t, store.Billing().SavePayment(ctx, domain.Payment{
			PaymentID: amt, TenantID: "t1", InvoiceID: "i1", Amount: decimal.RequireFromString(amt),
		}))
	}

	sums, err := store.Billing().SumPaymentsByInvoices(ctx, "t1", []string{"i1", "i2"})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(sums["i1"]))
	assert.True(t, sums["i2"].IsZero())
}
