package accounting_test

import (
	"math/rand"
	"testing"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		rate   string
		want   string
	}{
		{"whole", "100", "3.75", "375"},
		{"rounds half up", "10.005", "1", "10.01"},
		{"rounds down", "33.333", "3", "100"},
		{"fractional rate", "0.1", "0.2", "0.02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.Convert(d(tt.amount), d(tt.rate))
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestEqualAt2(t *testing.T) {
	assert.True(t, accounting.EqualAt2(d("0.1").Add(d("0.2")), d("0.3")))
	assert.True(t, accounting.EqualAt2(d("100.004"), d("100")))
	assert.False(t, accounting.EqualAt2(d("100.005"), d("100")))
}

func TestNormalizeCurrency(t *testing.T) {
	code, err := accounting.NormalizeCurrency(" usd ")
	require.NoError(t, err)
	assert.Equal(t, "USD", code)

	_, err = accounting.NormalizeCurrency("XXQ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = accounting.NormalizeCurrency("")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateJournalBalance(t *testing.T) {
	balanced := []domain.PostingLine{
		{AccountID: "a", Debit: d("0.1")},
		{AccountID: "a", Debit: d("0.2")},
		{AccountID: "b", Credit: d("0.3")},
	}
	assert.NoError(t, accounting.ValidateJournalBalance(balanced))

	unbalanced := []domain.PostingLine{
		{AccountID: "a", Debit: d("500")},
		{AccountID: "b", Credit: d("400")},
	}
	err := accounting.ValidateJournalBalance(unbalanced)
	assert.ErrorIs(t, err, apperrors.ErrUnbalancedEntry)
	assert.Contains(t, err.Error(), "500.00")
}

func TestValidatePostingLines(t *testing.T) {
	assert.ErrorIs(t, accounting.ValidatePostingLines(nil), apperrors.ErrValidation)
	assert.ErrorIs(t, accounting.ValidatePostingLines([]domain.PostingLine{{Debit: d("1")}}), apperrors.ErrValidation)
	assert.ErrorIs(t, accounting.ValidatePostingLines([]domain.PostingLine{{AccountID: "a", Debit: d("-1")}}), apperrors.ErrValidation)
	assert.NoError(t, accounting.ValidatePostingLines([]domain.PostingLine{{AccountID: "a", Debit: d("1"), Credit: d("1")}}))
}

func TestSignedBalance(t *testing.T) {
	assert.True(t, accounting.SignedBalance(domain.Asset, d("100"), d("40")).Equal(d("60")))
	assert.True(t, accounting.SignedBalance(domain.Liability, d("100"), d("40")).Equal(d("-60")))
	assert.True(t, accounting.SignedBalance(domain.Revenue, d("0"), d("250")).Equal(d("250")))
}

func TestDeriveInvoiceStatus(t *testing.T) {
	total := d("1000")
	assert.Equal(t, domain.InvoiceSent, accounting.DeriveInvoiceStatus(total, decimal.Zero))
	assert.Equal(t, domain.InvoicePartiallyPaid, accounting.DeriveInvoiceStatus(total, d("600")))
	assert.Equal(t, domain.InvoicePaid, accounting.DeriveInvoiceStatus(total, d("1000")))
	assert.Equal(t, domain.InvoicePaid, accounting.DeriveInvoiceStatus(total, d("1200")))
	assert.Equal(t, domain.InvoicePartiallyPaid, accounting.DeriveInvoiceStatus(total, d("999.99")))
	assert.Equal(t, domain.InvoicePaid, accounting.DeriveInvoiceStatus(total, d("999.996")))
}

func TestDeriveInvoiceStatusIsOrderIndependent(t *testing.T) {
	total := d("1000")
	payments := []decimal.Decimal{d("100"), d("250.50"), d("49.50"), d("600")}
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 20; i++ {
		r.Shuffle(len(payments), func(a, b int) { payments[a], payments[b] = payments[b], payments[a] })
		sum := decimal.Zero
		for _, p := range payments {
			sum = sum.Add(p)
		}
		assert.Equal(t, domain.InvoicePaid, accounting.DeriveInvoiceStatus(total, sum))
		assert.Equal(t, accounting.DeriveInvoiceStatus(total, sum), accounting.DeriveInvoiceStatus(total, sum))
	}
}

func TestReceivableCredit(t *testing.T) {
	usd := func(amount, rate string) domain.Payment {
		foreign := d(amount)
		return domain.Payment{CurrencyCode: "USD", ForeignAmount: &foreign, Amount: accounting.Convert(foreign, d(rate)), FxRate: d(rate)}
	}
	sar := func(amount string) domain.Payment {
		return domain.Payment{CurrencyCode: "SAR", Amount: d(amount), FxRate: d("1")}
	}
	foreignTotal := d("100")
	usdInvoice := domain.Invoice{CurrencyCode: "USD", FxRate: d("3.75"), ForeignAmount: &foreignTotal, TotalAmount: d("375")}
	sarInvoice := domain.Invoice{CurrencyCode: "SAR", FxRate: d("1"), TotalAmount: d("1000")}

	tests := []struct {
		name    string
		invoice domain.Invoice
		prior   []domain.Payment
		payment domain.Payment
		want    string
	}{
		{"invoice currency at a new rate", usdInvoice, nil, usd("100", "3.80"), "375"},
		{"invoice currency partial", usdInvoice, nil, usd("40", "3.80"), "150"},
		{"base currency settles in full", usdInvoice, nil, sar("380"), "375"},
		{"base currency partial", usdInvoice, nil, sar("200"), "200"},
		{"base currency after partial", usdInvoice, []domain.Payment{sar("200")}, sar("180"), "175"},
		{"mixed currencies", usdInvoice, []domain.Payment{usd("60", "3.70")}, sar("160"), "150"},
		{"already settled", usdInvoice, []domain.Payment{sar("375")}, sar("10"), "0"},
		{"base invoice partial", sarInvoice, nil, sar("600"), "600"},
		{"base invoice overpaid", sarInvoice, []domain.Payment{sar("600")}, sar("500"), "400"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.ReceivableCredit(tt.invoice, tt.prior, tt.payment)
			assert.True(t, d(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}
