package accounting

import (
	"strings"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// MoneyPlaces is the precision used for every monetary comparison and conversion.
const MoneyPlaces int32 = 2

// Materiality is the smallest difference treated as non-zero by period close.
var Materiality = decimal.New(1, -MoneyPlaces)

// Round2 rounds d half away from zero to MoneyPlaces.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// Convert returns round(amount * rate, 2).
func Convert(amount, rate decimal.Decimal) decimal.Decimal {
	return Round2(amount.Mul(rate))
}

// EqualAt2 compares two totals after rounding each independently.
func EqualAt2(a, b decimal.Decimal) bool {
	return Round2(a).Equal(Round2(b))
}

// NormalizeCurrency upper-cases code and checks it against ISO 4217.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", apperrors.NewValidationError("invalid currency code %q", code)
	}
	return unit.String(), nil
}

// SignedBalance applies the normal-balance sign of the account type to a
// debit/credit pair. DEBIT to ASSET/EXPENSE is positive, DEBIT to
// LIABILITY/EQUITY/REVENUE is negative.
func SignedBalance(accountType domain.AccountType, debit, credit decimal.Decimal) decimal.Decimal {
	if accountType.IsDebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// ValidatePostingLines checks the per-line preconditions of a journal entry.
func ValidatePostingLines(lines []domain.PostingLine) error {
	if len(lines) == 0 {
		return apperrors.NewValidationError("journal entry must have at least one line")
	}
	for i, l := range lines {
		if strings.TrimSpace(l.AccountID) == "" {
			return apperrors.NewValidationError("line %d: account is required", i+1)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return apperrors.NewValidationError("line %d: debit and credit must be non-negative", i+1)
		}
	}
	return nil
}

// ValidateJournalBalance checks round(Σdebit,2) == round(Σcredit,2).
func ValidateJournalBalance(lines []domain.PostingLine) error {
	debit, credit := decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	if !EqualAt2(debit, credit) {
		return apperrors.NewUnbalancedEntryError("journal entry does not balance: debits %s, credits %s",
			Round2(debit).StringFixed(MoneyPlaces), Round2(credit).StringFixed(MoneyPlaces))
	}
	return nil
}

// DeriveInvoiceStatus computes the payment status from the invoice total and
// the sum of all payments applied to it. It is a pure function of its inputs.
func DeriveInvoiceStatus(total, collected decimal.Decimal) domain.InvoiceStatus {
	collected = Round2(collected)
	switch {
	case collected.Sign() <= 0:
		return domain.InvoiceSent
	case collected.LessThan(Round2(total)):
		return domain.InvoicePartiallyPaid
	default:
		return domain.InvoicePaid
	}
}

// ReceivableCredit returns the AR carrying value that payment settles on
// invoice, given the payments already applied in order. A payment in the
// invoice currency settles its amount at the invoice rate; any other currency
// settles its base value. The credit never exceeds what remains on AR, so
// the difference to the payment's base amount is realized FX.
func ReceivableCredit(invoice domain.Invoice, prior []domain.Payment, payment domain.Payment) decimal.Decimal {
	remaining := Round2(invoice.TotalAmount)
	for _, p := range prior {
		remaining = remaining.Sub(decimal.Min(carryingValue(invoice, p), remaining))
	}
	if !remaining.IsPositive() {
		return decimal.Zero
	}
	return decimal.Min(carryingValue(invoice, payment), remaining)
}

func carryingValue(invoice domain.Invoice, p domain.Payment) decimal.Decimal {
	if p.CurrencyCode == invoice.CurrencyCode && p.ForeignAmount != nil {
		return Convert(*p.ForeignAmount, invoice.FxRate)
	}
	return Round2(p.Amount)
}
