package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const nothingToCloseMessage = "No unrealized exposures to close"

type fxCloseService struct {
	BaseService
	uow      portsrepo.UnitOfWork
	journal  portssvc.JournalPoster
	roles    portssvc.RoleResolverSvc
	rates    portssvc.FxRateReaderSvc
	settings portssvc.TenantSettingsReaderSvc
}

// FxCloseServiceOption configures the FX close service.
type FxCloseServiceOption func(*fxCloseService)

// WithFxCloseClock overrides the clock that supplies the default close date.
func WithFxCloseClock(clock Clock) FxCloseServiceOption {
	return func(s *fxCloseService) {
		s.Clock = clock
	}
}

// NewFxCloseService creates the FX revaluation and period close service.
func NewFxCloseService(
	uow portsrepo.UnitOfWork,
	journal portssvc.JournalPoster,
	roles portssvc.RoleResolverSvc,
	rates portssvc.FxRateReaderSvc,
	settings portssvc.TenantSettingsReaderSvc,
	options ...FxCloseServiceOption,
) portssvc.FxCloseSvcFacade {
	svc := &fxCloseService{
		uow:      uow,
		journal:  journal,
		roles:    roles,
		rates:    rates,
		settings: settings,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.FxCloseSvcFacade = (*fxCloseService)(nil)

func (s *fxCloseService) UnrealizedExposure(ctx context.Context, tenantID string, asOf *time.Time) (*domain.ExposureReport, error) {
	settings, err := s.settings.GetSettings(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	exposures, err := s.exposures(ctx, s.uow, tenantID, settings.BaseCurrencyCode, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute unrealized exposure", slog.String("tenant_id", tenantID))
		return nil, err
	}

	report := &domain.ExposureReport{
		BaseCurrency: settings.BaseCurrencyCode,
		AsOf:         asOf,
		Exposures:    exposures,
		Total:        decimal.Zero,
	}
	for _, e := range exposures {
		report.Total = report.Total.Add(e.Unrealized)
	}
	report.Total = accounting.Round2(report.Total)
	return report, nil
}

// exposures revalues every open foreign invoice at the latest rate known on
// asOf. Invoices of a currency with no rate keep their original rate.
func (s *fxCloseService) exposures(ctx context.Context, store portsrepo.Store, tenantID, base string, asOf *time.Time) ([]domain.Exposure, error) {
	invoices, err := store.Billing().ListOpenForeignInvoices(ctx, tenantID, base)
	if err != nil {
		return nil, err
	}

	current := make(map[string]decimal.Decimal)
	exposures := make([]domain.Exposure, 0, len(invoices))
	for _, inv := range invoices {
		if inv.ForeignAmount == nil || inv.CurrencyCode == "" {
			continue
		}
		original := inv.FxRate
		if !original.IsPositive() {
			original = decimal.NewFromInt(1)
		}

		latest, seen := current[inv.CurrencyCode]
		if !seen {
			if latest, err = s.latestRate(ctx, inv.CurrencyCode, base, asOf); err != nil {
				return nil, err
			}
			current[inv.CurrencyCode] = latest
		}
		rate := latest
		if rate.IsZero() {
			rate = original
		}

		revalued := accounting.Convert(*inv.ForeignAmount, rate)
		exposures = append(exposures, domain.Exposure{
			InvoiceID:    inv.InvoiceID,
			InvoiceNo:    inv.InvoiceNo,
			Currency:     inv.CurrencyCode,
			OriginalRate: original,
			CurrentRate:  rate,
			InvoiceBase:  inv.TotalAmount,
			RevaluedBase: revalued,
			Unrealized:   accounting.Round2(revalued.Sub(inv.TotalAmount)),
		})
	}
	return exposures, nil
}

// latestRate returns zero when no rate is stored for the pair.
func (s *fxCloseService) latestRate(ctx context.Context, currency, base string, asOf *time.Time) (decimal.Decimal, error) {
	rate, err := s.rates.LatestRate(ctx, currency, base, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return rate.Rate, nil
}

func (s *fxCloseService) ClosePeriod(ctx context.Context, tenantID string, asOf *time.Time, userID string) (*domain.PeriodCloseResult, error) {
	closeDate := s.now()
	if asOf != nil && !asOf.IsZero() {
		closeDate = *asOf
	}
	settings, err := s.settings.GetSettings(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	roles, err := s.roles.ResolveRoles(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	result := &domain.PeriodCloseResult{
		AsOf:      closeDate,
		Diffs:     []domain.Exposure{},
		TotalGain: decimal.Zero,
		TotalLoss: decimal.Zero,
	}
	err = s.uow.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		exposures, err := s.exposures(ctx, tx, tenantID, settings.BaseCurrencyCode, &closeDate)
		if err != nil {
			return err
		}
		for _, e := range exposures {
			if e.Unrealized.Abs().LessThan(accounting.Materiality) {
				continue
			}
			result.Diffs = append(result.Diffs, e)
			if e.Unrealized.IsPositive() {
				result.TotalGain = result.TotalGain.Add(e.Unrealized)
			} else {
				result.TotalLoss = result.TotalLoss.Add(e.Unrealized.Abs())
			}
		}
		result.TotalGain = accounting.Round2(result.TotalGain)
		result.TotalLoss = accounting.Round2(result.TotalLoss)
		if result.TotalGain.IsZero() && result.TotalLoss.IsZero() {
			result.Message = nothingToCloseMessage
			return nil
		}

		ar, ok := roles.Lookup(domain.RoleAccountsReceivable)
		if !ok {
			return apperrors.NewMissingConfigurationError("accounts receivable account not configured")
		}
		var lines []domain.PostingLine
		if result.TotalGain.IsPositive() {
			if gain, ok := roles.Lookup(domain.RoleFxGain); ok {
				lines = append(lines,
					domain.PostingLine{AccountID: ar.AccountID, Debit: result.TotalGain, Memo: "Unrealized FX gain"},
					domain.PostingLine{AccountID: gain.AccountID, Credit: result.TotalGain, Memo: "Unrealized FX gain"})
			} else {
				result.MissingRoles = append(result.MissingRoles, domain.RoleFxGain)
			}
		}
		if result.TotalLoss.IsPositive() {
			if loss, ok := roles.Lookup(domain.RoleFxLoss); ok {
				lines = append(lines,
					domain.PostingLine{AccountID: ar.AccountID, Credit: result.TotalLoss, Memo: "Unrealized FX loss"},
					domain.PostingLine{AccountID: loss.AccountID, Debit: result.TotalLoss, Memo: "Unrealized FX loss"})
			} else {
				result.MissingRoles = append(result.MissingRoles, domain.RoleFxLoss)
			}
		}
		if len(lines) == 0 {
			return apperrors.NewMissingConfigurationError("FX gain/loss accounts missing")
		}

		day := closeDate.Format("2006-01-02")
		result.Entry, err = s.journal.PostWithin(ctx, tx, tenantID, domain.PostingRequest{
			Date:        closeDate,
			Reference:   "CLOSE-" + day,
			Description: "Unrealized FX closing " + day,
			CreatedBy:   userID,
			Lines:       lines,
		})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Period close failed", slog.String("tenant_id", tenantID))
		return nil, err
	}

	if len(result.MissingRoles) > 0 {
		s.LogWarn(ctx, "Period close posted partially, account roles missing",
			slog.Any("missing_roles", result.MissingRoles))
	}
	s.LogInfo(ctx, "Period closed",
		slog.String("as_of", closeDate.Format("2006-01-02")),
		slog.Int("diffs", len(result.Diffs)),
		slog.String("total_gain", result.TotalGain.StringFixed(accounting.MoneyPlaces)),
		slog.String("total_loss", result.TotalLoss.StringFixed(accounting.MoneyPlaces)))
	return result, nil
}
