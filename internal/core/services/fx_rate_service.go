package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fxRateService struct {
	BaseService
	rateRepo portsrepo.FxRateRepositoryFacade
	settings portssvc.TenantSettingsReaderSvc
}

// FxRateServiceOption configures the FX rate service.
type FxRateServiceOption func(*fxRateService)

// WithFxRateClock overrides the clock used for audit timestamps.
func WithFxRateClock(clock Clock) FxRateServiceOption {
	return func(s *fxRateService) {
		s.Clock = clock
	}
}

// NewFxRateService creates the FX rate service. rateRepo may be a caching decorator.
func NewFxRateService(rateRepo portsrepo.FxRateRepositoryFacade, settings portssvc.TenantSettingsReaderSvc, options ...FxRateServiceOption) portssvc.FxRateSvcFacade {
	svc := &fxRateService{rateRepo: rateRepo, settings: settings}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.FxRateSvcFacade = (*fxRateService)(nil)

func (s *fxRateService) CreateRate(ctx context.Context, req dto.CreateFxRateRequest, userID string) (*domain.FxRate, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	base, err := accounting.NormalizeCurrency(req.BaseCode)
	if err != nil {
		return nil, err
	}
	quote, err := accounting.NormalizeCurrency(req.QuoteCode)
	if err != nil {
		return nil, err
	}
	if base == quote {
		return nil, apperrors.NewValidationError("base and quote currency must differ")
	}
	if !req.Rate.IsPositive() {
		return nil, apperrors.NewValidationError("exchange rate must be positive")
	}

	now := s.now()
	rate := domain.FxRate{
		RateID:    uuid.NewString(),
		BaseCode:  base,
		QuoteCode: quote,
		Rate:      req.Rate,
		Date:      req.Date,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.rateRepo.SaveFxRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate",
			slog.String("base", base),
			slog.String("quote", quote))
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}

	s.LogInfo(ctx, "Exchange rate created",
		slog.String("rate_id", rate.RateID),
		slog.String("pair", base+"/"+quote),
		slog.String("rate", rate.Rate.String()))
	return &rate, nil
}

func (s *fxRateService) LatestRate(ctx context.Context, baseCode, quoteCode string, asOf *time.Time) (*domain.FxRate, error) {
	base, err := accounting.NormalizeCurrency(baseCode)
	if err != nil {
		return nil, err
	}
	quote, err := accounting.NormalizeCurrency(quoteCode)
	if err != nil {
		return nil, err
	}
	rate, err := s.rateRepo.FindLatestRate(ctx, base, quote, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("no exchange rate for %s/%s", base, quote)
		}
		return nil, fmt.Errorf("failed to find exchange rate %s/%s: %w", base, quote, err)
	}
	return rate, nil
}

func (s *fxRateService) ResolveRate(ctx context.Context, tenantID, baseCode, quoteCode string, asOf *time.Time) (decimal.Decimal, error) {
	settings, err := s.settings.GetSettings(ctx, tenantID)
	if err != nil {
		return decimal.Zero, err
	}
	if quoteCode == "" {
		quoteCode = settings.BaseCurrencyCode
	}
	base, err := accounting.NormalizeCurrency(baseCode)
	if err != nil {
		return decimal.Zero, err
	}
	quote, err := accounting.NormalizeCurrency(quoteCode)
	if err != nil {
		return decimal.Zero, err
	}
	if base == quote {
		return decimal.NewFromInt(1), nil
	}

	rate, err := s.rateRepo.FindLatestRate(ctx, base, quote, asOf)
	if err == nil {
		return rate.Rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to resolve exchange rate %s/%s: %w", base, quote, err)
	}
	if settings.StrictFxRates {
		return decimal.Zero, apperrors.NewMissingConfigurationError("no exchange rate for %s/%s", base, quote)
	}
	s.LogWarn(ctx, "No exchange rate found, defaulting to 1",
		slog.String("tenant_id", tenantID),
		slog.String("pair", base+"/"+quote))
	return decimal.NewFromInt(1), nil
}
