package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/utils/accounting"
)

// DefaultBaseCurrency is used when neither the tenant nor the configuration sets one.
const DefaultBaseCurrency = "SAR"

type tenantSettingsService struct {
	BaseService
	tenantRepo      portsrepo.TenantRepositoryFacade
	defaultCurrency string
	defaultStrict   bool
}

// TenantSettingsOption configures the tenant settings service.
type TenantSettingsOption func(*tenantSettingsService)

// WithDefaultBaseCurrency sets the base currency of tenants without settings.
func WithDefaultBaseCurrency(code string) TenantSettingsOption {
	return func(s *tenantSettingsService) {
		if code != "" {
			s.defaultCurrency = code
		}
	}
}

// WithDefaultStrictFxRates sets the FX strictness of tenants without settings.
func WithDefaultStrictFxRates(strict bool) TenantSettingsOption {
	return func(s *tenantSettingsService) {
		s.defaultStrict = strict
	}
}

// WithTenantClock overrides the clock used for audit timestamps.
func WithTenantClock(clock Clock) TenantSettingsOption {
	return func(s *tenantSettingsService) {
		s.Clock = clock
	}
}

// NewTenantSettingsService creates the tenant settings service.
func NewTenantSettingsService(repo portsrepo.TenantRepositoryFacade, options ...TenantSettingsOption) portssvc.TenantSettingsSvc {
	svc := &tenantSettingsService{
		tenantRepo:      repo,
		defaultCurrency: DefaultBaseCurrency,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TenantSettingsSvc = (*tenantSettingsService)(nil)

func (s *tenantSettingsService) GetSettings(ctx context.Context, tenantID string) (domain.TenantSettings, error) {
	settings, err := s.tenantRepo.FindTenantSettings(ctx, tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.TenantSettings{
				TenantID:         tenantID,
				BaseCurrencyCode: s.defaultCurrency,
				StrictFxRates:    s.defaultStrict,
			}, nil
		}
		s.LogError(ctx, err, "Failed to load tenant settings", slog.String("tenant_id", tenantID))
		return domain.TenantSettings{}, fmt.Errorf("failed to load tenant settings: %w", err)
	}
	return *settings, nil
}

func (s *tenantSettingsService) UpdateSettings(ctx context.Context, tenantID string, req dto.UpdateTenantSettingsRequest, userID string) (*domain.TenantSettings, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	code, err := accounting.NormalizeCurrency(req.BaseCurrencyCode)
	if err != nil {
		return nil, err
	}

	now := s.now()
	settings := domain.TenantSettings{
		TenantID:         tenantID,
		BaseCurrencyCode: code,
		StrictFxRates:    req.StrictFxRates,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.tenantRepo.SaveTenantSettings(ctx, settings); err != nil {
		s.LogError(ctx, err, "Failed to save tenant settings", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to save tenant settings: %w", err)
	}

	s.LogInfo(ctx, "Tenant settings updated",
		slog.String("tenant_id", tenantID),
		slog.String("base_currency", code),
		slog.Bool("strict_fx_rates", req.StrictFxRates))
	return &settings, nil
}
