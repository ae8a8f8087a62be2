package services

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// FxRateReaderSvc defines read operations for exchange rate data
type FxRateReaderSvc interface {
	// LatestRate returns the most recent rate for base->quote on or before asOf (nil: latest).
	LatestRate(ctx context.Context, baseCode, quoteCode string, asOf *time.Time) (*domain.FxRate, error)

	// ResolveRate returns the rate converting baseCode into quoteCode, 1 when
	// the codes match. An empty quoteCode means the tenant base currency. When
	// no rate exists it returns 1, or apperrors.ErrMissingConfiguration for
	// tenants in strict mode.
	ResolveRate(ctx context.Context, tenantID, baseCode, quoteCode string, asOf *time.Time) (decimal.Decimal, error)
}

// FxRateWriterSvc defines write operations for exchange rate data
type FxRateWriterSvc interface {
	CreateRate(ctx context.Context, req dto.CreateFxRateRequest, userID string) (*domain.FxRate, error)
}

// FxRateSvcFacade combines all exchange rate-related service interfaces
type FxRateSvcFacade interface {
	FxRateReaderSvc
	FxRateWriterSvc
}

// FxCloseSvcFacade computes and closes unrealized FX exposure.
type FxCloseSvcFacade interface {
	UnrealizedExposure(ctx context.Context, tenantID string, asOf *time.Time) (*domain.ExposureReport, error)

	// ClosePeriod posts the unrealized gain/loss adjustment as of asOf (nil: now).
	ClosePeriod(ctx context.Context, tenantID string, asOf *time.Time, userID string) (*domain.PeriodCloseResult, error)
}
