package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
)

// FxRateReader defines read operations for exchange rate data
type FxRateReader interface {
	// FindLatestRate returns the most recent rate for base->quote dated on or
	// before asOf, or the globally latest when asOf is nil. apperrors.ErrNotFound
	// when no rate exists.
	FindLatestRate(ctx context.Context, baseCode, quoteCode string, asOf *time.Time) (*domain.FxRate, error)
}

// FxRateWriter defines write operations for exchange rate data
type FxRateWriter interface {
	SaveFxRate(ctx context.Context, rate domain.FxRate) error
}

// FxRateRepositoryFacade combines all exchange rate-related repository interfaces
type FxRateRepositoryFacade interface {
	FxRateReader
	FxRateWriter
}
