package dto

import (
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFxRateRequest defines the structure for creating a new exchange rate.
// One unit of BaseCode is worth Rate units of QuoteCode.
type CreateFxRateRequest struct {
	BaseCode  string          `json:"baseCode" binding:"required,len=3"`
	QuoteCode string          `json:"quoteCode" binding:"required,len=3"`
	Rate      decimal.Decimal `json:"rate"`
	Date      time.Time       `json:"date" binding:"required"`
}

// LatestRateQuery selects a currency pair.
type LatestRateQuery struct {
	BaseCode  string     `form:"base" binding:"required,len=3"`
	QuoteCode string     `form:"quote" binding:"required,len=3"`
	AsOf      *time.Time `form:"asOf" time_format:"2006-01-02"`
}

// FxRateResponse defines the structure for API responses containing exchange rate details.
type FxRateResponse struct {
	RateID    string          `json:"rateID"`
	BaseCode  string          `json:"baseCode"`
	QuoteCode string          `json:"quoteCode"`
	Rate      decimal.Decimal `json:"rate"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"createdAt"`
	CreatedBy string          `json:"createdBy"`
}

// ToFxRateResponse converts a domain.FxRate to FxRateResponse DTO
func ToFxRateResponse(rate *domain.FxRate) FxRateResponse {
	return FxRateResponse{
		RateID:    rate.RateID,
		BaseCode:  rate.BaseCode,
		QuoteCode: rate.QuoteCode,
		Rate:      rate.Rate,
		Date:      rate.Date,
		CreatedAt: rate.CreatedAt,
		CreatedBy: rate.CreatedBy,
	}
}

// ClosePeriodRequest optionally pins the revaluation date.
type ClosePeriodRequest struct {
	AsOf *time.Time `json:"asOf"`
}
