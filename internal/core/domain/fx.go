package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FxRate states that one unit of BaseCode is worth Rate units of QuoteCode on Date.
// Rates are shared by all tenants; the latest by Date is authoritative.
type FxRate struct {
	RateID    string          `json:"rateID"`
	BaseCode  string          `json:"baseCode"`
	QuoteCode string          `json:"quoteCode"`
	Rate      decimal.Decimal `json:"rate"`
	Date      time.Time       `json:"date"`
	AuditFields
}

// Exposure is the unrealized FX position of a single open foreign-currency invoice.
type Exposure struct {
	InvoiceID    string          `json:"invoiceID"`
	InvoiceNo    string          `json:"invoiceNo"`
	Currency     string          `json:"currency"`
	OriginalRate decimal.Decimal `json:"originalRate"`
	CurrentRate  decimal.Decimal `json:"currentRate"`
	InvoiceBase  decimal.Decimal `json:"invoiceBase"`
	RevaluedBase decimal.Decimal `json:"revaluedBase"`
	Unrealized   decimal.Decimal `json:"unrealized"`
}

// ExposureReport aggregates the exposures of a tenant.
type ExposureReport struct {
	BaseCurrency string          `json:"baseCurrency"`
	AsOf         *time.Time      `json:"asOf,omitempty"`
	Exposures    []Exposure      `json:"exposures"`
	Total        decimal.Decimal `json:"total"`
}

// PeriodCloseResult is returned by a period close. Message is set when
// there was nothing material to close. MissingRoles lists the gain or loss
// role whose half of the adjustment could not be posted.
type PeriodCloseResult struct {
	AsOf         time.Time       `json:"asOf"`
	Diffs        []Exposure      `json:"diffs"`
	TotalGain    decimal.Decimal `json:"totalGain"`
	TotalLoss    decimal.Decimal `json:"totalLoss"`
	Entry        *JournalEntry   `json:"entry,omitempty"`
	MissingRoles []AccountRole   `json:"missingRoles,omitempty"`
	Message      string          `json:"message,omitempty"`
}
