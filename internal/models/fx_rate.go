package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FxRate is a row of the fx_rates table.
type FxRate struct {
	RateID    string          `db:"rate_id"`
	BaseCode  string          `db:"base_code"`
	QuoteCode string          `db:"quote_code"`
	Rate      decimal.Decimal `db:"rate"`
	RateDate  time.Time       `db:"rate_date"`
	AuditFields
}
