package dto

import (
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
)

// LedgerQuery holds the optional general ledger filters.
type LedgerQuery struct {
	AccountID string     `form:"accountID"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Limit     int        `form:"limit" binding:"omitempty,min=1,max=1000"`
	PageToken string     `form:"pageToken"`
}

// AsOfQuery holds an optional report upper bound.
type AsOfQuery struct {
	To *time.Time `form:"to" time_format:"2006-01-02"`
}

// ToLedgerFilter converts the query into a domain filter. A bare "to" date
// includes the whole day.
func (q LedgerQuery) ToLedgerFilter() domain.LedgerFilter {
	f := domain.LedgerFilter{From: q.From, To: EndOfDay(q.To)}
	if q.AccountID != "" {
		id := q.AccountID
		f.AccountID = &id
	}
	return f
}

// EndOfDay moves a date-only bound to the last instant of that day.
func EndOfDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	end := time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
	return &end
}

// LedgerResponse wraps general ledger lines.
type LedgerResponse struct {
	Lines         []domain.LedgerLine `json:"lines"`
	NextPageToken string              `json:"nextPageToken,omitempty"`
}
