package dto

import (
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one debit/credit line of a manual journal entry.
type JournalLineRequest struct {
	AccountID     string           `json:"accountID" binding:"required"`
	Debit         decimal.Decimal  `json:"debit"`
	Credit        decimal.Decimal  `json:"credit"`
	ForeignAmount *decimal.Decimal `json:"foreignAmount"`
	ForeignCode   *string          `json:"foreignCode" binding:"omitempty,len=3"`
	FxRate        *decimal.Decimal `json:"fxRate"`
	Memo          string           `json:"memo" binding:"max=255"`
}

// PostJournalRequest defines the data needed to post a journal entry.
type PostJournalRequest struct {
	Date        time.Time            `json:"date" binding:"required"`
	Reference   string               `json:"reference" binding:"max=100"`
	Description string               `json:"description" binding:"max=500"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ReverseJournalRequest optionally dates the reversing entry.
type ReverseJournalRequest struct {
	Date *time.Time `json:"date"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID        string           `json:"lineID"`
	LineNo        int              `json:"lineNo"`
	AccountID     string           `json:"accountID"`
	Debit         decimal.Decimal  `json:"debit"`
	Credit        decimal.Decimal  `json:"credit"`
	ForeignAmount *decimal.Decimal `json:"foreignAmount,omitempty"`
	ForeignCode   *string          `json:"foreignCode,omitempty"`
	FxRate        *decimal.Decimal `json:"fxRate,omitempty"`
	Memo          string           `json:"memo"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID     string                `json:"entryID"`
	Date        time.Time             `json:"date"`
	Reference   string                `json:"reference"`
	Description string                `json:"description"`
	ReversalOf  *string               `json:"reversalOf,omitempty"`
	Lines       []JournalLineResponse `json:"lines"`
	TotalDebit  decimal.Decimal       `json:"totalDebit"`
	TotalCredit decimal.Decimal       `json:"totalCredit"`
	CreatedAt   time.Time             `json:"createdAt"`
	CreatedBy   string                `json:"createdBy"`
}

// ToPostingRequest converts the request into the journal engine's input.
func (r PostJournalRequest) ToPostingRequest(userID string) domain.PostingRequest {
	lines := make([]domain.PostingLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.PostingLine{
			AccountID:     l.AccountID,
			Debit:         l.Debit,
			Credit:        l.Credit,
			ForeignAmount: l.ForeignAmount,
			ForeignCode:   l.ForeignCode,
			FxRate:        l.FxRate,
			Memo:          l.Memo,
		}
	}
	return domain.PostingRequest{
		Date:        r.Date,
		Reference:   r.Reference,
		Description: r.Description,
		CreatedBy:   userID,
		Lines:       lines,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineID:        l.LineID,
			LineNo:        l.LineNo,
			AccountID:     l.AccountID,
			Debit:         l.Debit,
			Credit:        l.Credit,
			ForeignAmount: l.ForeignAmount,
			ForeignCode:   l.ForeignCode,
			FxRate:        l.FxRate,
			Memo:          l.Memo,
		}
	}
	debit, credit := e.Totals()
	return JournalEntryResponse{
		EntryID:     e.EntryID,
		Date:        e.Date,
		Reference:   e.Reference,
		Description: e.Description,
		ReversalOf:  e.ReversalOf,
		Lines:       lines,
		TotalDebit:  debit,
		TotalCredit: credit,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
}
