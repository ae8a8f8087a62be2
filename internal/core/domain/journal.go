package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a balanced set of postings for one business event.
// Entries are immutable once stored; corrections are new offsetting entries.
type JournalEntry struct {
	EntryID     string        `json:"entryID"`
	TenantID    string        `json:"tenantID"`
	Date        time.Time     `json:"date"`
	Reference   string        `json:"reference"`
	Description string        `json:"description"`
	ReversalOf  *string       `json:"reversalOf,omitempty"` // EntryID this entry offsets
	Lines       []JournalLine `json:"lines"`
	AuditFields
}

// JournalLine is a single debit and/or credit against one account.
type JournalLine struct {
	LineID        string           `json:"lineID"`
	EntryID       string           `json:"entryID"`
	LineNo        int              `json:"lineNo"`
	AccountID     string           `json:"accountID"`
	Debit         decimal.Decimal  `json:"debit"`
	Credit        decimal.Decimal  `json:"credit"`
	ForeignAmount *decimal.Decimal `json:"foreignAmount,omitempty"`
	ForeignCode   *string          `json:"foreignCode,omitempty"`
	FxRate        *decimal.Decimal `json:"fxRate,omitempty"`
	Memo          string           `json:"memo"`
}

// Totals returns the raw (unrounded) debit and credit sums of the entry.
func (e JournalEntry) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// AccountIDs returns the distinct account ids referenced by the entry, in line order.
func (e JournalEntry) AccountIDs() []string {
	seen := make(map[string]struct{}, len(e.Lines))
	ids := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}
	return ids
}

// PostingLine is the caller-side shape of a journal line before validation.
type PostingLine struct {
	AccountID     string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	ForeignAmount *decimal.Decimal
	ForeignCode   *string
	FxRate        *decimal.Decimal
	Memo          string
}

// PostingRequest describes a journal entry to be validated and posted.
type PostingRequest struct {
	Date        time.Time
	Reference   string
	Description string
	CreatedBy   string
	ReversalOf  *string
	Lines       []PostingLine
}

// PostingOutcome reports whether a side-effect journal entry was written.
// When JournalPosted is false, SkipReason holds the error kind and
// MissingRoles lists the unmapped account roles.
type PostingOutcome struct {
	JournalPosted bool          `json:"journalPosted"`
	Entry         *JournalEntry `json:"entry,omitempty"`
	SkipReason    string        `json:"skipReason,omitempty"`
	MissingRoles  []AccountRole `json:"missingRoles,omitempty"`
}
