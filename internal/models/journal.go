package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	EntryID     string         `db:"entry_id"`
	TenantID    string         `db:"tenant_id"`
	EntryDate   time.Time      `db:"entry_date"`
	Reference   string         `db:"reference"`
	Description string         `db:"description"`
	ReversalOf  sql.NullString `db:"reversal_of"`
	AuditFields
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	LineID        string              `db:"line_id"`
	EntryID       string              `db:"entry_id"`
	LineNo        int                 `db:"line_no"`
	AccountID     string              `db:"account_id"`
	Debit         decimal.Decimal     `db:"debit"`
	Credit        decimal.Decimal     `db:"credit"`
	ForeignAmount decimal.NullDecimal `db:"foreign_amount"`
	ForeignCode   sql.NullString      `db:"foreign_code"`
	FxRate        decimal.NullDecimal `db:"fx_rate"`
	Memo          string              `db:"memo"`
}
