package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves a journal entry with its lines.
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// ListLedgerLines returns every line of the tenant's entries dated within
	// [from, to] (either bound optional), ordered by entry date, entry
	// creation time and line number.
	ListLedgerLines(ctx context.Context, tenantID string, from, to *time.Time) ([]domain.LedgerLine, error)
}

// JournalWriter defines write operations for journal data.
// Entries are append-only; there is no update or delete.
type JournalWriter interface {
	// SaveEntry persists an entry and all its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
