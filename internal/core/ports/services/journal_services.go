package services

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
)

// JournalPoster is the single path through which ledger rows are written.
type JournalPoster interface {
	// PostWithin validates req and persists it through tx. The caller owns the
	// transaction; a returned error must abort it.
	PostWithin(ctx context.Context, tx portsrepo.Store, tenantID string, req domain.PostingRequest) (*domain.JournalEntry, error)

	// ReverseWithin posts, through tx, an entry that swaps the debits and
	// credits of entryID. The original entry is left untouched.
	ReverseWithin(ctx context.Context, tx portsrepo.Store, tenantID, entryID string, date time.Time, userID string) (*domain.JournalEntry, error)
}

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	GetEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// PostEntry validates and posts a manual journal entry in its own transaction.
	PostEntry(ctx context.Context, tenantID string, req dto.PostJournalRequest, userID string) (*domain.JournalEntry, error)

	// ReverseEntry posts a new entry offsetting entryID. A nil date means today.
	ReverseEntry(ctx context.Context, tenantID, entryID string, date *time.Time, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalPoster
	JournalReaderSvc
	JournalWriterSvc
}
