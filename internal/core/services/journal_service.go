package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

type journalService struct {
	BaseService
	uow portsrepo.UnitOfWork
}

// JournalServiceOption configures the journal service.
type JournalServiceOption func(*journalService)

// WithJournalClock overrides the clock used for default dates and audit fields.
func WithJournalClock(clock Clock) JournalServiceOption {
	return func(s *journalService) {
		s.Clock = clock
	}
}

// NewJournalService creates the journal engine.
func NewJournalService(uow portsrepo.UnitOfWork, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{uow: uow}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validatePosting runs every check that needs no storage access.
func validatePosting(req domain.PostingRequest) error {
	if req.Date.IsZero() {
		return apperrors.NewValidationError("journal date is required")
	}
	if err := accounting.ValidatePostingLines(req.Lines); err != nil {
		return err
	}
	for i, l := range req.Lines {
		if l.ForeignCode != nil {
			if _, err := accounting.NormalizeCurrency(*l.ForeignCode); err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
		}
		if l.FxRate != nil && !l.FxRate.IsPositive() {
			return apperrors.NewValidationError("line %d: fx rate must be positive", i+1)
		}
	}
	return accounting.ValidateJournalBalance(req.Lines)
}

func (s *journalService) PostWithin(ctx context.Context, tx portsrepo.Store, tenantID string, req domain.PostingRequest) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx).With(slog.String("tenant_id", tenantID), slog.String("reference", req.Reference))

	if err := validatePosting(req); err != nil {
		logger.Warn("Journal entry rejected", slog.String("error", err.Error()))
		return nil, err
	}

	now := s.now()
	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = domain.SystemUserID
	}
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		TenantID:    tenantID,
		Date:        req.Date,
		Reference:   req.Reference,
		Description: req.Description,
		ReversalOf:  req.ReversalOf,
		Lines:       make([]domain.JournalLine, len(req.Lines)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}
	for i, l := range req.Lines {
		var foreignCode *string
		if l.ForeignCode != nil {
			code, _ := accounting.NormalizeCurrency(*l.ForeignCode)
			foreignCode = &code
		}
		entry.Lines[i] = domain.JournalLine{
			LineID:        uuid.NewString(),
			EntryID:       entry.EntryID,
			LineNo:        i + 1,
			AccountID:     l.AccountID,
			Debit:         l.Debit,
			Credit:        l.Credit,
			ForeignAmount: l.ForeignAmount,
			ForeignCode:   foreignCode,
			FxRate:        l.FxRate,
			Memo:          l.Memo,
		}
	}

	accountIDs := entry.AccountIDs()
	accounts, err := tx.Accounts().FindAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, ok := accounts[id]
		if !ok {
			logger.Warn("Journal references unknown account", slog.String("account_id", id))
			return nil, apperrors.NewNotFoundError("account %s not found", id)
		}
		if !acc.IsActive {
			return nil, apperrors.NewValidationError("account %s is inactive", acc.Code)
		}
	}

	if err := tx.Journals().SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	debit, _ := entry.Totals()
	logger.Info("Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.Int("lines", len(entry.Lines)),
		slog.String("amount", accounting.Round2(debit).StringFixed(accounting.MoneyPlaces)))
	return &entry, nil
}

func (s *journalService) ReverseWithin(ctx context.Context, tx portsrepo.Store, tenantID, entryID string, date time.Time, userID string) (*domain.JournalEntry, error) {
	original, err := tx.Journals().FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("journal entry %s not found", entryID)
		}
		return nil, fmt.Errorf("failed to load journal entry %s: %w", entryID, err)
	}
	return s.PostWithin(ctx, tx, tenantID, reversalOf(original, date, userID))
}

// reversalOf builds the posting that offsets original line by line.
func reversalOf(original *domain.JournalEntry, date time.Time, userID string) domain.PostingRequest {
	ref := original.Reference
	if ref == "" {
		ref = original.EntryID
	}
	desc := original.Description
	if desc == "" {
		desc = ref
	}
	lines := make([]domain.PostingLine, len(original.Lines))
	for i, l := range original.Lines {
		lines[i] = domain.PostingLine{
			AccountID:     l.AccountID,
			Debit:         l.Credit,
			Credit:        l.Debit,
			ForeignAmount: l.ForeignAmount,
			ForeignCode:   l.ForeignCode,
			FxRate:        l.FxRate,
			Memo:          l.Memo,
		}
	}
	originalID := original.EntryID
	return domain.PostingRequest{
		Date:        date,
		Reference:   "REV-" + ref,
		Description: "Reversal of " + desc,
		CreatedBy:   userID,
		ReversalOf:  &originalID,
		Lines:       lines,
	}
}

func (s *journalService) PostEntry(ctx context.Context, tenantID string, req dto.PostJournalRequest, userID string) (*domain.JournalEntry, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	posting := req.ToPostingRequest(userID)
	if err := validatePosting(posting); err != nil {
		return nil, err
	}

	var entry *domain.JournalEntry
	err := s.uow.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		var err error
		entry, err = s.PostWithin(ctx, tx, tenantID, posting)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *journalService) GetEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.uow.Journals().FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("journal entry %s not found", entryID)
		}
		return nil, fmt.Errorf("failed to get journal entry %s: %w", entryID, err)
	}
	return entry, nil
}

func (s *journalService) ReverseEntry(ctx context.Context, tenantID, entryID string, date *time.Time, userID string) (*domain.JournalEntry, error) {
	reversalDate := s.now()
	if date != nil && !date.IsZero() {
		reversalDate = *date
	}

	var entry *domain.JournalEntry
	err := s.uow.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		var err error
		entry, err = s.ReverseWithin(ctx, tx, tenantID, entryID, reversalDate, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("original_entry_id", entryID),
		slog.String("reversal_entry_id", entry.EntryID))
	return entry, nil
}
