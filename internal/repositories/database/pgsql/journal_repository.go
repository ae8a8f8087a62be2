package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice_ledger/internal/models"
	"github.com/SscSPs/backoffice_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type pgxJournalRepository struct {
	BaseRepository
}

var _ portsrepo.JournalRepositoryFacade = (*pgxJournalRepository)(nil)

// SaveEntry inserts the entry header and batches its lines. Callers run it
// inside WithTx so header and lines commit together.
func (r *pgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	header, lines := mapping.ToModelJournalEntry(entry)

	query := `
		INSERT INTO journal_entries (entry_id, tenant_id, entry_date, reference, description, reversal_of,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		header.EntryID, header.TenantID, header.EntryDate, header.Reference, header.Description, header.ReversalOf,
		header.CreatedAt, header.CreatedBy, header.LastUpdatedAt, header.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal entry %s already exists", apperrors.ErrDuplicate, header.EntryID)
		}
		return fmt.Errorf("failed to insert journal entry %s: %w", header.EntryID, err)
	}

	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, line_no, account_id, debit, credit,
			foreign_amount, foreign_code, fx_rate, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(lineQuery,
			l.LineID, l.EntryID, l.LineNo, l.AccountID, l.Debit, l.Credit,
			l.ForeignAmount, l.ForeignCode, l.FxRate, l.Memo,
		)
	}
	if err := execBatch(ctx, r.db, batch); err != nil {
		return fmt.Errorf("failed to insert lines of journal entry %s: %w", header.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves a journal entry with its lines.
func (r *pgxJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT entry_id, tenant_id, entry_date, reference, description, reversal_of,
			created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE tenant_id = $1 AND entry_id = $2;
	`
	rows, err := r.db.Query(ctx, query, tenantID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entry %s: %w", entryID, err)
	}
	header, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, notFoundOr(err, "failed to scan journal entry %s", entryID)
	}

	lineQuery := `
		SELECT line_id, entry_id, line_no, account_id, debit, credit, foreign_amount, foreign_code, fx_rate, memo
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_no;
	`
	rows, err = r.db.Query(ctx, lineQuery, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of journal entry %s: %w", entryID, err)
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalLine])
	if err != nil {
		return nil, fmt.Errorf("failed to scan lines of journal entry %s: %w", entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(header, lines)
	return &entry, nil
}

// ListLedgerLines joins lines with their entry and account, oldest first.
func (r *pgxJournalRepository) ListLedgerLines(ctx context.Context, tenantID string, from, to *time.Time) ([]domain.LedgerLine, error) {
	query := `
		SELECT e.entry_id, e.entry_date, e.reference, e.description,
			l.line_id, l.line_no, l.account_id, a.code, a.name, a.account_type,
			l.debit, l.credit, l.memo, l.foreign_amount, l.foreign_code, l.fx_rate
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.tenant_id = $1
			AND ($2::timestamptz IS NULL OR e.entry_date >= $2)
			AND ($3::timestamptz IS NULL OR e.entry_date <= $3)
		ORDER BY e.entry_date, e.created_at, e.entry_id, l.line_no;
	`
	rows, err := r.db.Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger lines: %w", err)
	}
	defer rows.Close()

	var out []domain.LedgerLine
	for rows.Next() {
		var (
			line          domain.LedgerLine
			accountType   string
			foreignAmount decimal.NullDecimal
			fxRate        decimal.NullDecimal
			foreignCode   *string
		)
		if err := rows.Scan(
			&line.EntryID, &line.Date, &line.Reference, &line.Description,
			&line.LineID, &line.LineNo, &line.AccountID, &line.AccountCode, &line.AccountName, &accountType,
			&line.Debit, &line.Credit, &line.Memo, &foreignAmount, &foreignCode, &fxRate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger line: %w", err)
		}
		line.AccountType = domain.AccountType(accountType)
		line.ForeignCode = foreignCode
		if foreignAmount.Valid {
			line.ForeignAmount = &foreignAmount.Decimal
		}
		if fxRate.Valid {
			line.FxRate = &fxRate.Decimal
		}
		out = append(out, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger lines: %w", err)
	}
	return out, nil
}
