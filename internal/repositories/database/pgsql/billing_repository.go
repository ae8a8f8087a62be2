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

type pgxBillingRepository struct {
	BaseRepository
}

var _ portsrepo.BillingRepositoryFacade = (*pgxBillingRepository)(nil)

const invoiceColumns = `invoice_id, tenant_id, project_id, invoice_no, issue_date, due_date, notes,
	total_amount, currency_code, fx_rate, foreign_amount, status, journal_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

const paymentColumns = `payment_id, tenant_id, project_id, invoice_id, amount, paid_date, currency_code,
	fx_rate, foreign_amount, method, reference, journal_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveInvoice inserts the invoice header and batches its items.
func (r *pgxBillingRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m, items := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.db.Exec(ctx, query,
		m.InvoiceID, m.TenantID, m.ProjectID, m.InvoiceNo, m.IssueDate, m.DueDate, m.Notes,
		m.TotalAmount, m.CurrencyCode, m.FxRate, m.ForeignAmount, m.Status, m.JournalEntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice number %s already exists", apperrors.ErrDuplicate, m.InvoiceNo)
		}
		return fmt.Errorf("failed to save invoice %s: %w", m.InvoiceNo, err)
	}

	itemQuery := `
		INSERT INTO invoice_items (item_id, invoice_id, description, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(itemQuery, it.ItemID, it.InvoiceID, it.Description, it.Quantity, it.UnitPrice, it.LineTotal)
	}
	if err := execBatch(ctx, r.db, batch); err != nil {
		return fmt.Errorf("failed to save items of invoice %s: %w", m.InvoiceNo, err)
	}
	return nil
}

// UpdateInvoice writes status, journal entry link and audit fields.
func (r *pgxBillingRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m, _ := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET status = $3, journal_entry_id = $4, last_updated_at = $5, last_updated_by = $6
		WHERE tenant_id = $1 AND invoice_id = $2;
	`
	tag, err := r.db.Exec(ctx, query, m.TenantID, m.InvoiceID, m.Status, m.JournalEntryID, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", m.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *pgxBillingRepository) FindInvoiceByID(ctx context.Context, tenantID, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoice(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE tenant_id = $1 AND invoice_id = $2;`, tenantID, invoiceID)
}

// FindInvoiceByIDForUpdate locks the invoice row for the rest of the transaction.
func (r *pgxBillingRepository) FindInvoiceByIDForUpdate(ctx context.Context, tenantID, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoice(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE tenant_id = $1 AND invoice_id = $2 FOR UPDATE;`, tenantID, invoiceID)
}

func (r *pgxBillingRepository) findInvoice(ctx context.Context, query, tenantID, invoiceID string) (*domain.Invoice, error) {
	rows, err := r.db.Query(ctx, query, tenantID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice %s: %w", invoiceID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Invoice])
	if err != nil {
		return nil, notFoundOr(err, "failed to scan invoice %s", invoiceID)
	}
	invoices, err := r.withItems(ctx, []models.Invoice{m})
	if err != nil {
		return nil, err
	}
	return &invoices[0], nil
}

// ListInvoicesByProject lists a project's invoices, newest first.
func (r *pgxBillingRepository) ListInvoicesByProject(ctx context.Context, tenantID, projectID string) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE tenant_id = $1 AND project_id = $2
		ORDER BY issue_date DESC, invoice_no DESC;`
	return r.listInvoices(ctx, query, tenantID, projectID)
}

// ListOpenForeignInvoices lists invoices that still carry currency exposure.
func (r *pgxBillingRepository) ListOpenForeignInvoices(ctx context.Context, tenantID, baseCurrency string) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE tenant_id = $1
			AND status IN ($3, $4)
			AND currency_code <> $2
			AND foreign_amount IS NOT NULL
		ORDER BY issue_date, invoice_no;`
	return r.listInvoices(ctx, query, tenantID, baseCurrency, string(domain.InvoiceSent), string(domain.InvoicePartiallyPaid))
}

func (r *pgxBillingRepository) listInvoices(ctx context.Context, query string, args ...any) ([]domain.Invoice, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Invoice])
	if err != nil {
		return nil, fmt.Errorf("failed to scan invoices: %w", err)
	}
	return r.withItems(ctx, ms)
}

// withItems loads the items of every invoice in one query and assembles domain invoices.
func (r *pgxBillingRepository) withItems(ctx context.Context, ms []models.Invoice) ([]domain.Invoice, error) {
	if len(ms) == 0 {
		return []domain.Invoice{}, nil
	}
	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.InvoiceID
	}

	query := `
		SELECT item_id, invoice_id, description, quantity, unit_price, line_total
		FROM invoice_items
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, item_id;
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice items: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.InvoiceItem])
	if err != nil {
		return nil, fmt.Errorf("failed to scan invoice items: %w", err)
	}
	byInvoice := make(map[string][]models.InvoiceItem, len(ms))
	for _, it := range items {
		byInvoice[it.InvoiceID] = append(byInvoice[it.InvoiceID], it)
	}

	out := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainInvoice(m, byInvoice[m.InvoiceID])
	}
	return out, nil
}

func (r *pgxBillingRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.db.Exec(ctx, query,
		m.PaymentID, m.TenantID, m.ProjectID, m.InvoiceID, m.Amount, m.PaidDate, m.CurrencyCode,
		m.FxRate, m.ForeignAmount, m.Method, m.Reference, m.JournalEntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save payment for invoice %s: %w", m.InvoiceID, err)
	}
	return nil
}

func (r *pgxBillingRepository) ListPaymentsByInvoice(ctx context.Context, tenantID, invoiceID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE tenant_id = $1 AND invoice_id = $2
		ORDER BY paid_date, created_at;`
	return r.listPayments(ctx, query, tenantID, invoiceID)
}

func (r *pgxBillingRepository) ListPaymentsByProject(ctx context.Context, tenantID, projectID string, from, to *time.Time) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE tenant_id = $1 AND project_id = $2
			AND ($3::timestamptz IS NULL OR paid_date >= $3)
			AND ($4::timestamptz IS NULL OR paid_date <= $4)
		ORDER BY paid_date, created_at;`
	return r.listPayments(ctx, query, tenantID, projectID, from, to)
}

func (r *pgxBillingRepository) listPayments(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Payment])
	if err != nil {
		return nil, fmt.Errorf("failed to scan payments: %w", err)
	}
	out := make([]domain.Payment, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainPayment(m)
	}
	return out, nil
}

// SumPaymentsByInvoices returns collected base amounts; invoices without payments map to zero.
func (r *pgxBillingRepository) SumPaymentsByInvoices(ctx context.Context, tenantID string, invoiceIDs []string) (map[string]decimal.Decimal, error) {
	sums := make(map[string]decimal.Decimal, len(invoiceIDs))
	for _, id := range invoiceIDs {
		sums[id] = decimal.Zero
	}
	if len(invoiceIDs) == 0 {
		return sums, nil
	}

	query := `
		SELECT invoice_id, SUM(amount)
		FROM payments
		WHERE tenant_id = $1 AND invoice_id = ANY($2)
		GROUP BY invoice_id;
	`
	rows, err := r.db.Query(ctx, query, tenantID, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id  string
			sum decimal.Decimal
		)
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan payment sum: %w", err)
		}
		sums[id] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment sums: %w", err)
	}
	return sums, nil
}
