package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type billingService struct {
	BaseService
	uow      portsrepo.UnitOfWork
	journal  portssvc.JournalPoster
	roles    portssvc.RoleResolverSvc
	rates    portssvc.FxRateReaderSvc
	settings portssvc.TenantSettingsReaderSvc
}

// BillingServiceOption configures the billing service.
type BillingServiceOption func(*billingService)

// WithBillingClock overrides the clock used for audit timestamps.
func WithBillingClock(clock Clock) BillingServiceOption {
	return func(s *billingService) {
		s.Clock = clock
	}
}

// NewBillingService creates the invoice and payment service.
func NewBillingService(
	uow portsrepo.UnitOfWork,
	journal portssvc.JournalPoster,
	roles portssvc.RoleResolverSvc,
	rates portssvc.FxRateReaderSvc,
	settings portssvc.TenantSettingsReaderSvc,
	options ...BillingServiceOption,
) portssvc.BillingSvcFacade {
	svc := &billingService{
		uow:      uow,
		journal:  journal,
		roles:    roles,
		rates:    rates,
		settings: settings,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BillingSvcFacade = (*billingService)(nil)

func (s *billingService) CreateInvoice(ctx context.Context, tenantID, projectID string, req dto.CreateInvoiceRequest, userID string) (*domain.InvoiceResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(projectID) == "" {
		return nil, apperrors.NewValidationError("project is required")
	}
	if req.DueDate != nil && req.DueDate.Before(req.IssueDate) {
		return nil, apperrors.NewValidationError("due date must not be before issue date")
	}

	settings, err := s.settings.GetSettings(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	base := settings.BaseCurrencyCode
	currency := base
	if req.CurrencyCode != "" {
		if currency, err = accounting.NormalizeCurrency(req.CurrencyCode); err != nil {
			return nil, err
		}
	}

	invoiceID := uuid.NewString()
	items := make([]domain.InvoiceItem, len(req.Items))
	foreignTotal := decimal.Zero
	for i, it := range req.Items {
		if it.Quantity.IsNegative() || it.UnitPrice.IsNegative() {
			return nil, apperrors.NewValidationError("item %d: quantity and unit price must be non-negative", i+1)
		}
		lineTotal := it.Quantity.Mul(it.UnitPrice)
		items[i] = domain.InvoiceItem{
			ItemID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   lineTotal,
		}
		foreignTotal = foreignTotal.Add(lineTotal)
	}

	fxRate, err := s.invoiceRate(ctx, tenantID, currency, base, req.FxRate)
	if err != nil {
		return nil, err
	}

	status := domain.InvoiceSent
	if req.Status == domain.InvoiceDraft {
		status = domain.InvoiceDraft
	}

	now := s.now()
	invoice := domain.Invoice{
		InvoiceID:    invoiceID,
		TenantID:     tenantID,
		ProjectID:    projectID,
		InvoiceNo:    strings.TrimSpace(req.InvoiceNo),
		IssueDate:    req.IssueDate,
		DueDate:      req.DueDate,
		Notes:        req.Notes,
		Items:        items,
		TotalAmount:  accounting.Convert(foreignTotal, fxRate),
		CurrencyCode: currency,
		FxRate:       fxRate,
		Status:       status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if currency != base {
		invoice.ForeignAmount = &foreignTotal
	}

	var roles domain.RoleMap
	if status == domain.InvoiceSent {
		if roles, err = s.roles.ResolveRoles(ctx, tenantID); err != nil {
			return nil, err
		}
	}

	var outcome domain.PostingOutcome
	err = s.uow.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		if err := tx.Billing().SaveInvoice(ctx, invoice); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return apperrors.NewDuplicateError("invoice number %s already exists", invoice.InvoiceNo)
			}
			return fmt.Errorf("failed to save invoice: %w", err)
		}
		if status != domain.InvoiceSent {
			return nil
		}
		var err error
		outcome, err = s.postRecognition(ctx, tx, &invoice, roles, base, userID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create invoice", slog.String("invoice_no", invoice.InvoiceNo))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_no", invoice.InvoiceNo),
		slog.String("currency", currency),
		slog.String("total", invoice.TotalAmount.StringFixed(accounting.MoneyPlaces)),
		slog.Bool("journal_posted", outcome.JournalPosted))
	return &domain.InvoiceResult{Invoice: invoice, Posting: outcome}, nil
}

// invoiceRate picks the explicit rate, else the latest known rate for a
// foreign currency, else 1.
func (s *billingService) invoiceRate(ctx context.Context, tenantID, currency, base string, explicit *decimal.Decimal) (decimal.Decimal, error) {
	if explicit != nil {
		if !explicit.IsPositive() {
			return decimal.Zero, apperrors.NewValidationError("fx rate must be positive")
		}
		return *explicit, nil
	}
	if currency == base {
		return decimal.NewFromInt(1), nil
	}
	return s.rates.ResolveRate(ctx, tenantID, currency, base, nil)
}

// postRecognition posts debit AR / credit Revenue for the invoice total and
// links the entry to the invoice. Missing roles skip the posting.
func (s *billingService) postRecognition(ctx context.Context, tx portsrepo.Store, invoice *domain.Invoice, roles domain.RoleMap, base, userID string) (domain.PostingOutcome, error) {
	if missing := roles.Missing(domain.RoleAccountsReceivable, domain.RoleRevenue); len(missing) > 0 {
		s.logSkippedPosting(ctx, "INV-"+invoice.InvoiceNo, missing)
		return skippedOutcome(missing), nil
	}
	ar, _ := roles.Lookup(domain.RoleAccountsReceivable)
	revenue, _ := roles.Lookup(domain.RoleRevenue)

	arLine := domain.PostingLine{AccountID: ar.AccountID, Debit: invoice.TotalAmount}
	if invoice.CurrencyCode != base {
		code, rate := invoice.CurrencyCode, invoice.FxRate
		arLine.ForeignAmount = invoice.ForeignAmount
		arLine.ForeignCode = &code
		arLine.FxRate = &rate
	}

	entry, err := s.journal.PostWithin(ctx, tx, invoice.TenantID, domain.PostingRequest{
		Date:        invoice.IssueDate,
		Reference:   "INV-" + invoice.InvoiceNo,
		Description: "Invoice " + invoice.InvoiceNo,
		CreatedBy:   userID,
		Lines: []domain.PostingLine{
			arLine,
			{AccountID: revenue.AccountID, Credit: invoice.TotalAmount, Memo: "Revenue " + invoice.InvoiceNo},
		},
	})
	if err != nil {
		return domain.PostingOutcome{}, err
	}

	entryID := entry.EntryID
	invoice.JournalEntryID = &entryID
	if err := tx.Billing().UpdateInvoice(ctx, *invoice); err != nil {
		return domain.PostingOutcome{}, fmt.Errorf("failed to link invoice journal entry: %w", err)
	}
	return domain.PostingOutcome{JournalPosted: true, Entry: entry}, nil
}

func (s *billingService) IssueInvoice(ctx context.Context, tenantID, invoiceID, userID string) (*domain.InvoiceResult, error) {
	settings, err := s.settings.GetSettings(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	roles, err := s.roles.ResolveRoles(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var (
		invoice *domain.Invoice
		outcome domain.PostingOutcome
	)
	err = s.uow.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		var err error
		if invoice, err = lockInvoice(ctx, tx, tenantID, invoiceID); err != nil {
			return err
		}
		if invoice.Status != domain.InvoiceDraft {
			return apperrors.NewValidationError("invoice %s is %s, only DRAFT invoices can be issued", invoice.InvoiceNo, invoice.Status)
		}
		invoice.Status = domain.InvoiceSent
		invoice.LastUpdatedAt = s.now()
		invoice.LastUpdatedBy = userID
		if err := tx.Billing().UpdateInvoice(ctx, *invoice); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}
		outcome, err = s.postRecognition(ctx, tx, invoice, roles, settings.BaseCurrencyCode, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Invoice issued", slog.String("invoice_id", invoiceID), slog.Bool("journal_posted", outcome.JournalPosted))
	return &domain.InvoiceResult{Invoice: *invoice, Posting: outcome}, nil
}

func (s *billingService) CancelInvoice(ctx context.Context, tenantID, invoiceID, userID string) (*domain.InvoiceResult, error) {
	var (
		invoice *domain.Invoice
		outcome domain.PostingOutcome
	)
	err := s.uow.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		var err error
		if invoice, err = lockInvoice(ctx, tx, tenantID, invoiceID); err != nil {
			return err
		}
		switch invoice.Status {
		case domain.InvoicePaid:
			return apperrors.NewValidationError("invoice %s is paid and cannot be cancelled", invoice.InvoiceNo)
		case domain.InvoiceCancelled:
			return apperrors.NewValidationError("invoice %s is already cancelled", invoice.InvoiceNo)
		}

		now := s.now()
		if invoice.JournalEntryID != nil {
			entry, err := s.journal.ReverseWithin(ctx, tx, tenantID, *invoice.JournalEntryID, now, userID)
			if err != nil {
				return err
			}
			outcome = domain.PostingOutcome{JournalPosted: true, Entry: entry}
		}

		invoice.Status = domain.InvoiceCancelled
		invoice.LastUpdatedAt = now
		invoice.LastUpdatedBy = userID
		if err := tx.Billing().UpdateInvoice(ctx, *invoice); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Invoice cancelled", slog.String("invoice_id", invoiceID), slog.Bool("journal_posted", outcome.JournalPosted))
	return &domain.InvoiceResult{Invoice: *invoice, Posting: outcome}, nil
}

// lockInvoice loads an invoice row for update within tx.
func lockInvoice(ctx context.Context, tx portsrepo.Store, tenantID, invoiceID string) (*domain.Invoice, error) {
	invoice, err := tx.Billing().FindInvoiceByIDForUpdate(ctx, tenantID, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("invoice %s not found", invoiceID)
		}
		return nil, fmt.Errorf("failed to load invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

func (s *billingService) GetInvoice(ctx context.Context, tenantID, invoiceID string) (*domain.InvoiceSummary, error) {
	invoice, err := s.uow.Billing().FindInvoiceByID(ctx, tenantID, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("invoice %s not found", invoiceID)
		}
		return nil, fmt.Errorf("failed to get invoice %s: %w", invoiceID, err)
	}
	summaries, err := s.summarize(ctx, tenantID, []domain.Invoice{*invoice})
	if err != nil {
		return nil, err
	}
	return &summaries[0], nil
}

func (s *billingService) ListProjectInvoices(ctx context.Context, tenantID, projectID string) ([]domain.InvoiceSummary, error) {
	invoices, err := s.uow.Billing().ListInvoicesByProject(ctx, tenantID, projectID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices", slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return s.summarize(ctx, tenantID, invoices)
}

// summarize attaches collected and outstanding base amounts to invoices.
func (s *billingService) summarize(ctx context.Context, tenantID string, invoices []domain.Invoice) ([]domain.InvoiceSummary, error) {
	summaries := make([]domain.InvoiceSummary, len(invoices))
	if len(invoices) == 0 {
		return summaries, nil
	}
	ids := make([]string, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.InvoiceID
	}
	collected, err := s.uow.Billing().SumPaymentsByInvoices(ctx, tenantID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}
	for i, inv := range invoices {
		paid := collected[inv.InvoiceID]
		summaries[i] = domain.InvoiceSummary{
			Invoice:     inv,
			Collected:   paid,
			Outstanding: inv.TotalAmount.Sub(paid),
		}
	}
	return summaries, nil
}

func (s *billingService) RecordPayment(ctx context.Context, tenantID, invoiceID string, req dto.RecordPaymentRequest, userID string) (*domain.PaymentResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("payment amount must be positive")
	}
	if req.FxRate != nil && !req.FxRate.IsPositive() {
		return nil, apperrors.NewValidationError("fx rate must be positive")
	}

	settings, err := s.settings.GetSettings(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	base := settings.BaseCurrencyCode
	roles, err := s.roles.ResolveRoles(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var result domain.PaymentResult
	err = s.uow.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		invoice, err := lockInvoice(ctx, tx, tenantID, invoiceID)
		if err != nil {
			return err
		}
		if !invoice.Status.AcceptsPayments() {
			return apperrors.NewValidationError("invoice %s is %s and cannot accept payments", invoice.InvoiceNo, invoice.Status)
		}

		currency := invoice.CurrencyCode
		if currency == "" {
			currency = base
		}
		if req.CurrencyCode != "" {
			if currency, err = accounting.NormalizeCurrency(req.CurrencyCode); err != nil {
				return err
			}
		}
		rate, err := s.paymentRate(ctx, tenantID, currency, base, invoice, req.FxRate, req.PaidDate)
		if err != nil {
			return err
		}

		now := s.now()
		payment := domain.Payment{
			PaymentID:    uuid.NewString(),
			TenantID:     tenantID,
			ProjectID:    invoice.ProjectID,
			InvoiceID:    invoice.InvoiceID,
			Amount:       accounting.Convert(req.Amount, rate),
			PaidDate:     req.PaidDate,
			CurrencyCode: currency,
			FxRate:       rate,
			Method:       req.Method,
			Reference:    req.Reference,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if currency != base {
			foreign := req.Amount
			payment.ForeignAmount = &foreign
		}

		prior, err := tx.Billing().ListPaymentsByInvoice(ctx, tenantID, invoice.InvoiceID)
		if err != nil {
			return fmt.Errorf("failed to list payments: %w", err)
		}
		arCredit := accounting.ReceivableCredit(*invoice, prior, payment)

		outcome, err := s.postSettlement(ctx, tx, invoice, payment, req.Amount, arCredit, roles, base, userID)
		if err != nil {
			return err
		}
		if outcome.Entry != nil {
			entryID := outcome.Entry.EntryID
			payment.JournalEntryID = &entryID
		}

		if err := tx.Billing().SavePayment(ctx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}

		// Status is always re-derived from the full payment set, never incremented.
		sums, err := tx.Billing().SumPaymentsByInvoices(ctx, tenantID, []string{invoice.InvoiceID})
		if err != nil {
			return fmt.Errorf("failed to sum payments: %w", err)
		}
		collected := sums[invoice.InvoiceID]
		status := accounting.DeriveInvoiceStatus(invoice.TotalAmount, collected)
		if status != invoice.Status {
			invoice.Status = status
			invoice.LastUpdatedAt = now
			invoice.LastUpdatedBy = userID
			if err := tx.Billing().UpdateInvoice(ctx, *invoice); err != nil {
				return fmt.Errorf("failed to update invoice status: %w", err)
			}
		}

		result = domain.PaymentResult{
			Payment:       payment,
			InvoiceStatus: status,
			Collected:     collected,
			Posting:       outcome,
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record payment", slog.String("invoice_id", invoiceID))
		return nil, err
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", result.Payment.PaymentID),
		slog.String("invoice_id", invoiceID),
		slog.String("amount", result.Payment.Amount.StringFixed(accounting.MoneyPlaces)),
		slog.String("invoice_status", string(result.InvoiceStatus)),
		slog.Bool("journal_posted", result.Posting.JournalPosted))
	return &result, nil
}

// paymentRate picks the explicit rate, else the invoice's original rate for a
// payment in the invoice currency, else the latest known rate, else 1.
func (s *billingService) paymentRate(ctx context.Context, tenantID, currency, base string, invoice *domain.Invoice, explicit *decimal.Decimal, paidDate time.Time) (decimal.Decimal, error) {
	if explicit != nil {
		return *explicit, nil
	}
	if currency == invoice.CurrencyCode && invoice.FxRate.IsPositive() {
		return invoice.FxRate, nil
	}
	if currency == base {
		return decimal.NewFromInt(1), nil
	}
	return s.rates.ResolveRate(ctx, tenantID, currency, base, &paidDate)
}

// postSettlement posts debit Bank / credit AR for a payment, plus a realized
// FX line for the difference between the payment's base value and arCredit,
// the AR carrying value it settles. When a needed account role is missing
// nothing is posted.
func (s *billingService) postSettlement(ctx context.Context, tx portsrepo.Store, invoice *domain.Invoice, payment domain.Payment, paidAmount, arCredit decimal.Decimal, roles domain.RoleMap, base, userID string) (domain.PostingOutcome, error) {
	ref := "PAY-" + payment.PaymentID
	if missing := roles.Missing(domain.RoleBank, domain.RoleAccountsReceivable); len(missing) > 0 {
		s.logSkippedPosting(ctx, ref, missing)
		return skippedOutcome(missing), nil
	}
	bank, _ := roles.Lookup(domain.RoleBank)
	ar, _ := roles.Lookup(domain.RoleAccountsReceivable)

	diff := accounting.Round2(payment.Amount.Sub(arCredit))

	bankLine := domain.PostingLine{AccountID: bank.AccountID, Debit: payment.Amount}
	if payment.CurrencyCode != base {
		code, rate, amount := payment.CurrencyCode, payment.FxRate, paidAmount
		bankLine.ForeignAmount = &amount
		bankLine.ForeignCode = &code
		bankLine.FxRate = &rate
	}
	lines := []domain.PostingLine{
		bankLine,
		{AccountID: ar.AccountID, Credit: arCredit, Memo: "Settlement"},
	}

	switch diff.Sign() {
	case 1:
		gain, ok := roles.Lookup(domain.RoleFxGain)
		if !ok {
			missing := []domain.AccountRole{domain.RoleFxGain}
			s.logSkippedPosting(ctx, ref, missing)
			return skippedOutcome(missing), nil
		}
		lines = append(lines, domain.PostingLine{AccountID: gain.AccountID, Credit: diff, Memo: "Realized FX gain"})
	case -1:
		loss, ok := roles.Lookup(domain.RoleFxLoss)
		if !ok {
			missing := []domain.AccountRole{domain.RoleFxLoss}
			s.logSkippedPosting(ctx, ref, missing)
			return skippedOutcome(missing), nil
		}
		lines = append(lines, domain.PostingLine{AccountID: loss.AccountID, Debit: diff.Abs(), Memo: "Realized FX loss"})
	}

	entry, err := s.journal.PostWithin(ctx, tx, invoice.TenantID, domain.PostingRequest{
		Date:        payment.PaidDate,
		Reference:   ref,
		Description: "Payment for invoice " + invoice.InvoiceNo,
		CreatedBy:   userID,
		Lines:       lines,
	})
	if err != nil {
		return domain.PostingOutcome{}, err
	}
	return domain.PostingOutcome{JournalPosted: true, Entry: entry}, nil
}

func (s *billingService) RevenueSummary(ctx context.Context, tenantID, projectID string, from, to *time.Time) (*domain.RevenueSummary, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, apperrors.NewValidationError("from date must not be after to date")
	}
	payments, err := s.uow.Billing().ListPaymentsByProject(ctx, tenantID, projectID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	summary := &domain.RevenueSummary{
		ProjectID:    projectID,
		From:         from,
		To:           to,
		Collected:    decimal.Zero,
		PaymentCount: len(payments),
	}
	for _, p := range payments {
		summary.Collected = summary.Collected.Add(p.Amount)
	}
	return summary, nil
}

func (s *billingService) logSkippedPosting(ctx context.Context, reference string, missing []domain.AccountRole) {
	s.LogWarn(ctx, "Journal entry not posted, account roles missing",
		slog.String("reference", reference),
		slog.Any("missing_roles", missing))
}
