package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/utils/accounting"
)

type payrollPostingService struct {
	BaseService
	uow     portsrepo.UnitOfWork
	journal portssvc.JournalPoster
	roles   portssvc.RoleResolverSvc
}

// NewPayrollPostingService creates the payroll accrual poster.
func NewPayrollPostingService(uow portsrepo.UnitOfWork, journal portssvc.JournalPoster, roles portssvc.RoleResolverSvc) portssvc.PayrollPostingSvc {
	return &payrollPostingService{uow: uow, journal: journal, roles: roles}
}

var _ portssvc.PayrollPostingSvc = (*payrollPostingService)(nil)

func (s *payrollPostingService) PostPayrollAccrual(ctx context.Context, tenantID string, req dto.PostPayrollRequest, userID string) (*domain.PostingOutcome, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if !req.TotalNetPay.IsPositive() {
		return nil, apperrors.NewValidationError("total net pay must be positive")
	}

	roles, err := s.roles.ResolveRoles(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if missing := roles.Missing(domain.RolePayrollExpense, domain.RoleStaffPayable); len(missing) > 0 {
		outcome := skippedOutcome(missing)
		s.LogWarn(ctx, "Payroll accrual not posted, account roles missing",
			slog.String("run_id", req.RunID),
			slog.Any("missing_roles", missing))
		return &outcome, nil
	}
	expense, _ := roles.Lookup(domain.RolePayrollExpense)
	payable, _ := roles.Lookup(domain.RoleStaffPayable)

	amount := accounting.Round2(req.TotalNetPay)
	posting := domain.PostingRequest{
		Date:        req.Date,
		Reference:   "PR-" + req.RunID,
		Description: fmt.Sprintf("Payroll %d-%02d", req.Year, req.Month),
		CreatedBy:   userID,
		Lines: []domain.PostingLine{
			{AccountID: expense.AccountID, Debit: amount, Memo: "Payroll expense"},
			{AccountID: payable.AccountID, Credit: amount, Memo: "Staff payable"},
		},
	}

	var entry *domain.JournalEntry
	err = s.uow.WithTx(ctx, func(ctx context.Context, tx portsrepo.Store) error {
		var err error
		entry, err = s.journal.PostWithin(ctx, tx, tenantID, posting)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &domain.PostingOutcome{JournalPosted: true, Entry: entry}, nil
}

// skippedOutcome reports a side-effect posting that could not be built.
func skippedOutcome(missing []domain.AccountRole) domain.PostingOutcome {
	return domain.PostingOutcome{
		JournalPosted: false,
		SkipReason:    string(apperrors.KindMissingConfiguration),
		MissingRoles:  missing,
	}
}
