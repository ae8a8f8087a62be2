package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListActiveAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string) error {
	args := m.Called(ctx, tenantID, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) ResolveRoles(ctx context.Context, tenantID string) (domain.RoleMap, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.RoleMap), args.Error(1)
}

func (m *MockAccountService) AssignRole(ctx context.Context, tenantID string, req dto.AssignRoleRequest, userID string) (*domain.AccountRoleMapping, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountRoleMapping), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) PostWithin(ctx context.Context, tx portsrepo.Store, tenantID string, req domain.PostingRequest) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ReverseWithin(ctx context.Context, tx portsrepo.Store, tenantID, entryID string, date time.Time, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, tenantID, entryID, date, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) GetEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) PostEntry(ctx context.Context, tenantID string, req dto.PostJournalRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ReverseEntry(ctx context.Context, tenantID, entryID string, date *time.Time, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, date, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GeneralLedger(ctx context.Context, tenantID string, filter domain.LedgerFilter) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockLedgerService) TrialBalance(ctx context.Context, tenantID string, asOf *time.Time) (*domain.TrialBalance, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockLedgerService) FinancialStatements(ctx context.Context, tenantID string, asOf *time.Time) (*domain.FinancialStatements, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialStatements), args.Error(1)
}

func (m *MockLedgerService) AccountBalance(ctx context.Context, tenantID, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock BillingService ---
type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) CreateInvoice(ctx context.Context, tenantID, projectID string, req dto.CreateInvoiceRequest, userID string) (*domain.InvoiceResult, error) {
	args := m.Called(ctx, tenantID, projectID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceResult), args.Error(1)
}

func (m *MockBillingService) IssueInvoice(ctx context.Context, tenantID, invoiceID, userID string) (*domain.InvoiceResult, error) {
	args := m.Called(ctx, tenantID, invoiceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceResult), args.Error(1)
}

func (m *MockBillingService) CancelInvoice(ctx context.Context, tenantID, invoiceID, userID string) (*domain.InvoiceResult, error) {
	args := m.Called(ctx, tenantID, invoiceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceResult), args.Error(1)
}

func (m *MockBillingService) GetInvoice(ctx context.Context, tenantID, invoiceID string) (*domain.InvoiceSummary, error) {
	args := m.Called(ctx, tenantID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceSummary), args.Error(1)
}

func (m *MockBillingService) ListProjectInvoices(ctx context.Context, tenantID, projectID string) ([]domain.InvoiceSummary, error) {
	args := m.Called(ctx, tenantID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceSummary), args.Error(1)
}

func (m *MockBillingService) RecordPayment(ctx context.Context, tenantID, invoiceID string, req dto.RecordPaymentRequest, userID string) (*domain.PaymentResult, error) {
	args := m.Called(ctx, tenantID, invoiceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentResult), args.Error(1)
}

func (m *MockBillingService) RevenueSummary(ctx context.Context, tenantID, projectID string, from, to *time.Time) (*domain.RevenueSummary, error) {
	args := m.Called(ctx, tenantID, projectID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RevenueSummary), args.Error(1)
}

var _ portssvc.BillingSvcFacade = (*MockBillingService)(nil)

// --- Mock FxCloseService ---
type MockFxCloseService struct {
	mock.Mock
}

func (m *MockFxCloseService) UnrealizedExposure(ctx context.Context, tenantID string, asOf *time.Time) (*domain.ExposureReport, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExposureReport), args.Error(1)
}

func (m *MockFxCloseService) ClosePeriod(ctx context.Context, tenantID string, asOf *time.Time, userID string) (*domain.PeriodCloseResult, error) {
	args := m.Called(ctx, tenantID, asOf, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodCloseResult), args.Error(1)
}

var _ portssvc.FxCloseSvcFacade = (*MockFxCloseService)(nil)
