package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/core/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

// --- Implement mock methods for AccountRepositoryFacade ---

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListActiveAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string, now time.Time) error {
	args := m.Called(ctx, tenantID, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) ListRoleMappings(ctx context.Context, tenantID string) ([]domain.AccountRoleMapping, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountRoleMapping), args.Error(1)
}

func (m *MockAccountRepository) SaveRoleMapping(ctx context.Context, mapping domain.AccountRoleMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

// --- Test Suite Setup ---

const (
	testTenantID = "tenant-1"
	testUserID   = "user-1"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	now      time.Time
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.now = time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewAccountService(suite.mockRepo, services.WithAccountClock(services.FixedClock(suite.now)))
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        " 1200 ",
		Name:        "Accounts Receivable",
		AccountType: domain.Asset,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "1200" && a.TenantID == testTenantID && a.IsActive
	})).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, testTenantID, req, testUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.AccountID)
	suite.Equal("1200", created.Code)
	suite.Equal(domain.Asset, created.AccountType)
	suite.True(created.IsActive)
	suite.Equal(testUserID, created.CreatedBy)
	suite.Equal(suite.now, created.CreatedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1010", Name: "Bank", AccountType: domain.Asset}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateAccount(ctx, testTenantID, req, testUserID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Equal(apperrors.KindDuplicateCode, apperrors.KindOf(err))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "9000", Name: "Suspense", AccountType: "CONTRA"}

	created, err := suite.service.CreateAccount(ctx, testTenantID, req, testUserID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SaveError() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "4000", Name: "Revenue", AccountType: domain.Revenue}
	repoErr := errors.New("connection reset")

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(repoErr).Once()

	created, err := suite.service.CreateAccount(ctx, testTenantID, req, testUserID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, repoErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestFindAccountByCode_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByCode", ctx, testTenantID, "7300").Return(nil, apperrors.ErrNotFound).Once()

	acc, err := suite.service.FindAccountByCode(ctx, testTenantID, "7300")

	suite.Require().Error(err)
	suite.Nil(acc)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	acc := &domain.Account{AccountID: "acc-1", TenantID: testTenantID, Code: "1010", IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, testTenantID, "acc-1").Return(acc, nil).Once()
	suite.mockRepo.On("DeactivateAccount", ctx, testTenantID, "acc-1", testUserID, suite.now).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, testTenantID, "acc-1", testUserID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_AlreadyInactive() {
	ctx := context.Background()
	acc := &domain.Account{AccountID: "acc-1", TenantID: testTenantID, Code: "1010", IsActive: false}

	suite.mockRepo.On("FindAccountByID", ctx, testTenantID, "acc-1").Return(acc, nil).Once()

	err := suite.service.DeactivateAccount(ctx, testTenantID, "acc-1", testUserID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestAssignRole_InactiveAccount() {
	ctx := context.Background()
	acc := &domain.Account{AccountID: "acc-9", TenantID: testTenantID, Code: "7301", IsActive: false}
	suite.mockRepo.On("FindAccountByID", ctx, testTenantID, "acc-9").Return(acc, nil).Once()

	mapping, err := suite.service.AssignRole(ctx, testTenantID, dto.AssignRoleRequest{Role: domain.RoleFxGain, AccountID: "acc-9"}, testUserID)

	suite.Require().Error(err)
	suite.Nil(mapping)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRoleMapping", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestResolveRoles_ExplicitMappingWins() {
	ctx := context.Background()
	mapped := domain.Account{AccountID: "acc-rev-2", TenantID: testTenantID, Code: "4100", AccountType: domain.Revenue, IsActive: true}
	ar := domain.Account{AccountID: "acc-ar", TenantID: testTenantID, Code: "1200", AccountType: domain.Asset, IsActive: true}
	revenue := domain.Account{AccountID: "acc-rev", TenantID: testTenantID, Code: "4000", AccountType: domain.Revenue, IsActive: true}
	bank := domain.Account{AccountID: "acc-bank", TenantID: testTenantID, Code: "1010", AccountType: domain.Asset, IsActive: false}

	suite.mockRepo.On("ListRoleMappings", ctx, testTenantID).Return([]domain.AccountRoleMapping{
		{TenantID: testTenantID, Role: domain.RoleRevenue, AccountID: "acc-rev-2"},
	}, nil).Once()
	suite.mockRepo.On("FindAccountsByIDs", ctx, testTenantID, []string{"acc-rev-2"}).
		Return(map[string]domain.Account{"acc-rev-2": mapped}, nil).Once()
	suite.mockRepo.On("FindAccountsByCodes", ctx, testTenantID, []string{"1200", "1010", "5000", "2100", "7300", "7500"}).
		Return(map[string]domain.Account{"1200": ar, "4000": revenue, "1010": bank}, nil).Once()

	roles, err := suite.service.ResolveRoles(ctx, testTenantID)

	suite.Require().NoError(err)
	got, ok := roles.Lookup(domain.RoleRevenue)
	suite.Require().True(ok)
	suite.Equal("4100", got.Code)
	got, ok = roles.Lookup(domain.RoleAccountsReceivable)
	suite.Require().True(ok)
	suite.Equal("1200", got.Code)
	// inactive conventional accounts do not resolve
	_, ok = roles.Lookup(domain.RoleBank)
	suite.False(ok)
	suite.ElementsMatch([]domain.AccountRole{domain.RoleBank, domain.RoleFxGain}, roles.Missing(domain.RoleBank, domain.RoleFxGain, domain.RoleRevenue))
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
