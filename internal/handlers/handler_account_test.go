package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/handlers"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/SscSPs/backoffice_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testTenantID = "tenant-1"
	testUserID   = "user-1"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	mockJournalService *MockJournalService
	mockLedgerService  *MockLedgerService
	mockBillingService *MockBillingService
	mockFxCloseService *MockFxCloseService
	jwtSecret          string
}

// generateTestToken creates a signed JWT for testing.
func (suite *HandlerTestSuite) generateTestToken(userID, tenantID string) string {
	claims := middleware.Claims{
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ledger-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockAccountService = new(MockAccountService)
	suite.mockJournalService = new(MockJournalService)
	suite.mockLedgerService = new(MockLedgerService)
	suite.mockBillingService = new(MockBillingService)
	suite.mockFxCloseService = new(MockFxCloseService)

	container := &portssvc.ServiceContainer{
		Account: suite.mockAccountService,
		Journal: suite.mockJournalService,
		Ledger:  suite.mockLedgerService,
		Billing: suite.mockBillingService,
		FxClose: suite.mockFxCloseService,
	}
	err := handlers.RegisterRoutes(suite.router, &config.Config{JWTSecret: suite.jwtSecret}, container)
	suite.Require().NoError(err)
}

func (suite *HandlerTestSuite) do(method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, url, nil)
	} else {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID, testTenantID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decodeError(w *httptest.ResponseRecorder) errorBody {
	var body errorBody
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	expectedReq := dto.CreateAccountRequest{Code: "1200", Name: "Accounts Receivable", AccountType: domain.Asset}
	created := &domain.Account{
		AccountID:   "acc-1",
		TenantID:    testTenantID,
		Code:        "1200",
		Name:        "Accounts Receivable",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.mockAccountService.On("CreateAccount", mock.Anything, testTenantID, expectedReq, testUserID).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"code":"1200","name":"Accounts Receivable","accountType":"ASSET"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("acc-1", resp.AccountID)
	suite.Equal("1200", resp.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateAccount_DuplicateCode() {
	suite.mockAccountService.On("CreateAccount", mock.Anything, testTenantID, mock.Anything, testUserID).
		Return(nil, apperrors.NewDuplicateError("account code %s already exists", "1200")).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"code":"1200","name":"AR","accountType":"ASSET"}`)

	suite.Equal(http.StatusConflict, w.Code)
	body := suite.decodeError(w)
	suite.Equal(string(apperrors.KindDuplicateCode), body.Kind)
	suite.Equal("account code 1200 already exists", body.Error)
}

func (suite *HandlerTestSuite) TestCreateAccount_InvalidType() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"code":"1200","name":"AR","accountType":"CASH"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(string(apperrors.KindValidation), suite.decodeError(w).Kind)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *HandlerTestSuite) TestListAccounts_InternalErrorHidesDetail() {
	suite.mockAccountService.On("ListActiveAccounts", mock.Anything, testTenantID).
		Return(nil, errors.New("pq: connection refused")).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts", "")

	suite.Equal(http.StatusInternalServerError, w.Code)
	body := suite.decodeError(w)
	suite.Equal("Failed to list accounts", body.Error)
	suite.Equal(string(apperrors.KindInternal), body.Kind)
}

func (suite *HandlerTestSuite) TestMissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListActiveAccounts")
}

func (suite *HandlerTestSuite) TestTokenWithoutTenant() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID, ""))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestAccountBalance_EndOfDay() {
	suite.mockLedgerService.On("AccountBalance", mock.Anything, testTenantID, "acc-1",
		mock.MatchedBy(func(asOf *time.Time) bool {
			return asOf != nil && asOf.Day() == 31 && asOf.Hour() == 23 && asOf.Minute() == 59
		}),
	).Return(decimal.NewFromInt(500), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-1/balance?to=2026-03-31", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"balance":"500"`)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestPostJournal_Unbalanced() {
	suite.mockJournalService.On("PostEntry", mock.Anything, testTenantID, mock.MatchedBy(func(req dto.PostJournalRequest) bool {
		return len(req.Lines) == 2 && req.Lines[0].Debit.Equal(decimal.NewFromInt(500))
	}), testUserID).Return(nil, apperrors.NewUnbalancedEntryError("debits 500.00 do not equal credits 400.00")).Once()

	body := `{"date":"2026-03-01T00:00:00Z","reference":"M-1","lines":[
		{"accountID":"a","debit":"500"},
		{"accountID":"b","credit":"400"}]}`
	w := suite.do(http.MethodPost, "/api/v1/journal-entries", body)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Equal(string(apperrors.KindUnbalancedEntry), suite.decodeError(w).Kind)
}

func (suite *HandlerTestSuite) TestReverseEntry_WithoutBody() {
	reversalOf := "entry-1"
	reversal := &domain.JournalEntry{EntryID: "entry-2", TenantID: testTenantID, ReversalOf: &reversalOf}
	suite.mockJournalService.On("ReverseEntry", mock.Anything, testTenantID, "entry-1", (*time.Time)(nil), testUserID).
		Return(reversal, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries/entry-1/reverse", "")

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("entry-2", resp.EntryID)
	suite.Require().NotNil(resp.ReversalOf)
	suite.Equal("entry-1", *resp.ReversalOf)
}

func (suite *HandlerTestSuite) TestRecordPayment_InvoiceNotPayable() {
	suite.mockBillingService.On("RecordPayment", mock.Anything, testTenantID, "inv-1", mock.Anything, testUserID).
		Return(nil, apperrors.NewValidationError("invoice status DRAFT does not accept payments")).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/inv-1/payments", `{"amount":"100","paidDate":"2026-03-10T00:00:00Z"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("invoice status DRAFT does not accept payments", suite.decodeError(w).Error)
}

func (suite *HandlerTestSuite) TestCancelInvoice_Success() {
	result := &domain.InvoiceResult{
		Invoice: domain.Invoice{InvoiceID: "inv-1", Status: domain.InvoiceCancelled},
		Posting: domain.PostingOutcome{JournalPosted: true},
	}
	suite.mockBillingService.On("CancelInvoice", mock.Anything, testTenantID, "inv-1", testUserID).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/inv-1/cancel", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.InvoiceResultResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.InvoiceCancelled, resp.Invoice.Status)
	suite.True(resp.Posting.JournalPosted)
}

func (suite *HandlerTestSuite) TestClosePeriod_MissingReceivable() {
	suite.mockFxCloseService.On("ClosePeriod", mock.Anything, testTenantID, (*time.Time)(nil), testUserID).
		Return(nil, apperrors.NewMissingConfigurationError("accounts receivable account not configured")).Once()

	w := suite.do(http.MethodPost, "/api/v1/fx/close", "")

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	body := suite.decodeError(w)
	suite.Equal(string(apperrors.KindMissingConfiguration), body.Kind)
	suite.Equal("accounts receivable account not configured", body.Error)
}

func (suite *HandlerTestSuite) TestGeneralLedger_Paged() {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	lines := []domain.LedgerLine{
		{EntryID: "e1", LineID: "l1", Date: day},
		{EntryID: "e1", LineID: "l2", Date: day},
		{EntryID: "e2", LineID: "l3", Date: day.AddDate(0, 0, 1)},
	}
	suite.mockLedgerService.On("GeneralLedger", mock.Anything, testTenantID, mock.Anything).Return(lines, nil).Twice()

	w := suite.do(http.MethodGet, "/api/v1/ledger?limit=2", "")
	suite.Require().Equal(http.StatusOK, w.Code)
	var first dto.LedgerResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &first))
	suite.Len(first.Lines, 2)
	suite.Require().NotEmpty(first.NextPageToken)

	w = suite.do(http.MethodGet, "/api/v1/ledger?limit=2&pageToken="+first.NextPageToken, "")
	suite.Require().Equal(http.StatusOK, w.Code)
	var second dto.LedgerResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &second))
	suite.Require().Len(second.Lines, 1)
	suite.Equal("l3", second.Lines[0].LineID)
	suite.Empty(second.NextPageToken)
}

func (suite *HandlerTestSuite) TestGeneralLedger_BadPageToken() {
	suite.mockLedgerService.On("GeneralLedger", mock.Anything, testTenantID, mock.Anything).Return([]domain.LedgerLine{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/ledger?pageToken=not-a-token!", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(string(apperrors.KindValidation), suite.decodeError(w).Kind)
}

func (suite *HandlerTestSuite) TestRateLimitApplied() {
	router := gin.New()
	cfg := &config.Config{JWTSecret: suite.jwtSecret, RateLimit: "1-M"}
	suite.Require().NoError(handlers.RegisterRoutes(router, cfg, &portssvc.ServiceContainer{Account: suite.mockAccountService}))
	suite.mockAccountService.On("ListActiveAccounts", mock.Anything, testTenantID).Return([]domain.Account{}, nil)

	token := suite.generateTestToken(testUserID, testTenantID)
	codes := make([]int, 2)
	for i := range codes {
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes[i] = w.Code
	}

	suite.Equal([]int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
