package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fincore/fx_revaluation_app/internal/apperrors"
	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	portssvc "github.com/fincore/fx_revaluation_app/internal/core/ports/services"
	"github.com/fincore/fx_revaluation_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction) error {
	args := m.Called(ctx, journal, transactions)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindTransactionsByJournalID(ctx context.Context, journalID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// --- Test Suite ---
type JournalEntryServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalEntrySvc
}

func (suite *JournalEntryServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewJournalEntryService(suite.mockJournalRepo, suite.mockAccountRepo)
}

func (suite *JournalEntryServiceTestSuite) journalFixture() domain.Journal {
	return domain.Journal{
		CompanyID:    "comp-1",
		LedgerID:     "ledger-1",
		JournalDate:  time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		Description:  "FX revaluation acct-eur-recv EUR 2026-08-31",
		CurrencyCode: "USD",
		Reference:    "FXREVAL-2026-08-31-abcd1234",
		DocumentType: "SA",
		AuditFields:  domain.AuditFields{CreatedBy: "user-1", LastUpdatedBy: "user-1"},
	}
}

func (suite *JournalEntryServiceTestSuite) linesFixture() []domain.Transaction {
	amount := decimal.RequireFromString("2600.00")
	return []domain.Transaction{
		{AccountID: "acct-eur-recv", Amount: amount, TransactionType: domain.Debit, CurrencyCode: "USD"},
		{AccountID: "acct-fx-gain", Amount: amount, TransactionType: domain.Credit, CurrencyCode: "USD"},
	}
}

func (suite *JournalEntryServiceTestSuite) activeAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		"acct-eur-recv": {AccountID: "acct-eur-recv", AccountType: domain.Asset, IsActive: true},
		"acct-fx-gain":  {AccountID: "acct-fx-gain", AccountType: domain.Revenue, IsActive: true},
	}
}

// --- Test Cases ---

func (suite *JournalEntryServiceTestSuite) TestSubmitJournal_Success() {
	ctx := context.Background()
	journal := suite.journalFixture()
	lines := suite.linesFixture()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{"acct-eur-recv", "acct-fx-gain"}).
		Return(suite.activeAccounts(), nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx,
		mock.MatchedBy(func(j domain.Journal) bool {
			return j.JournalID != "" && j.Status == domain.Draft && j.Version == 1
		}),
		mock.MatchedBy(func(txns []domain.Transaction) bool {
			if len(txns) != 2 {
				return false
			}
			for _, txn := range txns {
				if txn.TransactionID == "" || txn.JournalID == "" || txn.Version != 1 {
					return false
				}
			}
			return txns[0].JournalID == txns[1].JournalID
		}),
	).Return(nil).Once()

	journalID, err := suite.service.SubmitJournal(ctx, journal, lines)

	suite.Require().NoError(err)
	suite.NotEmpty(journalID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestSubmitJournal_PreservesExplicitStatus() {
	ctx := context.Background()
	journal := suite.journalFixture()
	journal.Status = domain.PendingApproval
	lines := suite.linesFixture()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.activeAccounts(), nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx,
		mock.MatchedBy(func(j domain.Journal) bool { return j.Status == domain.PendingApproval }),
		mock.Anything,
	).Return(nil).Once()

	_, err := suite.service.SubmitJournal(ctx, journal, lines)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalEntryServiceTestSuite) TestSubmitJournal_UnbalancedRejected() {
	ctx := context.Background()
	journal := suite.journalFixture()
	lines := suite.linesFixture()
	lines[1].Amount = decimal.RequireFromString("2500.00")

	journalID, err := suite.service.SubmitJournal(ctx, journal, lines)

	suite.Require().Error(err)
	suite.Empty(journalID)
	suite.ErrorIs(err, apperrors.ErrPostingRejected)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal")
}

func (suite *JournalEntryServiceTestSuite) TestSubmitJournal_SingleLineRejected() {
	ctx := context.Background()
	journal := suite.journalFixture()
	lines := suite.linesFixture()[:1]

	_, err := suite.service.SubmitJournal(ctx, journal, lines)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPostingRejected)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs")
}

func (suite *JournalEntryServiceTestSuite) TestSubmitJournal_CurrencyMismatchRejected() {
	ctx := context.Background()
	journal := suite.journalFixture()
	lines := suite.linesFixture()
	lines[0].CurrencyCode = "EUR"

	_, err := suite.service.SubmitJournal(ctx, journal, lines)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPostingRejected)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal")
}

func (suite *JournalEntryServiceTestSuite) TestSubmitJournal_UnknownAccountRejected() {
	ctx := context.Background()
	journal := suite.journalFixture()
	lines := suite.linesFixture()

	accounts := suite.activeAccounts()
	delete(accounts, "acct-fx-gain")
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accounts, nil).Once()

	_, err := suite.service.SubmitJournal(ctx, journal, lines)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPostingRejected)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal")
}

func (suite *JournalEntryServiceTestSuite) TestSubmitJournal_InactiveAccountRejected() {
	ctx := context.Background()
	journal := suite.journalFixture()
	lines := suite.linesFixture()

	accounts := suite.activeAccounts()
	inactive := accounts["acct-eur-recv"]
	inactive.IsActive = false
	accounts["acct-eur-recv"] = inactive
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accounts, nil).Once()

	_, err := suite.service.SubmitJournal(ctx, journal, lines)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPostingRejected)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal")
}

func (suite *JournalEntryServiceTestSuite) TestSubmitJournal_SaveError() {
	ctx := context.Background()
	journal := suite.journalFixture()
	lines := suite.linesFixture()
	expectedErr := assert.AnError

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.activeAccounts(), nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.Anything, mock.Anything).Return(expectedErr).Once()

	journalID, err := suite.service.SubmitJournal(ctx, journal, lines)

	suite.Require().Error(err)
	suite.Empty(journalID)
	suite.ErrorIs(err, expectedErr)
	suite.NotErrorIs(err, apperrors.ErrPostingRejected)
}

func TestJournalEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalEntryServiceTestSuite))
}
