package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fincore/fx_revaluation_app/internal/apperrors"
	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	portssvc "github.com/fincore/fx_revaluation_app/internal/core/ports/services"
	"github.com/fincore/fx_revaluation_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalEntryService ---
type MockJournalEntryService struct {
	mock.Mock
}

func (m *MockJournalEntryService) SubmitJournal(ctx context.Context, journal domain.Journal, lines []domain.Transaction) (string, error) {
	args := m.Called(ctx, journal, lines)
	return args.String(0), args.Error(1)
}

// --- Mock JournalTemplateService ---
type MockTemplateService struct {
	mock.Mock
}

func (m *MockTemplateService) ResolveTemplate(ctx context.Context, companyID, ledgerID string) (*domain.JournalTemplate, error) {
	args := m.Called(ctx, companyID, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalTemplate), args.Error(1)
}

func (m *MockTemplateService) SelectGainLossAccount(tmpl *domain.JournalTemplate, res domain.RevaluationResult) string {
	args := m.Called(tmpl, res)
	return args.String(0)
}

func (m *MockTemplateService) ResolveOffsetAccount(tmpl *domain.JournalTemplate, res domain.RevaluationResult, accountID, currencyCode string) string {
	args := m.Called(tmpl, res, accountID, currencyCode)
	return args.String(0)
}

func (m *MockTemplateService) RenderDescription(tmpl *domain.JournalTemplate, accountID, currencyCode string, date time.Time) string {
	args := m.Called(tmpl, accountID, currencyCode, date)
	return args.String(0)
}

// --- Mock RevaluationRunRepository ---
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) FindRunByID(ctx context.Context, runID string) (*domain.RevaluationRun, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RevaluationRun), args.Error(1)
}

func (m *MockRunRepository) FindActiveRun(ctx context.Context, companyID string, runDate time.Time, runType domain.RevaluationRunType) (*domain.RevaluationRun, error) {
	args := m.Called(ctx, companyID, runDate, runType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RevaluationRun), args.Error(1)
}

func (m *MockRunRepository) ListRunDetails(ctx context.Context, runID string, limit int, nextToken *string) ([]domain.RevaluationDetail, *string, error) {
	args := m.Called(ctx, runID, limit, nextToken)
	var details []domain.RevaluationDetail
	if args.Get(0) != nil {
		details = args.Get(0).([]domain.RevaluationDetail)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return details, token, args.Error(2)
}

func (m *MockRunRepository) CreateRun(ctx context.Context, run domain.RevaluationRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) UpdateRunStatus(ctx context.Context, runID string, status domain.RevaluationRunStatus, errorSummary string) error {
	args := m.Called(ctx, runID, status, errorSummary)
	return args.Error(0)
}

func (m *MockRunRepository) FinalizeRun(ctx context.Context, run domain.RevaluationRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) SaveDetail(ctx context.Context, detail domain.RevaluationDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *MockRunRepository) AttachPostingToDetail(ctx context.Context, tx pgx.Tx, detailID, postingID string) error {
	args := m.Called(ctx, tx, detailID, postingID)
	return args.Error(0)
}

func (m *MockRunRepository) SetDetailError(ctx context.Context, detailID, message string) error {
	args := m.Called(ctx, detailID, message)
	return args.Error(0)
}

func (m *MockRunRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockRunRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockRunRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Test Suite ---
type PostingServiceTestSuite struct {
	suite.Suite
	mockJournalSvc   *MockJournalEntryService
	mockTemplateSvc  *MockTemplateService
	mockCurrencyRepo *MockCurrencyRepository
	mockHistoryRepo  *MockBalanceHistoryRepository
	mockRunRepo      *MockRunRepository
	service          portssvc.PostingSvcFacade

	run      domain.RevaluationRun
	cfg      domain.RevaluationConfig
	tmpl     *domain.JournalTemplate
	detailID string
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockJournalSvc = new(MockJournalEntryService)
	suite.mockTemplateSvc = new(MockTemplateService)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockHistoryRepo = new(MockBalanceHistoryRepository)
	suite.mockRunRepo = new(MockRunRepository)
	suite.service = services.NewPostingService(
		suite.mockJournalSvc,
		suite.mockTemplateSvc,
		suite.mockCurrencyRepo,
		suite.mockHistoryRepo,
		suite.mockRunRepo,
	)

	suite.run = domain.RevaluationRun{
		RunID:            uuid.NewString(),
		CompanyID:        "comp-1",
		RunDate:          time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		RunType:          domain.RunTypePeriodEnd,
		BaseCurrencyCode: "USD",
		Status:           domain.RunRunning,
		InitiatedBy:      "user-1",
	}
	suite.cfg = domain.RevaluationConfig{
		ConfigID:     "cfg-1",
		CompanyID:    "comp-1",
		LedgerID:     "ledger-1",
		AccountID:    "acct-eur-recv",
		CurrencyCode: "EUR",
		IsActive:     true,
	}
	suite.tmpl = &domain.JournalTemplate{
		TemplateID:      "tmpl-1",
		CompanyID:       "comp-1",
		LedgerID:        "ledger-1",
		GainAccountID:   "acct-fx-gain",
		LossAccountID:   "acct-fx-loss",
		ReferencePrefix: "FXREVAL",
		DocumentType:    "SA",
	}
	suite.detailID = uuid.NewString()
}

func (suite *PostingServiceTestSuite) gainResult() domain.RevaluationResult {
	snap := snapshotFixture()
	return services.Calculate(snap, decimal.Zero)
}

func (suite *PostingServiceTestSuite) usd() *domain.Currency {
	return &domain.Currency{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2}
}

// --- Test Cases ---

func (suite *PostingServiceTestSuite) TestGeneratePosting_AssetGain() {
	ctx := context.Background()
	res := suite.gainResult()
	postingID := uuid.NewString()

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(suite.usd(), nil).Once()
	suite.mockTemplateSvc.On("ResolveOffsetAccount", suite.tmpl, res, "acct-eur-recv", "EUR").Return("acct-fx-gain").Once()
	suite.mockTemplateSvc.On("RenderDescription", suite.tmpl, "acct-eur-recv", "EUR", suite.run.RunDate).
		Return("Revaluation of acct-eur-recv (EUR) as of 2026-08-31").Once()
	suite.mockJournalSvc.On("SubmitJournal", ctx,
		mock.MatchedBy(func(j domain.Journal) bool {
			return j.CompanyID == "comp-1" && j.LedgerID == "ledger-1" &&
				j.CurrencyCode == "USD" && j.DocumentType == "SA" &&
				j.Status == domain.Draft &&
				j.Reference == "FXREVAL-2026-08-31-"+suite.run.RunID[:8]
		}),
		mock.MatchedBy(func(lines []domain.Transaction) bool {
			if len(lines) != 2 {
				return false
			}
			// Asset gain: debit the revalued account, credit the gain account.
			return lines[0].AccountID == "acct-eur-recv" &&
				lines[0].TransactionType == domain.Debit &&
				lines[0].Amount.Equal(decimal.RequireFromString("2600")) &&
				lines[1].AccountID == "acct-fx-gain" &&
				lines[1].TransactionType == domain.Credit &&
				lines[1].Amount.Equal(lines[0].Amount)
		}),
	).Return(postingID, nil).Once()
	suite.mockRunRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockHistoryRepo.On("AppendHistoryTx", ctx, mock.Anything, mock.MatchedBy(func(h domain.AccountBalanceHistory) bool {
		return h.AccountID == "acct-eur-recv" &&
			h.BalanceDate.Equal(suite.run.RunDate) &&
			h.BalanceFC.Equal(decimal.RequireFromString("12000")) &&
			h.BalanceFunc.Equal(decimal.RequireFromString("12600")) &&
			h.ExchangeRate.Equal(decimal.RequireFromString("1.05")) &&
			h.CumulativeUnrealizedGainLoss.Equal(decimal.RequireFromString("2600")) &&
			h.LastRevaluationDate != nil && h.LastRevaluationDate.Equal(suite.run.RunDate)
	})).Return(nil).Once()
	suite.mockRunRepo.On("AttachPostingToDetail", ctx, mock.Anything, suite.detailID, postingID).Return(nil).Once()
	suite.mockRunRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	got, err := suite.service.GeneratePosting(ctx, &suite.run, res, suite.cfg, suite.tmpl, suite.detailID)

	suite.Require().NoError(err)
	suite.Equal(postingID, got)
	suite.mockJournalSvc.AssertExpectations(suite.T())
	suite.mockHistoryRepo.AssertExpectations(suite.T())
	suite.mockRunRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestGeneratePosting_AssetLossSidesFlip() {
	ctx := context.Background()
	snap := snapshotFixture()
	snap.CurrentRate = decimal.RequireFromString("0.80") // -400 delta
	res := services.Calculate(snap, decimal.Zero)

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(suite.usd(), nil).Once()
	suite.mockTemplateSvc.On("ResolveOffsetAccount", suite.tmpl, res, "acct-eur-recv", "EUR").Return("acct-fx-loss").Once()
	suite.mockTemplateSvc.On("RenderDescription", suite.tmpl, mock.Anything, mock.Anything, mock.Anything).
		Return("desc").Once()
	suite.mockJournalSvc.On("SubmitJournal", ctx, mock.Anything,
		mock.MatchedBy(func(lines []domain.Transaction) bool {
			// Asset loss: credit the revalued account, debit the loss account.
			return len(lines) == 2 &&
				lines[0].TransactionType == domain.Credit &&
				lines[1].AccountID == "acct-fx-loss" &&
				lines[1].TransactionType == domain.Debit &&
				lines[0].Amount.Equal(decimal.RequireFromString("400"))
		}),
	).Return("posting-loss", nil).Once()
	suite.mockRunRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockHistoryRepo.On("AppendHistoryTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockRunRepo.On("AttachPostingToDetail", ctx, mock.Anything, suite.detailID, "posting-loss").Return(nil).Once()
	suite.mockRunRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	got, err := suite.service.GeneratePosting(ctx, &suite.run, res, suite.cfg, suite.tmpl, suite.detailID)

	suite.Require().NoError(err)
	suite.Equal("posting-loss", got)
}

func (suite *PostingServiceTestSuite) TestGeneratePosting_LiabilityGainCreditsAccount() {
	ctx := context.Background()
	snap := snapshotFixture()
	snap.AccountID = "acct-eur-loan"
	snap.AccountType = domain.Liability
	res := services.Calculate(snap, decimal.Zero) // +2600
	suite.cfg.AccountID = "acct-eur-loan"

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(suite.usd(), nil).Once()
	suite.mockTemplateSvc.On("ResolveOffsetAccount", suite.tmpl, res, "acct-eur-loan", "EUR").Return("acct-fx-gain").Once()
	suite.mockTemplateSvc.On("RenderDescription", suite.tmpl, mock.Anything, mock.Anything, mock.Anything).
		Return("desc").Once()
	suite.mockJournalSvc.On("SubmitJournal", ctx, mock.Anything,
		mock.MatchedBy(func(lines []domain.Transaction) bool {
			// Credit-normal account: a gain credits the revalued account.
			return len(lines) == 2 &&
				lines[0].AccountID == "acct-eur-loan" &&
				lines[0].TransactionType == domain.Credit &&
				lines[1].TransactionType == domain.Debit
		}),
	).Return("posting-liab", nil).Once()
	suite.mockRunRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockHistoryRepo.On("AppendHistoryTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockRunRepo.On("AttachPostingToDetail", ctx, mock.Anything, suite.detailID, "posting-liab").Return(nil).Once()
	suite.mockRunRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	got, err := suite.service.GeneratePosting(ctx, &suite.run, res, suite.cfg, suite.tmpl, suite.detailID)

	suite.Require().NoError(err)
	suite.Equal("posting-liab", got)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestGeneratePosting_ConfigAccountOverridesTemplate() {
	ctx := context.Background()
	res := suite.gainResult()
	suite.cfg.GainLossAccountID = "acct-fx-override"

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(suite.usd(), nil).Once()
	suite.mockTemplateSvc.On("RenderDescription", suite.tmpl, mock.Anything, mock.Anything, mock.Anything).
		Return("desc").Once()
	suite.mockJournalSvc.On("SubmitJournal", ctx, mock.Anything,
		mock.MatchedBy(func(lines []domain.Transaction) bool {
			return len(lines) == 2 && lines[1].AccountID == "acct-fx-override"
		}),
	).Return("posting-1", nil).Once()
	suite.mockRunRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockHistoryRepo.On("AppendHistoryTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockRunRepo.On("AttachPostingToDetail", ctx, mock.Anything, suite.detailID, "posting-1").Return(nil).Once()
	suite.mockRunRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.GeneratePosting(ctx, &suite.run, res, suite.cfg, suite.tmpl, suite.detailID)

	suite.Require().NoError(err)
	suite.mockTemplateSvc.AssertNotCalled(suite.T(), "ResolveOffsetAccount")
}

func (suite *PostingServiceTestSuite) TestGeneratePosting_ZeroAfterRoundingRecordsHistoryOnly() {
	ctx := context.Background()
	snap := snapshotFixture()
	// 12000 * 1.0000001 = 12000.0012; the 0.0012 delta vanishes at 2dp
	snap.OpeningBalanceFunc = decimal.RequireFromString("12000")
	snap.HistoricalRate = decimal.RequireFromString("1")
	snap.CurrentRate = decimal.RequireFromString("1.0000001")
	res := services.Calculate(snap, decimal.Zero)
	suite.Require().True(res.RevaluationRequired, "delta is nonzero before rounding")

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(suite.usd(), nil).Once()
	suite.mockHistoryRepo.On("AppendHistory", ctx, mock.MatchedBy(func(h domain.AccountBalanceHistory) bool {
		// Baseline advances without a posting: booked values carry forward.
		return h.BalanceFunc.Equal(snap.OpeningBalanceFunc) &&
			h.ExchangeRate.Equal(snap.HistoricalRate) &&
			h.LastRevaluationDate == nil
	})).Return(nil).Once()

	got, err := suite.service.GeneratePosting(ctx, &suite.run, res, suite.cfg, suite.tmpl, suite.detailID)

	suite.Require().NoError(err)
	suite.Empty(got)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "SubmitJournal")
	suite.mockRunRepo.AssertNotCalled(suite.T(), "AttachPostingToDetail")
	suite.mockHistoryRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestGeneratePosting_SubmissionFailureWritesNothing() {
	ctx := context.Background()
	res := suite.gainResult()

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(suite.usd(), nil).Once()
	suite.mockTemplateSvc.On("ResolveOffsetAccount", suite.tmpl, res, "acct-eur-recv", "EUR").Return("acct-fx-gain").Once()
	suite.mockTemplateSvc.On("RenderDescription", suite.tmpl, mock.Anything, mock.Anything, mock.Anything).
		Return("desc").Once()
	suite.mockJournalSvc.On("SubmitJournal", ctx, mock.Anything, mock.Anything).
		Return("", apperrors.ErrPostingRejected).Once()

	got, err := suite.service.GeneratePosting(ctx, &suite.run, res, suite.cfg, suite.tmpl, suite.detailID)

	suite.Require().Error(err)
	suite.Empty(got)
	suite.ErrorIs(err, apperrors.ErrPostingRejected)
	suite.mockRunRepo.AssertNotCalled(suite.T(), "Begin")
	suite.mockHistoryRepo.AssertNotCalled(suite.T(), "AppendHistory")
	suite.mockHistoryRepo.AssertNotCalled(suite.T(), "AppendHistoryTx")
}

func (suite *PostingServiceTestSuite) TestGeneratePosting_HistoryFailureRollsBack() {
	ctx := context.Background()
	res := suite.gainResult()
	expectedErr := assert.AnError

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(suite.usd(), nil).Once()
	suite.mockTemplateSvc.On("ResolveOffsetAccount", suite.tmpl, res, "acct-eur-recv", "EUR").Return("acct-fx-gain").Once()
	suite.mockTemplateSvc.On("RenderDescription", suite.tmpl, mock.Anything, mock.Anything, mock.Anything).
		Return("desc").Once()
	suite.mockJournalSvc.On("SubmitJournal", ctx, mock.Anything, mock.Anything).Return("posting-1", nil).Once()
	suite.mockRunRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockHistoryRepo.On("AppendHistoryTx", ctx, mock.Anything, mock.Anything).Return(expectedErr).Once()
	suite.mockRunRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	got, err := suite.service.GeneratePosting(ctx, &suite.run, res, suite.cfg, suite.tmpl, suite.detailID)

	suite.Require().Error(err)
	suite.Empty(got)
	suite.ErrorIs(err, expectedErr)
	suite.mockRunRepo.AssertNotCalled(suite.T(), "Commit")
	suite.mockRunRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestGeneratePosting_PendingApprovalStatus() {
	ctx := context.Background()
	res := suite.gainResult()
	suite.tmpl.RequiresApproval = true
	suite.tmpl.AutoPost = true // approval wins

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(suite.usd(), nil).Once()
	suite.mockTemplateSvc.On("ResolveOffsetAccount", suite.tmpl, res, "acct-eur-recv", "EUR").Return("acct-fx-gain").Once()
	suite.mockTemplateSvc.On("RenderDescription", suite.tmpl, mock.Anything, mock.Anything, mock.Anything).
		Return("desc").Once()
	suite.mockJournalSvc.On("SubmitJournal", ctx,
		mock.MatchedBy(func(j domain.Journal) bool {
			return j.Status == domain.PendingApproval && j.RequiresApproval
		}),
		mock.Anything,
	).Return("posting-1", nil).Once()
	suite.mockRunRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockHistoryRepo.On("AppendHistoryTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockRunRepo.On("AttachPostingToDetail", ctx, mock.Anything, suite.detailID, "posting-1").Return(nil).Once()
	suite.mockRunRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.GeneratePosting(ctx, &suite.run, res, suite.cfg, suite.tmpl, suite.detailID)

	suite.Require().NoError(err)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestRecordHistory_CarriesForwardBookedValues() {
	ctx := context.Background()
	snap := snapshotFixture()
	res := services.Calculate(snap, decimal.RequireFromString("5000")) // below threshold

	suite.mockHistoryRepo.On("AppendHistory", ctx, mock.MatchedBy(func(h domain.AccountBalanceHistory) bool {
		return h.BalanceFC.Equal(snap.CurrentBalanceFC) &&
			h.BalanceFunc.Equal(snap.OpeningBalanceFunc) &&
			h.ExchangeRate.Equal(snap.HistoricalRate) &&
			h.CumulativeUnrealizedGainLoss.Equal(snap.CumulativeUnrealizedGainLoss) &&
			h.LastRevaluationDate == nil &&
			h.CreatedBy == "user-1"
	})).Return(nil).Once()

	err := suite.service.RecordHistory(ctx, &suite.run, res)

	suite.Require().NoError(err)
	suite.mockHistoryRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestRecordHistory_DuplicateDateSurfaces() {
	ctx := context.Background()
	res := suite.gainResult()

	suite.mockHistoryRepo.On("AppendHistory", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	err := suite.service.RecordHistory(ctx, &suite.run, res)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
