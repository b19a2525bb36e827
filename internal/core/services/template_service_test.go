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

// --- Mock JournalTemplateRepository ---
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) FindTemplate(ctx context.Context, companyID, ledgerID string) (*domain.JournalTemplate, error) {
	args := m.Called(ctx, companyID, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalTemplate), args.Error(1)
}

// --- Test Suite ---
type JournalTemplateServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTemplateRepository
	service  portssvc.JournalTemplateSvc
}

func (suite *JournalTemplateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTemplateRepository)
	suite.service = services.NewJournalTemplateService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *JournalTemplateServiceTestSuite) TestResolveTemplate_Success() {
	ctx := context.Background()
	expected := &domain.JournalTemplate{
		TemplateID:    "tmpl-1",
		CompanyID:     "comp-1",
		LedgerID:      "ledger-1",
		GainAccountID: "acct-fx-gain",
		LossAccountID: "acct-fx-loss",
	}

	suite.mockRepo.On("FindTemplate", ctx, "comp-1", "ledger-1").Return(expected, nil).Once()

	tmpl, err := suite.service.ResolveTemplate(ctx, "comp-1", "ledger-1")

	suite.Require().NoError(err)
	suite.Equal(expected, tmpl)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalTemplateServiceTestSuite) TestResolveTemplate_Missing() {
	ctx := context.Background()

	suite.mockRepo.On("FindTemplate", ctx, "comp-1", "ledger-x").Return(nil, apperrors.ErrNotFound).Once()

	tmpl, err := suite.service.ResolveTemplate(ctx, "comp-1", "ledger-x")

	suite.Require().Error(err)
	suite.Nil(tmpl)
	suite.ErrorIs(err, apperrors.ErrTemplateMissing)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *JournalTemplateServiceTestSuite) TestResolveTemplate_RepositoryError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("FindTemplate", ctx, "comp-1", "ledger-1").Return(nil, expectedErr).Once()

	tmpl, err := suite.service.ResolveTemplate(ctx, "comp-1", "ledger-1")

	suite.Require().Error(err)
	suite.Nil(tmpl)
	suite.ErrorIs(err, expectedErr)
	suite.NotErrorIs(err, apperrors.ErrTemplateMissing)
}

func (suite *JournalTemplateServiceTestSuite) TestSelectGainLossAccount() {
	tmpl := &domain.JournalTemplate{
		GainAccountID: "acct-fx-gain",
		LossAccountID: "acct-fx-loss",
	}

	gain := domain.RevaluationResult{UnrealizedGainLoss: decimal.RequireFromString("2600")}
	loss := domain.RevaluationResult{UnrealizedGainLoss: decimal.RequireFromString("-400")}
	zero := domain.RevaluationResult{UnrealizedGainLoss: decimal.Zero}

	suite.Equal("acct-fx-gain", suite.service.SelectGainLossAccount(tmpl, gain))
	suite.Equal("acct-fx-loss", suite.service.SelectGainLossAccount(tmpl, loss))
	suite.Equal("acct-fx-gain", suite.service.SelectGainLossAccount(tmpl, zero))
}

func (suite *JournalTemplateServiceTestSuite) TestResolveOffsetAccount_RendersPattern() {
	tmpl := &domain.JournalTemplate{
		GainAccountID:        "acct-fx-gain",
		LossAccountID:        "acct-fx-loss",
		OffsetAccountPattern: "fx-adj-{currency}-{account}",
	}
	gain := domain.RevaluationResult{UnrealizedGainLoss: decimal.RequireFromString("2600")}

	got := suite.service.ResolveOffsetAccount(tmpl, gain, "acct-eur-recv", "EUR")

	suite.Equal("fx-adj-EUR-acct-eur-recv", got)
}

func (suite *JournalTemplateServiceTestSuite) TestResolveOffsetAccount_EmptyPatternFallsBackToGainLoss() {
	tmpl := &domain.JournalTemplate{
		GainAccountID: "acct-fx-gain",
		LossAccountID: "acct-fx-loss",
	}
	gain := domain.RevaluationResult{UnrealizedGainLoss: decimal.RequireFromString("2600")}
	loss := domain.RevaluationResult{UnrealizedGainLoss: decimal.RequireFromString("-400")}

	suite.Equal("acct-fx-gain", suite.service.ResolveOffsetAccount(tmpl, gain, "acct-eur-recv", "EUR"))
	suite.Equal("acct-fx-loss", suite.service.ResolveOffsetAccount(tmpl, loss, "acct-eur-recv", "EUR"))
}

func (suite *JournalTemplateServiceTestSuite) TestRenderDescription_SubstitutesTokens() {
	tmpl := &domain.JournalTemplate{
		DescriptionPattern: "Revaluation of {account} ({currency}) as of {date}",
	}
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	got := suite.service.RenderDescription(tmpl, "acct-eur-recv", "EUR", date)

	suite.Equal("Revaluation of acct-eur-recv (EUR) as of 2026-08-31", got)
}

func (suite *JournalTemplateServiceTestSuite) TestRenderDescription_EmptyPatternFallback() {
	tmpl := &domain.JournalTemplate{}
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	got := suite.service.RenderDescription(tmpl, "acct-eur-recv", "EUR", date)

	suite.Equal("FX revaluation acct-eur-recv EUR 2026-08-31", got)
}

func TestJournalTemplateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalTemplateServiceTestSuite))
}
