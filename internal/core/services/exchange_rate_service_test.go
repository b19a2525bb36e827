package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fincore/fx_revaluation_app/internal/apperrors"
	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	portssvc "github.com/fincore/fx_revaluation_app/internal/core/ports/services"
	"github.com/fincore/fx_revaluation_app/internal/core/services"
	"github.com/fincore/fx_revaluation_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindRateAsOf(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockExchangeRateRepository
	mockCurrencySvc *MockCurrencyService
	service         portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExchangeRateRepository)
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.service = services.NewExchangeRateService(suite.mockRepo, suite.mockCurrencySvc)
}

// --- Test Cases ---

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateExchangeRateRequest{
		FromCurrencyCode: "EUR",
		ToCurrencyCode:   "USD",
		Rate:             decimal.RequireFromString("1.0825"),
		DateEffective:    time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "EUR").Return(&domain.Currency{CurrencyCode: "EUR"}, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.mockRepo.On("SaveExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.FromCurrencyCode == "EUR" && r.ToCurrencyCode == "USD" &&
			r.Rate.Equal(req.Rate) && r.DateEffective.Equal(req.DateEffective) &&
			r.ExchangeRateID != "" && r.CreatedBy == creatorUserID
	})).Return(nil).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.NotEmpty(rate.ExchangeRateID)
	suite.Equal("EUR", rate.FromCurrencyCode)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_NonPositiveRate() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		FromCurrencyCode: "EUR",
		ToCurrencyCode:   "USD",
		Rate:             decimal.Zero,
		DateEffective:    time.Now(),
	}

	rate, err := suite.service.CreateExchangeRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_SamePair() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "USD",
		Rate:             decimal.RequireFromString("1"),
		DateEffective:    time.Now(),
	}

	rate, err := suite.service.CreateExchangeRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_UnknownFromCurrency() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		FromCurrencyCode: "XXX",
		ToCurrencyCode:   "USD",
		Rate:             decimal.RequireFromString("1.5"),
		DateEffective:    time.Now(),
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveExchangeRate")
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetRateAsOf_Success() {
	ctx := context.Background()
	asOf := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	expected := &domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: "EUR",
		ToCurrencyCode:   "USD",
		Rate:             decimal.RequireFromString("1.05"),
		DateEffective:    asOf.AddDate(0, 0, -3),
	}

	suite.mockRepo.On("FindRateAsOf", ctx, "EUR", "USD", asOf).Return(expected, nil).Once()

	rate, err := suite.service.GetRateAsOf(ctx, "eur", "usd", asOf)

	suite.Require().NoError(err)
	suite.Equal(expected, rate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetRateAsOf_InvalidCode() {
	ctx := context.Background()

	rate, err := suite.service.GetRateAsOf(ctx, "EURO", "USD", time.Now())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindRateAsOf")
}

func (suite *ExchangeRateServiceTestSuite) TestGetRateAsOf_NotFound() {
	ctx := context.Background()
	asOf := time.Now()
	expectedErr := assert.AnError

	suite.mockRepo.On("FindRateAsOf", ctx, "GBP", "USD", asOf).Return(nil, expectedErr).Once()

	rate, err := suite.service.GetRateAsOf(ctx, "GBP", "USD", asOf)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
