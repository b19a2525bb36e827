package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	"github.com/fincore/fx_revaluation_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestSequentialRuns_HistoryChainsBetweenRuns drives a posting through the
// posting service, then feeds the exact history record it wrote into the
// resolver for the next period. The second run must open on the first run's
// revalued values and, with neither the balance nor the rate moving, produce
// a zero delta instead of revaluing the same movement twice.
func TestSequentialRuns_HistoryChainsBetweenRuns(t *testing.T) {
	ctx := context.Background()

	mockJournalSvc := new(MockJournalEntryService)
	mockTemplateSvc := new(MockTemplateService)
	mockCurrencyRepo := new(MockCurrencyRepository)
	mockHistoryRepo := new(MockBalanceHistoryRepository)
	mockRunRepo := new(MockRunRepository)
	posting := services.NewPostingService(mockJournalSvc, mockTemplateSvc, mockCurrencyRepo, mockHistoryRepo, mockRunRepo)

	run1 := domain.RevaluationRun{
		RunID:            uuid.NewString(),
		CompanyID:        "comp-1",
		RunDate:          time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		RunType:          domain.RunTypePeriodEnd,
		BaseCurrencyCode: "USD",
		Status:           domain.RunRunning,
		InitiatedBy:      "user-1",
	}
	cfg := domain.RevaluationConfig{
		ConfigID:     "cfg-1",
		CompanyID:    "comp-1",
		LedgerID:     "ledger-1",
		AccountID:    "acct-eur-recv",
		CurrencyCode: "EUR",
		IsActive:     true,
	}
	tmpl := &domain.JournalTemplate{
		TemplateID:      "tmpl-1",
		CompanyID:       "comp-1",
		LedgerID:        "ledger-1",
		GainAccountID:   "acct-fx-gain",
		LossAccountID:   "acct-fx-loss",
		ReferencePrefix: "FXREVAL",
		DocumentType:    "SA",
	}

	// First run: EUR balance 12000 translated at 1.05 against a 10000-booked
	// baseline posts a 2600 gain.
	snap1 := snapshotFixture()
	res1 := services.Calculate(snap1, decimal.Zero)
	require.True(t, res1.RevaluationRequired)
	require.True(t, res1.UnrealizedGainLoss.Equal(decimal.RequireFromString("2600")))

	var written domain.AccountBalanceHistory
	mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").
		Return(&domain.Currency{CurrencyCode: "USD", Precision: 2}, nil).Once()
	mockTemplateSvc.On("ResolveOffsetAccount", tmpl, res1, "acct-eur-recv", "EUR").Return("acct-fx-gain").Once()
	mockTemplateSvc.On("RenderDescription", tmpl, mock.Anything, mock.Anything, mock.Anything).Return("desc").Once()
	mockJournalSvc.On("SubmitJournal", ctx, mock.Anything, mock.Anything).Return("posting-1", nil).Once()
	mockRunRepo.On("Begin", ctx).Return(nil, nil).Once()
	mockHistoryRepo.On("AppendHistoryTx", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			written = args.Get(2).(domain.AccountBalanceHistory)
		}).Return(nil).Once()
	mockRunRepo.On("AttachPostingToDetail", ctx, mock.Anything, "detail-1", "posting-1").Return(nil).Once()
	mockRunRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	postingID, err := posting.GeneratePosting(ctx, &run1, res1, cfg, tmpl, "detail-1")
	require.NoError(t, err)
	require.Equal(t, "posting-1", postingID)
	require.True(t, written.BalanceFC.Equal(decimal.RequireFromString("12000")))
	require.True(t, written.BalanceFunc.Equal(decimal.RequireFromString("12600")))
	require.True(t, written.ExchangeRate.Equal(decimal.RequireFromString("1.05")))
	require.True(t, written.CumulativeUnrealizedGainLoss.Equal(decimal.RequireFromString("2600")))

	// Second run a period later: the resolver opens on the record the first
	// run wrote. The posted base-currency adjustment must not have leaked into
	// the account's foreign currency balance, so it is still 12000 EUR.
	mockAccountRepo := new(MockAccountRepository)
	mockRateRepo := new(MockExchangeRateRepository)
	resolverHistoryRepo := new(MockBalanceHistoryRepository)
	resolver := services.NewBalanceResolverService(mockAccountRepo, resolverHistoryRepo, mockRateRepo)

	asOf2 := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	mockAccountRepo.On("FindAccountByID", ctx, "acct-eur-recv").Return(&domain.Account{
		AccountID:    "acct-eur-recv",
		CompanyID:    "comp-1",
		LedgerID:     "ledger-1",
		AccountType:  domain.Asset,
		CurrencyCode: "EUR",
		IsActive:     true,
	}, nil).Once()
	mockAccountRepo.On("GetBalanceAsOf", ctx, "comp-1", "ledger-1", "acct-eur-recv", asOf2).
		Return(written.BalanceFC, nil).Once()
	mockRateRepo.On("FindRateAsOf", ctx, "EUR", "USD", asOf2).
		Return(&domain.ExchangeRate{Rate: decimal.RequireFromString("1.05")}, nil).Once()
	resolverHistoryRepo.On("FindLatestAsOf", ctx, "comp-1", "ledger-1", "acct-eur-recv", asOf2).
		Return(&written, nil).Once()

	snap2, err := resolver.Resolve(ctx, cfg, asOf2, "USD")
	require.NoError(t, err)

	// The second run's opening is the first run's revalued close.
	require.True(t, snap2.OpeningBalanceFC.Equal(written.BalanceFC))
	require.True(t, snap2.OpeningBalanceFunc.Equal(decimal.RequireFromString("12600")))
	require.True(t, snap2.HistoricalRate.Equal(decimal.RequireFromString("1.05")))
	require.True(t, snap2.CumulativeUnrealizedGainLoss.Equal(decimal.RequireFromString("2600")))

	// Nothing moved, so the gain already recognized is not recognized again.
	res2 := services.Calculate(*snap2, decimal.Zero)
	require.True(t, res2.UnrealizedGainLoss.IsZero())
	require.False(t, res2.RevaluationRequired)

	mockHistoryRepo.AssertExpectations(t)
	resolverHistoryRepo.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
}
