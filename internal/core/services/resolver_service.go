package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fincore/fx_revaluation_app/internal/apperrors"
	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	portsrepo "github.com/fincore/fx_revaluation_app/internal/core/ports/repositories"
	portssvc "github.com/fincore/fx_revaluation_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// balanceResolverService gathers the inputs for one account's revaluation:
// the opening reference from the balance history, the live foreign-currency
// balance, and the current market rate. It performs no writes, so resolving
// the same inputs twice without an intervening history append yields
// identical snapshots.
type balanceResolverService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	historyRepo portsrepo.BalanceHistoryReader
	rateRepo    portsrepo.ExchangeRateReader
}

// NewBalanceResolverService creates a new BalanceResolverService.
func NewBalanceResolverService(
	accountRepo portsrepo.AccountRepositoryFacade,
	historyRepo portsrepo.BalanceHistoryReader,
	rateRepo portsrepo.ExchangeRateReader,
) portssvc.BalanceResolverSvc {
	return &balanceResolverService{
		accountRepo: accountRepo,
		historyRepo: historyRepo,
		rateRepo:    rateRepo,
	}
}

var _ portssvc.BalanceResolverSvc = (*balanceResolverService)(nil)

func (s *balanceResolverService) Resolve(ctx context.Context, cfg domain.RevaluationConfig, asOf time.Time, baseCurrencyCode string) (*domain.BalanceSnapshot, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, cfg.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account %s: %w", cfg.AccountID, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, cfg.AccountID)
	}

	currentBalanceFC, err := s.accountRepo.GetBalanceAsOf(ctx, cfg.CompanyID, cfg.LedgerID, cfg.AccountID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve balance for account %s: %w", cfg.AccountID, err)
	}

	currentRate, err := s.resolveCurrentRate(ctx, cfg.CurrencyCode, baseCurrencyCode, asOf)
	if err != nil {
		return nil, err
	}

	snap := &domain.BalanceSnapshot{
		CompanyID:        cfg.CompanyID,
		LedgerID:         cfg.LedgerID,
		AccountID:        cfg.AccountID,
		AccountType:      account.AccountType,
		CurrencyCode:     cfg.CurrencyCode,
		BaseCurrencyCode: baseCurrencyCode,
		AsOfDate:         asOf,
		CurrentBalanceFC: currentBalanceFC,
		CurrentRate:      currentRate,
	}

	opening, err := s.historyRepo.FindLatestAsOf(ctx, cfg.CompanyID, cfg.LedgerID, cfg.AccountID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// First revaluation for this account: the current rate becomes the
			// baseline, so the first run records history without a gain/loss.
			snap.OpeningBalanceFC = currentBalanceFC
			snap.OpeningBalanceFunc = currentBalanceFC.Mul(currentRate)
			snap.HistoricalRate = currentRate
			snap.CumulativeUnrealizedGainLoss = decimal.Zero
			return snap, nil
		}
		return nil, fmt.Errorf("failed to resolve balance history for account %s: %w", cfg.AccountID, err)
	}

	snap.OpeningBalanceFC = opening.BalanceFC
	snap.OpeningBalanceFunc = opening.BalanceFunc
	snap.HistoricalRate = opening.ExchangeRate
	snap.CumulativeUnrealizedGainLoss = opening.CumulativeUnrealizedGainLoss
	return snap, nil
}

func (s *balanceResolverService) resolveCurrentRate(ctx context.Context, currencyCode, baseCurrencyCode string, asOf time.Time) (decimal.Decimal, error) {
	// Accounts already denominated in the base currency translate at par.
	if currencyCode == baseCurrencyCode {
		return decimal.NewFromInt(1), nil
	}

	rate, err := s.rateRepo.FindRateAsOf(ctx, currencyCode, baseCurrencyCode, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: %s/%s as of %s",
				apperrors.ErrRateUnavailable, currencyCode, baseCurrencyCode, asOf.Format("2006-01-02"))
		}
		return decimal.Zero, fmt.Errorf("failed to resolve exchange rate %s/%s: %w", currencyCode, baseCurrencyCode, err)
	}
	return rate.Rate, nil
}
