package services

import (
	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Calculate is the pure revaluation computation for a single resolved snapshot.
//
// currentBalanceFuncAtCurrentRate = currentBalanceFC * currentRate
// unrealizedGainLoss = currentBalanceFuncAtCurrentRate - openingBalanceFunc
// (positive = gain, negative = loss)
//
// All arithmetic is exact decimal; no rounding is applied here. The result
// qualifies for posting only when |unrealizedGainLoss| strictly exceeds the
// materiality threshold. The rate delta is retained for audit even though the
// posting itself is computed from the balance delta.
func Calculate(snap domain.BalanceSnapshot, materialityThreshold decimal.Decimal) domain.RevaluationResult {
	currentAtCurrentRate := snap.CurrentBalanceFC.Mul(snap.CurrentRate)
	unrealized := currentAtCurrentRate.Sub(snap.OpeningBalanceFunc)

	return domain.RevaluationResult{
		Snapshot:                        snap,
		CurrentBalanceFuncAtCurrentRate: currentAtCurrentRate,
		UnrealizedGainLoss:              unrealized,
		RateDelta:                       snap.CurrentRate.Sub(snap.HistoricalRate),
		RevaluationRequired:             unrealized.Abs().GreaterThan(materialityThreshold),
	}
}
