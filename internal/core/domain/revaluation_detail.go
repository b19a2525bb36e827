package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevaluationDetail records the outcome for one account within a run.
// Created once per account per run and immutable afterwards, except that
// PostingID and ErrorMessage may each transition once from unset to set.
type RevaluationDetail struct {
	DetailID                       string          `json:"detailID"` // Primary Key (e.g., UUID)
	RunID                          string          `json:"runID"`    // FK -> RevaluationRun
	AccountID                      string          `json:"accountID"`
	LedgerID                       string          `json:"ledgerID"`
	CurrencyCode                   string          `json:"currencyCode"`
	OpeningBalanceFC               decimal.Decimal `json:"openingBalanceFC"`
	CurrentBalanceFC               decimal.Decimal `json:"currentBalanceFC"`
	OpeningBalanceFunc             decimal.Decimal `json:"openingBalanceFunc"`
	HistoricalRate                 decimal.Decimal `json:"historicalRate"`
	CurrentRate                    decimal.Decimal `json:"currentRate"`
	RateDelta                      decimal.Decimal `json:"rateDelta"` // Retained for audit
	CurrentBalanceFuncAtCurrentRate decimal.Decimal `json:"currentBalanceFuncAtCurrentRate"`
	UnrealizedGainLoss             decimal.Decimal `json:"unrealizedGainLoss"` // Positive = gain
	RevaluationRequired            bool            `json:"revaluationRequired"`
	PostingID                      *string         `json:"postingID"`    // Set once when a posting is generated
	ErrorMessage                   *string         `json:"errorMessage"` // Set once on per-account failure
	CreatedAt                      time.Time       `json:"createdAt"`
}
