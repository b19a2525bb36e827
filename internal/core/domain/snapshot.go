package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot is the value-typed input to the revaluation calculator:
// everything the Rate & Balance Resolver could determine about one account
// as of a reporting date. It is never persisted.
type BalanceSnapshot struct {
	CompanyID        string
	LedgerID         string
	AccountID        string
	AccountType      AccountType
	CurrencyCode     string
	BaseCurrencyCode string
	AsOfDate         time.Time

	OpeningBalanceFC   decimal.Decimal // FC balance from the opening history record
	OpeningBalanceFunc decimal.Decimal // Historically-booked functional-currency value
	CurrentBalanceFC   decimal.Decimal // Live FC balance as of the reporting date
	HistoricalRate     decimal.Decimal // Rate from the opening history record
	CurrentRate        decimal.Decimal // Market rate as of the reporting date

	CumulativeUnrealizedGainLoss decimal.Decimal // Carried from the opening history record
}

// RevaluationResult is the calculator's output for one snapshot.
// All amounts are exact decimals; rounding to the currency's minor unit
// happens only when a posting amount is finally produced.
type RevaluationResult struct {
	Snapshot                        BalanceSnapshot
	CurrentBalanceFuncAtCurrentRate decimal.Decimal
	UnrealizedGainLoss              decimal.Decimal // Positive = gain, negative = loss
	RateDelta                       decimal.Decimal
	RevaluationRequired             bool
}
