package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalanceHistory is one record of the append-only balance time series
// that makes revaluation incremental: each run reads the latest record on or
// before the run date as its opening reference and, on success, appends a new
// record for the run date. Records are uniquely keyed by
// (company, ledger, account, balance date) and never overwritten.
type AccountBalanceHistory struct {
	HistoryID                    string          `json:"historyID"` // Primary Key (e.g., UUID)
	CompanyID                    string          `json:"companyID"`
	LedgerID                     string          `json:"ledgerID"`
	AccountID                    string          `json:"accountID"`
	BalanceDate                  time.Time       `json:"balanceDate"`
	BalanceFC                    decimal.Decimal `json:"balanceFC"`   // Foreign-currency balance on the date
	BalanceFunc                  decimal.Decimal `json:"balanceFunc"` // Functional-currency balance on the date
	ExchangeRate                 decimal.Decimal `json:"exchangeRate"`
	CumulativeUnrealizedGainLoss decimal.Decimal `json:"cumulativeUnrealizedGainLoss"`
	LastRevaluationDate          *time.Time      `json:"lastRevaluationDate"`
	CreatedAt                    time.Time       `json:"createdAt"`
	CreatedBy                    string          `json:"createdBy"`
}
