package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevaluationConfig is one row of the per-account revaluation configuration.
type RevaluationConfig struct {
	ConfigID          string `db:"config_id"`
	CompanyID         string `db:"company_id"`
	LedgerID          string `db:"ledger_id"`
	AccountID         string `db:"account_id"`
	CurrencyCode      string `db:"currency_code"`
	Method            string `db:"method"`
	GainLossAccountID string `db:"gain_loss_account_id"`
	TranslationMethod string `db:"translation_method"`
	IsBalanceSheet    bool   `db:"is_balance_sheet"`
	IsActive          bool   `db:"is_active"`
	AuditFields
}

// JournalTemplate is one row of the per-(company, ledger) posting template.
type JournalTemplate struct {
	TemplateID           string `db:"template_id"`
	CompanyID            string `db:"company_id"`
	LedgerID             string `db:"ledger_id"`
	GainAccountID        string `db:"gain_account_id"`
	LossAccountID        string `db:"loss_account_id"`
	OffsetAccountPattern string `db:"offset_account_pattern"`
	DescriptionPattern   string `db:"description_pattern"`
	ReferencePrefix      string `db:"reference_prefix"`
	DocumentType         string `db:"document_type"`
	AutoPost             bool   `db:"auto_post"`
	RequiresApproval     bool   `db:"requires_approval"`
	AuditFields
}

// RevaluationRun is one row of the append-only run audit table.
type RevaluationRun struct {
	RunID                  string          `db:"run_id"`
	CompanyID              string          `db:"company_id"`
	RunDate                time.Time       `db:"run_date"`
	FiscalYear             int             `db:"fiscal_year"`
	FiscalPeriod           int             `db:"fiscal_period"`
	RunType                string          `db:"run_type"`
	BaseCurrencyCode       string          `db:"base_currency_code"`
	Status                 string          `db:"status"`
	TotalAccountsProcessed int             `db:"total_accounts_processed"`
	TotalRevaluations      int             `db:"total_revaluations"`
	TotalUnrealizedGain    decimal.Decimal `db:"total_unrealized_gain"`
	TotalUnrealizedLoss    decimal.Decimal `db:"total_unrealized_loss"`
	ErrorCount             int             `db:"error_count"`
	ErrorSummary           string          `db:"error_summary"`
	PostingIDs             []string        `db:"posting_ids"`
	StartedAt              time.Time       `db:"started_at"`
	CompletedAt            *time.Time      `db:"completed_at"`
	ExecutionTimeSeconds   float64         `db:"execution_time_seconds"`
	InitiatedBy            string          `db:"initiated_by"`
}

// RevaluationDetail is one row of the per-account outcome table.
type RevaluationDetail struct {
	DetailID                        string          `db:"detail_id"`
	RunID                           string          `db:"run_id"`
	AccountID                       string          `db:"account_id"`
	LedgerID                        string          `db:"ledger_id"`
	CurrencyCode                    string          `db:"currency_code"`
	OpeningBalanceFC                decimal.Decimal `db:"opening_balance_fc"`
	CurrentBalanceFC                decimal.Decimal `db:"current_balance_fc"`
	OpeningBalanceFunc              decimal.Decimal `db:"opening_balance_func"`
	HistoricalRate                  decimal.Decimal `db:"historical_rate"`
	CurrentRate                     decimal.Decimal `db:"current_rate"`
	RateDelta                       decimal.Decimal `db:"rate_delta"`
	CurrentBalanceFuncAtCurrentRate decimal.Decimal `db:"current_balance_func_at_current_rate"`
	UnrealizedGainLoss              decimal.Decimal `db:"unrealized_gain_loss"`
	RevaluationRequired             bool            `db:"revaluation_required"`
	PostingID                       *string         `db:"posting_id"`
	ErrorMessage                    *string         `db:"error_message"`
	CreatedAt                       time.Time       `db:"created_at"`
}

// AccountBalanceHistory is one row of the append-only balance time series.
type AccountBalanceHistory struct {
	HistoryID                    string          `db:"history_id"`
	CompanyID                    string          `db:"company_id"`
	LedgerID                     string          `db:"ledger_id"`
	AccountID                    string          `db:"account_id"`
	BalanceDate                  time.Time       `db:"balance_date"`
	BalanceFC                    decimal.Decimal `db:"balance_fc"`
	BalanceFunc                  decimal.Decimal `db:"balance_func"`
	ExchangeRate                 decimal.Decimal `db:"exchange_rate"`
	CumulativeUnrealizedGainLoss decimal.Decimal `db:"cumulative_unrealized_gain_loss"`
	LastRevaluationDate          *time.Time      `db:"last_revaluation_date"`
	CreatedAt                    time.Time       `db:"created_at"`
	CreatedBy                    string          `db:"created_by"`
}
