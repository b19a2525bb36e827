package domain

// RevaluationMethod controls how often an account is revalued.
type RevaluationMethod string

const (
	MethodPeriodEnd RevaluationMethod = "PERIOD_END"
	MethodDaily     RevaluationMethod = "DAILY"
	MethodMonthly   RevaluationMethod = "MONTHLY"
)

// TranslationMethod selects the rate basis used when translating the balance.
type TranslationMethod string

const (
	TranslationCurrentRate TranslationMethod = "CURRENT_RATE"
	TranslationAverageRate TranslationMethod = "AVERAGE_RATE"
)

// RevaluationConfig marks one (company, ledger, account) triple as eligible
// for revaluation and carries its per-account settings. Maintained by
// configuration management externally; read-only to this engine.
// At most one active config exists per (company, ledger, account).
type RevaluationConfig struct {
	ConfigID          string            `json:"configID"`          // Primary Key (e.g., UUID)
	CompanyID         string            `json:"companyID"`         // FK -> companies
	LedgerID          string            `json:"ledgerID"`          // FK -> ledgers
	AccountID         string            `json:"accountID"`         // FK -> accounts
	CurrencyCode      string            `json:"currencyCode"`      // The account's foreign currency
	Method            RevaluationMethod `json:"method"`            // PERIOD_END, DAILY, MONTHLY
	GainLossAccountID string            `json:"gainLossAccountID"` // Designated gain/loss account
	TranslationMethod TranslationMethod `json:"translationMethod"` // CURRENT_RATE or AVERAGE_RATE
	IsBalanceSheet    bool              `json:"isBalanceSheet"`    // Balance-sheet vs income-statement account
	IsActive          bool              `json:"isActive"`
	AuditFields
}
