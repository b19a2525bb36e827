package models

import "github.com/shopspring/decimal"

// TransactionType indicates whether a transaction line is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Transaction represents a single line item within a Journal, affecting one account.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"` // Primary Key (e.g., UUID)
	JournalID       string          `db:"journal_id"`
	AccountID       string          `db:"account_id"`
	Amount          decimal.Decimal `db:"amount"` // Positive value
	TransactionType TransactionType `db:"transaction_type"`
	CurrencyCode    string          `db:"currency_code"`
	Notes           string          `db:"notes"`
	AuditFields
}
