package models

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents a general-ledger account row.
type Account struct {
	AccountID    string          `db:"account_id"`
	CompanyID    string          `db:"company_id"`
	LedgerID     string          `db:"ledger_id"`
	Name         string          `db:"name"`
	AccountType  AccountType     `db:"account_type"`
	CurrencyCode string          `db:"currency_code"`
	Description  string          `db:"description"`
	IsActive     bool            `db:"is_active"`
	AuditFields
	Balance decimal.Decimal `db:"balance"` // Current balance in the account currency
}
