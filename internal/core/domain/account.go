package domain

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

// Account represents a general-ledger account within the core domain.
// Accounts are master data maintained externally; this core reads them to
// determine the balance-sheet normal side and the current foreign-currency balance.
type Account struct {
	AccountID    string          `json:"accountID"`    // Primary Key (e.g., UUID)
	CompanyID    string          `json:"companyID"`    // FK -> companies (NON-NULL)
	LedgerID     string          `json:"ledgerID"`     // FK -> ledgers (NON-NULL)
	Name         string          `json:"name"`         // User-defined name
	AccountType  AccountType     `json:"accountType"`  // ASSET, LIABILITY, etc.
	CurrencyCode string          `json:"currencyCode"` // Denomination currency (may differ from base)
	Description  string          `json:"description"`  // Nullable user description
	IsActive     bool            `json:"isActive"`     // Soft delete or status flag
	AuditFields
	Balance decimal.Decimal `json:"balance"` // Current balance in the account's own currency
}

// IsDebitNormal reports whether the account carries a debit-normal balance.
func (a Account) IsDebitNormal() bool {
	return a.AccountType == Asset || a.AccountType == Expense
}
