package repositories

import (
	"context"
	"time"

	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account master data.
// Accounts are maintained by an external master-data system; this engine
// only ever reads them.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by their identifiers.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
}

// BalanceReader is the balance-source query interface: the live
// foreign-currency balance of an account as of a reporting date.
type BalanceReader interface {
	// GetBalanceAsOf returns the account's balance in its own currency as of
	// the given date.
	GetBalanceAsOf(ctx context.Context, companyID, ledgerID, accountID string, asOf time.Time) (decimal.Decimal, error)
}

// AccountRepositoryFacade combines the read-only account interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	BalanceReader
}
