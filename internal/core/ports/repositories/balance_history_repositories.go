package repositories

import (
	"context"
	"time"

	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// BalanceHistoryReader defines read operations for the balance time series.
type BalanceHistoryReader interface {
	// FindLatestAsOf retrieves the most recent history record with
	// balance_date on or before asOf for the account, or apperrors.ErrNotFound
	// (wrapped) when the account has no history yet.
	FindLatestAsOf(ctx context.Context, companyID, ledgerID, accountID string, asOf time.Time) (*domain.AccountBalanceHistory, error)
}

// BalanceHistoryWriter defines the append operation for the balance time series.
// Records are append-only and uniquely keyed by (company, ledger, account, date);
// a duplicate key surfaces as apperrors.ErrDuplicate.
type BalanceHistoryWriter interface {
	// AppendHistory inserts one history record.
	AppendHistory(ctx context.Context, history domain.AccountBalanceHistory) error

	// AppendHistoryTx inserts one history record inside the caller's
	// transaction, so the append commits together with the posting attach.
	AppendHistoryTx(ctx context.Context, tx pgx.Tx, history domain.AccountBalanceHistory) error
}

// BalanceHistoryRepositoryFacade combines history reader and writer interfaces.
type BalanceHistoryRepositoryFacade interface {
	BalanceHistoryReader
	BalanceHistoryWriter
}
