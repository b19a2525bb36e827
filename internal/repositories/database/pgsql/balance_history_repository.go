package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fincore/fx_revaluation_app/internal/apperrors"
	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	portsrepo "github.com/fincore/fx_revaluation_app/internal/core/ports/repositories"
	"github.com/fincore/fx_revaluation_app/internal/models"
	"github.com/fincore/fx_revaluation_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const balanceHistoryColumns = `
	history_id, company_id, ledger_id, account_id, balance_date,
	balance_fc, balance_func, exchange_rate, cumulative_unrealized_gain_loss,
	last_revaluation_date, created_at, created_by`

const balanceHistoryInsert = `
	INSERT INTO account_balance_history (` + balanceHistoryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`

// PgxBalanceHistoryRepository implements the balance history ports using
// pgxpool. The table is append-only; rows are never updated or deleted.
type PgxBalanceHistoryRepository struct {
	BaseRepository
}

// newPgxBalanceHistoryRepository creates a new repository for balance history data.
func newPgxBalanceHistoryRepository(pool *pgxpool.Pool) portsrepo.BalanceHistoryRepositoryFacade {
	return &PgxBalanceHistoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BalanceHistoryRepositoryFacade = (*PgxBalanceHistoryRepository)(nil)

// FindLatestAsOf retrieves the most recent history record on or before asOf.
func (r *PgxBalanceHistoryRepository) FindLatestAsOf(ctx context.Context, companyID, ledgerID, accountID string, asOf time.Time) (*domain.AccountBalanceHistory, error) {
	query := `
		SELECT ` + balanceHistoryColumns + `
		FROM account_balance_history
		WHERE company_id = $1 AND ledger_id = $2 AND account_id = $3 AND balance_date <= $4
		ORDER BY balance_date DESC
		LIMIT 1;
	`
	var m models.AccountBalanceHistory
	err := r.Pool.QueryRow(ctx, query, companyID, ledgerID, accountID, asOf).Scan(
		&m.HistoryID, &m.CompanyID, &m.LedgerID, &m.AccountID, &m.BalanceDate,
		&m.BalanceFC, &m.BalanceFunc, &m.ExchangeRate, &m.CumulativeUnrealizedGainLoss,
		&m.LastRevaluationDate, &m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no balance history for account %s on or before %s",
				apperrors.ErrNotFound, accountID, asOf.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to find balance history for account %s: %w", accountID, err)
	}

	history := mapping.ToDomainBalanceHistory(m)
	return &history, nil
}

// AppendHistory inserts one history record.
func (r *PgxBalanceHistoryRepository) AppendHistory(ctx context.Context, history domain.AccountBalanceHistory) error {
	m := mapping.ToModelBalanceHistory(history)
	_, err := r.Pool.Exec(ctx, balanceHistoryInsert,
		m.HistoryID, m.CompanyID, m.LedgerID, m.AccountID, m.BalanceDate,
		m.BalanceFC, m.BalanceFunc, m.ExchangeRate, m.CumulativeUnrealizedGainLoss,
		m.LastRevaluationDate, m.CreatedAt, m.CreatedBy,
	)
	return mapHistoryInsertErr(err, history)
}

// AppendHistoryTx inserts one history record inside the caller's transaction.
func (r *PgxBalanceHistoryRepository) AppendHistoryTx(ctx context.Context, tx pgx.Tx, history domain.AccountBalanceHistory) error {
	m := mapping.ToModelBalanceHistory(history)
	_, err := tx.Exec(ctx, balanceHistoryInsert,
		m.HistoryID, m.CompanyID, m.LedgerID, m.AccountID, m.BalanceDate,
		m.BalanceFC, m.BalanceFunc, m.ExchangeRate, m.CumulativeUnrealizedGainLoss,
		m.LastRevaluationDate, m.CreatedAt, m.CreatedBy,
	)
	return mapHistoryInsertErr(err, history)
}

func mapHistoryInsertErr(err error, history domain.AccountBalanceHistory) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return fmt.Errorf("%w: balance history for account %s on %s",
			apperrors.ErrDuplicate, history.AccountID, history.BalanceDate.Format("2006-01-02"))
	}
	return fmt.Errorf("failed to append balance history for account %s: %w", history.AccountID, err)
}
