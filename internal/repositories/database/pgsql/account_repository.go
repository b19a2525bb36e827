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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `
	account_id, company_id, ledger_id, name, account_type, currency_code,
	description, is_active, balance,
	created_at, created_by, last_updated_at, last_updated_by, version`

// PgxAccountRepository implements the read-only account ports using pgxpool.
// Account master data is owned by an external system; this repository never
// writes it.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// FindAccountByID retrieves an account by its unique identifier.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	var m models.Account
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(
		&m.AccountID, &m.CompanyID, &m.LedgerID, &m.Name, &m.AccountType, &m.CurrencyCode,
		&m.Description, &m.IsActive, &m.Balance,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by their identifiers.
// Missing IDs are simply absent from the returned map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		var m models.Account
		err := rows.Scan(
			&m.AccountID, &m.CompanyID, &m.LedgerID, &m.Name, &m.AccountType, &m.CurrencyCode,
			&m.Description, &m.IsActive, &m.Balance,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

// GetBalanceAsOf returns the account's balance in its own currency as of the
// given date, computed from posted journal lines. The sign follows the
// account's normal side, so an asset with more debits than credits is positive.
func (r *PgxAccountRepository) GetBalanceAsOf(ctx context.Context, companyID, ledgerID, accountID string, asOf time.Time) (decimal.Decimal, error) {
	account, err := r.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	// Only lines denominated in the account's currency count toward the foreign
	// currency balance; base-currency adjustment lines on the same account must
	// not inflate it.
	query := `
		SELECT COALESCE(SUM(
			CASE WHEN t.transaction_type = 'DEBIT' THEN t.amount ELSE -t.amount END
		), 0)
		FROM transactions t
		JOIN journals j ON j.journal_id = t.journal_id
		WHERE t.account_id = $1
		  AND j.company_id = $2
		  AND j.ledger_id = $3
		  AND j.status = 'POSTED'
		  AND j.journal_date <= $4
		  AND t.currency_code = $5;
	`

	var debitNet decimal.Decimal
	err = r.Pool.QueryRow(ctx, query, accountID, companyID, ledgerID, asOf, account.CurrencyCode).Scan(&debitNet)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute balance for account %s: %w", accountID, err)
	}

	if account.IsDebitNormal() {
		return debitNet, nil
	}
	return debitNet.Neg(), nil
}
