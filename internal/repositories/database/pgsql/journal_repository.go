package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fincore/fx_revaluation_app/internal/apperrors"
	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	portsrepo "github.com/fincore/fx_revaluation_app/internal/core/ports/repositories"
	"github.com/fincore/fx_revaluation_app/internal/models"
	"github.com/fincore/fx_revaluation_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const journalColumns = `
	journal_id, company_id, ledger_id, journal_date, description, currency_code,
	reference, document_type, status, requires_approval,
	created_at, created_by, last_updated_at, last_updated_by, version`

const transactionColumns = `
	transaction_id, journal_id, account_id, amount, transaction_type,
	currency_code, notes,
	created_at, created_by, last_updated_at, last_updated_by, version`

// PgxJournalRepository implements the journal ports using pgxpool.
type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal and transaction data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveJournal inserts a journal and its transaction lines within one
// database transaction.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelJournal := mapping.ToModelJournal(journal)
	journalQuery := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, journalQuery,
		modelJournal.JournalID,
		modelJournal.CompanyID,
		modelJournal.LedgerID,
		modelJournal.JournalDate,
		modelJournal.Description,
		modelJournal.CurrencyCode,
		modelJournal.Reference,
		modelJournal.DocumentType,
		modelJournal.Status,
		modelJournal.RequiresApproval,
		modelJournal.CreatedAt,
		modelJournal.CreatedBy,
		modelJournal.LastUpdatedAt,
		modelJournal.LastUpdatedBy,
		modelJournal.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal %s: %w", modelJournal.JournalID, err)
	}

	batch := &pgx.Batch{}
	txnQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, txn := range transactions {
		m := mapping.ToModelTransaction(txn)
		batch.Queue(txnQuery,
			m.TransactionID, m.JournalID, m.AccountID, m.Amount, m.TransactionType,
			m.CurrencyCode, m.Notes,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
		)
	}
	results := tx.SendBatch(ctx, batch)
	for range transactions {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("failed to insert transaction for journal %s: %w", modelJournal.JournalID, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to finish transaction batch for journal %s: %w", modelJournal.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

// FindJournalByID retrieves a journal by its unique identifier.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`

	var m models.Journal
	err := r.Pool.QueryRow(ctx, query, journalID).Scan(
		&m.JournalID, &m.CompanyID, &m.LedgerID, &m.JournalDate, &m.Description, &m.CurrencyCode,
		&m.Reference, &m.DocumentType, &m.Status, &m.RequiresApproval,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}

	journal := mapping.ToDomainJournal(m)
	return &journal, nil
}

// FindTransactionsByJournalID retrieves all lines of a single journal.
func (r *PgxJournalRepository) FindTransactionsByJournalID(ctx context.Context, journalID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE journal_id = $1 ORDER BY transaction_id;`

	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var m models.Transaction
		err := rows.Scan(
			&m.TransactionID, &m.JournalID, &m.AccountID, &m.Amount, &m.TransactionType,
			&m.CurrencyCode, &m.Notes,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}
