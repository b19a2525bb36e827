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
	"github.com/fincore/fx_revaluation_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const revaluationRunColumns = `
	run_id, company_id, run_date, fiscal_year, fiscal_period, run_type,
	base_currency_code, status, total_accounts_processed, total_revaluations,
	total_unrealized_gain, total_unrealized_loss, error_count, error_summary,
	posting_ids, started_at, completed_at, execution_time_seconds, initiated_by`

const revaluationDetailColumns = `
	detail_id, run_id, account_id, ledger_id, currency_code,
	opening_balance_fc, current_balance_fc, opening_balance_func,
	historical_rate, current_rate, rate_delta,
	current_balance_func_at_current_rate, unrealized_gain_loss,
	revaluation_required, posting_id, error_message, created_at`

// terminalRunStatuses guards status transitions: a terminal row is never updated.
const terminalRunStatuses = `('COMPLETED', 'FAILED', 'CANCELLED')`

// PgxRevaluationRunRepository implements the run and detail ports using pgxpool.
type PgxRevaluationRunRepository struct {
	BaseRepository
}

// newPgxRevaluationRunRepository creates a new repository for run audit data.
func newPgxRevaluationRunRepository(pool *pgxpool.Pool) portsrepo.RevaluationRunRepositoryWithTx {
	return &PgxRevaluationRunRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RevaluationRunRepositoryWithTx = (*PgxRevaluationRunRepository)(nil)

// CreateRun inserts a new run row. The partial unique index on
// (company_id, run_date, run_type) over non-terminal rows enforces the
// single-active-run invariant; a violation maps to ErrRunAlreadyActive.
func (r *PgxRevaluationRunRepository) CreateRun(ctx context.Context, run domain.RevaluationRun) error {
	m := mapping.ToModelRevaluationRun(run)
	query := `
		INSERT INTO revaluation_runs (` + revaluationRunColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RunID, m.CompanyID, m.RunDate, m.FiscalYear, m.FiscalPeriod, m.RunType,
		m.BaseCurrencyCode, m.Status, m.TotalAccountsProcessed, m.TotalRevaluations,
		m.TotalUnrealizedGain, m.TotalUnrealizedLoss, m.ErrorCount, m.ErrorSummary,
		m.PostingIDs, m.StartedAt, m.CompletedAt, m.ExecutionTimeSeconds, m.InitiatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: company %s, date %s, type %s",
				apperrors.ErrRunAlreadyActive, run.CompanyID, run.RunDate.Format("2006-01-02"), run.RunType)
		}
		return fmt.Errorf("failed to create revaluation run %s: %w", run.RunID, err)
	}
	return nil
}

// FindRunByID retrieves a run snapshot by its identifier.
func (r *PgxRevaluationRunRepository) FindRunByID(ctx context.Context, runID string) (*domain.RevaluationRun, error) {
	query := `SELECT ` + revaluationRunColumns + ` FROM revaluation_runs WHERE run_id = $1;`
	row := r.Pool.QueryRow(ctx, query, runID)
	m, err := scanRevaluationRun(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: revaluation run %s", apperrors.ErrNotFound, runID)
		}
		return nil, err
	}
	run := mapping.ToDomainRevaluationRun(m)
	return &run, nil
}

// FindActiveRun retrieves the non-terminal run for a scope, if one exists.
func (r *PgxRevaluationRunRepository) FindActiveRun(ctx context.Context, companyID string, runDate time.Time, runType domain.RevaluationRunType) (*domain.RevaluationRun, error) {
	query := `
		SELECT ` + revaluationRunColumns + `
		FROM revaluation_runs
		WHERE company_id = $1 AND run_date = $2 AND run_type = $3
		  AND status NOT IN ` + terminalRunStatuses + `;
	`
	row := r.Pool.QueryRow(ctx, query, companyID, runDate, string(runType))
	m, err := scanRevaluationRun(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no active run for company %s on %s",
				apperrors.ErrNotFound, companyID, runDate.Format("2006-01-02"))
		}
		return nil, err
	}
	run := mapping.ToDomainRevaluationRun(m)
	return &run, nil
}

// UpdateRunStatus moves a non-terminal run to a new status.
func (r *PgxRevaluationRunRepository) UpdateRunStatus(ctx context.Context, runID string, status domain.RevaluationRunStatus, errorSummary string) error {
	query := `
		UPDATE revaluation_runs
		SET status = $2,
		    error_summary = CASE WHEN $3 = '' THEN error_summary ELSE $3 END,
		    completed_at = CASE WHEN $2 IN ` + terminalRunStatuses + ` THEN NOW() ELSE completed_at END
		WHERE run_id = $1 AND status NOT IN ` + terminalRunStatuses + `;
	`
	tag, err := r.Pool.Exec(ctx, query, runID, string(status), errorSummary)
	if err != nil {
		return fmt.Errorf("failed to update status of run %s: %w", runID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError(
			fmt.Sprintf("run %s not found or already terminal", runID), apperrors.ErrNotFound)
	}
	return nil
}

// FinalizeRun writes the aggregate totals and terminal state exactly once.
// The status guard makes finalization a no-op if a concurrent path already
// moved the run to a terminal state.
func (r *PgxRevaluationRunRepository) FinalizeRun(ctx context.Context, run domain.RevaluationRun) error {
	m := mapping.ToModelRevaluationRun(run)
	query := `
		UPDATE revaluation_runs
		SET status = $2,
		    total_accounts_processed = $3,
		    total_revaluations = $4,
		    total_unrealized_gain = $5,
		    total_unrealized_loss = $6,
		    error_count = $7,
		    error_summary = $8,
		    posting_ids = $9,
		    completed_at = $10,
		    execution_time_seconds = $11
		WHERE run_id = $1 AND status NOT IN ` + terminalRunStatuses + `;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.RunID, m.Status, m.TotalAccountsProcessed, m.TotalRevaluations,
		m.TotalUnrealizedGain, m.TotalUnrealizedLoss, m.ErrorCount, m.ErrorSummary,
		m.PostingIDs, m.CompletedAt, m.ExecutionTimeSeconds,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize revaluation run %s: %w", run.RunID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError(
			fmt.Sprintf("run %s not found or already terminal", run.RunID), apperrors.ErrNotFound)
	}
	return nil
}

// SaveDetail inserts one per-account outcome record.
func (r *PgxRevaluationRunRepository) SaveDetail(ctx context.Context, detail domain.RevaluationDetail) error {
	m := mapping.ToModelRevaluationDetail(detail)
	query := `
		INSERT INTO revaluation_details (` + revaluationDetailColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DetailID, m.RunID, m.AccountID, m.LedgerID, m.CurrencyCode,
		m.OpeningBalanceFC, m.CurrentBalanceFC, m.OpeningBalanceFunc,
		m.HistoricalRate, m.CurrentRate, m.RateDelta,
		m.CurrentBalanceFuncAtCurrentRate, m.UnrealizedGainLoss,
		m.RevaluationRequired, m.PostingID, m.ErrorMessage, m.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: detail for run %s account %s",
				apperrors.ErrDuplicate, detail.RunID, detail.AccountID)
		}
		return fmt.Errorf("failed to save revaluation detail %s: %w", detail.DetailID, err)
	}
	return nil
}

// AttachPostingToDetail sets the detail's posting ID within the caller's
// transaction. The IS NULL guard keeps the field set-once.
func (r *PgxRevaluationRunRepository) AttachPostingToDetail(ctx context.Context, tx pgx.Tx, detailID, postingID string) error {
	query := `
		UPDATE revaluation_details
		SET posting_id = $2
		WHERE detail_id = $1 AND posting_id IS NULL;
	`
	tag, err := tx.Exec(ctx, query, detailID, postingID)
	if err != nil {
		return fmt.Errorf("failed to attach posting to detail %s: %w", detailID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError(
			fmt.Sprintf("detail %s not found or posting already attached", detailID), apperrors.ErrDuplicate)
	}
	return nil
}

// SetDetailError sets the detail's error message once.
func (r *PgxRevaluationRunRepository) SetDetailError(ctx context.Context, detailID, message string) error {
	query := `
		UPDATE revaluation_details
		SET error_message = $2
		WHERE detail_id = $1 AND error_message IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, detailID, message)
	if err != nil {
		return fmt.Errorf("failed to set error on detail %s: %w", detailID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError(
			fmt.Sprintf("detail %s not found or error already set", detailID), apperrors.ErrDuplicate)
	}
	return nil
}

// ListRunDetails retrieves a token-paginated page of details for a run,
// ordered by creation time then detail ID so pagination is restartable and
// stable under concurrent appends.
func (r *PgxRevaluationRunRepository) ListRunDetails(ctx context.Context, runID string, limit int, nextToken *string) ([]domain.RevaluationDetail, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + revaluationDetailColumns + ` FROM revaluation_details WHERE run_id = $1`
	args := []interface{}{runID}

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		afterCreatedAt, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` AND (created_at, detail_id) > ($2, $3)`
		args = append(args, afterCreatedAt, fields[1])
	}

	// Fetch one extra row to decide whether another page exists.
	query += fmt.Sprintf(` ORDER BY created_at, detail_id LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query details for run %s: %w", runID, err)
	}
	defer rows.Close()

	var details []domain.RevaluationDetail
	for rows.Next() {
		var m models.RevaluationDetail
		err := rows.Scan(
			&m.DetailID, &m.RunID, &m.AccountID, &m.LedgerID, &m.CurrencyCode,
			&m.OpeningBalanceFC, &m.CurrentBalanceFC, &m.OpeningBalanceFunc,
			&m.HistoricalRate, &m.CurrentRate, &m.RateDelta,
			&m.CurrentBalanceFuncAtCurrentRate, &m.UnrealizedGainLoss,
			&m.RevaluationRequired, &m.PostingID, &m.ErrorMessage, &m.CreatedAt,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan revaluation detail: %w", err)
		}
		details = append(details, mapping.ToDomainRevaluationDetail(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating revaluation details: %w", err)
	}

	var token *string
	if len(details) > limit {
		details = details[:limit]
		last := details[len(details)-1]
		t := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.DetailID)
		token = &t
	}

	return details, token, nil
}

func scanRevaluationRun(row pgx.Row) (models.RevaluationRun, error) {
	var m models.RevaluationRun
	err := row.Scan(
		&m.RunID, &m.CompanyID, &m.RunDate, &m.FiscalYear, &m.FiscalPeriod, &m.RunType,
		&m.BaseCurrencyCode, &m.Status, &m.TotalAccountsProcessed, &m.TotalRevaluations,
		&m.TotalUnrealizedGain, &m.TotalUnrealizedLoss, &m.ErrorCount, &m.ErrorSummary,
		&m.PostingIDs, &m.StartedAt, &m.CompletedAt, &m.ExecutionTimeSeconds, &m.InitiatedBy,
	)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return m, fmt.Errorf("failed to scan revaluation run: %w", err)
	}
	return m, err
}
