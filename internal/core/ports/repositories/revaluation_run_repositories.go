package repositories

import (
	"context"
	"time"

	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// RevaluationRunReader defines read operations for run and detail audit records.
type RevaluationRunReader interface {
	// FindRunByID retrieves a run snapshot by its identifier.
	FindRunByID(ctx context.Context, runID string) (*domain.RevaluationRun, error)

	// FindActiveRun retrieves the non-terminal run for a
	// (company, run date, run type) scope, if one exists.
	FindActiveRun(ctx context.Context, companyID string, runDate time.Time, runType domain.RevaluationRunType) (*domain.RevaluationRun, error)

	// ListRunDetails retrieves a paginated list of details for a run using
	// token-based pagination, ordered by creation time then detail ID.
	// It returns the details, a token for the next page, and an error.
	ListRunDetails(ctx context.Context, runID string, limit int, nextToken *string) ([]domain.RevaluationDetail, *string, error)
}

// RevaluationRunWriter defines write operations for run and detail audit records.
// Runs are append-only: rows are inserted once and only late-bound fields
// (status, totals, completed_at) transition afterwards.
type RevaluationRunWriter interface {
	// CreateRun inserts a new run in RUNNING state. The insert is guarded by
	// the scope-uniqueness invariant: if a non-terminal run already exists for
	// (company, run date, run type), apperrors.ErrRunAlreadyActive is returned
	// and no row is written.
	CreateRun(ctx context.Context, run domain.RevaluationRun) error

	// UpdateRunStatus moves a run to a new status, optionally recording an
	// error summary. It must not overwrite a terminal status.
	UpdateRunStatus(ctx context.Context, runID string, status domain.RevaluationRunStatus, errorSummary string) error

	// FinalizeRun writes the aggregate totals, terminal status, completion
	// timestamp and execution duration exactly once.
	FinalizeRun(ctx context.Context, run domain.RevaluationRun) error

	// SaveDetail inserts one per-account outcome record.
	SaveDetail(ctx context.Context, detail domain.RevaluationDetail) error

	// AttachPostingToDetail sets the detail's posting identifier once, inside
	// the caller's transaction so it commits together with the history append.
	AttachPostingToDetail(ctx context.Context, tx pgx.Tx, detailID, postingID string) error

	// SetDetailError sets the detail's error message once, for failures that
	// occur after the detail row was created (e.g. posting rejection).
	SetDetailError(ctx context.Context, detailID, message string) error
}

// RevaluationRunRepositoryFacade combines run reader and writer interfaces.
type RevaluationRunRepositoryFacade interface {
	RevaluationRunReader
	RevaluationRunWriter
}

// RevaluationRunRepositoryWithTx extends the facade with transaction capabilities.
type RevaluationRunRepositoryWithTx interface {
	RevaluationRunRepositoryFacade
	TransactionManager
}
