package services

import (
	"context"
	"time"

	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	"github.com/fincore/fx_revaluation_app/internal/dto"
)

// RevaluationSvcFacade is the operator-facing surface of the revaluation engine.
type RevaluationSvcFacade interface {
	// StartRun creates and activates a run for the requested scope and begins
	// processing asynchronously. A non-terminal run for the same
	// (company, date, run type) scope is rejected with
	// apperrors.ErrRunAlreadyActive and no run record is created.
	StartRun(ctx context.Context, req dto.StartRevaluationRunRequest, initiatorUserID string) (*domain.RevaluationRun, error)

	// GetRun returns a snapshot of the run's current state.
	GetRun(ctx context.Context, runID string) (*domain.RevaluationRun, error)

	// ListRunDetails returns a token-paginated, restartable projection of the
	// run's per-account outcomes.
	ListRunDetails(ctx context.Context, runID string, limit int, nextToken *string) ([]domain.RevaluationDetail, *string, error)

	// CancelRun requests best-effort cancellation: no new account tasks are
	// dispatched, in-flight tasks finish, and the run ends CANCELLED.
	CancelRun(ctx context.Context, runID string) error
}

// BalanceResolverSvc resolves everything the calculator needs for one account.
type BalanceResolverSvc interface {
	// Resolve returns the account's opening reference (latest history on or
	// before asOf), its live foreign-currency balance, and the current market
	// rate into the base currency. A missing rate surfaces as
	// apperrors.ErrRateUnavailable (wrapped); this is per-account, not run-fatal.
	Resolve(ctx context.Context, cfg domain.RevaluationConfig, asOf time.Time, baseCurrencyCode string) (*domain.BalanceSnapshot, error)
}

// JournalTemplateSvc resolves posting templates and renders posting text.
type JournalTemplateSvc interface {
	// ResolveTemplate retrieves the template for a (company, ledger) scope.
	// Missing templates surface as apperrors.ErrTemplateMissing (wrapped).
	ResolveTemplate(ctx context.Context, companyID, ledgerID string) (*domain.JournalTemplate, error)

	// SelectGainLossAccount picks the gain account for positive deltas and the
	// loss account for negative deltas (they may be identical).
	SelectGainLossAccount(tmpl *domain.JournalTemplate, res domain.RevaluationResult) string

	// ResolveOffsetAccount renders the template's offset account pattern for
	// the revalued account, falling back to the sign-based gain/loss account
	// when the pattern is empty.
	ResolveOffsetAccount(tmpl *domain.JournalTemplate, res domain.RevaluationResult, accountID, currencyCode string) string

	// RenderDescription substitutes account, currency and date tokens into the
	// template's description pattern.
	RenderDescription(tmpl *domain.JournalTemplate, accountID, currencyCode string, date time.Time) string
}

// PostingSvcFacade turns accepted revaluation results into postings and
// maintains the balance history.
type PostingSvcFacade interface {
	// GeneratePosting builds the balanced two-line posting for a result,
	// submits it to the journal-entry subsystem and, in one transaction,
	// appends the balance history record and attaches the posting identifier
	// to the detail. If submission fails, no history is written.
	GeneratePosting(ctx context.Context, run *domain.RevaluationRun, res domain.RevaluationResult, cfg domain.RevaluationConfig, tmpl *domain.JournalTemplate, detailID string) (string, error)

	// RecordHistory appends the balance history record for a result that did
	// not cross the materiality threshold. History tracking is independent of
	// posting generation.
	RecordHistory(ctx context.Context, run *domain.RevaluationRun, res domain.RevaluationResult) error
}
