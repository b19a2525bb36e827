package repositories

import (
	"context"

	"github.com/fincore/fx_revaluation_app/internal/core/domain"
)

// RevaluationConfigReader defines read operations for revaluation configuration.
// Configuration is maintained externally; accounts without an active config
// are simply outside a run's candidate set.
type RevaluationConfigReader interface {
	// ListActiveConfigs retrieves all active configs for a company, ordered by
	// ledger and account for deterministic run enumeration.
	ListActiveConfigs(ctx context.Context, companyID string) ([]domain.RevaluationConfig, error)

	// FindActiveConfig retrieves the single active config for a
	// (company, ledger, account) triple, if any.
	FindActiveConfig(ctx context.Context, companyID, ledgerID, accountID string) (*domain.RevaluationConfig, error)
}

// JournalTemplateReader defines read operations for posting templates.
type JournalTemplateReader interface {
	// FindTemplate retrieves the journal template for a (company, ledger)
	// scope. Returns apperrors.ErrTemplateMissing (wrapped) when none is configured.
	FindTemplate(ctx context.Context, companyID, ledgerID string) (*domain.JournalTemplate, error)
}
