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

const revaluationConfigColumns = `
	config_id, company_id, ledger_id, account_id, currency_code, method,
	gain_loss_account_id, translation_method, is_balance_sheet, is_active,
	created_at, created_by, last_updated_at, last_updated_by, version`

const journalTemplateColumns = `
	template_id, company_id, ledger_id, gain_account_id, loss_account_id,
	offset_account_pattern, description_pattern, reference_prefix, document_type,
	auto_post, requires_approval,
	created_at, created_by, last_updated_at, last_updated_by, version`

// PgxRevaluationConfigRepository implements the read-only configuration and
// template ports. Both tables are maintained by configuration management.
type PgxRevaluationConfigRepository struct {
	BaseRepository
}

// newPgxRevaluationConfigRepository creates a new repository for revaluation
// configuration and journal template data.
func newPgxRevaluationConfigRepository(pool *pgxpool.Pool) *PgxRevaluationConfigRepository {
	return &PgxRevaluationConfigRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RevaluationConfigReader = (*PgxRevaluationConfigRepository)(nil)
var _ portsrepo.JournalTemplateReader = (*PgxRevaluationConfigRepository)(nil)

// ListActiveConfigs retrieves all active configs for a company, ordered by
// ledger and account so run enumeration is deterministic.
func (r *PgxRevaluationConfigRepository) ListActiveConfigs(ctx context.Context, companyID string) ([]domain.RevaluationConfig, error) {
	query := `
		SELECT ` + revaluationConfigColumns + `
		FROM revaluation_configs
		WHERE company_id = $1 AND is_active = TRUE
		ORDER BY ledger_id, account_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query revaluation configs for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var configs []domain.RevaluationConfig
	for rows.Next() {
		m, err := scanRevaluationConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, mapping.ToDomainRevaluationConfig(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revaluation configs: %w", err)
	}

	return configs, nil
}

// FindActiveConfig retrieves the single active config for a
// (company, ledger, account) triple.
func (r *PgxRevaluationConfigRepository) FindActiveConfig(ctx context.Context, companyID, ledgerID, accountID string) (*domain.RevaluationConfig, error) {
	query := `
		SELECT ` + revaluationConfigColumns + `
		FROM revaluation_configs
		WHERE company_id = $1 AND ledger_id = $2 AND account_id = $3 AND is_active = TRUE;
	`
	row := r.Pool.QueryRow(ctx, query, companyID, ledgerID, accountID)
	m, err := scanRevaluationConfig(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no active revaluation config for account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, err
	}

	cfg := mapping.ToDomainRevaluationConfig(m)
	return &cfg, nil
}

// FindTemplate retrieves the journal template for a (company, ledger) scope.
func (r *PgxRevaluationConfigRepository) FindTemplate(ctx context.Context, companyID, ledgerID string) (*domain.JournalTemplate, error) {
	query := `
		SELECT ` + journalTemplateColumns + `
		FROM journal_templates
		WHERE company_id = $1 AND ledger_id = $2;
	`
	var m models.JournalTemplate
	err := r.Pool.QueryRow(ctx, query, companyID, ledgerID).Scan(
		&m.TemplateID, &m.CompanyID, &m.LedgerID, &m.GainAccountID, &m.LossAccountID,
		&m.OffsetAccountPattern, &m.DescriptionPattern, &m.ReferencePrefix, &m.DocumentType,
		&m.AutoPost, &m.RequiresApproval,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no journal template for company %s ledger %s",
				apperrors.ErrNotFound, companyID, ledgerID)
		}
		return nil, fmt.Errorf("failed to find journal template: %w", err)
	}

	tmpl := mapping.ToDomainJournalTemplate(m)
	return &tmpl, nil
}

func scanRevaluationConfig(row pgx.Row) (models.RevaluationConfig, error) {
	var m models.RevaluationConfig
	err := row.Scan(
		&m.ConfigID, &m.CompanyID, &m.LedgerID, &m.AccountID, &m.CurrencyCode, &m.Method,
		&m.GainLossAccountID, &m.TranslationMethod, &m.IsBalanceSheet, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return m, fmt.Errorf("failed to scan revaluation config: %w", err)
	}
	return m, err
}
