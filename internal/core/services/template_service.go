package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fincore/fx_revaluation_app/internal/apperrors"
	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	portsrepo "github.com/fincore/fx_revaluation_app/internal/core/ports/repositories"
	portssvc "github.com/fincore/fx_revaluation_app/internal/core/ports/services"
)

const templateDateFormat = "2006-01-02"

// journalTemplateService resolves posting templates and renders posting text.
type journalTemplateService struct {
	templateRepo portsrepo.JournalTemplateReader
}

// NewJournalTemplateService creates a new JournalTemplateService.
func NewJournalTemplateService(templateRepo portsrepo.JournalTemplateReader) portssvc.JournalTemplateSvc {
	return &journalTemplateService{templateRepo: templateRepo}
}

var _ portssvc.JournalTemplateSvc = (*journalTemplateService)(nil)

func (s *journalTemplateService) ResolveTemplate(ctx context.Context, companyID, ledgerID string) (*domain.JournalTemplate, error) {
	tmpl, err := s.templateRepo.FindTemplate(ctx, companyID, ledgerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: company %s ledger %s", apperrors.ErrTemplateMissing, companyID, ledgerID)
		}
		return nil, fmt.Errorf("failed to resolve journal template: %w", err)
	}
	return tmpl, nil
}

// SelectGainLossAccount picks the gain account for positive deltas and the
// loss account for negative deltas. The two may name the same account.
func (s *journalTemplateService) SelectGainLossAccount(tmpl *domain.JournalTemplate, res domain.RevaluationResult) string {
	if res.UnrealizedGainLoss.IsNegative() {
		return tmpl.LossAccountID
	}
	return tmpl.GainAccountID
}

// ResolveOffsetAccount renders the template's offset account pattern with the
// revalued account's {account} and {currency} tokens. An empty pattern falls
// back to the sign-based gain/loss account selection.
func (s *journalTemplateService) ResolveOffsetAccount(tmpl *domain.JournalTemplate, res domain.RevaluationResult, accountID, currencyCode string) string {
	if tmpl.OffsetAccountPattern == "" {
		return s.SelectGainLossAccount(tmpl, res)
	}

	replacer := strings.NewReplacer(
		"{account}", accountID,
		"{currency}", currencyCode,
	)
	return replacer.Replace(tmpl.OffsetAccountPattern)
}

// RenderDescription substitutes {account}, {currency} and {date} tokens into
// the template's description pattern.
func (s *journalTemplateService) RenderDescription(tmpl *domain.JournalTemplate, accountID, currencyCode string, date time.Time) string {
	pattern := tmpl.DescriptionPattern
	if pattern == "" {
		return fmt.Sprintf("FX revaluation %s %s %s", accountID, currencyCode, date.Format(templateDateFormat))
	}

	replacer := strings.NewReplacer(
		"{account}", accountID,
		"{currency}", currencyCode,
		"{date}", date.Format(templateDateFormat),
	)
	return replacer.Replace(pattern)
}
