package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fincore/fx_revaluation_app/internal/apperrors"
	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	portsrepo "github.com/fincore/fx_revaluation_app/internal/core/ports/repositories"
	portssvc "github.com/fincore/fx_revaluation_app/internal/core/ports/services"
	"github.com/fincore/fx_revaluation_app/internal/middleware"
	"github.com/fincore/fx_revaluation_app/internal/utils/accounting"
	"github.com/google/uuid"
)

// journalEntryService accepts balanced posting requests and persists them.
type journalEntryService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewJournalEntryService creates a new JournalEntrySvc.
func NewJournalEntryService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.JournalEntrySvc {
	return &journalEntryService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.JournalEntrySvc = (*journalEntryService)(nil)

// SubmitJournal validates a journal and its lines, persists them atomically and
// returns the new journal ID. Validation failures are wrapped in
// apperrors.ErrPostingRejected so callers can tell rejection from infrastructure
// failure.
func (s *journalEntryService) SubmitJournal(ctx context.Context, journal domain.Journal, lines []domain.Transaction) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := accounting.ValidateBalancedLines(lines); err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrPostingRejected, err)
	}

	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.CurrencyCode != journal.CurrencyCode {
			return "", fmt.Errorf("%w: line currency %s does not match journal currency %s",
				apperrors.ErrPostingRejected, line.CurrencyCode, journal.CurrencyCode)
		}
		accountIDs = append(accountIDs, line.AccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return "", fmt.Errorf("failed to load accounts for journal validation: %w", err)
	}
	for _, id := range accountIDs {
		acct, ok := accounts[id]
		if !ok {
			return "", fmt.Errorf("%w: account %s does not exist", apperrors.ErrPostingRejected, id)
		}
		if !acct.IsActive {
			return "", fmt.Errorf("%w: account %s is inactive", apperrors.ErrPostingRejected, id)
		}
	}

	if journal.JournalID == "" {
		journal.JournalID = uuid.NewString()
	}
	if journal.Status == "" {
		journal.Status = domain.Draft
	}
	now := time.Now()
	journal.CreatedAt = now
	journal.LastUpdatedAt = now
	journal.Version = 1

	for i := range lines {
		if lines[i].TransactionID == "" {
			lines[i].TransactionID = uuid.NewString()
		}
		lines[i].JournalID = journal.JournalID
		lines[i].CreatedAt = now
		lines[i].LastUpdatedAt = now
		lines[i].CreatedBy = journal.CreatedBy
		lines[i].LastUpdatedBy = journal.LastUpdatedBy
		lines[i].Version = 1
	}

	if err := s.journalRepo.SaveJournal(ctx, journal, lines); err != nil {
		return "", fmt.Errorf("failed to save journal: %w", err)
	}

	logger.Info("journal submitted",
		"journalID", journal.JournalID,
		"status", string(journal.Status),
		"lineCount", len(lines))
	return journal.JournalID, nil
}
