package services

import (
	"context"
	"fmt"

	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	portsrepo "github.com/fincore/fx_revaluation_app/internal/core/ports/repositories"
	portssvc "github.com/fincore/fx_revaluation_app/internal/core/ports/services"
	"github.com/fincore/fx_revaluation_app/internal/middleware"
	"github.com/fincore/fx_revaluation_app/internal/utils"
	"github.com/fincore/fx_revaluation_app/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const referenceDateFormat = "2006-01-02"

// postingService turns accepted revaluation results into balanced journal
// postings and maintains the append-only balance history. Calculation stays
// exact; amounts are rounded to the base currency's minor unit only here,
// when the posting lines are built.
type postingService struct {
	journalSvc   portssvc.JournalEntrySvc
	templateSvc  portssvc.JournalTemplateSvc
	currencyRepo portsrepo.CurrencyReader
	historyRepo  portsrepo.BalanceHistoryRepositoryFacade
	runRepo      portsrepo.RevaluationRunRepositoryWithTx
}

// NewPostingService creates a new PostingService.
func NewPostingService(
	journalSvc portssvc.JournalEntrySvc,
	templateSvc portssvc.JournalTemplateSvc,
	currencyRepo portsrepo.CurrencyReader,
	historyRepo portsrepo.BalanceHistoryRepositoryFacade,
	runRepo portsrepo.RevaluationRunRepositoryWithTx,
) portssvc.PostingSvcFacade {
	return &postingService{
		journalSvc:   journalSvc,
		templateSvc:  templateSvc,
		currencyRepo: currencyRepo,
		historyRepo:  historyRepo,
		runRepo:      runRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// GeneratePosting builds the two-line adjustment for a revaluation result,
// submits it to the journal-entry subsystem and, in one transaction, appends
// the balance history record and attaches the posting ID to the run detail.
// If the journal is rejected nothing is written.
func (s *postingService) GeneratePosting(ctx context.Context, run *domain.RevaluationRun, res domain.RevaluationResult, cfg domain.RevaluationConfig, tmpl *domain.JournalTemplate, detailID string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	snap := res.Snapshot

	baseCurrency, err := s.currencyRepo.FindCurrencyByCode(ctx, run.BaseCurrencyCode)
	if err != nil {
		return "", fmt.Errorf("failed to load base currency %s: %w", run.BaseCurrencyCode, err)
	}

	amount := utils.RoundToCurrencyPrecision(res.UnrealizedGainLoss.Abs(), *baseCurrency)
	if amount.IsZero() {
		// The delta vanishes at the currency's minor unit. No posting is
		// produced, but the history baseline still advances to the run date.
		logger.Info("revaluation delta rounds to zero, recording history only",
			"runID", run.RunID,
			"accountID", snap.AccountID)
		if err := s.historyRepo.AppendHistory(ctx, s.buildHistory(run, res, false)); err != nil {
			return "", fmt.Errorf("failed to append balance history for account %s: %w", snap.AccountID, err)
		}
		return "", nil
	}

	revaluedSide, err := accounting.RevaluedLineType(snap.AccountType, res.UnrealizedGainLoss)
	if err != nil {
		return "", fmt.Errorf("cannot determine posting side for account %s: %w", snap.AccountID, err)
	}

	offsetAccountID := cfg.GainLossAccountID
	if offsetAccountID == "" {
		offsetAccountID = s.templateSvc.ResolveOffsetAccount(tmpl, res, snap.AccountID, snap.CurrencyCode)
	}

	journal := domain.Journal{
		CompanyID:        run.CompanyID,
		LedgerID:         cfg.LedgerID,
		JournalDate:      run.RunDate,
		Description:      s.templateSvc.RenderDescription(tmpl, snap.AccountID, snap.CurrencyCode, run.RunDate),
		CurrencyCode:     run.BaseCurrencyCode,
		Reference:        s.buildReference(tmpl, run),
		DocumentType:     tmpl.DocumentType,
		Status:           journalStatusFor(tmpl),
		RequiresApproval: tmpl.RequiresApproval,
		AuditFields:      domain.AuditFields{CreatedBy: run.InitiatedBy, LastUpdatedBy: run.InitiatedBy},
	}

	lines := []domain.Transaction{
		{
			TransactionID:   uuid.NewString(),
			AccountID:       snap.AccountID,
			Amount:          amount,
			TransactionType: revaluedSide,
			CurrencyCode:    run.BaseCurrencyCode,
			Notes:           fmt.Sprintf("FX revaluation adjustment (%s)", snap.CurrencyCode),
		},
		{
			TransactionID:   uuid.NewString(),
			AccountID:       offsetAccountID,
			Amount:          amount,
			TransactionType: revaluedSide.Opposite(),
			CurrencyCode:    run.BaseCurrencyCode,
			Notes:           fmt.Sprintf("FX unrealized gain/loss offset (%s)", snap.CurrencyCode),
		},
	}

	postingID, err := s.journalSvc.SubmitJournal(ctx, journal, lines)
	if err != nil {
		return "", fmt.Errorf("posting submission failed for account %s: %w", snap.AccountID, err)
	}

	// History append and detail attach commit together: the run detail never
	// references a posting whose history record is missing, and vice versa.
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		if err := s.historyRepo.AppendHistoryTx(ctx, tx, s.buildHistory(run, res, true)); err != nil {
			return fmt.Errorf("failed to append balance history for account %s: %w", snap.AccountID, err)
		}
		if err := s.runRepo.AttachPostingToDetail(ctx, tx, detailID, postingID); err != nil {
			return fmt.Errorf("failed to attach posting %s to detail %s: %w", postingID, detailID, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	logger.Info("revaluation posting generated",
		"runID", run.RunID,
		"accountID", snap.AccountID,
		"postingID", postingID,
		"amount", amount.String())
	return postingID, nil
}

// RecordHistory appends the balance history record for a result that produced
// no posting, so the next run's opening reference still advances.
func (s *postingService) RecordHistory(ctx context.Context, run *domain.RevaluationRun, res domain.RevaluationResult) error {
	if err := s.historyRepo.AppendHistory(ctx, s.buildHistory(run, res, false)); err != nil {
		return fmt.Errorf("failed to append balance history for account %s: %w", res.Snapshot.AccountID, err)
	}
	return nil
}

func (s *postingService) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.runRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = s.runRepo.Rollback(ctx, tx)
		return err
	}
	if err := s.runRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// buildHistory produces the run-date history record. When a posting was made
// the functional value and rate move to the current ones and the cumulative
// gain/loss advances; otherwise the booked values carry forward unchanged.
func (s *postingService) buildHistory(run *domain.RevaluationRun, res domain.RevaluationResult, posted bool) domain.AccountBalanceHistory {
	snap := res.Snapshot
	history := domain.AccountBalanceHistory{
		HistoryID:                    uuid.NewString(),
		CompanyID:                    snap.CompanyID,
		LedgerID:                     snap.LedgerID,
		AccountID:                    snap.AccountID,
		BalanceDate:                  run.RunDate,
		BalanceFC:                    snap.CurrentBalanceFC,
		BalanceFunc:                  snap.OpeningBalanceFunc,
		ExchangeRate:                 snap.HistoricalRate,
		CumulativeUnrealizedGainLoss: snap.CumulativeUnrealizedGainLoss,
		CreatedBy:                    run.InitiatedBy,
	}
	if posted {
		runDate := run.RunDate
		history.BalanceFunc = res.CurrentBalanceFuncAtCurrentRate
		history.ExchangeRate = snap.CurrentRate
		history.CumulativeUnrealizedGainLoss = snap.CumulativeUnrealizedGainLoss.Add(res.UnrealizedGainLoss)
		history.LastRevaluationDate = &runDate
	}
	return history
}

func (s *postingService) buildReference(tmpl *domain.JournalTemplate, run *domain.RevaluationRun) string {
	prefix := tmpl.ReferencePrefix
	if prefix == "" {
		prefix = "FXREVAL"
	}
	return fmt.Sprintf("%s-%s-%s", prefix, run.RunDate.Format(referenceDateFormat), run.RunID[:8])
}

// journalStatusFor derives the submitted journal's initial status from the
// template's flags. Approval requirements win over auto-posting.
func journalStatusFor(tmpl *domain.JournalTemplate) domain.JournalStatus {
	switch {
	case tmpl.RequiresApproval:
		return domain.PendingApproval
	case tmpl.AutoPost:
		return domain.Posted
	default:
		return domain.Draft
	}
}
