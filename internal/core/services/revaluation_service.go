package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fincore/fx_revaluation_app/internal/apperrors"
	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	portsrepo "github.com/fincore/fx_revaluation_app/internal/core/ports/repositories"
	portssvc "github.com/fincore/fx_revaluation_app/internal/core/ports/services"
	"github.com/fincore/fx_revaluation_app/internal/dto"
	"github.com/fincore/fx_revaluation_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// maxErrorSummaryEntries caps how many per-account messages flow into the
// run-level error summary.
const maxErrorSummaryEntries = 5

// revaluationService orchestrates the run lifecycle: it creates the run
// record, fans account work out over a bounded worker pool, aggregates the
// outcomes and finalizes the run exactly once. Per-account failures are
// recorded on the detail and never fail the run.
type revaluationService struct {
	runRepo      portsrepo.RevaluationRunRepositoryWithTx
	configRepo   portsrepo.RevaluationConfigReader
	currencyRepo portsrepo.CurrencyReader
	resolverSvc  portssvc.BalanceResolverSvc
	templateSvc  portssvc.JournalTemplateSvc
	postingSvc   portssvc.PostingSvcFacade

	workerCount          int
	accountTimeout       time.Duration
	materialityThreshold decimal.Decimal

	// synchronous runs execution inline in StartRun instead of a goroutine.
	synchronous bool

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

// RevaluationOption customizes a revaluationService.
type RevaluationOption func(*revaluationService)

// WithSynchronousExecution makes StartRun block until the run finishes.
func WithSynchronousExecution() RevaluationOption {
	return func(s *revaluationService) {
		s.synchronous = true
	}
}

// NewRevaluationService creates a new RevaluationService.
func NewRevaluationService(
	runRepo portsrepo.RevaluationRunRepositoryWithTx,
	configRepo portsrepo.RevaluationConfigReader,
	currencyRepo portsrepo.CurrencyReader,
	resolverSvc portssvc.BalanceResolverSvc,
	templateSvc portssvc.JournalTemplateSvc,
	postingSvc portssvc.PostingSvcFacade,
	workerCount int,
	accountTimeout time.Duration,
	materialityThreshold decimal.Decimal,
	opts ...RevaluationOption,
) portssvc.RevaluationSvcFacade {
	if workerCount < 1 {
		workerCount = 1
	}
	if accountTimeout <= 0 {
		accountTimeout = 30 * time.Second
	}
	s := &revaluationService{
		runRepo:              runRepo,
		configRepo:           configRepo,
		currencyRepo:         currencyRepo,
		resolverSvc:          resolverSvc,
		templateSvc:          templateSvc,
		postingSvc:           postingSvc,
		workerCount:          workerCount,
		accountTimeout:       accountTimeout,
		materialityThreshold: materialityThreshold,
		cancels:              make(map[string]context.CancelFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.RevaluationSvcFacade = (*revaluationService)(nil)

func (s *revaluationService) StartRun(ctx context.Context, req dto.StartRevaluationRunRequest, initiatorUserID string) (*domain.RevaluationRun, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	runType := domain.RevaluationRunType(req.RunType)
	if !domain.ValidRunType(runType) {
		return nil, fmt.Errorf("%w: unknown run type '%s'", apperrors.ErrValidation, req.RunType)
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.BaseCurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: base currency '%s' does not exist", apperrors.ErrValidation, req.BaseCurrencyCode)
		}
		return nil, fmt.Errorf("failed to validate base currency: %w", err)
	}

	// Scope uniqueness is keyed on the calendar day, so the requested date is
	// normalized to UTC midnight before it reaches the insert guard.
	runDate := req.RunDate.In(time.UTC)
	runDate = time.Date(runDate.Year(), runDate.Month(), runDate.Day(), 0, 0, 0, 0, time.UTC)

	run := domain.RevaluationRun{
		RunID:               uuid.NewString(),
		CompanyID:           req.CompanyID,
		RunDate:             runDate,
		FiscalYear:          req.FiscalYear,
		FiscalPeriod:        req.FiscalPeriod,
		RunType:             runType,
		BaseCurrencyCode:    req.BaseCurrencyCode,
		Status:              domain.RunRunning,
		TotalUnrealizedGain: decimal.Zero,
		TotalUnrealizedLoss: decimal.Zero,
		StartedAt:           time.Now(),
		InitiatedBy:         initiatorUserID,
	}

	// The insert enforces scope uniqueness: a concurrent start for the same
	// (company, date, run type) loses with ErrRunAlreadyActive.
	if err := s.runRepo.CreateRun(ctx, run); err != nil {
		return nil, err
	}

	// Execution survives the HTTP request; only an explicit CancelRun stops it.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.mu.Lock()
	s.cancels[run.RunID] = cancel
	s.mu.Unlock()

	logger.Info("revaluation run started",
		"runID", run.RunID,
		"companyID", run.CompanyID,
		"runType", string(run.RunType),
		"runDate", run.RunDate.Format("2006-01-02"))

	if s.synchronous {
		s.executeRun(runCtx, run)
	} else {
		go s.executeRun(runCtx, run)
	}
	return &run, nil
}

func (s *revaluationService) GetRun(ctx context.Context, runID string) (*domain.RevaluationRun, error) {
	run, err := s.runRepo.FindRunByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to find revaluation run %s: %w", runID, err)
	}
	return run, nil
}

func (s *revaluationService) ListRunDetails(ctx context.Context, runID string, limit int, nextToken *string) ([]domain.RevaluationDetail, *string, error) {
	if _, err := s.runRepo.FindRunByID(ctx, runID); err != nil {
		return nil, nil, fmt.Errorf("failed to find revaluation run %s: %w", runID, err)
	}
	return s.runRepo.ListRunDetails(ctx, runID, limit, nextToken)
}

// CancelRun requests best-effort cancellation: dispatching stops, in-flight
// account tasks run to completion, and the run finalizes as CANCELLED.
func (s *revaluationService) CancelRun(ctx context.Context, runID string) error {
	run, err := s.runRepo.FindRunByID(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to find revaluation run %s: %w", runID, err)
	}
	if run.Status.IsTerminal() {
		return fmt.Errorf("%w: run %s is already %s", apperrors.ErrRunNotCancellable, runID, run.Status)
	}

	s.mu.Lock()
	cancel, ok := s.cancels[runID]
	s.mu.Unlock()
	if ok {
		cancel()
		return nil
	}

	// No live executor for this run (e.g. the process restarted while the run
	// was active). Finalize the record directly.
	if err := s.runRepo.UpdateRunStatus(ctx, runID, domain.RunCancelled, "cancelled with no live executor"); err != nil {
		return fmt.Errorf("failed to cancel revaluation run %s: %w", runID, err)
	}
	return nil
}

// runAggregate collects per-account outcomes across the worker pool.
type runAggregate struct {
	mu            sync.Mutex
	processed     int
	revaluations  int
	gain          decimal.Decimal
	loss          decimal.Decimal
	errorCount    int
	errorMessages []string
	postingIDs    []string
}

func newRunAggregate() *runAggregate {
	return &runAggregate{gain: decimal.Zero, loss: decimal.Zero}
}

func (a *runAggregate) recordProcessed(res domain.RevaluationResult, postingID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.processed++
	if postingID != "" {
		a.revaluations++
		a.postingIDs = append(a.postingIDs, postingID)
	}
	if res.UnrealizedGainLoss.IsPositive() {
		a.gain = a.gain.Add(res.UnrealizedGainLoss)
	} else {
		a.loss = a.loss.Add(res.UnrealizedGainLoss.Abs())
	}
}

func (a *runAggregate) recordError(accountID string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.processed++
	a.errorCount++
	if len(a.errorMessages) < maxErrorSummaryEntries {
		a.errorMessages = append(a.errorMessages, fmt.Sprintf("%s: %v", accountID, err))
	}
}

func (a *runAggregate) summary() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.errorCount == 0 {
		return ""
	}
	msg := strings.Join(a.errorMessages, "; ")
	if a.errorCount > len(a.errorMessages) {
		msg = fmt.Sprintf("%s; and %d more", msg, a.errorCount-len(a.errorMessages))
	}
	return msg
}

// executeRun drives one run to a terminal state. It must not return without
// finalizing the run record.
func (s *revaluationService) executeRun(ctx context.Context, run domain.RevaluationRun) {
	logger := middleware.GetLoggerFromCtx(ctx)
	defer func() {
		s.mu.Lock()
		if cancel, ok := s.cancels[run.RunID]; ok {
			cancel()
			delete(s.cancels, run.RunID)
		}
		s.mu.Unlock()
	}()

	configs, err := s.configRepo.ListActiveConfigs(ctx, run.CompanyID)
	if err != nil {
		logger.Error("revaluation run failed to enumerate configs", "runID", run.RunID, "error", err)
		s.finalize(run, domain.RunFailed, newRunAggregate(), fmt.Sprintf("failed to enumerate revaluation configs: %v", err))
		return
	}

	agg := newRunAggregate()
	templates := newTemplateCache(s.templateSvc)

	g := new(errgroup.Group)
	g.SetLimit(s.workerCount)
	for _, cfg := range configs {
		if ctx.Err() != nil {
			break
		}
		cfg := cfg
		g.Go(func() error {
			// In-flight work is never interrupted by cancellation; each task
			// gets its own deadline instead.
			taskCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.accountTimeout)
			defer cancel()
			s.processAccount(taskCtx, run, cfg, templates, agg)
			return nil
		})
	}
	_ = g.Wait()

	status := domain.RunCompleted
	if ctx.Err() != nil {
		status = domain.RunCancelled
	}
	s.finalize(run, status, agg, agg.summary())
	logger.Info("revaluation run finished",
		"runID", run.RunID,
		"status", string(status),
		"accountsProcessed", agg.processed,
		"revaluations", agg.revaluations,
		"errors", agg.errorCount)
}

// processAccount handles one eligible account end to end. Every failure path
// leaves a detail row behind so the run's audit surface stays complete.
func (s *revaluationService) processAccount(ctx context.Context, run domain.RevaluationRun, cfg domain.RevaluationConfig, templates *templateCache, agg *runAggregate) {
	logger := middleware.GetLoggerFromCtx(ctx)

	snap, err := s.resolverSvc.Resolve(ctx, cfg, run.RunDate, run.BaseCurrencyCode)
	if err != nil {
		logger.Warn("account revaluation skipped",
			"runID", run.RunID, "accountID", cfg.AccountID, "error", err)
		s.saveErrorDetail(ctx, run, cfg, err, agg)
		return
	}

	res := Calculate(*snap, s.materialityThreshold)
	detail := buildDetail(run, cfg, res)
	if err := s.runRepo.SaveDetail(ctx, detail); err != nil {
		logger.Error("failed to save revaluation detail",
			"runID", run.RunID, "accountID", cfg.AccountID, "error", err)
		agg.recordError(cfg.AccountID, err)
		return
	}

	if !res.RevaluationRequired {
		if err := s.postingSvc.RecordHistory(ctx, &run, res); err != nil {
			s.markDetailError(ctx, detail.DetailID, err)
			agg.recordError(cfg.AccountID, err)
			return
		}
		agg.recordProcessed(res, "")
		return
	}

	tmpl, err := templates.resolve(ctx, run.CompanyID, cfg.LedgerID)
	if err != nil {
		s.markDetailError(ctx, detail.DetailID, err)
		agg.recordError(cfg.AccountID, err)
		return
	}

	postingID, err := s.postingSvc.GeneratePosting(ctx, &run, res, cfg, tmpl, detail.DetailID)
	if err != nil {
		logger.Warn("posting generation failed",
			"runID", run.RunID, "accountID", cfg.AccountID, "error", err)
		s.markDetailError(ctx, detail.DetailID, err)
		agg.recordError(cfg.AccountID, err)
		return
	}
	agg.recordProcessed(res, postingID)
}

func (s *revaluationService) saveErrorDetail(ctx context.Context, run domain.RevaluationRun, cfg domain.RevaluationConfig, cause error, agg *runAggregate) {
	msg := cause.Error()
	detail := domain.RevaluationDetail{
		DetailID:     uuid.NewString(),
		RunID:        run.RunID,
		AccountID:    cfg.AccountID,
		LedgerID:     cfg.LedgerID,
		CurrencyCode: cfg.CurrencyCode,
		ErrorMessage: &msg,
		CreatedAt:    time.Now(),
	}
	if err := s.runRepo.SaveDetail(ctx, detail); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("failed to save error detail",
			"runID", run.RunID, "accountID", cfg.AccountID, "error", err)
	}
	agg.recordError(cfg.AccountID, cause)
}

func (s *revaluationService) markDetailError(ctx context.Context, detailID string, cause error) {
	if err := s.runRepo.SetDetailError(ctx, detailID, cause.Error()); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("failed to set detail error",
			"detailID", detailID, "error", err)
	}
}

func (s *revaluationService) finalize(run domain.RevaluationRun, status domain.RevaluationRunStatus, agg *runAggregate, errorSummary string) {
	// Finalization must outlive any cancelled run context.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	agg.mu.Lock()
	now := time.Now()
	run.Status = status
	run.TotalAccountsProcessed = agg.processed
	run.TotalRevaluations = agg.revaluations
	run.TotalUnrealizedGain = agg.gain
	run.TotalUnrealizedLoss = agg.loss
	run.ErrorCount = agg.errorCount
	run.ErrorSummary = errorSummary
	run.PostingIDs = agg.postingIDs
	run.CompletedAt = &now
	run.ExecutionTimeSeconds = now.Sub(run.StartedAt).Seconds()
	agg.mu.Unlock()

	if err := s.runRepo.FinalizeRun(ctx, run); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("failed to finalize revaluation run",
			"runID", run.RunID, "status", string(status), "error", err)
	}
}

// buildDetail snapshots a calculation outcome into its immutable audit record.
func buildDetail(run domain.RevaluationRun, cfg domain.RevaluationConfig, res domain.RevaluationResult) domain.RevaluationDetail {
	snap := res.Snapshot
	return domain.RevaluationDetail{
		DetailID:                        uuid.NewString(),
		RunID:                           run.RunID,
		AccountID:                       snap.AccountID,
		LedgerID:                        cfg.LedgerID,
		CurrencyCode:                    snap.CurrencyCode,
		OpeningBalanceFC:                snap.OpeningBalanceFC,
		CurrentBalanceFC:                snap.CurrentBalanceFC,
		OpeningBalanceFunc:              snap.OpeningBalanceFunc,
		HistoricalRate:                  snap.HistoricalRate,
		CurrentRate:                     snap.CurrentRate,
		RateDelta:                       res.RateDelta,
		CurrentBalanceFuncAtCurrentRate: res.CurrentBalanceFuncAtCurrentRate,
		UnrealizedGainLoss:              res.UnrealizedGainLoss,
		RevaluationRequired:             res.RevaluationRequired,
		CreatedAt:                       time.Now(),
	}
}

// templateCache memoizes template resolution per ledger within a single run,
// including negative results, so a missing template is reported once per
// account without hammering the repository.
type templateCache struct {
	svc portssvc.JournalTemplateSvc

	mu      sync.Mutex
	entries map[string]templateCacheEntry
}

type templateCacheEntry struct {
	tmpl *domain.JournalTemplate
	err  error
}

func newTemplateCache(svc portssvc.JournalTemplateSvc) *templateCache {
	return &templateCache{svc: svc, entries: make(map[string]templateCacheEntry)}
}

func (c *templateCache) resolve(ctx context.Context, companyID, ledgerID string) (*domain.JournalTemplate, error) {
	key := companyID + "/" + ledgerID
	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if ok {
		return entry.tmpl, entry.err
	}

	tmpl, err := c.svc.ResolveTemplate(ctx, companyID, ledgerID)
	c.mu.Lock()
	c.entries[key] = templateCacheEntry{tmpl: tmpl, err: err}
	c.mu.Unlock()
	return tmpl, err
}
