package services

import (
	portsrepo "github.com/fincore/fx_revaluation_app/internal/core/ports/repositories"
	portssvc "github.com/fincore/fx_revaluation_app/internal/core/ports/services"
	"github.com/fincore/fx_revaluation_app/internal/platform/config"
)

// NewServiceContainer wires all application services against the repository
// provider and returns the container handed to the HTTP handlers.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	currencySvc := NewCurrencyService(repos.CurrencyRepo)
	exchangeRateSvc := NewExchangeRateService(repos.ExchangeRateRepo, currencySvc)
	journalEntrySvc := NewJournalEntryService(repos.JournalRepo, repos.AccountRepo)
	templateSvc := NewJournalTemplateService(repos.TemplateRepo)
	resolverSvc := NewBalanceResolverService(repos.AccountRepo, repos.HistoryRepo, repos.ExchangeRateRepo)
	postingSvc := NewPostingService(journalEntrySvc, templateSvc, repos.CurrencyRepo, repos.HistoryRepo, repos.RunRepo)
	revaluationSvc := NewRevaluationService(
		repos.RunRepo,
		repos.ConfigRepo,
		repos.CurrencyRepo,
		resolverSvc,
		templateSvc,
		postingSvc,
		cfg.RevalWorkerCount,
		cfg.RevalAccountTimeout,
		cfg.RevalMaterialityThreshold,
	)

	return &portssvc.ServiceContainer{
		Currency:     currencySvc,
		ExchangeRate: exchangeRateSvc,
		Revaluation:  revaluationSvc,
		JournalEntry: journalEntrySvc,
	}
}
