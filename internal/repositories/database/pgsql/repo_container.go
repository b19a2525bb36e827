package pgsql

import (
	portsrepo "github.com/fincore/fx_revaluation_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx-backed repositories against one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	configRepo := newPgxRevaluationConfigRepository(pool)

	return portsrepo.RepositoryProvider{
		CurrencyRepo:     newPgxCurrencyRepository(pool),
		ExchangeRateRepo: newPgxExchangeRateRepository(pool),
		AccountRepo:      newPgxAccountRepository(pool),
		ConfigRepo:       configRepo,
		TemplateRepo:     configRepo,
		RunRepo:          newPgxRevaluationRunRepository(pool),
		HistoryRepo:      newPgxBalanceHistoryRepository(pool),
		JournalRepo:      newPgxJournalRepository(pool),
	}
}
