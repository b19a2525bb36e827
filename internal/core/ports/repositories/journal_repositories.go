package repositories

import (
	"context"

	"github.com/fincore/fx_revaluation_app/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindTransactionsByJournalID retrieves all transactions associated with a single journal ID.
	FindTransactionsByJournalID(ctx context.Context, journalID string) ([]domain.Transaction, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournal persists a journal and its transactions atomically.
	SaveJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
