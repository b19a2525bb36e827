package services

import (
	"context"

	"github.com/fincore/fx_revaluation_app/internal/core/domain"
)

// JournalEntrySvc is the boundary to the journal-entry subsystem: it accepts a
// balanced posting request and returns the posting identifier, or rejects it.
// Whether the journal is auto-posted or queued for approval is decided by the
// subsystem from the journal's flags; this engine neither posts nor approves.
type JournalEntrySvc interface {
	// SubmitJournal validates and persists a balanced journal with its lines.
	// A rejection surfaces as apperrors.ErrPostingRejected (wrapped).
	SubmitJournal(ctx context.Context, journal domain.Journal, lines []domain.Transaction) (string, error)
}
