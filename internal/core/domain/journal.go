package domain

import "time"

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft           JournalStatus = "DRAFT"
	PendingApproval JournalStatus = "PENDING_APPROVAL"
	Posted          JournalStatus = "POSTED"
	Reversed        JournalStatus = "REVERSED"
)

// Journal represents a single, balanced financial event composed of multiple transactions.
// Revaluation postings are created as journals and handed off to the
// journal-entry/approval subsystem; which state they enter depends on the
// originating template's auto-post/approval flags.
type Journal struct {
	JournalID        string        `json:"journalID"`    // Primary Key (e.g., UUID)
	CompanyID        string        `json:"companyID"`    // FK -> companies (Not Null)
	LedgerID         string        `json:"ledgerID"`     // FK -> ledgers (Not Null)
	JournalDate      time.Time     `json:"journalDate"`  // Date the event occurred
	Description      string        `json:"description"`  // Rendered from the journal template
	CurrencyCode     string        `json:"currencyCode"` // Primary currency of the Journal (Not Null)
	Reference        string        `json:"reference"`    // e.g. "FXREVAL-2026-08-31-..."
	DocumentType     string        `json:"documentType"` // From the journal template
	Status           JournalStatus `json:"status"`
	RequiresApproval bool          `json:"requiresApproval"`
	AuditFields
}
