package models

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
type Journal struct {
	JournalID        string        `db:"journal_id"` // Primary Key (e.g., UUID)
	CompanyID        string        `db:"company_id"`
	LedgerID         string        `db:"ledger_id"`
	JournalDate      time.Time     `db:"journal_date"`
	Description      string        `db:"description"`
	CurrencyCode     string        `db:"currency_code"`
	Reference        string        `db:"reference"`
	DocumentType     string        `db:"document_type"`
	Status           JournalStatus `db:"status"`
	RequiresApproval bool          `db:"requires_approval"`
	AuditFields
}
