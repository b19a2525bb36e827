package domain

// JournalTemplate names, per (company, ledger), the accounts and rendering
// rules used when turning a revaluation result into a posting.
// Maintained externally; read-only to this engine.
type JournalTemplate struct {
	TemplateID           string `json:"templateID"` // Primary Key (e.g., UUID)
	CompanyID            string `json:"companyID"`
	LedgerID             string `json:"ledgerID"`
	GainAccountID        string `json:"gainAccountID"`        // Credited/debited on positive deltas
	LossAccountID        string `json:"lossAccountID"`        // Credited/debited on negative deltas (may equal gain)
	OffsetAccountPattern string `json:"offsetAccountPattern"` // Derivation pattern for offset accounts
	DescriptionPattern   string `json:"descriptionPattern"`   // Supports {account}, {currency}, {date} tokens
	ReferencePrefix      string `json:"referencePrefix"`      // e.g. "FXREVAL"
	DocumentType         string `json:"documentType"`         // e.g. "SA"
	AutoPost             bool   `json:"autoPost"`
	RequiresApproval     bool   `json:"requiresApproval"`
	AuditFields
}
