package mapping

import (
	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	"github.com/fincore/fx_revaluation_app/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:        d.JournalID,
		CompanyID:        d.CompanyID,
		LedgerID:         d.LedgerID,
		JournalDate:      d.JournalDate,
		Description:      d.Description,
		CurrencyCode:     d.CurrencyCode,
		Reference:        d.Reference,
		DocumentType:     d.DocumentType,
		Status:           models.JournalStatus(d.Status),
		RequiresApproval: d.RequiresApproval,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:        m.JournalID,
		CompanyID:        m.CompanyID,
		LedgerID:         m.LedgerID,
		JournalDate:      m.JournalDate,
		Description:      m.Description,
		CurrencyCode:     m.CurrencyCode,
		Reference:        m.Reference,
		DocumentType:     m.DocumentType,
		Status:           domain.JournalStatus(m.Status),
		RequiresApproval: m.RequiresApproval,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		JournalID:       d.JournalID,
		AccountID:       d.AccountID,
		Amount:          d.Amount,
		TransactionType: models.TransactionType(d.TransactionType),
		CurrencyCode:    d.CurrencyCode,
		Notes:           d.Notes,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		JournalID:       m.JournalID,
		AccountID:       m.AccountID,
		Amount:          m.Amount,
		TransactionType: domain.TransactionType(m.TransactionType),
		CurrencyCode:    m.CurrencyCode,
		Notes:           m.Notes,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
