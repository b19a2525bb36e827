package mapping

import (
	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	"github.com/fincore/fx_revaluation_app/internal/models"
)

// ToDomainRevaluationConfig converts a model RevaluationConfig to its domain form
func ToDomainRevaluationConfig(m models.RevaluationConfig) domain.RevaluationConfig {
	return domain.RevaluationConfig{
		ConfigID:          m.ConfigID,
		CompanyID:         m.CompanyID,
		LedgerID:          m.LedgerID,
		AccountID:         m.AccountID,
		CurrencyCode:      m.CurrencyCode,
		Method:            domain.RevaluationMethod(m.Method),
		GainLossAccountID: m.GainLossAccountID,
		TranslationMethod: domain.TranslationMethod(m.TranslationMethod),
		IsBalanceSheet:    m.IsBalanceSheet,
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalTemplate converts a model JournalTemplate to its domain form
func ToDomainJournalTemplate(m models.JournalTemplate) domain.JournalTemplate {
	return domain.JournalTemplate{
		TemplateID:           m.TemplateID,
		CompanyID:            m.CompanyID,
		LedgerID:             m.LedgerID,
		GainAccountID:        m.GainAccountID,
		LossAccountID:        m.LossAccountID,
		OffsetAccountPattern: m.OffsetAccountPattern,
		DescriptionPattern:   m.DescriptionPattern,
		ReferencePrefix:      m.ReferencePrefix,
		DocumentType:         m.DocumentType,
		AutoPost:             m.AutoPost,
		RequiresApproval:     m.RequiresApproval,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelRevaluationRun converts a domain RevaluationRun to its model form
func ToModelRevaluationRun(d domain.RevaluationRun) models.RevaluationRun {
	return models.RevaluationRun{
		RunID:                  d.RunID,
		CompanyID:              d.CompanyID,
		RunDate:                d.RunDate,
		FiscalYear:             d.FiscalYear,
		FiscalPeriod:           d.FiscalPeriod,
		RunType:                string(d.RunType),
		BaseCurrencyCode:       d.BaseCurrencyCode,
		Status:                 string(d.Status),
		TotalAccountsProcessed: d.TotalAccountsProcessed,
		TotalRevaluations:      d.TotalRevaluations,
		TotalUnrealizedGain:    d.TotalUnrealizedGain,
		TotalUnrealizedLoss:    d.TotalUnrealizedLoss,
		ErrorCount:             d.ErrorCount,
		ErrorSummary:           d.ErrorSummary,
		PostingIDs:             d.PostingIDs,
		StartedAt:              d.StartedAt,
		CompletedAt:            d.CompletedAt,
		ExecutionTimeSeconds:   d.ExecutionTimeSeconds,
		InitiatedBy:            d.InitiatedBy,
	}
}

// ToDomainRevaluationRun converts a model RevaluationRun to its domain form
func ToDomainRevaluationRun(m models.RevaluationRun) domain.RevaluationRun {
	return domain.RevaluationRun{
		RunID:                  m.RunID,
		CompanyID:              m.CompanyID,
		RunDate:                m.RunDate,
		FiscalYear:             m.FiscalYear,
		FiscalPeriod:           m.FiscalPeriod,
		RunType:                domain.RevaluationRunType(m.RunType),
		BaseCurrencyCode:       m.BaseCurrencyCode,
		Status:                 domain.RevaluationRunStatus(m.Status),
		TotalAccountsProcessed: m.TotalAccountsProcessed,
		TotalRevaluations:      m.TotalRevaluations,
		TotalUnrealizedGain:    m.TotalUnrealizedGain,
		TotalUnrealizedLoss:    m.TotalUnrealizedLoss,
		ErrorCount:             m.ErrorCount,
		ErrorSummary:           m.ErrorSummary,
		PostingIDs:             m.PostingIDs,
		StartedAt:              m.StartedAt,
		CompletedAt:            m.CompletedAt,
		ExecutionTimeSeconds:   m.ExecutionTimeSeconds,
		InitiatedBy:            m.InitiatedBy,
	}
}

// ToModelRevaluationDetail converts a domain RevaluationDetail to its model form
func ToModelRevaluationDetail(d domain.RevaluationDetail) models.RevaluationDetail {
	return models.RevaluationDetail{
		DetailID:                        d.DetailID,
		RunID:                           d.RunID,
		AccountID:                       d.AccountID,
		LedgerID:                        d.LedgerID,
		CurrencyCode:                    d.CurrencyCode,
		OpeningBalanceFC:                d.OpeningBalanceFC,
		CurrentBalanceFC:                d.CurrentBalanceFC,
		OpeningBalanceFunc:              d.OpeningBalanceFunc,
		HistoricalRate:                  d.HistoricalRate,
		CurrentRate:                     d.CurrentRate,
		RateDelta:                       d.RateDelta,
		CurrentBalanceFuncAtCurrentRate: d.CurrentBalanceFuncAtCurrentRate,
		UnrealizedGainLoss:              d.UnrealizedGainLoss,
		RevaluationRequired:             d.RevaluationRequired,
		PostingID:                       d.PostingID,
		ErrorMessage:                    d.ErrorMessage,
		CreatedAt:                       d.CreatedAt,
	}
}

// ToDomainRevaluationDetail converts a model RevaluationDetail to its domain form
func ToDomainRevaluationDetail(m models.RevaluationDetail) domain.RevaluationDetail {
	return domain.RevaluationDetail{
		DetailID:                        m.DetailID,
		RunID:                           m.RunID,
		AccountID:                       m.AccountID,
		LedgerID:                        m.LedgerID,
		CurrencyCode:                    m.CurrencyCode,
		OpeningBalanceFC:                m.OpeningBalanceFC,
		CurrentBalanceFC:                m.CurrentBalanceFC,
		OpeningBalanceFunc:              m.OpeningBalanceFunc,
		HistoricalRate:                  m.HistoricalRate,
		CurrentRate:                     m.CurrentRate,
		RateDelta:                       m.RateDelta,
		CurrentBalanceFuncAtCurrentRate: m.CurrentBalanceFuncAtCurrentRate,
		UnrealizedGainLoss:              m.UnrealizedGainLoss,
		RevaluationRequired:             m.RevaluationRequired,
		PostingID:                       m.PostingID,
		ErrorMessage:                    m.ErrorMessage,
		CreatedAt:                       m.CreatedAt,
	}
}

// ToModelBalanceHistory converts a domain AccountBalanceHistory to its model form
func ToModelBalanceHistory(d domain.AccountBalanceHistory) models.AccountBalanceHistory {
	return models.AccountBalanceHistory{
		HistoryID:                    d.HistoryID,
		CompanyID:                    d.CompanyID,
		LedgerID:                     d.LedgerID,
		AccountID:                    d.AccountID,
		BalanceDate:                  d.BalanceDate,
		BalanceFC:                    d.BalanceFC,
		BalanceFunc:                  d.BalanceFunc,
		ExchangeRate:                 d.ExchangeRate,
		CumulativeUnrealizedGainLoss: d.CumulativeUnrealizedGainLoss,
		LastRevaluationDate:          d.LastRevaluationDate,
		CreatedAt:                    d.CreatedAt,
		CreatedBy:                    d.CreatedBy,
	}
}

// ToDomainBalanceHistory converts a model AccountBalanceHistory to its domain form
func ToDomainBalanceHistory(m models.AccountBalanceHistory) domain.AccountBalanceHistory {
	return domain.AccountBalanceHistory{
		HistoryID:                    m.HistoryID,
		CompanyID:                    m.CompanyID,
		LedgerID:                     m.LedgerID,
		AccountID:                    m.AccountID,
		BalanceDate:                  m.BalanceDate,
		BalanceFC:                    m.BalanceFC,
		BalanceFunc:                  m.BalanceFunc,
		ExchangeRate:                 m.ExchangeRate,
		CumulativeUnrealizedGainLoss: m.CumulativeUnrealizedGainLoss,
		LastRevaluationDate:          m.LastRevaluationDate,
		CreatedAt:                    m.CreatedAt,
		CreatedBy:                    m.CreatedBy,
	}
}
