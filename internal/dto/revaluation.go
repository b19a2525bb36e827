package dto

import (
	"time"

	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StartRevaluationRunRequest defines the scope of a new revaluation run.
type StartRevaluationRunRequest struct {
	CompanyID        string    `json:"companyID" binding:"required"`
	RunDate          time.Time `json:"runDate" binding:"required"`
	FiscalYear       int       `json:"fiscalYear" binding:"required,gte=1900"`
	FiscalPeriod     int       `json:"fiscalPeriod" binding:"required,gte=1,lte=16"`
	RunType          string    `json:"runType" binding:"required,oneof=PERIOD_END DAILY MONTHLY AD_HOC"`
	BaseCurrencyCode string    `json:"baseCurrencyCode" binding:"required,len=3,uppercase"`
}

// RevaluationRunResponse is the API projection of a run snapshot.
type RevaluationRunResponse struct {
	RunID                  string          `json:"runID"`
	CompanyID              string          `json:"companyID"`
	RunDate                time.Time       `json:"runDate"`
	FiscalYear             int             `json:"fiscalYear"`
	FiscalPeriod           int             `json:"fiscalPeriod"`
	RunType                string          `json:"runType"`
	BaseCurrencyCode       string          `json:"baseCurrencyCode"`
	Status                 string          `json:"status"`
	TotalAccountsProcessed int             `json:"totalAccountsProcessed"`
	TotalRevaluations      int             `json:"totalRevaluations"`
	TotalUnrealizedGain    decimal.Decimal `json:"totalUnrealizedGain"`
	TotalUnrealizedLoss    decimal.Decimal `json:"totalUnrealizedLoss"`
	ErrorCount             int             `json:"errorCount"`
	ErrorSummary           string          `json:"errorSummary,omitempty"`
	PostingIDs             []string        `json:"postingIDs,omitempty"`
	StartedAt              time.Time       `json:"startedAt"`
	CompletedAt            *time.Time      `json:"completedAt,omitempty"`
	ExecutionTimeSeconds   float64         `json:"executionTimeSeconds"`
	InitiatedBy            string          `json:"initiatedBy"`
}

// ToRevaluationRunResponse converts a domain.RevaluationRun to its API projection.
func ToRevaluationRunResponse(run *domain.RevaluationRun) RevaluationRunResponse {
	return RevaluationRunResponse{
		RunID:                  run.RunID,
		CompanyID:              run.CompanyID,
		RunDate:                run.RunDate,
		FiscalYear:             run.FiscalYear,
		FiscalPeriod:           run.FiscalPeriod,
		RunType:                string(run.RunType),
		BaseCurrencyCode:       run.BaseCurrencyCode,
		Status:                 string(run.Status),
		TotalAccountsProcessed: run.TotalAccountsProcessed,
		TotalRevaluations:      run.TotalRevaluations,
		TotalUnrealizedGain:    run.TotalUnrealizedGain,
		TotalUnrealizedLoss:    run.TotalUnrealizedLoss,
		ErrorCount:             run.ErrorCount,
		ErrorSummary:           run.ErrorSummary,
		PostingIDs:             run.PostingIDs,
		StartedAt:              run.StartedAt,
		CompletedAt:            run.CompletedAt,
		ExecutionTimeSeconds:   run.ExecutionTimeSeconds,
		InitiatedBy:            run.InitiatedBy,
	}
}

// RevaluationDetailResponse is the API projection of a per-account outcome.
type RevaluationDetailResponse struct {
	DetailID                        string          `json:"detailID"`
	RunID                           string          `json:"runID"`
	AccountID                       string          `json:"accountID"`
	LedgerID                        string          `json:"ledgerID"`
	CurrencyCode                    string          `json:"currencyCode"`
	OpeningBalanceFC                decimal.Decimal `json:"openingBalanceFC"`
	CurrentBalanceFC                decimal.Decimal `json:"currentBalanceFC"`
	OpeningBalanceFunc              decimal.Decimal `json:"openingBalanceFunc"`
	HistoricalRate                  decimal.Decimal `json:"historicalRate"`
	CurrentRate                     decimal.Decimal `json:"currentRate"`
	RateDelta                       decimal.Decimal `json:"rateDelta"`
	CurrentBalanceFuncAtCurrentRate decimal.Decimal `json:"currentBalanceFuncAtCurrentRate"`
	UnrealizedGainLoss              decimal.Decimal `json:"unrealizedGainLoss"`
	RevaluationRequired             bool            `json:"revaluationRequired"`
	PostingID                       *string         `json:"postingID,omitempty"`
	ErrorMessage                    *string         `json:"errorMessage,omitempty"`
	CreatedAt                       time.Time       `json:"createdAt"`
}

// ToRevaluationDetailResponse converts a domain.RevaluationDetail to its API projection.
func ToRevaluationDetailResponse(d domain.RevaluationDetail) RevaluationDetailResponse {
	return RevaluationDetailResponse{
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

// ListRunDetailsResponse is the token-paginated details projection.
type ListRunDetailsResponse struct {
	Details   []RevaluationDetailResponse `json:"details"`
	NextToken *string                     `json:"nextToken,omitempty"`
}

// ToListRunDetailsResponse converts details plus a pagination token to the API projection.
func ToListRunDetailsResponse(details []domain.RevaluationDetail, nextToken *string) ListRunDetailsResponse {
	res := make([]RevaluationDetailResponse, len(details))
	for i, d := range details {
		res[i] = ToRevaluationDetailResponse(d)
	}
	return ListRunDetailsResponse{Details: res, NextToken: nextToken}
}
