package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevaluationRunStatus is the lifecycle state of a run.
// Transitions: PENDING -> RUNNING -> {COMPLETED, FAILED, CANCELLED}.
type RevaluationRunStatus string

const (
	RunPending   RevaluationRunStatus = "PENDING"
	RunRunning   RevaluationRunStatus = "RUNNING"
	RunCompleted RevaluationRunStatus = "COMPLETED"
	RunFailed    RevaluationRunStatus = "FAILED"
	RunCancelled RevaluationRunStatus = "CANCELLED"
)

// IsTerminal reports whether the status permits no further transitions.
func (s RevaluationRunStatus) IsTerminal() bool {
	return s == RunCompleted || s == RunFailed || s == RunCancelled
}

// RevaluationRunType scopes a run; at most one non-terminal run may exist
// per (company, run date, run type).
type RevaluationRunType string

const (
	RunTypePeriodEnd RevaluationRunType = "PERIOD_END"
	RunTypeDaily     RevaluationRunType = "DAILY"
	RunTypeMonthly   RevaluationRunType = "MONTHLY"
	RunTypeAdHoc     RevaluationRunType = "AD_HOC"
)

// ValidRunType reports whether t is one of the known run types.
func ValidRunType(t RevaluationRunType) bool {
	switch t {
	case RunTypePeriodEnd, RunTypeDaily, RunTypeMonthly, RunTypeAdHoc:
		return true
	}
	return false
}

// RevaluationRun is one execution instance of the engine over a scope.
// Run records are never deleted; they are the primary audit surface.
// CompletedAt and ExecutionTimeSeconds transition once from unset to set.
type RevaluationRun struct {
	RunID                  string               `json:"runID"` // Primary Key (e.g., UUID)
	CompanyID              string               `json:"companyID"`
	RunDate                time.Time            `json:"runDate"`
	FiscalYear             int                  `json:"fiscalYear"`
	FiscalPeriod           int                  `json:"fiscalPeriod"`
	RunType                RevaluationRunType   `json:"runType"`
	BaseCurrencyCode       string               `json:"baseCurrencyCode"`
	Status                 RevaluationRunStatus `json:"status"`
	TotalAccountsProcessed int                  `json:"totalAccountsProcessed"`
	TotalRevaluations      int                  `json:"totalRevaluations"`
	TotalUnrealizedGain    decimal.Decimal      `json:"totalUnrealizedGain"`
	TotalUnrealizedLoss    decimal.Decimal      `json:"totalUnrealizedLoss"` // Stored as a positive magnitude
	ErrorCount             int                  `json:"errorCount"`
	ErrorSummary           string               `json:"errorSummary"`
	PostingIDs             []string             `json:"postingIDs"`
	StartedAt              time.Time            `json:"startedAt"`
	CompletedAt            *time.Time           `json:"completedAt"`
	ExecutionTimeSeconds   float64              `json:"executionTimeSeconds"`
	InitiatedBy            string               `json:"initiatedBy"`
}
