package services

import (
	"context"
	"time"

	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	"github.com/fincore/fx_revaluation_app/internal/dto"
)

// ExchangeRateSvcFacade defines the business operations for exchange rate data.
// Rate acquisition itself is external; this facade is the ingest and lookup
// surface for rates that have already been sourced.
type ExchangeRateSvcFacade interface {
	// CreateExchangeRate records a rate for a currency pair and effective date.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)

	// GetRateAsOf retrieves the rate effective for a pair on a date
	// (the latest rate dated on or before asOf).
	GetRateAsOf(ctx context.Context, fromCode, toCode string, asOf time.Time) (*domain.ExchangeRate, error)
}
