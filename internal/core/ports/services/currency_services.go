package services

import (
	"context"

	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	"github.com/fincore/fx_revaluation_app/internal/dto"
)

// CurrencySvcFacade defines the business operations for currency master data.
type CurrencySvcFacade interface {
	// CreateCurrency registers a new supported currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a currency by its 3-letter code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all supported currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
