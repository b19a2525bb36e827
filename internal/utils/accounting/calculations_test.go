package accounting

import (
	"testing"

	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevaluedLineType_DebitNormalAccounts(t *testing.T) {
	gain := decimal.RequireFromString("2600")
	loss := decimal.RequireFromString("-400")

	side, err := RevaluedLineType(domain.Asset, gain)
	require.NoError(t, err)
	assert.Equal(t, domain.Debit, side)

	side, err = RevaluedLineType(domain.Asset, loss)
	require.NoError(t, err)
	assert.Equal(t, domain.Credit, side)

	side, err = RevaluedLineType(domain.Expense, gain)
	require.NoError(t, err)
	assert.Equal(t, domain.Debit, side)
}

func TestRevaluedLineType_CreditNormalAccounts(t *testing.T) {
	gain := decimal.RequireFromString("2600")
	loss := decimal.RequireFromString("-400")

	side, err := RevaluedLineType(domain.Liability, gain)
	require.NoError(t, err)
	assert.Equal(t, domain.Credit, side)

	side, err = RevaluedLineType(domain.Liability, loss)
	require.NoError(t, err)
	assert.Equal(t, domain.Debit, side)

	side, err = RevaluedLineType(domain.Revenue, gain)
	require.NoError(t, err)
	assert.Equal(t, domain.Credit, side)
}

func TestRevaluedLineType_UnknownType(t *testing.T) {
	_, err := RevaluedLineType(domain.AccountType("MYSTERY"), decimal.NewFromInt(1))
	assert.Error(t, err)
}

func TestRevaluedLineType_OffsetIsOpposite(t *testing.T) {
	side, err := RevaluedLineType(domain.Asset, decimal.RequireFromString("100"))
	require.NoError(t, err)
	assert.Equal(t, domain.Credit, side.Opposite())
	assert.Equal(t, side, side.Opposite().Opposite())
}

func TestValidateBalancedLines_Balanced(t *testing.T) {
	amount := decimal.RequireFromString("2600.00")
	lines := []domain.Transaction{
		{TransactionID: "t1", Amount: amount, TransactionType: domain.Debit},
		{TransactionID: "t2", Amount: amount, TransactionType: domain.Credit},
	}

	assert.NoError(t, ValidateBalancedLines(lines))
}

func TestValidateBalancedLines_MultiLineBalanced(t *testing.T) {
	lines := []domain.Transaction{
		{TransactionID: "t1", Amount: decimal.RequireFromString("100"), TransactionType: domain.Debit},
		{TransactionID: "t2", Amount: decimal.RequireFromString("60"), TransactionType: domain.Credit},
		{TransactionID: "t3", Amount: decimal.RequireFromString("40"), TransactionType: domain.Credit},
	}

	assert.NoError(t, ValidateBalancedLines(lines))
}

func TestValidateBalancedLines_TooFewLines(t *testing.T) {
	lines := []domain.Transaction{
		{TransactionID: "t1", Amount: decimal.NewFromInt(10), TransactionType: domain.Debit},
	}

	assert.Error(t, ValidateBalancedLines(lines))
}

func TestValidateBalancedLines_NonPositiveAmount(t *testing.T) {
	lines := []domain.Transaction{
		{TransactionID: "t1", Amount: decimal.Zero, TransactionType: domain.Debit},
		{TransactionID: "t2", Amount: decimal.Zero, TransactionType: domain.Credit},
	}

	assert.Error(t, ValidateBalancedLines(lines))
}

func TestValidateBalancedLines_Unbalanced(t *testing.T) {
	lines := []domain.Transaction{
		{TransactionID: "t1", Amount: decimal.RequireFromString("100"), TransactionType: domain.Debit},
		{TransactionID: "t2", Amount: decimal.RequireFromString("99.99"), TransactionType: domain.Credit},
	}

	assert.Error(t, ValidateBalancedLines(lines))
}

func TestCalculateSignedAmount(t *testing.T) {
	txn := domain.Transaction{AccountID: "a1", Amount: decimal.RequireFromString("50"), TransactionType: domain.Debit}

	signed, err := CalculateSignedAmount(txn, domain.Asset)
	require.NoError(t, err)
	assert.True(t, signed.Equal(decimal.RequireFromString("50")))

	signed, err = CalculateSignedAmount(txn, domain.Liability)
	require.NoError(t, err)
	assert.True(t, signed.Equal(decimal.RequireFromString("-50")))

	txn.TransactionType = domain.Credit
	signed, err = CalculateSignedAmount(txn, domain.Asset)
	require.NoError(t, err)
	assert.True(t, signed.Equal(decimal.RequireFromString("-50")))
}
