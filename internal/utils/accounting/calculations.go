package accounting

import (
	"fmt"

	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RevaluedLineType returns the side on which the revalued account is adjusted
// for a given unrealized gain/loss amount (positive = gain).
//
// Convention:
// DEBIT-normal accounts (ASSET/EXPENSE): positive delta -> DEBIT, negative -> CREDIT
// CREDIT-normal accounts (LIABILITY/EQUITY/REVENUE): positive delta -> CREDIT, negative -> DEBIT
// The offsetting gain/loss line always takes the opposite side for an equal amount.
func RevaluedLineType(accountType domain.AccountType, gainLoss decimal.Decimal) (domain.TransactionType, error) {
	positive := gainLoss.IsPositive()
	switch accountType {
	case domain.Asset, domain.Expense:
		if positive {
			return domain.Debit, nil
		}
		return domain.Credit, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		if positive {
			return domain.Credit, nil
		}
		return domain.Debit, nil
	default:
		return "", fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// CalculateSignedAmount applies the correct sign to a transaction amount based on account type and transaction type.
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func CalculateSignedAmount(txn domain.Transaction, accountType domain.AccountType) (decimal.Decimal, error) {
	signedAmount := txn.Amount
	isDebit := txn.TransactionType == domain.Debit

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit { // Credit to Asset/Expense
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit { // Debit to Liability/Equity/Revenue
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, txn.AccountID)
	}
	return signedAmount, nil
}

// ValidateBalancedLines checks that a set of journal lines forms a valid
// double-entry posting: at least two lines, positive amounts, and the sum of
// debits equal to the sum of credits.
func ValidateBalancedLines(transactions []domain.Transaction) error {
	if len(transactions) < 2 {
		return fmt.Errorf("journal must have at least two transaction entries")
	}

	zero := decimal.NewFromInt(0)
	debitsSum := zero
	creditsSum := zero

	for _, txn := range transactions {
		if txn.Amount.LessThanOrEqual(zero) {
			return fmt.Errorf("transaction amount must be positive for transaction ID %s", txn.TransactionID)
		}
		if txn.TransactionType == domain.Debit {
			debitsSum = debitsSum.Add(txn.Amount)
		} else {
			creditsSum = creditsSum.Add(txn.Amount)
		}
	}

	if !debitsSum.Equal(creditsSum) {
		return fmt.Errorf("journal entries do not balance: debits sum is %s and credits sum is %s",
			debitsSum.String(), creditsSum.String())
	}

	return nil
}
