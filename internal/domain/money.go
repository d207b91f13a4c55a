package domain

import "github.com/shopspring/decimal"

// MoneyScale is the number of fractional digits the store keeps for amounts.
const MoneyScale = 2

func validateMoney(field string, amount decimal.Decimal, positive bool) *ValidationError {
	if positive && !amount.IsPositive() {
		return NewValidationError(field, "must be greater than zero")
	}
	if amount.IsNegative() {
		return NewValidationError(field, "must not be negative")
	}
	if !amount.Equal(amount.Round(MoneyScale)) {
		return NewValidationError(field, "must have at most two decimal places")
	}
	return nil
}
