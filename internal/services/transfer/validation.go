package transfer

import "github.com/shopspring/decimal"

// ValidateAmount applies the shared amount policy: positive, within the
// fixed 1..10000 range, at most two decimal places.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrAmountNotPositive
	}
	if !amount.Equal(amount.Truncate(MaxDecimalPlaces)) {
		return ErrAmountPrecision
	}
	if amount.LessThan(MinAmount) {
		return ErrAmountBelowMinimum
	}
	if amount.GreaterThan(MaxAmount) {
		return ErrAmountAboveMaximum
	}
	return nil
}
