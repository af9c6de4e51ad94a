package transfer

import "errors"

// Engine errors. Handlers map these onto status codes; anything not listed
// here surfaces as ErrTransactionFailed without leaking storage details.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserBlocked          = errors.New("account is blocked")
	ErrRecipientNotFound    = errors.New("recipient not found")
	ErrInvalidRecipient     = errors.New("recipient search parameter not valid")
	ErrSelfTransfer         = errors.New("cannot create transaction with self")
	ErrDuplicateTransaction = errors.New("duplicate transaction: wait 30 seconds before repeating an identical transfer")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrTransactionFailed    = errors.New("transaction failed")
)

// Amount validation errors. Each violation is distinct so the boundary can
// report exactly what was wrong.
var (
	ErrAmountNotPositive  = errors.New("amount must be greater than zero")
	ErrAmountBelowMinimum = errors.New("amount is below the minimum of 1")
	ErrAmountAboveMaximum = errors.New("amount exceeds the maximum of 10000")
	ErrAmountPrecision    = errors.New("amount cannot have more than 2 decimal places")
)

// IsValidationError reports whether err is one of the amount validation
// errors.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrAmountNotPositive) ||
		errors.Is(err, ErrAmountBelowMinimum) ||
		errors.Is(err, ErrAmountAboveMaximum) ||
		errors.Is(err, ErrAmountPrecision)
}
