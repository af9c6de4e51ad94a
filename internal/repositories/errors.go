package repositories

import "errors"

// Store errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEntryNotFound     = errors.New("ledger entry not found")
	ErrDatabaseOperation = errors.New("database operation failed")
	ErrInvalidDateRange  = errors.New("invalid date range")
)
