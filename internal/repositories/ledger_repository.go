package repositories

import (
	"time"

	"crediwallet/internal/models"

	"github.com/shopspring/decimal"
)

// LedgerQuery filters a paginated window of ledger entries. Zero From/To
// leave that bound open.
type LedgerQuery struct {
	UserID uint
	Limit  int
	Offset int
	From   time.Time
	To     time.Time
}

// LedgerRepository is the append-only ledger store. Entries are inserted
// inside a unit of work and never mutated afterwards.
type LedgerRepository interface {
	Create(entry *models.LedgerEntry) error
	GetByID(id uint, ownerID uint) (*models.LedgerEntry, error)
	// ListByUser returns the full history, newest first.
	ListByUser(userID uint) ([]models.LedgerEntry, error)
	// ListPaginated returns a window in chronological order, the order the
	// statement metrics expect, plus the total count for the filter.
	ListPaginated(q LedgerQuery) ([]models.LedgerEntry, int64, error)
	// IsRecentDuplicate reports whether the most recent entry matching
	// (userID, recipientID, amount out, entryType) was created within the
	// given window. A time-window heuristic against accidental resubmits,
	// not a real idempotency key.
	IsRecentDuplicate(userID, recipientID uint, amount decimal.Decimal, entryType string, window time.Duration) (bool, error)
}
