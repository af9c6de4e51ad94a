package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger entry types
const (
	EntryTypeFund     = "fund"
	EntryTypeWithdraw = "withdraw"
	EntryTypeTransfer = "transfer"
)

// SelfCounterparty labels entries where the user moved their own money
// (fund and withdraw operations).
const SelfCounterparty = "self"

// LedgerEntry records one account's side of a money movement. Entries are
// append-only: they are never updated or deleted after commit. A transfer
// produces two entries created in the same transaction, a transfer-typed
// debit against the sender and a fund-typed credit for the recipient,
// linked to each other through RecipientID.
type LedgerEntry struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	Type            string          `gorm:"size:20;not null" json:"type"`
	MoneyIn         decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"money_in"`
	MoneyOut        decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"money_out"`
	RecipientToFrom string          `gorm:"size:120" json:"recipient_to_from"`
	Description     string          `gorm:"size:255" json:"description"`
	Balance         decimal.Decimal `gorm:"type:decimal(10,2)" json:"balance"`
	RecipientID     *uint           `gorm:"index" json:"recipient_id,omitempty"`
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`
}
