package transfer

import (
	"context"

	"crediwallet/internal/models"

	"github.com/shopspring/decimal"
)

// RecipientSelector identifies the transfer counterparty. Exactly one
// field must be set; resolution priority is ID, then AccountNumber, then
// Email.
type RecipientSelector struct {
	ID            uint
	AccountNumber string
	Email         string
}

// IsZero reports whether no selector field is set.
func (s RecipientSelector) IsZero() bool {
	return s.ID == 0 && s.AccountNumber == "" && s.Email == ""
}

// Request is a transfer intent. ActorID comes from verified auth; the
// engine trusts it.
type Request struct {
	ActorID     uint
	Amount      decimal.Decimal
	Recipient   RecipientSelector
	Description string
}

// Service is the money movement engine. Each method executes one atomic
// operation and returns the actor-side ledger entry, whose Balance field
// carries the new balance.
type Service interface {
	Fund(ctx context.Context, actorID uint, amount decimal.Decimal) (*models.LedgerEntry, error)
	Withdraw(ctx context.Context, actorID uint, amount decimal.Decimal) (*models.LedgerEntry, error)
	Transfer(ctx context.Context, req Request) (*models.LedgerEntry, error)
}

// Notifier is the outbound port to the notification collaborator. Calls
// happen after commit, are asynchronous and best-effort; implementations
// must not assume the caller waits for them.
type Notifier interface {
	WalletFunded(ctx context.Context, user *models.User, amount decimal.Decimal)
	WithdrawalMade(ctx context.Context, user *models.User, amount decimal.Decimal)
	TransferCompleted(ctx context.Context, sender, recipient *models.User, amount decimal.Decimal)
}

// NoopNotifier discards all notifications. Used in tests and as the
// default when no collaborator is wired.
type NoopNotifier struct{}

func (NoopNotifier) WalletFunded(context.Context, *models.User, decimal.Decimal)              {}
func (NoopNotifier) WithdrawalMade(context.Context, *models.User, decimal.Decimal)            {}
func (NoopNotifier) TransferCompleted(context.Context, *models.User, *models.User, decimal.Decimal) {
}
