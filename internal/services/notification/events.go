package notification

import (
	"time"

	"github.com/shopspring/decimal"
)

// Topics for the published wallet events.
const (
	TopicWalletFunded       = "wallet_funded"
	TopicWalletWithdrawn    = "wallet_withdrawn"
	TopicTransferCompleted  = "transfer_completed"
	TopicUserRegistered     = "user_registered"
	TopicStatementGenerated = "statement_generated"
)

// EventPublisher pushes wallet events to an external broker.
type EventPublisher interface {
	Publish(topic string, event any) error
}

type WalletFundedEvent struct {
	EventID       string          `json:"event_id"`
	UserID        uint            `json:"user_id"`
	AccountNumber string          `json:"account_number"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

type WalletWithdrawnEvent struct {
	EventID       string          `json:"event_id"`
	UserID        uint            `json:"user_id"`
	AccountNumber string          `json:"account_number"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

type TransferCompletedEvent struct {
	EventID          string          `json:"event_id"`
	SenderID         uint            `json:"sender_id"`
	SenderAccount    string          `json:"sender_account"`
	RecipientID      uint            `json:"recipient_id"`
	RecipientAccount string          `json:"recipient_account"`
	Amount           decimal.Decimal `json:"amount"`
	OccurredAt       time.Time       `json:"occurred_at"`
}

type UserRegisteredEvent struct {
	EventID    string    `json:"event_id"`
	UserID     uint      `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

type StatementGeneratedEvent struct {
	EventID    string    `json:"event_id"`
	UserID     uint      `json:"user_id"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
	FilePath   string    `json:"file_path"`
	OccurredAt time.Time `json:"occurred_at"`
}
