package notification

import (
	"context"
	"log"
	"time"

	"crediwallet/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service implements the money movement engine's notifier port and the
// extra account-lifecycle hooks the handlers call.
type Service struct {
	publisher EventPublisher
}

// NewService creates the notification service. The publisher may be nil,
// in which case events are logged only.
func NewService(publisher EventPublisher) *Service {
	return &Service{publisher: publisher}
}

func (s *Service) WalletFunded(ctx context.Context, user *models.User, amount decimal.Decimal) {
	log.Printf("notify %s: your wallet has been funded with %s", user.Email, amount.StringFixed(2))
	s.publish(TopicWalletFunded, WalletFundedEvent{
		EventID:       uuid.NewString(),
		UserID:        user.ID,
		AccountNumber: user.AccountNumber,
		Amount:        amount,
		OccurredAt:    time.Now().UTC(),
	})
}

func (s *Service) WithdrawalMade(ctx context.Context, user *models.User, amount decimal.Decimal) {
	log.Printf("notify %s: your withdrawal of %s has been completed", user.Email, amount.StringFixed(2))
	s.publish(TopicWalletWithdrawn, WalletWithdrawnEvent{
		EventID:       uuid.NewString(),
		UserID:        user.ID,
		AccountNumber: user.AccountNumber,
		Amount:        amount,
		OccurredAt:    time.Now().UTC(),
	})
}

func (s *Service) TransferCompleted(ctx context.Context, sender, recipient *models.User, amount decimal.Decimal) {
	log.Printf("notify %s: your money transfer of %s to %s has been completed",
		sender.Email, amount.StringFixed(2), recipient.Name)
	log.Printf("notify %s: you have received %s from %s",
		recipient.Email, amount.StringFixed(2), sender.Name)
	s.publish(TopicTransferCompleted, TransferCompletedEvent{
		EventID:          uuid.NewString(),
		SenderID:         sender.ID,
		SenderAccount:    sender.AccountNumber,
		RecipientID:      recipient.ID,
		RecipientAccount: recipient.AccountNumber,
		Amount:           amount,
		OccurredAt:       time.Now().UTC(),
	})
}

// UserRegistered sends the welcome notification for a new account.
func (s *Service) UserRegistered(ctx context.Context, user *models.User) {
	log.Printf("notify %s: welcome aboard, your account number is %s", user.Email, user.AccountNumber)
	s.publish(TopicUserRegistered, UserRegisteredEvent{
		EventID:    uuid.NewString(),
		UserID:     user.ID,
		Email:      user.Email,
		OccurredAt: time.Now().UTC(),
	})
}

// StatementReady announces a generated statement file.
func (s *Service) StatementReady(ctx context.Context, user *models.User, from, to time.Time, filePath string) {
	log.Printf("notify %s: your account statement is ready at %s", user.Email, filePath)
	s.publish(TopicStatementGenerated, StatementGeneratedEvent{
		EventID:    uuid.NewString(),
		UserID:     user.ID,
		From:       from,
		To:         to,
		FilePath:   filePath,
		OccurredAt: time.Now().UTC(),
	})
}

func (s *Service) publish(topic string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(topic, event); err != nil {
		log.Printf("publish %s event: %v", topic, err)
	}
}
