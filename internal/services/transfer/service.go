package transfer

import (
	"context"
	"errors"
	"fmt"
	"log"

	"crediwallet/internal/models"
	"crediwallet/internal/repositories"

	"github.com/shopspring/decimal"
)

type service struct {
	tm       repositories.TxManager
	notifier Notifier
}

// NewService creates the money movement engine.
func NewService(tm repositories.TxManager, notifier Notifier) Service {
	if tm == nil {
		panic("tx manager is required")
	}
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &service{
		tm:       tm,
		notifier: notifier,
	}
}

func (s *service) Fund(ctx context.Context, actorID uint, amount decimal.Decimal) (*models.LedgerEntry, error) {
	var (
		actor *models.User
		entry *models.LedgerEntry
	)
	err := s.tm.Do(ctx, func(uow repositories.UnitOfWork) error {
		u, err := s.loadActor(uow, actorID)
		if err != nil {
			return err
		}
		if err := ValidateAmount(amount); err != nil {
			return err
		}

		newBalance := u.Balance.Add(amount)
		if err := uow.Accounts().UpdateBalance(u.ID, newBalance); err != nil {
			return s.internal(err)
		}

		e := &models.LedgerEntry{
			UserID:          u.ID,
			Type:            models.EntryTypeFund,
			MoneyIn:         amount,
			MoneyOut:        decimal.Zero,
			RecipientToFrom: models.SelfCounterparty,
			Description:     "Wallet funding",
			Balance:         newBalance,
		}
		if err := uow.Ledger().Create(e); err != nil {
			return s.internal(err)
		}

		u.Balance = newBalance
		actor, entry = u, e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyAsync(func() {
		s.notifier.WalletFunded(context.Background(), actor, amount)
	})
	return entry, nil
}

func (s *service) Withdraw(ctx context.Context, actorID uint, amount decimal.Decimal) (*models.LedgerEntry, error) {
	var (
		actor *models.User
		entry *models.LedgerEntry
	)
	err := s.tm.Do(ctx, func(uow repositories.UnitOfWork) error {
		u, err := s.loadActor(uow, actorID)
		if err != nil {
			return err
		}
		if err := ValidateAmount(amount); err != nil {
			return err
		}
		if u.Balance.LessThan(amount) {
			return ErrInsufficientFunds
		}

		newBalance := u.Balance.Sub(amount)
		if err := uow.Accounts().UpdateBalance(u.ID, newBalance); err != nil {
			return s.internal(err)
		}

		e := &models.LedgerEntry{
			UserID:          u.ID,
			Type:            models.EntryTypeWithdraw,
			MoneyIn:         decimal.Zero,
			MoneyOut:        amount,
			RecipientToFrom: models.SelfCounterparty,
			Description:     "Wallet withdrawal",
			Balance:         newBalance,
		}
		if err := uow.Ledger().Create(e); err != nil {
			return s.internal(err)
		}

		u.Balance = newBalance
		actor, entry = u, e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyAsync(func() {
		s.notifier.WithdrawalMade(context.Background(), actor, amount)
	})
	return entry, nil
}

func (s *service) Transfer(ctx context.Context, req Request) (*models.LedgerEntry, error) {
	if req.Recipient.IsZero() {
		return nil, ErrInvalidRecipient
	}

	var (
		sender      *models.User
		recipient   *models.User
		senderEntry *models.LedgerEntry
	)
	err := s.tm.Do(ctx, func(uow repositories.UnitOfWork) error {
		accounts := uow.Accounts()

		// Existence and amount checks run on an unlocked read; the locked
		// re-read below is what the balance math uses.
		probe, err := accounts.GetByID(req.ActorID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return s.internal(err)
		}
		if probe.IsBlocked {
			return ErrUserBlocked
		}
		if err := ValidateAmount(req.Amount); err != nil {
			return err
		}

		resolved, err := s.resolveRecipient(accounts, req.Recipient)
		if err != nil {
			return err
		}
		if resolved.ID == req.ActorID {
			return ErrSelfTransfer
		}

		// Lock both rows, lowest id first. Deterministic ordering keeps two
		// opposing transfers between the same pair from deadlocking.
		first, second := req.ActorID, resolved.ID
		if first > second {
			first, second = second, first
		}
		locked := make(map[uint]*models.User, 2)
		for _, id := range []uint{first, second} {
			u, err := accounts.GetByIDForUpdate(id)
			if err != nil {
				if errors.Is(err, repositories.ErrUserNotFound) {
					if id == req.ActorID {
						return ErrUserNotFound
					}
					return ErrRecipientNotFound
				}
				return s.internal(err)
			}
			locked[id] = u
		}
		actor, rcpt := locked[req.ActorID], locked[resolved.ID]

		if actor.Balance.LessThan(req.Amount) {
			return ErrInsufficientFunds
		}

		dup, err := uow.Ledger().IsRecentDuplicate(actor.ID, rcpt.ID, req.Amount,
			models.EntryTypeTransfer, DuplicateWindow)
		if err != nil {
			return s.internal(err)
		}
		if dup {
			return ErrDuplicateTransaction
		}

		senderBalance := actor.Balance.Sub(req.Amount)
		recipientBalance := rcpt.Balance.Add(req.Amount)
		if err := accounts.UpdateBalance(actor.ID, senderBalance); err != nil {
			return s.internal(err)
		}
		if err := accounts.UpdateBalance(rcpt.ID, recipientBalance); err != nil {
			return s.internal(err)
		}

		debit := &models.LedgerEntry{
			UserID:          actor.ID,
			Type:            models.EntryTypeTransfer,
			MoneyIn:         decimal.Zero,
			MoneyOut:        req.Amount,
			RecipientToFrom: rcpt.Name + "/" + rcpt.AccountNumber,
			Description:     defaultDescription(req.Description, "Transfer to "+rcpt.Name),
			Balance:         senderBalance,
			RecipientID:     &rcpt.ID,
		}
		credit := &models.LedgerEntry{
			UserID:          rcpt.ID,
			Type:            models.EntryTypeFund,
			MoneyIn:         req.Amount,
			MoneyOut:        decimal.Zero,
			RecipientToFrom: actor.Name + "/" + actor.AccountNumber,
			Description:     defaultDescription(req.Description, "Fund from "+actor.Name),
			Balance:         recipientBalance,
			RecipientID:     &actor.ID,
		}
		if err := uow.Ledger().Create(debit); err != nil {
			return s.internal(err)
		}
		if err := uow.Ledger().Create(credit); err != nil {
			return s.internal(err)
		}

		actor.Balance = senderBalance
		rcpt.Balance = recipientBalance
		sender, recipient, senderEntry = actor, rcpt, debit
		return nil
	})
	if err != nil {
		return nil, err
	}

	amount := req.Amount
	s.notifyAsync(func() {
		s.notifier.TransferCompleted(context.Background(), sender, recipient, amount)
	})
	return senderEntry, nil
}

// loadActor fetches the actor row with a write lock and applies the
// checks every operation shares.
func (s *service) loadActor(uow repositories.UnitOfWork, id uint) (*models.User, error) {
	u, err := uow.Accounts().GetByIDForUpdate(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, s.internal(err)
	}
	if u.IsBlocked {
		return nil, ErrUserBlocked
	}
	return u, nil
}

// resolveRecipient resolves the selector in priority order: id, account
// number, email.
func (s *service) resolveRecipient(accounts repositories.UserRepository, sel RecipientSelector) (*models.User, error) {
	var (
		u   *models.User
		err error
	)
	switch {
	case sel.ID != 0:
		u, err = accounts.GetByID(sel.ID)
	case sel.AccountNumber != "":
		u, err = accounts.GetByAccountNumber(sel.AccountNumber)
	case sel.Email != "":
		u, err = accounts.GetByEmail(sel.Email, false)
	default:
		return nil, ErrInvalidRecipient
	}
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, s.internal(err)
	}
	return u, nil
}

// internal wraps a store failure so storage details never reach the
// boundary.
func (s *service) internal(err error) error {
	return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
}

// notifyAsync fires a post-commit notification without blocking the
// committed operation. Panics in the collaborator are swallowed.
func (s *service) notifyAsync(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("notification panic recovered: %v", r)
			}
		}()
		fn()
	}()
}

func defaultDescription(given, fallback string) string {
	if given != "" {
		return given
	}
	return fallback
}
