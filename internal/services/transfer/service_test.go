package transfer

import (
	"context"
	"sync"
	"testing"
	"time"

	"crediwallet/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestFund(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com", "1000000001", dec("0"))
	svc := NewService(store, nil)

	entry, err := svc.Fund(context.Background(), alice.ID, dec("100"))
	require.NoError(t, err)

	assert.True(t, entry.Balance.Equal(dec("100")))
	assert.Equal(t, models.EntryTypeFund, entry.Type)
	assert.True(t, entry.MoneyIn.Equal(dec("100")))
	assert.True(t, entry.MoneyOut.IsZero())
	assert.Equal(t, models.SelfCounterparty, entry.RecipientToFrom)

	assert.True(t, store.user(alice.ID).Balance.Equal(dec("100")))
	assert.Len(t, store.allEntries(), 1)
}

func TestFund_UnknownActor(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, nil)

	_, err := svc.Fund(context.Background(), 42, dec("100"))
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, store.allEntries())
}

func TestFund_BlockedActor(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com", "1000000001", dec("0"))
	store.setBlocked(alice.ID, true)
	svc := NewService(store, nil)

	_, err := svc.Fund(context.Background(), alice.ID, dec("100"))
	assert.ErrorIs(t, err, ErrUserBlocked)
	assert.True(t, store.user(alice.ID).Balance.IsZero())
}

func TestWithdraw(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com", "1000000001", dec("250.50"))
	svc := NewService(store, nil)

	entry, err := svc.Withdraw(context.Background(), alice.ID, dec("50.50"))
	require.NoError(t, err)

	assert.True(t, entry.Balance.Equal(dec("200")))
	assert.Equal(t, models.EntryTypeWithdraw, entry.Type)
	assert.True(t, entry.MoneyOut.Equal(dec("50.50")))
	assert.True(t, entry.MoneyIn.IsZero())
	assert.Equal(t, models.SelfCounterparty, entry.RecipientToFrom)
	assert.True(t, store.user(alice.ID).Balance.Equal(dec("200")))
}

func TestWithdraw_InsufficientFunds(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com", "1000000001", dec("30"))
	svc := NewService(store, nil)

	_, err := svc.Withdraw(context.Background(), alice.ID, dec("31"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// Failed operations leave no trace.
	assert.True(t, store.user(alice.ID).Balance.Equal(dec("30")))
	assert.Empty(t, store.allEntries())
}

func TestTransfer(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com", "1000000001", dec("100"))
	bob := store.addUser("Bob", "bob@example.com", "1000000002", dec("0"))
	svc := NewService(store, nil)

	entry, err := svc.Transfer(context.Background(), Request{
		ActorID:   alice.ID,
		Amount:    dec("40"),
		Recipient: RecipientSelector{ID: bob.ID},
	})
	require.NoError(t, err)

	assert.True(t, store.user(alice.ID).Balance.Equal(dec("60")))
	assert.True(t, store.user(bob.ID).Balance.Equal(dec("40")))

	entries := store.allEntries()
	require.Len(t, entries, 2)

	debit, credit := entries[0], entries[1]
	assert.Equal(t, alice.ID, debit.UserID)
	assert.Equal(t, models.EntryTypeTransfer, debit.Type)
	assert.True(t, debit.MoneyOut.Equal(dec("40")))
	assert.True(t, debit.Balance.Equal(dec("60")))
	assert.Equal(t, "Bob/1000000002", debit.RecipientToFrom)
	assert.Equal(t, "Transfer to Bob", debit.Description)
	require.NotNil(t, debit.RecipientID)
	assert.Equal(t, bob.ID, *debit.RecipientID)

	assert.Equal(t, bob.ID, credit.UserID)
	assert.Equal(t, models.EntryTypeFund, credit.Type)
	assert.True(t, credit.MoneyIn.Equal(dec("40")))
	assert.True(t, credit.Balance.Equal(dec("40")))
	assert.Equal(t, "Alice/1000000001", credit.RecipientToFrom)
	assert.Equal(t, "Fund from Alice", credit.Description)
	require.NotNil(t, credit.RecipientID)
	assert.Equal(t, alice.ID, *credit.RecipientID)

	// The returned entry is the actor side of the pair.
	assert.Equal(t, debit.ID, entry.ID)

	// Money is conserved across the pair.
	total := store.user(alice.ID).Balance.Add(store.user(bob.ID).Balance)
	assert.True(t, total.Equal(dec("100")))
}

func TestTransfer_CustomDescription(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com", "1000000001", dec("100"))
	bob := store.addUser("Bob", "bob@example.com", "1000000002", dec("0"))
	svc := NewService(store, nil)

	_, err := svc.Transfer(context.Background(), Request{
		ActorID:     alice.ID,
		Amount:      dec("40"),
		Recipient:   RecipientSelector{ID: bob.ID},
		Description: "gift",
	})
	require.NoError(t, err)

	entries := store.allEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "gift", entries[0].Description)
	assert.Equal(t, "gift", entries[1].Description)
}

func TestTransfer_SelectorResolution(t *testing.T) {
	tests := []struct {
		name     string
		selector func(bob models.User) RecipientSelector
	}{
		{"by id", func(b models.User) RecipientSelector { return RecipientSelector{ID: b.ID} }},
		{"by account number", func(b models.User) RecipientSelector { return RecipientSelector{AccountNumber: b.AccountNumber} }},
		{"by email", func(b models.User) RecipientSelector { return RecipientSelector{Email: b.Email} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			alice := store.addUser("Alice", "alice@example.com", "1000000001", dec("100"))
			bob := store.addUser("Bob", "bob@example.com", "1000000002", dec("0"))
			svc := NewService(store, nil)

			_, err := svc.Transfer(context.Background(), Request{
				ActorID:   alice.ID,
				Amount:    dec("10"),
				Recipient: tt.selector(bob),
			})
			require.NoError(t, err)
			assert.True(t, store.user(bob.ID).Balance.Equal(dec("10")))
		})
	}
}

func TestTransfer_SelfTransfer(t *testing.T) {
	tests := []struct {
		name     string
		selector func(alice models.User) RecipientSelector
	}{
		{"by id", func(a models.User) RecipientSelector { return RecipientSelector{ID: a.ID} }},
		{"by account number", func(a models.User) RecipientSelector { return RecipientSelector{AccountNumber: a.AccountNumber} }},
		{"by email", func(a models.User) RecipientSelector { return RecipientSelector{Email: a.Email} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			alice := store.addUser("Alice", "alice@example.com", "1000000001", dec("100"))
			svc := NewService(store, nil)

			_, err := svc.Transfer(context.Background(), Request{
				ActorID:   alice.ID,
				Amount:    dec("10"),
				Recipient: tt.selector(alice),
			})
			assert.ErrorIs(t, err, ErrSelfTransfer)
			assert.True(t, store.user(alice.ID).Balance.Equal(dec("100")))
			assert.Empty(t, store.allEntries())
		})
	}
}

func TestTransfer_RecipientNotFound(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com", "1000000001", dec("100"))
	svc := NewService(store, nil)

	_, err := svc.Transfer(context.Background(), Request{
		ActorID:   alice.ID,
		Amount:    dec("10"),
		Recipient: RecipientSelector{Email: "nobody@example.com"},
	})
	assert.ErrorIs(t, err, ErrRecipientNotFound)
}

func TestTransfer_EmptySelector(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com", "1000000001", dec("100"))
	svc := NewService(store, nil)

	_, err := svc.Transfer(context.Background(), Request{
		ActorID: alice.ID,
		Amount:  dec("10"),
	})
	assert.ErrorIs(t, err, ErrInvalidRecipient)
}

func TestTransfer_DuplicateWindow(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com", "1000000001", dec("100"))
	bob := store.addUser("Bob", "bob@example.com", "1000000002", dec("0"))
	svc := NewService(store, nil)

	req := Request{
		ActorID:   alice.ID,
		Amount:    dec("10"),
		Recipient: RecipientSelector{ID: bob.ID},
	}

	_, err := svc.Transfer(context.Background(), req)
	require.NoError(t, err)

	// An identical transfer inside the window is rejected.
	_, err = svc.Transfer(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateTransaction)
	assert.True(t, store.user(alice.ID).Balance.Equal(dec("90")))

	// A different amount is not a duplicate.
	other := req
	other.Amount = dec("11")
	_, err = svc.Transfer(context.Background(), other)
	require.NoError(t, err)

	// Once the window has passed, the identical transfer goes through.
	store.backdateEntries(DuplicateWindow + time.Second)
	_, err = svc.Transfer(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, store.user(alice.ID).Balance.Equal(dec("69")))
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		amount  string
		wantErr error
	}{
		{"0", ErrAmountNotPositive},
		{"-5", ErrAmountNotPositive},
		{"0.50", ErrAmountBelowMinimum},
		{"10000.001", ErrAmountPrecision},
		{"10001", ErrAmountAboveMaximum},
		{"1", nil},
		{"9999.99", nil},
		{"10000", nil},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			err := ValidateAmount(dec(tt.amount))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsValidationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConcurrentWithdrawals(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com", "1000000001", dec("100"))
	svc := NewService(store, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Withdraw(context.Background(), alice.ID, dec("100"))
		}(i)
	}
	wg.Wait()

	// Exactly one full-balance withdrawal may win; the loser must see
	// insufficient funds, never a lost update.
	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrInsufficientFunds):
			insufficient++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)
	assert.True(t, store.user(alice.ID).Balance.IsZero())
	assert.Len(t, store.allEntries(), 1)
}

func TestConcurrentOpposingTransfers(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com", "1000000001", dec("100"))
	bob := store.addUser("Bob", "bob@example.com", "1000000002", dec("100"))
	svc := NewService(store, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = svc.Transfer(context.Background(), Request{
			ActorID: alice.ID, Amount: dec("30"), Recipient: RecipientSelector{ID: bob.ID},
		})
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = svc.Transfer(context.Background(), Request{
			ActorID: bob.ID, Amount: dec("20"), Recipient: RecipientSelector{ID: alice.ID},
		})
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	total := store.user(alice.ID).Balance.Add(store.user(bob.ID).Balance)
	assert.True(t, total.Equal(dec("200")))
	assert.True(t, store.user(alice.ID).Balance.Equal(dec("90")))
	assert.True(t, store.user(bob.ID).Balance.Equal(dec("110")))
}

type recordingNotifier struct {
	funded    chan decimal.Decimal
	withdrawn chan decimal.Decimal
	transfers chan decimal.Decimal
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{
		funded:    make(chan decimal.Decimal, 1),
		withdrawn: make(chan decimal.Decimal, 1),
		transfers: make(chan decimal.Decimal, 1),
	}
}

func (n *recordingNotifier) WalletFunded(_ context.Context, _ *models.User, amount decimal.Decimal) {
	n.funded <- amount
}

func (n *recordingNotifier) WithdrawalMade(_ context.Context, _ *models.User, amount decimal.Decimal) {
	n.withdrawn <- amount
}

func (n *recordingNotifier) TransferCompleted(_ context.Context, _, _ *models.User, amount decimal.Decimal) {
	n.transfers <- amount
}

func TestNotificationsAfterCommit(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com", "1000000001", dec("0"))
	bob := store.addUser("Bob", "bob@example.com", "1000000002", dec("0"))
	notifier := newRecordingNotifier()
	svc := NewService(store, notifier)

	_, err := svc.Fund(context.Background(), alice.ID, dec("100"))
	require.NoError(t, err)

	select {
	case amount := <-notifier.funded:
		assert.True(t, amount.Equal(dec("100")))
	case <-time.After(time.Second):
		t.Fatal("no funding notification emitted")
	}

	_, err = svc.Transfer(context.Background(), Request{
		ActorID: alice.ID, Amount: dec("40"), Recipient: RecipientSelector{ID: bob.ID},
	})
	require.NoError(t, err)

	select {
	case amount := <-notifier.transfers:
		assert.True(t, amount.Equal(dec("40")))
	case <-time.After(time.Second):
		t.Fatal("no transfer notification emitted")
	}
}

func TestNotifierPanicDoesNotFailOperation(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("Alice", "alice@example.com", "1000000001", dec("0"))
	svc := NewService(store, panicNotifier{})

	_, err := svc.Fund(context.Background(), alice.ID, dec("100"))
	require.NoError(t, err)
	assert.True(t, store.user(alice.ID).Balance.Equal(dec("100")))
}

type panicNotifier struct{}

func (panicNotifier) WalletFunded(context.Context, *models.User, decimal.Decimal) {
	panic("notifier down")
}

func (panicNotifier) WithdrawalMade(context.Context, *models.User, decimal.Decimal) {
	panic("notifier down")
}

func (panicNotifier) TransferCompleted(context.Context, *models.User, *models.User, decimal.Decimal) {
	panic("notifier down")
}
