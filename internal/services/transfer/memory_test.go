package transfer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"crediwallet/internal/models"
	"crediwallet/internal/repositories"

	"github.com/shopspring/decimal"
)

// memStore is an in-memory stand-in for the gorm-backed stores. Do holds
// one lock for the whole transaction, which mirrors the serialization the
// row locks give concurrent writers on the same accounts, and commits the
// staged state only when fn succeeds.
type memStore struct {
	mu          sync.Mutex
	users       map[uint]models.User
	entries     []models.LedgerEntry
	nextUserID  uint
	nextEntryID uint
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[uint]models.User),
		nextUserID:  1,
		nextEntryID: 1,
	}
}

func (m *memStore) addUser(name, email, accountNumber string, balance decimal.Decimal) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := models.User{
		ID:            m.nextUserID,
		Name:          name,
		Email:         email,
		AccountNumber: accountNumber,
		Balance:       balance,
		CreatedAt:     time.Now(),
	}
	m.users[u.ID] = u
	m.nextUserID++
	return u
}

func (m *memStore) setBlocked(id uint, blocked bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[id]
	u.IsBlocked = blocked
	m.users[id] = u
}

func (m *memStore) user(id uint) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id]
}

func (m *memStore) allEntries() []models.LedgerEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.LedgerEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// backdateEntries shifts every entry into the past, used to age a
// transfer out of the duplicate window.
func (m *memStore) backdateEntries(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		m.entries[i].CreatedAt = m.entries[i].CreatedAt.Add(-d)
	}
}

func (m *memStore) Do(ctx context.Context, fn func(uow repositories.UnitOfWork) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	staged := &memUow{
		users:       make(map[uint]models.User, len(m.users)),
		entries:     make([]models.LedgerEntry, len(m.entries)),
		nextEntryID: m.nextEntryID,
	}
	for id, u := range m.users {
		staged.users[id] = u
	}
	copy(staged.entries, m.entries)

	if err := fn(staged); err != nil {
		return err
	}

	m.users = staged.users
	m.entries = staged.entries
	m.nextEntryID = staged.nextEntryID
	return nil
}

type memUow struct {
	users       map[uint]models.User
	entries     []models.LedgerEntry
	nextEntryID uint
}

func (u *memUow) Accounts() repositories.UserRepository { return &memAccounts{uow: u} }
func (u *memUow) Ledger() repositories.LedgerRepository { return &memLedger{uow: u} }

type memAccounts struct {
	uow *memUow
}

func (a *memAccounts) Create(user *models.User) error {
	user.ID = uint(len(a.uow.users) + 1)
	a.uow.users[user.ID] = *user
	return nil
}

func (a *memAccounts) GetByID(id uint) (*models.User, error) {
	u, ok := a.uow.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	out := u
	return &out, nil
}

func (a *memAccounts) GetByIDForUpdate(id uint) (*models.User, error) {
	return a.GetByID(id)
}

func (a *memAccounts) GetByEmail(email string, includePassword bool) (*models.User, error) {
	for _, u := range a.uow.users {
		if u.Email == email {
			out := u
			if !includePassword {
				out.Sanitize()
			}
			return &out, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (a *memAccounts) GetByAccountNumber(number string) (*models.User, error) {
	for _, u := range a.uow.users {
		if u.AccountNumber == number {
			out := u
			return &out, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (a *memAccounts) UpdateBalance(id uint, newBalance decimal.Decimal) error {
	u, ok := a.uow.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Balance = newBalance
	a.uow.users[id] = u
	return nil
}

func (a *memAccounts) UpdateFields(id uint, fields map[string]interface{}) error {
	u, ok := a.uow.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	if v, ok := fields["name"].(string); ok {
		u.Name = v
	}
	if v, ok := fields["is_admin"].(bool); ok {
		u.IsAdmin = v
	}
	if v, ok := fields["is_blocked"].(bool); ok {
		u.IsBlocked = v
	}
	a.uow.users[id] = u
	return nil
}

func (a *memAccounts) Delete(id uint) error {
	if _, ok := a.uow.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(a.uow.users, id)
	return nil
}

func (a *memAccounts) GenerateAccountNumber() (string, error) {
	return fmt.Sprintf("1%09d", len(a.uow.users)+1), nil
}

type memLedger struct {
	uow *memUow
}

func (l *memLedger) Create(entry *models.LedgerEntry) error {
	entry.ID = l.uow.nextEntryID
	l.uow.nextEntryID++
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	l.uow.entries = append(l.uow.entries, *entry)
	return nil
}

func (l *memLedger) GetByID(id uint, ownerID uint) (*models.LedgerEntry, error) {
	for _, e := range l.uow.entries {
		if e.ID == id && e.UserID == ownerID {
			out := e
			return &out, nil
		}
	}
	return nil, repositories.ErrEntryNotFound
}

func (l *memLedger) ListByUser(userID uint) ([]models.LedgerEntry, error) {
	var out []models.LedgerEntry
	for i := len(l.uow.entries) - 1; i >= 0; i-- {
		if l.uow.entries[i].UserID == userID {
			out = append(out, l.uow.entries[i])
		}
	}
	return out, nil
}

func (l *memLedger) ListPaginated(q repositories.LedgerQuery) ([]models.LedgerEntry, int64, error) {
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return nil, 0, repositories.ErrInvalidDateRange
	}
	var matched []models.LedgerEntry
	for _, e := range l.uow.entries {
		if e.UserID != q.UserID {
			continue
		}
		if !q.From.IsZero() && e.CreatedAt.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && e.CreatedAt.After(q.To) {
			continue
		}
		matched = append(matched, e)
	}
	total := int64(len(matched))
	if q.Offset > len(matched) {
		return nil, total, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

func (l *memLedger) IsRecentDuplicate(userID, recipientID uint, amount decimal.Decimal, entryType string, window time.Duration) (bool, error) {
	for i := len(l.uow.entries) - 1; i >= 0; i-- {
		e := l.uow.entries[i]
		if e.UserID != userID || e.Type != entryType {
			continue
		}
		if e.RecipientID == nil || *e.RecipientID != recipientID {
			continue
		}
		if !e.MoneyOut.Equal(amount) {
			continue
		}
		return time.Since(e.CreatedAt) <= window, nil
	}
	return false, nil
}
