package repositories

import (
	"context"
	"time"

	"crediwallet/internal/repositories/cache"

	"gorm.io/gorm"
)

// UnitOfWork exposes the stores bound to one open database transaction.
// Every mutation made through it commits or rolls back as a whole. Once
// the transaction has completed, the unit of work is dead: touching it
// again is a programming error and fails fast.
type UnitOfWork interface {
	Accounts() UserRepository
	Ledger() LedgerRepository
}

// TxManager opens atomic scopes for money movement operations.
type TxManager interface {
	// Do runs fn inside a single transaction. If fn returns an error the
	// transaction is rolled back and the error is returned unchanged.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error
}

// DefaultTxTimeout bounds how long a money movement may hold its locks.
const DefaultTxTimeout = 30 * time.Second

type gormUnitOfWork struct {
	accounts UserRepository
	ledger   LedgerRepository
	done     bool
}

func (u *gormUnitOfWork) Accounts() UserRepository {
	if u.done {
		panic("repositories: unit of work used after commit or rollback")
	}
	return u.accounts
}

func (u *gormUnitOfWork) Ledger() LedgerRepository {
	if u.done {
		panic("repositories: unit of work used after commit or rollback")
	}
	return u.ledger
}

type gormTxManager struct {
	db      *gorm.DB
	cache   *cache.Service
	timeout time.Duration
}

// NewTxManager creates the transaction manager used by the money movement
// engine. The cache may be nil.
func NewTxManager(db *gorm.DB, cacheSvc *cache.Service) TxManager {
	return &gormTxManager{
		db:      db,
		cache:   cacheSvc,
		timeout: DefaultTxTimeout,
	}
}

func (m *gormTxManager) Do(ctx context.Context, fn func(uow UnitOfWork) error) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var uow *gormUnitOfWork
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		uow = &gormUnitOfWork{
			accounts: newUserRepository(tx, m.cache),
			ledger:   newLedgerRepository(tx),
		}
		return fn(uow)
	})
	if uow != nil {
		uow.done = true
	}
	return err
}
