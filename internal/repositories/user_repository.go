package repositories

import (
	"crediwallet/internal/models"

	"github.com/shopspring/decimal"
)

// UserRepository is the account store. Reads return sanitized users; the
// credential hash is only exposed through GetByEmail with includePassword
// set, which the login path uses.
//
// Balance writes are only meaningful inside a unit of work: obtain the
// repository from UnitOfWork.Accounts() so the read, the check and the
// write share one transactional scope.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	// GetByIDForUpdate loads the row with a row-level write lock, serializing
	// concurrent money movements that touch the same account.
	GetByIDForUpdate(id uint) (*models.User, error)
	GetByEmail(email string, includePassword bool) (*models.User, error)
	GetByAccountNumber(number string) (*models.User, error)
	UpdateBalance(id uint, newBalance decimal.Decimal) error
	UpdateFields(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	// GenerateAccountNumber allocates an unused 10-digit account number
	// (leading digit fixed to 1). Attempts are capped; exhaustion is an
	// internal error rather than an endless loop.
	GenerateAccountNumber() (string, error)
}
