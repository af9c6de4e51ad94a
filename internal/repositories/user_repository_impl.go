package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"

	"crediwallet/internal/models"
	"crediwallet/internal/repositories/cache"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxAccountNumberAttempts caps the retry loop for account number
// generation. With 9 random digits the space is ~10^9, so hitting the cap
// means something is wrong with the store, not bad luck.
const maxAccountNumberAttempts = 10

type userRepository struct {
	db    *gorm.DB
	cache *cache.Service
}

// NewUserRepository creates the account store. The cache may be nil.
func NewUserRepository(db *gorm.DB, cacheSvc *cache.Service) UserRepository {
	return newUserRepository(db, cacheSvc)
}

func newUserRepository(db *gorm.DB, cacheSvc *cache.Service) *userRepository {
	return &userRepository{db: db, cache: cacheSvc}
}

func (r *userRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	if r.cache != nil {
		if user, err := r.cache.GetUser(context.Background(), id); err == nil && user != nil {
			return user, nil
		}
	}

	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	if r.cache != nil {
		if err := r.cache.CacheUser(context.Background(), &user); err != nil {
			log.Printf("failed to cache user %d: %v", user.ID, err)
		}
	}

	user.Sanitize()
	return &user, nil
}

func (r *userRepository) GetByIDForUpdate(id uint) (*models.User, error) {
	// Locked reads always hit the database; a cached copy could be stale
	// the moment a concurrent writer commits.
	var user models.User
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	user.Sanitize()
	return &user, nil
}

func (r *userRepository) GetByEmail(email string, includePassword bool) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	if !includePassword {
		user.Sanitize()
	}
	return &user, nil
}

func (r *userRepository) GetByAccountNumber(number string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("account_number = ?", number).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	user.Sanitize()
	return &user, nil
}

func (r *userRepository) UpdateBalance(id uint, newBalance decimal.Decimal) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).
		Update("balance", newBalance)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	r.invalidate(id)
	return nil
}

func (r *userRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	r.invalidate(id)
	return nil
}

func (r *userRepository) Delete(id uint) error {
	result := r.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	r.invalidate(id)
	return nil
}

func (r *userRepository) GenerateAccountNumber() (string, error) {
	for i := 0; i < maxAccountNumberAttempts; i++ {
		// Random 9-digit number with a fixed leading 1 makes a 10-digit
		// account number.
		number := "1" + strconv.Itoa(rand.Intn(900000000)+100000000)

		_, err := r.GetByAccountNumber(number)
		if errors.Is(err, ErrUserNotFound) {
			return number, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: no unique account number after %d attempts",
		ErrDatabaseOperation, maxAccountNumberAttempts)
}

func (r *userRepository) invalidate(id uint) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidateUser(context.Background(), id); err != nil {
		log.Printf("failed to invalidate user cache %d: %v", id, err)
	}
}
