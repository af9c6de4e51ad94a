package repositories

import (
	"errors"
	"fmt"
	"time"

	"crediwallet/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates the ledger store.
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return newLedgerRepository(db)
}

func newLedgerRepository(db *gorm.DB) *ledgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Create(entry *models.LedgerEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *ledgerRepository) GetByID(id uint, ownerID uint) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	err := r.db.Where("id = ? AND user_id = ?", id, ownerID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return &entry, nil
}

func (r *ledgerRepository) ListByUser(userID uint) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return entries, nil
}

func (r *ledgerRepository) ListPaginated(q LedgerQuery) ([]models.LedgerEntry, int64, error) {
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return nil, 0, ErrInvalidDateRange
	}

	query := r.db.Model(&models.LedgerEntry{}).Where("user_id = ?", q.UserID)
	if !q.From.IsZero() {
		query = query.Where("created_at >= ?", q.From)
	}
	if !q.To.IsZero() {
		query = query.Where("created_at <= ?", q.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var entries []models.LedgerEntry
	err := query.Offset(q.Offset).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return entries, total, nil
}

func (r *ledgerRepository) IsRecentDuplicate(userID, recipientID uint, amount decimal.Decimal, entryType string, window time.Duration) (bool, error) {
	var last models.LedgerEntry
	err := r.db.Where("user_id = ? AND recipient_id = ? AND money_out = ? AND type = ?",
		userID, recipientID, amount, entryType).
		Order("created_at DESC, id DESC").
		First(&last).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return time.Since(last.CreatedAt) <= window, nil
}
