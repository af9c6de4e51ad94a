package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is a wallet holder. Every user owns exactly one balance and a trail
// of ledger entries; the balance is only ever mutated inside a money
// movement transaction or an admin flag update.
type User struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	Name          string          `gorm:"size:100;not null" json:"name"`
	Email         string          `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password      string          `gorm:"size:100;not null" json:"-"`
	AccountNumber string          `gorm:"uniqueIndex;size:10;not null" json:"account_number"`
	Balance       decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"balance"`
	IsAdmin       bool            `gorm:"default:false" json:"is_admin"`
	IsBlocked     bool            `gorm:"default:false" json:"is_blocked"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Sanitize clears the credential field before the user leaves the store
// layer. Callers that need the hash for authentication opt in explicitly.
func (u *User) Sanitize() {
	u.Password = ""
}

// CreateUserInput is the registration payload.
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
