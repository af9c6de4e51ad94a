package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims carries the authenticated identity through the request
// context. The engine trusts UserID: authentication happened at the
// middleware boundary.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}
