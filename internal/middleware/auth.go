// Package middleware provides HTTP middleware components for the application.
// It includes authentication and authorization middleware used with the
// fiber web framework.
package middleware

import (
	"log"
	"strings"

	"crediwallet/internal/models"
	"crediwallet/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// TokenParser validates a bearer token and returns its claims.
type TokenParser func(token string) (*models.UserClaims, error)

// AuthMiddleware handles JWT token validation and user authentication.
// It extracts the JWT token from the Authorization header, validates it,
// and adds the user claims to the request context.
type AuthMiddleware struct {
	parse    TokenParser
	userRepo repositories.UserRepository
}

func NewAuthMiddleware(parse TokenParser, userRepo repositories.UserRepository) *AuthMiddleware {
	if parse == nil {
		panic("token parser is required")
	}
	return &AuthMiddleware{
		parse:    parse,
		userRepo: userRepo,
	}
}

// Handler validates the bearer token and stores the claims in the
// request context. Blocked accounts are rejected here so no handler has
// to re-check the flag.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := m.parse(tokenString)
	if err != nil {
		log.Printf("token validation error: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	if m.userRepo != nil {
		user, err := m.userRepo.GetByID(claims.UserID)
		if err != nil {
			log.Printf("user %d from token not found", claims.UserID)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		if user.IsBlocked {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "account is blocked"})
		}
		// Admin status follows the stored flag, not the token, so a
		// revoked admin loses access without waiting for token expiry.
		claims.IsAdmin = user.IsAdmin
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)

	return c.Next()
}

// AdminAuthMiddleware verifies that the request has valid admin claims.
func AdminAuthMiddleware(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid claims"})
	}

	if !claims.IsAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
	}

	return c.Next()
}
