package middleware

import (
	"errors"
	"net/http/httptest"
	"testing"

	"crediwallet/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okParser(claims *models.UserClaims) TokenParser {
	return func(string) (*models.UserClaims, error) { return claims, nil }
}

func failParser() TokenParser {
	return func(string) (*models.UserClaims, error) { return nil, errors.New("bad token") }
}

func newApp(m *AuthMiddleware, adminOnly bool) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{m.Handler}
	if adminOnly {
		handlers = append(handlers, AdminAuthMiddleware)
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/protected", handlers...)
	return app
}

func request(t *testing.T, app *fiber.App, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestHandler_MissingHeader(t *testing.T) {
	app := newApp(NewAuthMiddleware(okParser(&models.UserClaims{UserID: 1}), nil), false)
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, ""))
}

func TestHandler_BadFormat(t *testing.T) {
	app := newApp(NewAuthMiddleware(okParser(&models.UserClaims{UserID: 1}), nil), false)
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "Basic abc123"))
}

func TestHandler_InvalidToken(t *testing.T) {
	app := newApp(NewAuthMiddleware(failParser(), nil), false)
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "Bearer garbage"))
}

func TestHandler_ValidToken(t *testing.T) {
	app := newApp(NewAuthMiddleware(okParser(&models.UserClaims{UserID: 1}), nil), false)
	assert.Equal(t, fiber.StatusOK, request(t, app, "Bearer token"))
}

func TestAdminAuthMiddleware(t *testing.T) {
	admin := newApp(NewAuthMiddleware(okParser(&models.UserClaims{UserID: 1, IsAdmin: true}), nil), true)
	assert.Equal(t, fiber.StatusOK, request(t, admin, "Bearer token"))

	regular := newApp(NewAuthMiddleware(okParser(&models.UserClaims{UserID: 2}), nil), true)
	assert.Equal(t, fiber.StatusForbidden, request(t, regular, "Bearer token"))
}
