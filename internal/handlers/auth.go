package handlers

import (
	"errors"
	"log"

	"crediwallet/internal/models"
	"crediwallet/internal/services/auth"
	"crediwallet/internal/utils"
	"crediwallet/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterUser creates a new account and returns its first token pair.
func (h *AuthHandler) RegisterUser(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if v := validation.ValidateRegistration(input); !v.Valid() {
		return utils.Respond(c, fiber.StatusBadRequest, fiber.Map{"errors": v.Errors})
	}

	user, tokens, err := h.authService.Register(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return utils.Conflict(c, "A user with this email already exists")
		}
		log.Printf("registration failed: %v", err)
		return utils.InternalError(c, "Registration failed")
	}

	return utils.Created(c, fiber.Map{
		"message":       "User registered successfully",
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

// LoginUser handles user authentication and returns JWT tokens.
func (h *AuthHandler) LoginUser(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if v := validation.ValidateLogin(input.Email, input.Password); !v.Valid() {
		return utils.Respond(c, fiber.StatusBadRequest, fiber.Map{"errors": v.Errors})
	}

	user, tokens, err := h.authService.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return utils.Unauthorized(c, "Invalid email or password")
		}
		log.Printf("login failed: %v", err)
		return utils.InternalError(c, "Authentication failed")
	}

	return utils.Success(c, fiber.Map{
		"message":       "Login successful",
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

// RefreshToken exchanges a valid refresh token for a fresh pair.
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil || input.RefreshToken == "" {
		return utils.Unauthorized(c, "Refresh token not provided")
	}

	tokens, err := h.authService.RefreshTokens(input.RefreshToken)
	if err != nil {
		log.Printf("token refresh failed: %v", err)
		return utils.Unauthorized(c, "Invalid refresh token")
	}

	return utils.Success(c, fiber.Map{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}
