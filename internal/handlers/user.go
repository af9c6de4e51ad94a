package handlers

import (
	"errors"
	"log"

	"crediwallet/internal/models"
	"crediwallet/internal/services/user"
	"crediwallet/internal/utils"
	"crediwallet/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe returns the authenticated user's profile.
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	u, err := h.userService.Get(c.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return utils.NotFound(c, "User not found")
		}
		log.Printf("fetch user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "Error fetching user details")
	}

	return utils.Success(c, u)
}

// UpdateMe updates the authenticated user's profile. Identity fields are
// rejected with a 400.
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	err := h.userService.Update(c.UserContext(), claims.UserID, fields)
	switch {
	case err == nil:
		return utils.Success(c, fiber.Map{"message": "User updated successfully"})
	case errors.Is(err, user.ErrRestrictedField),
		errors.Is(err, user.ErrUnknownField),
		errors.Is(err, user.ErrNoFields):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		return utils.NotFound(c, "User not found")
	default:
		log.Printf("update user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "Error updating user details")
	}
}

// DeleteMe removes the authenticated user's account.
func (h *UserHandler) DeleteMe(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	if err := h.userService.Delete(c.UserContext(), claims.UserID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return utils.NotFound(c, "User not found")
		}
		log.Printf("delete user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "Error deleting user")
	}

	return utils.Success(c, fiber.Map{"message": "User deleted successfully"})
}

// GetByAccountNumber lets a sender confirm who owns an account number
// before transferring to it.
func (h *UserHandler) GetByAccountNumber(c *fiber.Ctx) error {
	number := c.Params("accountNumber")

	v := validation.New()
	v.AccountNumber("account_number", number)
	if !v.Valid() {
		return utils.Respond(c, fiber.StatusBadRequest, fiber.Map{"errors": v.Errors})
	}

	u, err := h.userService.GetByAccountNumber(c.UserContext(), number)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return utils.NotFound(c, "User not found")
		}
		log.Printf("lookup account %s: %v", number, err)
		return utils.InternalError(c, "Error fetching user details")
	}

	// Only expose what the transfer UX needs.
	return utils.Success(c, fiber.Map{
		"name":           u.Name,
		"account_number": u.AccountNumber,
	})
}
