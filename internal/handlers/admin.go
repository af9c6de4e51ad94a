package handlers

import (
	"errors"
	"log"

	"crediwallet/internal/services/user"
	"crediwallet/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	userService user.Service
}

func NewAdminHandler(userService user.Service) *AdminHandler {
	return &AdminHandler{userService: userService}
}

// BlockUser stops an account from moving money or logging in.
func (h *AdminHandler) BlockUser(c *fiber.Ctx) error {
	return h.setFlag(c, "blocked", "User blocked successfully", func(id uint) error {
		return h.userService.SetBlocked(c.UserContext(), id, true)
	})
}

func (h *AdminHandler) UnblockUser(c *fiber.Ctx) error {
	return h.setFlag(c, "unblocked", "User unblocked successfully", func(id uint) error {
		return h.userService.SetBlocked(c.UserContext(), id, false)
	})
}

func (h *AdminHandler) MakeAdmin(c *fiber.Ctx) error {
	return h.setFlag(c, "promoted", "User granted admin privileges", func(id uint) error {
		return h.userService.SetAdmin(c.UserContext(), id, true)
	})
}

func (h *AdminHandler) RemoveAdmin(c *fiber.Ctx) error {
	return h.setFlag(c, "demoted", "Admin privileges removed", func(id uint) error {
		return h.userService.SetAdmin(c.UserContext(), id, false)
	})
}

func (h *AdminHandler) setFlag(c *fiber.Ctx, action, message string, apply func(id uint) error) error {
	id, err := c.ParamsInt("userId")
	if err != nil || id < 1 {
		return utils.BadRequest(c, "Invalid user id")
	}

	if err := apply(uint(id)); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return utils.NotFound(c, "User not found")
		}
		log.Printf("user %d could not be %s: %v", id, action, err)
		return utils.InternalError(c, "Error updating user")
	}

	return utils.Success(c, fiber.Map{"message": message})
}
