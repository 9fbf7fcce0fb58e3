package handlers

import (
	"photoshare-backend/internal/models"
	"photoshare-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RegisterHandler creates an account and signs the caller in.
func RegisterHandler(userService *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.AuthResponse{Message: "Invalid request"})
		}

		token, err := userService.Register(c.Context(), req)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.AuthResponse{Message: err.Error()})
		}
		return c.JSON(models.AuthResponse{Message: "Logged In", Token: &token})
	}
}

// LoginHandler signs an existing user in.
func LoginHandler(userService *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.AuthResponse{Message: "Invalid request"})
		}

		token, err := userService.Login(c.Context(), req)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.AuthResponse{Message: err.Error()})
		}
		return c.JSON(models.AuthResponse{Message: "Logged In", Token: &token})
	}
}
