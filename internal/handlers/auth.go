package handlers

import (
	"photoshare-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware verifies the bearer token and resolves the requesting
// user before the photo handlers run.
func AuthMiddleware(c *fiber.Ctx) error {
	var token string
	authHeader := c.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		token = authHeader[7:]
	}

	if token == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing token")
	}

	claims, err := services.ValidateToken(token)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	// claims["user_id"] comes as float64 from JSON
	if uid, ok := claims["user_id"].(float64); ok {
		c.Locals("user_id", int(uid))
	} else {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	if email, ok := claims["email"].(string); ok {
		c.Locals("email", email)
	}

	return c.Next()
}
