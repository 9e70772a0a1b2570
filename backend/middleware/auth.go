package middleware

import (
	"github.com/gofiber/fiber/v2"

	"studybuddy/backend/config"
	"studybuddy/backend/utils"
)

// AuthMiddleware rejects requests without a valid bearer token. Tokens are
// issued by the account service; this layer only verifies them.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}
