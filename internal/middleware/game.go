package middleware

import (
	"github.com/benbeisheim/scalechess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// LoadGame resolves the :gameId route parameter and stores it in Locals("gameID").
func LoadGame(gameService *service.GameService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gameID := c.Params("gameId")
		if _, err := uuid.Parse(gameID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid game ID",
			})
		}

		if !gameService.GameExists(gameID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": service.ErrGameNotFound.Error(),
			})
		}

		c.Locals("gameID", gameID)
		return c.Next()
	}
}
