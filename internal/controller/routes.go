package controller

import (
	"github.com/benbeisheim/scalechess-backend/internal/middleware"
	"github.com/benbeisheim/scalechess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the REST and WebSocket endpoints on app.
func RegisterRoutes(app *fiber.App, gameService *service.GameService) {
	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)
	loadGame := middleware.LoadGame(gameService)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// Set up WebSocket routes
	app.Get("/ws/game/:gameId", loadGame, middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))

	// Set up REST routes
	gameRoutes := app.Group("/api/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Get("/:gameId", loadGame, gameController.GetGameState)
	gameRoutes.Get("/:gameId/legal-moves", loadGame, gameController.LegalMoves)
	gameRoutes.Post("/:gameId/click", loadGame, gameController.Click)
	gameRoutes.Post("/:gameId/drag", loadGame, gameController.Drag)
	gameRoutes.Post("/:gameId/confirm", loadGame, gameController.Confirm)
	gameRoutes.Post("/:gameId/cancel", loadGame, gameController.Cancel)
	gameRoutes.Post("/:gameId/move", loadGame, gameController.Move)
	gameRoutes.Post("/:gameId/reset", loadGame, gameController.Reset)
}
