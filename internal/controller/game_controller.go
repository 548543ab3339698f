package controller

import (
	"github.com/benbeisheim/scalechess-backend/internal/model"
	"github.com/benbeisheim/scalechess-backend/internal/service"
	"github.com/benbeisheim/scalechess-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func gameID(c *fiber.Ctx) string {
	id, _ := c.Locals("gameID").(string)
	return id
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	state, err := gc.gameService.CreateGame()
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"gameId":  state.GameID,
		"state":   state,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	state, err := gc.gameService.GetGameState(gameID(c))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	from, err := model.ParseSquare(c.Query("square"))
	if err != nil {
		return sendError(c, err)
	}
	moves, err := gc.gameService.LegalMoves(gameID(c), from)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"from":  from,
		"moves": moves,
	})
}

func (gc *GameController) Click(c *fiber.Ctx) error {
	var payload ws.SquarePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	pos, err := positionFromPayload(payload)
	if err != nil {
		return sendError(c, err)
	}
	state, err := gc.gameService.Click(gameID(c), pos)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) Drag(c *fiber.Ctx) error {
	var payload ws.MovePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	from, to, err := positionsFromPayload(payload)
	if err != nil {
		return sendError(c, err)
	}
	state, err := gc.gameService.Drag(gameID(c), from, to)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) Confirm(c *fiber.Ctx) error {
	state, err := gc.gameService.Confirm(gameID(c))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) Cancel(c *fiber.Ctx) error {
	state, err := gc.gameService.Cancel(gameID(c))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) Move(c *fiber.Ctx) error {
	var payload ws.MovePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	from, to, err := positionsFromPayload(payload)
	if err != nil {
		return sendError(c, err)
	}
	state, err := gc.gameService.Move(gameID(c), from, to)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) Reset(c *fiber.Ctx) error {
	state, err := gc.gameService.Reset(gameID(c))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(state)
}
