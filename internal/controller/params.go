package controller

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/scalechess-backend/internal/model"
	"github.com/benbeisheim/scalechess-backend/internal/service"
	"github.com/benbeisheim/scalechess-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
)

func positionFromPayload(p ws.SquarePayload) (model.Position, error) {
	if p.Square != "" {
		return model.ParseSquare(p.Square)
	}
	if p.Row == nil || p.Col == nil {
		return model.Position{}, fmt.Errorf("%w: row and col or square required", model.ErrInvalidSquare)
	}
	pos := model.Position{Row: *p.Row, Col: *p.Col}
	if !pos.InBounds() {
		return model.Position{}, fmt.Errorf("%w: %+v", model.ErrOutOfBounds, pos)
	}
	return pos, nil
}

func positionsFromPayload(p ws.MovePayload) (model.Position, model.Position, error) {
	from, err := model.ParseSquare(p.From)
	if err != nil {
		return model.Position{}, model.Position{}, err
	}
	to, err := model.ParseSquare(p.To)
	if err != nil {
		return model.Position{}, model.Position{}, err
	}
	return from, to, nil
}

// errToStatus maps service and rules errors onto HTTP status codes.
func errToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrInvalidSquare), errors.Is(err, model.ErrOutOfBounds):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrIllegalMove), errors.Is(err, model.ErrNoPendingMove):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func sendError(c *fiber.Ctx, err error) error {
	return c.Status(errToStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
