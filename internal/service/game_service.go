package service

import (
	"github.com/benbeisheim/scalechess-backend/internal/model"
	"github.com/benbeisheim/scalechess-backend/internal/ws"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (model.ClientState, error) {
	game, err := gs.gameManager.CreateGame()
	if err != nil {
		return model.ClientState{}, err
	}
	return game.View(), nil
}

func (gs *GameService) GameExists(gameID string) bool {
	_, err := gs.gameManager.GetGame(gameID)
	return err == nil
}

func (gs *GameService) GetGameState(gameID string) (model.ClientState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.ClientState{}, err
	}
	return game.View(), nil
}

func (gs *GameService) LegalMoves(gameID string, from model.Position) ([]model.Position, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(from)
}

func (gs *GameService) Click(gameID string, pos model.Position) (model.ClientState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.ClientState{}, err
	}
	return game.Click(pos)
}

func (gs *GameService) Drag(gameID string, from, to model.Position) (model.ClientState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.ClientState{}, err
	}
	return game.Drag(from, to)
}

func (gs *GameService) Confirm(gameID string) (model.ClientState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.ClientState{}, err
	}
	return game.Confirm()
}

func (gs *GameService) Cancel(gameID string) (model.ClientState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.ClientState{}, err
	}
	return game.Cancel(), nil
}

func (gs *GameService) Move(gameID string, from, to model.Position) (model.ClientState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.ClientState{}, err
	}
	return game.Move(from, to)
}

func (gs *GameService) Reset(gameID string) (model.ClientState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.ClientState{}, err
	}
	return game.Reset(), nil
}

func (gs *GameService) RegisterConnection(gameID, connID string, conn model.Conn) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(connID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, connID string) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(connID)
}

// SendError reports err to a single connection of the game.
func (gs *GameService) SendError(gameID, connID string, err error) error {
	game, getErr := gs.gameManager.GetGame(gameID)
	if getErr != nil {
		return getErr
	}
	return game.SendTo(connID, ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
}
