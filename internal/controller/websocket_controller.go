package controller

import (
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/benbeisheim/scalechess-backend/internal/service"
	"github.com/benbeisheim/scalechess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals("wsGameID").(string)
	connID := uuid.New().String()
	logger := log.WithField("game", gameID).WithField("conn", connID)

	if err := wsc.gameService.RegisterConnection(gameID, connID, c); err != nil {
		logger.WithError(err).Warn("failed to register connection")
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, connID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.WithError(err).Debug("read loop ended")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.WithError(err).Warn("malformed message")
			wsc.reportError(gameID, connID, fmt.Errorf("malformed message: %w", err))
			continue
		}

		if err := wsc.handleMessage(gameID, msg); err != nil {
			logger.WithError(err).WithField("type", msg.Type).Info("message rejected")
			wsc.reportError(gameID, connID, err)
		}
	}
}

// handleMessage dispatches one client message. The resulting state reaches
// every connection through the game's broadcast.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeClick:
		var payload ws.SquarePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		pos, err := positionFromPayload(payload)
		if err != nil {
			return err
		}
		_, err = wsc.gameService.Click(gameID, pos)
		return err

	case ws.MessageTypeDrag, ws.MessageTypeMove:
		var payload ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		from, to, err := positionsFromPayload(payload)
		if err != nil {
			return err
		}
		if msg.Type == ws.MessageTypeDrag {
			_, err = wsc.gameService.Drag(gameID, from, to)
		} else {
			_, err = wsc.gameService.Move(gameID, from, to)
		}
		return err

	case ws.MessageTypeConfirm:
		_, err := wsc.gameService.Confirm(gameID)
		return err

	case ws.MessageTypeCancel:
		_, err := wsc.gameService.Cancel(gameID)
		return err

	case ws.MessageTypeReset:
		_, err := wsc.gameService.Reset(gameID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) reportError(gameID, connID string, err error) {
	if sendErr := wsc.gameService.SendError(gameID, connID, err); sendErr != nil {
		log.WithField("game", gameID).WithField("conn", connID).WithError(sendErr).Warn("failed to send error")
	}
}
