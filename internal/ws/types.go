package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	// client -> server
	MessageTypeClick   MessageType = "click"
	MessageTypeDrag    MessageType = "drag"
	MessageTypeConfirm MessageType = "confirm"
	MessageTypeCancel  MessageType = "cancel"
	MessageTypeMove    MessageType = "move"
	MessageTypeReset   MessageType = "reset"

	// server -> client
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SquarePayload carries one square, either as {"row","col"} or {"square":"e2"}.
type SquarePayload struct {
	Row    *int   `json:"row,omitempty"`
	Col    *int   `json:"col,omitempty"`
	Square string `json:"square,omitempty"`
}

// MovePayload carries a from/to pair in algebraic notation.
type MovePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
