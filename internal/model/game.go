package model

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/benbeisheim/scalechess-backend/internal/ws"
)

// Conn is the write side of a client connection observing a game.
type Conn interface {
	WriteJSON(v interface{}) error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // connID -> connection
	mu          sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Game is one hot-seat Scale Chess session and the clients watching it.
// Every mutation replaces the whole GameState value under mu.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       GameState
	selection   Selection
	lastMove    *Move
	createdAt   time.Time
	lastActive  time.Time
	connections *GameConnections
}

// ClientState is the snapshot sent to clients after every change.
type ClientState struct {
	GameID            string     `json:"gameId"`
	State             GameState  `json:"state"`
	CurrentPlayerName string     `json:"currentPlayerName"`
	Selection         Selection  `json:"selection"`
	Prompt            string     `json:"prompt,omitempty"`
	LegalMoves        []Position `json:"legalMoves"`
	LastMove          *Move      `json:"lastMove"`
	PieceCount        int        `json:"pieceCount"`
}

func NewGame(id string) *Game {
	now := time.Now()
	return &Game{
		ID:          id,
		state:       InitialGameState(),
		createdAt:   now,
		lastActive:  now,
		connections: NewGameConnections(),
	}
}

func (g *Game) logger() *log.Entry {
	return log.WithField("game", g.ID)
}

// State returns the current game state value.
func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state
}

func (g *Game) View() ClientState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.view()
}

func (g *Game) view() ClientState {
	cs := ClientState{
		GameID:            g.ID,
		State:             g.state,
		CurrentPlayerName: g.state.CurrentPlayer.DisplayName(),
		Selection:         g.selection,
		LegalMoves:        []Position{},
		LastMove:          g.lastMove,
		PieceCount:        g.state.Board.Count(),
	}
	if g.selection.Pending != nil {
		cs.Prompt = g.selection.Pending.Prompt()
	}
	if g.selection.Selected != nil {
		cs.LegalMoves = LegalMoves(g.state.Board, *g.selection.Selected, g.state.CurrentPlayer)
	}
	return cs
}

// LegalMoves lists the destinations of the piece on from for the side to move.
func (g *Game) LegalMoves(from Position) ([]Position, error) {
	if !from.InBounds() {
		return nil, fmt.Errorf("%w: %+v", ErrOutOfBounds, from)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	return LegalMoves(g.state.Board, from, g.state.CurrentPlayer), nil
}

func (g *Game) Click(pos Position) (ClientState, error) {
	if !pos.InBounds() {
		return ClientState{}, fmt.Errorf("%w: %+v", ErrOutOfBounds, pos)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.selection = Click(g.state, g.selection, pos)
	return g.changed(), nil
}

func (g *Game) Drag(from, to Position) (ClientState, error) {
	if !from.InBounds() || !to.InBounds() {
		return ClientState{}, fmt.Errorf("%w: %+v to %+v", ErrOutOfBounds, from, to)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.selection = Drag(g.state, g.selection, from, to)
	return g.changed(), nil
}

func (g *Game) Confirm() (ClientState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	state, sel, move, err := Confirm(g.state, g.selection)
	g.selection = sel
	if err != nil {
		return g.changed(), err
	}
	g.commit(state, move)
	return g.changed(), nil
}

func (g *Game) Cancel() ClientState {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.selection = Cancel(g.selection)
	return g.changed()
}

// Move plays from -> to directly, skipping selection and confirmation.
func (g *Game) Move(from, to Position) (ClientState, error) {
	if !from.InBounds() || !to.InBounds() {
		return ClientState{}, fmt.Errorf("%w: %+v to %+v", ErrOutOfBounds, from, to)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if from == to || !IsLegalMove(g.state.Board, from, to, g.state.CurrentPlayer) {
		return g.view(), fmt.Errorf("%w: %s to %s", ErrIllegalMove, from, to)
	}
	move := newMove(g.state.Board, from, to)
	next := g.state
	next.Board = ApplyMove(g.state.Board, from, to)
	g.selection = Selection{}
	g.commit(AdvanceTurn(next), move)
	return g.changed(), nil
}

// Reset starts the game over from the initial position.
func (g *Game) Reset() ClientState {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = InitialGameState()
	g.selection = Selection{}
	g.lastMove = nil
	g.logger().Info("game reset")
	return g.changed()
}

func (g *Game) commit(state GameState, move Move) {
	g.state = state
	g.lastMove = &move
	g.logger().WithFields(log.Fields{
		"move":      move.Notation,
		"toMove":    state.CurrentPlayer,
		"movesLeft": state.MovesLeft,
	}).Info("move applied")
}

// changed records activity and pushes the new snapshot. Callers hold mu.
func (g *Game) changed() ClientState {
	g.lastActive = time.Now()
	cs := g.view()
	g.broadcastState(cs)
	return cs
}

// IdleSince reports when the game last changed.
func (g *Game) IdleSince() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.lastActive
}

func (g *Game) CreatedAt() time.Time {
	return g.createdAt
}

// RegisterConnection adds conn to the observers and sends it the current state.
func (g *Game) RegisterConnection(connID string, conn Conn) error {
	g.connections.mu.Lock()
	if _, exists := g.connections.connections[connID]; exists {
		g.connections.mu.Unlock()
		return fmt.Errorf("connection %s already registered", connID)
	}
	g.connections.connections[connID] = conn
	g.connections.mu.Unlock()
	g.logger().WithField("conn", connID).Info("connection registered")

	return g.SendTo(connID, ws.MessageTypeGameState, g.View())
}

func (g *Game) UnregisterConnection(connID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[connID]; exists {
		delete(g.connections.connections, connID)
		g.logger().WithField("conn", connID).Info("connection unregistered")
	}
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	return len(g.connections.connections)
}

func newMessage(msgType ws.MessageType, payload interface{}) (ws.Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return ws.Message{}, err
	}
	return ws.Message{Type: msgType, Payload: json.RawMessage(raw)}, nil
}

// SendTo writes a single message to one connection. Writes share the
// connections lock with broadcasts so a connection never has two writers.
func (g *Game) SendTo(connID string, msgType ws.MessageType, payload interface{}) error {
	msg, err := newMessage(msgType, payload)
	if err != nil {
		return err
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	conn, ok := g.connections.connections[connID]
	if !ok {
		return fmt.Errorf("connection %s not registered", connID)
	}
	if err := conn.WriteJSON(msg); err != nil {
		delete(g.connections.connections, connID)
		return err
	}
	return nil
}

// broadcastState writes cs to every connection, dropping the ones that fail.
func (g *Game) broadcastState(cs ClientState) {
	msg, err := newMessage(ws.MessageTypeGameState, cs)
	if err != nil {
		g.logger().WithError(err).Error("failed to marshal game state")
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	for connID, conn := range g.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			g.logger().WithError(err).WithField("conn", connID).Warn("failed to send state, dropping connection")
			delete(g.connections.connections, connID)
		}
	}
}
