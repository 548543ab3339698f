package model

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/benbeisheim/scalechess-backend/internal/ws"
	. "gopkg.in/check.v1"
)

type recordingConn struct {
	mu       sync.Mutex
	messages []ws.Message
	fail     bool
}

func (r *recordingConn) WriteJSON(v interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail {
		return errors.New("broken pipe")
	}
	r.messages = append(r.messages, v.(ws.Message))
	return nil
}

func (r *recordingConn) last(c *C) ClientState {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.Assert(r.messages, Not(HasLen), 0)
	msg := r.messages[len(r.messages)-1]
	c.Assert(msg.Type, Equals, ws.MessageTypeGameState)
	var cs ClientState
	c.Assert(json.Unmarshal(msg.Payload, &cs), IsNil)
	return cs
}

type GameSuite struct {
	game *Game
}

var _ = Suite(&GameSuite{})

func (s *GameSuite) SetUpTest(c *C) {
	s.game = NewGame("test-game")
}

func (s *GameSuite) TestNewGameView(c *C) {
	view := s.game.View()
	c.Assert(view.GameID, Equals, "test-game")
	c.Assert(view.State, DeepEquals, InitialGameState())
	c.Assert(view.CurrentPlayerName, Equals, "Double Moves")
	c.Assert(view.PieceCount, Equals, 32)
	c.Assert(view.LegalMoves, HasLen, 0)
	c.Assert(view.LastMove, IsNil)
}

func (s *GameSuite) TestClickConfirmFlow(c *C) {
	view, err := s.game.Click(pos(1, 4))
	c.Assert(err, IsNil)
	c.Assert(view.LegalMoves, DeepEquals, []Position{pos(2, 4), pos(3, 4)})

	view, err = s.game.Click(pos(3, 4))
	c.Assert(err, IsNil)
	c.Assert(view.Prompt, Equals, "Move from e7 to e5?")

	view, err = s.game.Confirm()
	c.Assert(err, IsNil)
	c.Assert(view.Selection, DeepEquals, Selection{})
	c.Assert(view.LastMove, NotNil)
	c.Assert(view.LastMove.Notation, Equals, "♟e7-e5")
	c.Assert(view.State.MovesLeft, Equals, 1)
	c.Assert(s.game.State().Board[3][4].HasMoved, Equals, true)
}

func (s *GameSuite) TestCancelKeepsState(c *C) {
	_, err := s.game.Drag(pos(1, 4), pos(2, 4))
	c.Assert(err, IsNil)
	view := s.game.Cancel()
	c.Assert(view.Selection, DeepEquals, Selection{})
	c.Assert(view.State, DeepEquals, InitialGameState())

	_, err = s.game.Confirm()
	c.Assert(errors.Is(err, ErrNoPendingMove), Equals, true)
}

func (s *GameSuite) TestOutOfBounds(c *C) {
	_, err := s.game.Click(pos(8, 0))
	c.Assert(errors.Is(err, ErrOutOfBounds), Equals, true)
	_, err = s.game.Move(pos(1, 0), pos(1, -1))
	c.Assert(errors.Is(err, ErrOutOfBounds), Equals, true)
	_, err = s.game.LegalMoves(pos(0, 9))
	c.Assert(errors.Is(err, ErrOutOfBounds), Equals, true)
}

func (s *GameSuite) TestMove(c *C) {
	_, err := s.game.Move(pos(6, 0), pos(5, 0))
	c.Assert(errors.Is(err, ErrIllegalMove), Equals, true)
	_, err = s.game.Move(pos(0, 4), pos(0, 4))
	c.Assert(errors.Is(err, ErrIllegalMove), Equals, true)

	_, err = s.game.Move(pos(1, 0), pos(3, 0))
	c.Assert(err, IsNil)
	_, err = s.game.Move(pos(1, 1), pos(2, 1))
	c.Assert(err, IsNil)
	view, err := s.game.Move(pos(7, 0), pos(7, 5))
	c.Assert(err, IsNil)
	c.Assert(view.State.CurrentPlayer, Equals, DoubleMoves)
	c.Assert(view.State.MovesLeft, Equals, 2)
	c.Assert(view.PieceCount, Equals, 31)
}

func (s *GameSuite) TestReset(c *C) {
	_, err := s.game.Move(pos(1, 0), pos(3, 0))
	c.Assert(err, IsNil)
	view := s.game.Reset()
	c.Assert(view.State, DeepEquals, InitialGameState())
	c.Assert(view.LastMove, IsNil)
}

func (s *GameSuite) TestBroadcast(c *C) {
	a, b := &recordingConn{}, &recordingConn{}
	c.Assert(s.game.RegisterConnection("a", a), IsNil)
	c.Assert(s.game.RegisterConnection("b", b), IsNil)
	c.Assert(s.game.RegisterConnection("a", a), NotNil)
	c.Assert(s.game.ConnectionCount(), Equals, 2)
	c.Assert(a.last(c).State, DeepEquals, InitialGameState())

	_, err := s.game.Move(pos(1, 0), pos(2, 0))
	c.Assert(err, IsNil)
	c.Assert(a.last(c).State.MovesLeft, Equals, 1)
	c.Assert(b.last(c).State.MovesLeft, Equals, 1)

	b.fail = true
	s.game.Cancel()
	c.Assert(s.game.ConnectionCount(), Equals, 1)

	s.game.UnregisterConnection("a")
	c.Assert(s.game.ConnectionCount(), Equals, 0)
}

func (s *GameSuite) TestSendTo(c *C) {
	conn := &recordingConn{}
	c.Assert(s.game.SendTo("missing", ws.MessageTypeError, ws.ErrorPayload{Error: "x"}), NotNil)
	c.Assert(s.game.RegisterConnection("a", conn), IsNil)
	c.Assert(s.game.SendTo("a", ws.MessageTypeError, ws.ErrorPayload{Error: "nope"}), IsNil)

	msg := conn.messages[len(conn.messages)-1]
	c.Assert(msg.Type, Equals, ws.MessageTypeError)
	c.Assert(string(msg.Payload), Equals, `{"error":"nope"}`)
}

func (s *GameSuite) TestIdleSinceAdvances(c *C) {
	before := s.game.IdleSince()
	s.game.Cancel()
	c.Assert(s.game.IdleSince().Before(before), Equals, false)
	c.Assert(s.game.CreatedAt().After(s.game.IdleSince()), Equals, false)
}
